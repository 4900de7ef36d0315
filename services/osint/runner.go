// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package osint

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

// maxUsernameVariations caps how many handle candidates the investigate
// call sweeps.
const maxUsernameVariations = 5

// Runner executes one search invocation: dispatch, concurrent fan-out,
// and the all-settled join.
//
// Thread Safety: Runner is safe for concurrent use; overlapping Run
// calls race on the board's generation counter by design — the newer
// generation wins and stale completions are discarded.
type Runner struct {
	client *toolclient.Client
	board  *StatusBoard
	logger *slog.Logger
}

// NewRunner creates a Runner writing task state to board.
func NewRunner(client *toolclient.Client, board *StatusBoard, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{client: client, board: board, logger: logger}
}

// SearchOutcome summarizes a fully-settled search.
type SearchOutcome struct {
	Generation uint64        `json:"generation"`
	Dispatched []ToolKey     `json:"dispatched"`
	Done       int           `json:"done"`
	Errored    int           `json:"errored"`
	Duration   time.Duration `json:"-"`
}

// Run executes a search to completion.
//
// Description:
//
//	Resets the board to Idle, dispatches the tools unlocked by req's
//	identifiers, and launches every task concurrently. Each task settles
//	its own key only: a failing call records Error on that key and
//	contributes nil to the join, so one tool can never abort its
//	siblings — the join completes when every branch has settled. Run
//	returns only then; per-tool results are observable on the board (and
//	the stream) as they land.
//
//	An empty request dispatches nothing and returns a zero outcome with
//	a nil error — rejection happens before dispatch and is not a fault.
//
//	There is no orchestrator-imposed timeout: a slow tool stays Running
//	until it settles or ctx is cancelled.
//
// Thread Safety: Safe for concurrent use; see type comment.
func (r *Runner) Run(ctx context.Context, req SearchRequest) (*SearchOutcome, error) {
	if req.Empty() {
		recordSearchRejected()
		r.logger.Info("Search rejected: all identifiers blank")
		return &SearchOutcome{}, nil
	}
	gen, keys := r.Begin(req)
	return r.Execute(ctx, req, gen, keys)
}

// Begin dispatches req's tools and resets the board to a fresh
// generation without starting any work. Callers that need the
// generation before the fan-out launches (the async HTTP path) call
// Begin, hand the values to Execute, and return the generation to the
// client.
func (r *Runner) Begin(req SearchRequest) (gen uint64, keys []ToolKey) {
	keys = Dispatch(req.Normalized())
	gen = r.board.BeginSearch(req, keys)
	return gen, keys
}

// Execute runs a search prepared by Begin to completion.
func (r *Runner) Execute(ctx context.Context, req SearchRequest, gen uint64, keys []ToolKey) (*SearchOutcome, error) {
	normalized := req.Normalized()
	start := time.Now()

	ctx, span := otel.Tracer("skiptrace.osint").Start(ctx, "search.run")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("generation", int64(gen)),
		attribute.Int("dispatched", len(keys)),
	)

	r.logger.Info("Search dispatched",
		slog.Uint64("generation", gen),
		slog.Int("tools", len(keys)),
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, key := range keys {
		g.Go(func() error {
			// A panicking tool call must settle its task like any other
			// failure; otherwise the board would show Running forever.
			defer func() {
				if rec := recover(); rec != nil {
					buf := make([]byte, 4096)
					n := runtime.Stack(buf, false)
					r.logger.Error("Panic in tool task recovered",
						slog.String("tool", string(key)),
						slog.Any("panic", rec),
						slog.String("stack", string(buf[:n])),
					)
					r.board.MarkError(gen, key, fmt.Sprintf("internal error: %v", rec))
				}
			}()

			taskStart := time.Now()
			result, err := r.call(gctx, key, normalized)
			if err != nil {
				recordToolCall(key, time.Since(taskStart), false)
				r.board.MarkError(gen, key, err.Error())
				r.logger.Warn("Tool task failed",
					slog.String("tool", string(key)),
					slog.String("error", err.Error()),
					slog.Duration("duration", time.Since(taskStart)),
				)
				// Individual failure is not fatal to the search.
				return nil
			}
			recordToolCall(key, time.Since(taskStart), true)
			r.board.MarkDone(gen, key, result)
			return nil
		})
	}

	// The group's error is always nil — tasks swallow their own
	// failures — but Wait is still the all-settled join point.
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search join failed")
		return nil, fmt.Errorf("osint: search join: %w", err)
	}

	outcome := &SearchOutcome{
		Generation: gen,
		Dispatched: keys,
		Duration:   time.Since(start),
	}
	for _, key := range keys {
		if task, ok := r.board.Get(key); ok {
			switch task.Status {
			case StatusDone:
				outcome.Done++
			case StatusError:
				outcome.Errored++
			}
		}
	}
	recordSearch(outcome.Duration, outcome.Errored)
	r.board.Complete(gen)

	span.SetAttributes(
		attribute.Int("done", outcome.Done),
		attribute.Int("errored", outcome.Errored),
	)
	r.logger.Info("Search settled",
		slog.Uint64("generation", gen),
		slog.Int("done", outcome.Done),
		slog.Int("errored", outcome.Errored),
		slog.Duration("duration", outcome.Duration),
	)
	return outcome, nil
}

// call invokes the tool behind key with the normalized identifiers and
// wraps the response in the tagged union.
func (r *Runner) call(ctx context.Context, key ToolKey, req SearchRequest) (*ToolResult, error) {
	ctx, span := otel.Tracer("skiptrace.osint").Start(ctx, "tool."+string(key))
	defer span.End()

	out := &ToolResult{Key: key}
	var err error

	switch key {
	case ToolInvestigate:
		out.Investigate, err = r.client.Investigate(ctx, toolclient.InvestigateRequest{
			Name:     req.Name,
			Email:    req.Email,
			Phone:    req.Phone,
			Location: req.State,
			Aliases:  UsernameVariations(req.Name, maxUsernameVariations),
		})
	case ToolCourtRecords:
		out.CourtRecords, err = r.client.CourtRecords(ctx, req.Name)
	case ToolArrests:
		out.Arrests, err = r.client.Arrests(ctx, req.Name)
	case ToolBackgroundLinks:
		out.BackgroundLinks, err = r.client.BackgroundLinks(ctx, toolclient.BackgroundLinksRequest{
			Name:  req.Name,
			State: req.State,
		})
	case ToolNameDorks:
		out.Dorks, err = r.fetchDorks(ctx, req.Name, "name")
	case ToolHolehe:
		out.Holehe, err = r.client.Holehe(ctx, req.Email)
	case ToolGoogleLookup:
		// Built locally; the task settles without a network call.
		out.Dorks = EmailWebSearches(req.Email)
	case ToolEmailDorks:
		out.Dorks, err = r.fetchDorks(ctx, req.Email, "email")
	case ToolPhoneLookup:
		out.PhoneLookup, err = r.client.PhoneLookup(ctx, req.Phone)
	case ToolIgnorant:
		out.Ignorant, err = r.client.Ignorant(ctx, req.Phone, "US")
	case ToolPhoneDorks:
		out.Dorks, err = r.fetchDorks(ctx, req.Phone, "phone")
	default:
		err = fmt.Errorf("osint: unknown tool key %q", key)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "tool call failed")
		return nil, err
	}
	span.SetStatus(codes.Ok, "")
	return out, nil
}

// fetchDorks calls the dork generator and converts its wire items into
// DorkEntry batches keyed by the generator's google_url.
func (r *Runner) fetchDorks(ctx context.Context, query, dorkType string) ([]DorkEntry, error) {
	res, err := r.client.Dorks(ctx, query, dorkType)
	if err != nil {
		return nil, err
	}
	entries := make([]DorkEntry, 0, len(res.Dorks))
	for _, d := range res.Dorks {
		entries = append(entries, DorkEntry{
			Category: d.Category,
			Query:    d.Dork,
			URL:      d.GoogleURL,
		})
	}
	return entries, nil
}
