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
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/recoveryops/skiptrace/services/osint/history"
	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

// ErrEmptyRequest is returned by StartSearch when every identifier is
// blank. The rejection happens before any dispatch; no task state
// changes.
var ErrEmptyRequest = errors.New("osint: search request has no identifiers")

// ServiceConfig carries the tunables for a Service.
type ServiceConfig struct {
	// ExportDir receives exported report files.
	ExportDir string

	// DefaultUserID is used when a request carries no user header.
	DefaultUserID string
}

// DefaultServiceConfig returns the settings used when nothing is
// configured.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		ExportDir:     "reports",
		DefaultUserID: "local",
	}
}

// Service is the orchestration facade the HTTP layer talks to. It owns
// the status board, the runner, and the history store.
//
// Thread Safety: safe for concurrent use. Overlapping StartSearch calls
// are resolved by the board's generation counter.
type Service struct {
	cfg     ServiceConfig
	client  *toolclient.Client
	board   *StatusBoard
	runner  *Runner
	history history.Store
	logger  *slog.Logger

	mu          sync.Mutex
	lastVehicle *toolclient.VehicleSearchResult
}

// NewService wires a Service. hist may be history.Disabled() when no
// database is available.
func NewService(cfg ServiceConfig, client *toolclient.Client, hist history.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	board := NewStatusBoard()
	return &Service{
		cfg:     cfg,
		client:  client,
		board:   board,
		runner:  NewRunner(client, board, logger),
		history: hist,
		logger:  logger,
	}
}

// Board exposes the live status board for snapshots and stream
// subscriptions.
func (s *Service) Board() *StatusBoard { return s.board }

// StartSearch validates req and kicks off the concurrent run in the
// background.
//
// Description:
//
//	Returns ErrEmptyRequest without touching any state when all four
//	identifiers are blank. Otherwise the search runs detached from the
//	caller's request lifetime: an HTTP client disconnecting does not
//	cancel in-flight tool calls. Progress is observable on the board.
//	The returned generation identifies this run; results from an older
//	run superseded by a newer one are discarded by the board. The
//	search is written to userID's history only once it has fully
//	settled, and only if its generation is still current — a run
//	superseded mid-flight leaves no history entry.
func (s *Service) StartSearch(ctx context.Context, userID string, req SearchRequest) (uint64, []ToolKey, error) {
	if req.Empty() {
		recordSearchRejected()
		return 0, nil, ErrEmptyRequest
	}
	if userID == "" {
		userID = s.cfg.DefaultUserID
	}

	gen, keys := s.runner.Begin(req)

	// Detach from the HTTP request context but keep its trace values.
	runCtx := context.WithoutCancel(ctx)
	go func() {
		if _, err := s.runner.Execute(runCtx, req, gen, keys); err != nil {
			s.logger.Error("Search run failed",
				slog.Uint64("generation", gen),
				slog.String("error", err.Error()),
			)
			return
		}
		s.recordHistory(runCtx, userID, req, gen)
	}()

	return gen, keys, nil
}

// recordHistory persists a fully-settled search, fenced the same way
// the board fences completions: a generation superseded while its
// tools were in flight is dropped.
func (s *Service) recordHistory(ctx context.Context, userID string, req SearchRequest, gen uint64) {
	if s.board.Generation() != gen {
		return
	}

	// History remembers what the operator typed, not the normalized
	// form, so a recalled entry re-renders exactly as entered. The
	// timestamp is settle time, matching what the entry represents: a
	// search that ran to completion.
	entry := history.Entry{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		State:     req.State,
		Timestamp: time.Now().UTC(),
	}
	if err := s.history.Record(ctx, userID, entry); err != nil {
		// History is a convenience; a write failure loses nothing but
		// the recall entry.
		s.logger.Warn("History record failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}

// Snapshot returns the current request, task states in canonical
// dispatch order, and generation, read atomically from the board.
func (s *Service) Snapshot() (SearchRequest, []ToolTask, uint64) {
	return s.board.State()
}

// Report renders the report for the board's current state.
func (s *Service) Report() string {
	req, tasks, _ := s.Snapshot()
	s.mu.Lock()
	vehicle := s.lastVehicle
	s.mu.Unlock()
	return BuildReport(ReportInput{
		Request: req,
		Tasks:   tasks,
		Vehicle: vehicle,
		Now:     time.Now(),
	})
}

// Export writes the current report to the export directory and returns
// the file path.
func (s *Service) Export() (string, error) {
	req, _, _ := s.Snapshot()
	return ExportReport(s.cfg.ExportDir, req.Subject(), s.Report(), time.Now())
}

// History lists userID's saved searches, newest first.
func (s *Service) History(ctx context.Context, userID string) ([]history.Entry, error) {
	if userID == "" {
		userID = s.cfg.DefaultUserID
	}
	return s.history.List(ctx, userID)
}

// ClearHistory removes userID's saved searches.
func (s *Service) ClearHistory(ctx context.Context, userID string) error {
	if userID == "" {
		userID = s.cfg.DefaultUserID
	}
	return s.history.Clear(ctx, userID)
}

// VehicleSearch forwards a plate/VIN lookup and remembers the result
// for inclusion in the next report.
func (s *Service) VehicleSearch(ctx context.Context, req toolclient.VehicleSearchRequest) (*toolclient.VehicleSearchResult, error) {
	res, err := s.client.VehicleSearch(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastVehicle = res
	s.mu.Unlock()
	return res, nil
}

// BackendHealth passes through the tool backend's health report.
func (s *Service) BackendHealth(ctx context.Context) (*toolclient.HealthResult, error) {
	return s.client.Health(ctx)
}
