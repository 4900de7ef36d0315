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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/recoveryops/skiptrace/services/osint/toolclient"
)

// newToolBackend builds a fake tool backend whose handlers are supplied
// per path. Unlisted paths return 404.
func newToolBackend(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestRunnerAllSettledJoin(t *testing.T) {
	// Holehe fails, dorks succeeds: the failure must not abort the
	// sibling, and the run must settle every dispatched task.
	backend := newToolBackend(t, map[string]http.HandlerFunc{
		"/api/holehe": func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "tool crashed", http.StatusInternalServerError)
		},
		"/api/dorks": func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, map[string]any{
				"dorks": []map[string]string{
					{"category": "web", "dork": `"j@example.com"`, "google_url": "https://g.example/1"},
				},
			})
		},
	})

	client := toolclient.NewClientWithConfig(backend.URL, "")
	board := NewStatusBoard()
	runner := NewRunner(client, board, nil)

	outcome, err := runner.Run(context.Background(), SearchRequest{Email: "j@example.com"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if outcome.Done != 2 {
		t.Errorf("Done = %d, want 2 (dorks + local web searches)", outcome.Done)
	}
	if outcome.Errored != 1 {
		t.Errorf("Errored = %d, want 1 (holehe)", outcome.Errored)
	}

	holehe, _ := board.Get(ToolHolehe)
	if holehe.Status != StatusError || holehe.Err == "" {
		t.Errorf("holehe task = %+v, want error with message", holehe)
	}
	dorks, _ := board.Get(ToolEmailDorks)
	if dorks.Status != StatusDone {
		t.Errorf("emailDorks task = %s, want done despite sibling failure", dorks.Status)
	}
	if dorks.Result == nil || len(dorks.Result.Dorks) != 1 {
		t.Errorf("emailDorks result = %+v, want the fetched entry", dorks.Result)
	}
	local, _ := board.Get(ToolGoogleLookup)
	if local.Status != StatusDone {
		t.Errorf("googleLookup task = %s, want done (built locally)", local.Status)
	}
}

func TestRunnerEmptyRequest(t *testing.T) {
	client := toolclient.NewClientWithConfig("http://localhost:1", "")
	board := NewStatusBoard()
	runner := NewRunner(client, board, nil)

	outcome, err := runner.Run(context.Background(), SearchRequest{State: "LA"})
	if err != nil {
		t.Fatalf("empty request must not error, got %v", err)
	}
	if outcome.Generation != 0 || len(outcome.Dispatched) != 0 {
		t.Errorf("empty request produced outcome %+v, want zero", outcome)
	}
	if board.Generation() != 0 {
		t.Error("empty request bumped the board generation")
	}
}

func TestRunnerCompletionAfterSlowestTool(t *testing.T) {
	const slowDelay = 150 * time.Millisecond

	backend := newToolBackend(t, map[string]http.HandlerFunc{
		"/api/holehe": func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(slowDelay)
			respondJSON(t, w, map[string]any{"email": "j@example.com", "registered_on": []any{}})
		},
		"/api/dorks": func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(t, w, map[string]any{"dorks": []any{}})
		},
	})

	client := toolclient.NewClientWithConfig(backend.URL, "")
	board := NewStatusBoard()
	runner := NewRunner(client, board, nil)

	updates := board.Subscribe()
	defer board.Unsubscribe(updates)

	start := time.Now()
	outcome, err := runner.Run(context.Background(), SearchRequest{Email: "j@example.com"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < slowDelay {
		t.Errorf("Run returned in %v, before the slow tool settled (%v)", elapsed, slowDelay)
	}

	// Drain the buffered updates: fast tools settle before the slow
	// one, and the complete event is last.
	var events []TaskUpdate
drain:
	for {
		select {
		case u := <-updates:
			events = append(events, u)
			if u.Complete {
				break drain
			}
		default:
			t.Fatalf("stream ended without a complete event: %v", events)
		}
	}

	last := events[len(events)-1]
	if !last.Complete || last.Generation != outcome.Generation {
		t.Fatalf("final event = %+v, want complete", last)
	}

	var settledOrder []ToolKey
	for _, u := range events {
		if u.Status == "done" || u.Status == "error" {
			settledOrder = append(settledOrder, u.Key)
		}
	}
	if len(settledOrder) != 3 {
		t.Fatalf("settled %d tasks, want 3: %v", len(settledOrder), settledOrder)
	}
	if settledOrder[len(settledOrder)-1] != ToolHolehe {
		t.Errorf("slow tool settled at %v, want last: %v", settledOrder, ToolHolehe)
	}
}

func TestRunnerInvestigateUsesNameVariations(t *testing.T) {
	var (
		mu         sync.Mutex
		gotAliases []string
	)

	backend := newToolBackend(t, map[string]http.HandlerFunc{
		"/api/investigate": func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Name    string   `json:"name"`
				Aliases []string `json:"usernames"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decode investigate request: %v", err)
			}
			mu.Lock()
			gotAliases = req.Aliases
			mu.Unlock()
			respondJSON(t, w, map[string]any{"name": req.Name, "summary": "ok"})
		},
		"/api/court-records":    func(w http.ResponseWriter, _ *http.Request) { respondJSON(t, w, map[string]any{"cases_found": []any{}}) },
		"/api/arrests":          func(w http.ResponseWriter, _ *http.Request) { respondJSON(t, w, map[string]any{"arrests_found": []any{}}) },
		"/api/background-links": func(w http.ResponseWriter, _ *http.Request) { respondJSON(t, w, map[string]any{"links": map[string]any{}}) },
		"/api/dorks":            func(w http.ResponseWriter, _ *http.Request) { respondJSON(t, w, map[string]any{"dorks": []any{}}) },
	})

	client := toolclient.NewClientWithConfig(backend.URL, "")
	runner := NewRunner(client, NewStatusBoard(), nil)

	if _, err := runner.Run(context.Background(), SearchRequest{Name: "Smith, John"}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(gotAliases) == 0 {
		t.Fatal("investigate request carried no aliases")
	}
	if gotAliases[0] != "johnsmith" {
		t.Errorf("first alias = %q, want %q (from the normalized name)", gotAliases[0], "johnsmith")
	}
	if len(gotAliases) > maxUsernameVariations {
		t.Errorf("sent %d aliases, cap is %d", len(gotAliases), maxUsernameVariations)
	}
}
