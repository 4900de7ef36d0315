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
	"strconv"
	"testing"
)

func TestStatusBoardTransitions(t *testing.T) {
	board := NewStatusBoard()

	// Everything starts Idle.
	for _, task := range board.Snapshot() {
		if task.Status != StatusIdle {
			t.Fatalf("fresh board: task %s is %s, want idle", task.Key, task.Status)
		}
	}

	gen := board.BeginSearch(SearchRequest{Email: "j@example.com"}, []ToolKey{ToolHolehe, ToolEmailDorks})

	holehe, _ := board.Get(ToolHolehe)
	if holehe.Status != StatusRunning {
		t.Errorf("dispatched task is %s, want running", holehe.Status)
	}
	if holehe.StartedAt.IsZero() {
		t.Error("dispatched task has zero StartedAt")
	}
	idle, _ := board.Get(ToolPhoneLookup)
	if idle.Status != StatusIdle {
		t.Errorf("undispatched task is %s, want idle", idle.Status)
	}

	board.MarkDone(gen, ToolHolehe, &ToolResult{Key: ToolHolehe})
	board.MarkError(gen, ToolEmailDorks, "boom")

	holehe, _ = board.Get(ToolHolehe)
	if holehe.Status != StatusDone || holehe.SettledAt.IsZero() {
		t.Errorf("settled task = %+v, want done with SettledAt set", holehe)
	}
	dorks, _ := board.Get(ToolEmailDorks)
	if dorks.Status != StatusError || dorks.Err != "boom" {
		t.Errorf("errored task = %+v, want error %q", dorks, "boom")
	}
}

func TestStatusBoardSettleIsFinal(t *testing.T) {
	board := NewStatusBoard()
	gen := board.BeginSearch(SearchRequest{Email: "j@example.com"}, []ToolKey{ToolHolehe})

	board.MarkDone(gen, ToolHolehe, &ToolResult{Key: ToolHolehe})
	// A second settle on the same key must not flip the status.
	board.MarkError(gen, ToolHolehe, "late failure")

	task, _ := board.Get(ToolHolehe)
	if task.Status != StatusDone {
		t.Errorf("task reversed from done to %s", task.Status)
	}
	if task.Err != "" {
		t.Errorf("settled task picked up error %q", task.Err)
	}
}

func TestStatusBoardStaleGenerationDropped(t *testing.T) {
	board := NewStatusBoard()
	oldGen := board.BeginSearch(SearchRequest{Email: "old@example.com"}, []ToolKey{ToolHolehe})
	newGen := board.BeginSearch(SearchRequest{Email: "new@example.com"}, []ToolKey{ToolHolehe})

	// A completion from the superseded search must not touch the board.
	board.MarkDone(oldGen, ToolHolehe, &ToolResult{Key: ToolHolehe})

	task, _ := board.Get(ToolHolehe)
	if task.Status != StatusRunning {
		t.Errorf("stale completion applied: task is %s, want running", task.Status)
	}

	board.MarkDone(newGen, ToolHolehe, &ToolResult{Key: ToolHolehe})
	task, _ = board.Get(ToolHolehe)
	if task.Status != StatusDone {
		t.Errorf("current-generation completion dropped: task is %s", task.Status)
	}
}

func TestStatusBoardBeginResetsPriorResults(t *testing.T) {
	board := NewStatusBoard()
	gen := board.BeginSearch(SearchRequest{Email: "j@example.com"}, []ToolKey{ToolHolehe})
	board.MarkDone(gen, ToolHolehe, &ToolResult{Key: ToolHolehe})

	board.BeginSearch(SearchRequest{Name: "John Smith"}, []ToolKey{ToolCourtRecords})

	holehe, _ := board.Get(ToolHolehe)
	if holehe.Status != StatusIdle || holehe.Result != nil {
		t.Errorf("prior result survived reset: %+v", holehe)
	}
	if req := board.Request(); req.Name != "John Smith" {
		t.Errorf("board request = %+v, want the new search", req)
	}
}

func TestStatusBoardSnapshotOrder(t *testing.T) {
	board := NewStatusBoard()
	board.BeginSearch(SearchRequest{Name: "John Smith", Email: "j@example.com", Phone: "5045550123"}, AllTools)

	snap := board.Snapshot()
	if len(snap) != len(AllTools) {
		t.Fatalf("snapshot has %d tasks, want %d", len(snap), len(AllTools))
	}
	for i, key := range AllTools {
		if snap[i].Key != key {
			t.Errorf("snapshot[%d] = %s, want %s (canonical order)", i, snap[i].Key, key)
		}
	}
}

func TestStatusBoardStream(t *testing.T) {
	board := NewStatusBoard()
	ch := board.Subscribe()
	defer board.Unsubscribe(ch)

	gen := board.BeginSearch(SearchRequest{Email: "j@example.com"}, []ToolKey{ToolHolehe})
	board.MarkDone(gen, ToolHolehe, &ToolResult{Key: ToolHolehe})
	board.Complete(gen)

	var updates []TaskUpdate
	for len(updates) < 3 {
		select {
		case u := <-ch:
			updates = append(updates, u)
		default:
			t.Fatalf("expected 3 buffered updates, got %d: %v", len(updates), updates)
		}
	}

	if updates[0].Status != "running" || updates[0].Key != ToolHolehe {
		t.Errorf("first update = %+v, want holehe running", updates[0])
	}
	if updates[1].Status != "done" {
		t.Errorf("second update = %+v, want done", updates[1])
	}
	last := updates[len(updates)-1]
	if !last.Complete || last.Generation != gen {
		t.Errorf("final update = %+v, want complete for generation %d", last, gen)
	}
}

func TestStatusBoardStateIsAtomic(t *testing.T) {
	board := NewStatusBoard()
	keys := []ToolKey{ToolHolehe}

	// Generations are assigned sequentially from 1, so naming each
	// request after its expected generation lets a reader detect a
	// request paired with another generation's counter.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= 200; i++ {
			board.BeginSearch(SearchRequest{Name: strconv.Itoa(i)}, keys)
		}
	}()

	for {
		req, tasks, gen := board.State()
		if gen != 0 && req.Name != strconv.FormatUint(gen, 10) {
			t.Fatalf("request %q paired with generation %d", req.Name, gen)
		}
		if len(tasks) != len(AllTools) {
			t.Fatalf("snapshot has %d tasks, want %d", len(tasks), len(AllTools))
		}
		select {
		case <-done:
			req, _, gen := board.State()
			if gen != 200 || req.Name != "200" {
				t.Fatalf("final state = (%q, gen %d), want (\"200\", gen 200)", req.Name, gen)
			}
			return
		default:
		}
	}
}
