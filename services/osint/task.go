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
	"sync"
	"time"
)

// ToolStatus is the lifecycle state of one tool task. Within one search
// generation a task moves Idle → Running → Done|Error exactly once and
// never reverses.
type ToolStatus int

const (
	StatusIdle ToolStatus = iota
	StatusRunning
	StatusDone
	StatusError
)

func (s ToolStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Settled reports whether the status is terminal.
func (s ToolStatus) Settled() bool { return s == StatusDone || s == StatusError }

// ToolTask is the tracked state of one tool within one search invocation.
type ToolTask struct {
	Key       ToolKey     `json:"key"`
	Label     string      `json:"label"`
	Status    ToolStatus  `json:"-"`
	Result    *ToolResult `json:"result,omitempty"`
	Err       string      `json:"error,omitempty"`
	StartedAt time.Time   `json:"started_at,omitzero"`
	SettledAt time.Time   `json:"settled_at,omitzero"`
}

// TaskUpdate is one status transition pushed to stream subscribers. A
// zero Key with Complete=true is the search-complete event.
type TaskUpdate struct {
	Generation uint64  `json:"generation"`
	Key        ToolKey `json:"key,omitempty"`
	Status     string  `json:"status,omitempty"`
	Err        string  `json:"error,omitempty"`
	Complete   bool    `json:"complete,omitempty"`
}

// StatusBoard is the shared per-tool status map.
//
// Description:
//
//	The board owns one ToolTask per registered tool key. All mutation is
//	a per-key merge under the board's lock — there is no whole-map
//	replace, so concurrent task completions never clobber each other's
//	keys. Each update carries the generation it was launched under;
//	writes tagged with a stale generation are dropped, which is how
//	completions from a superseded search are fenced out (the prior
//	in-flight calls are not cancelled).
//
// Thread Safety: StatusBoard is safe for concurrent use.
type StatusBoard struct {
	mu         sync.RWMutex
	generation uint64
	request    SearchRequest
	tasks      map[ToolKey]*ToolTask
	subs       map[chan TaskUpdate]struct{}
}

// NewStatusBoard creates a board with every registered tool Idle.
func NewStatusBoard() *StatusBoard {
	tasks := make(map[ToolKey]*ToolTask, len(AllTools))
	for _, key := range AllTools {
		tasks[key] = &ToolTask{Key: key, Label: ToolLabel(key)}
	}
	return &StatusBoard{
		tasks: tasks,
		subs:  make(map[chan TaskUpdate]struct{}),
	}
}

// BeginSearch starts a new generation: every tracked task is reset to
// Idle (clearing stale results and errors), the dispatched keys are set
// Running, and the raw request is recorded for the report header.
//
// Outputs:
//   - uint64: The new generation. Task completions must present it back.
func (b *StatusBoard) BeginSearch(req SearchRequest, keys []ToolKey) uint64 {
	b.mu.Lock()
	b.generation++
	gen := b.generation
	b.request = req
	now := time.Now()
	for _, task := range b.tasks {
		*task = ToolTask{Key: task.Key, Label: task.Label}
	}
	for _, key := range keys {
		if task, ok := b.tasks[key]; ok {
			task.Status = StatusRunning
			task.StartedAt = now
		}
	}
	b.mu.Unlock()

	for _, key := range keys {
		b.publish(TaskUpdate{Generation: gen, Key: key, Status: StatusRunning.String()})
	}
	return gen
}

// MarkDone records a successful result for key. The write is dropped if
// gen is stale or the task is not Running (a task settles once).
func (b *StatusBoard) MarkDone(gen uint64, key ToolKey, result *ToolResult) {
	b.settle(gen, key, StatusDone, result, "")
}

// MarkError records a failure message for key under the same fencing
// rules as MarkDone.
func (b *StatusBoard) MarkError(gen uint64, key ToolKey, msg string) {
	b.settle(gen, key, StatusError, nil, msg)
}

func (b *StatusBoard) settle(gen uint64, key ToolKey, status ToolStatus, result *ToolResult, msg string) {
	b.mu.Lock()
	task, ok := b.tasks[key]
	if !ok || gen != b.generation || task.Status != StatusRunning {
		b.mu.Unlock()
		return
	}
	task.Status = status
	task.Result = result
	task.Err = msg
	task.SettledAt = time.Now()
	b.mu.Unlock()

	b.publish(TaskUpdate{Generation: gen, Key: key, Status: status.String(), Err: msg})
}

// Complete publishes the search-complete event for gen. No-op when gen
// is stale.
func (b *StatusBoard) Complete(gen uint64) {
	b.mu.RLock()
	stale := gen != b.generation
	b.mu.RUnlock()
	if stale {
		return
	}
	b.publish(TaskUpdate{Generation: gen, Complete: true})
}

// Generation returns the current search generation (zero before the
// first search).
func (b *StatusBoard) Generation() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.generation
}

// Request returns the raw request of the current generation.
func (b *StatusBoard) Request() SearchRequest {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.request
}

// Get returns a copy of the task for key.
func (b *StatusBoard) Get(key ToolKey) (ToolTask, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	task, ok := b.tasks[key]
	if !ok {
		return ToolTask{}, false
	}
	return *task, true
}

// Snapshot returns copies of every tracked task in canonical dispatch
// order.
func (b *StatusBoard) Snapshot() []ToolTask {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.snapshotLocked()
}

// State returns the request, task snapshot, and generation together
// under one lock, so the three always describe the same generation.
// Status responses must use this instead of the individual accessors;
// a BeginSearch interleaved between separate calls would pair the new
// request with the old generation's tasks.
func (b *StatusBoard) State() (SearchRequest, []ToolTask, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.request, b.snapshotLocked(), b.generation
}

func (b *StatusBoard) snapshotLocked() []ToolTask {
	out := make([]ToolTask, 0, len(AllTools))
	for _, key := range AllTools {
		out = append(out, *b.tasks[key])
	}
	return out
}

// Subscribe registers a buffered update channel. The caller must drain
// it and call Unsubscribe when done; a subscriber that falls behind has
// updates dropped rather than blocking task completions.
func (b *StatusBoard) Subscribe() chan TaskUpdate {
	ch := make(chan TaskUpdate, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (b *StatusBoard) Unsubscribe(ch chan TaskUpdate) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *StatusBoard) publish(u TaskUpdate) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- u:
		default:
		}
	}
}
