// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package history persists a per-user list of recent search
// identifiers so a repeated trace can be re-run with one click.
//
// The list is small and bounded: at most MaxEntries per user, newest
// first, and recording a search whose identifiers match an existing
// entry replaces that entry instead of duplicating it.
package history

import (
	"context"
	"time"
)

// MaxEntries bounds the per-user history length. The oldest entry is
// evicted when a new distinct search lands on a full list.
const MaxEntries = 5

// Entry is one remembered search. Identifier fields are stored as the
// caller typed them; State is kept for re-running the search but does
// not participate in identifier equality.
type Entry struct {
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	State     string    `json:"state,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SameIdentifiers reports whether two entries describe the same search
// subject. Only the four identifier fields are compared.
func (e Entry) SameIdentifiers(other Entry) bool {
	return e.Name == other.Name &&
		e.Email == other.Email &&
		e.Phone == other.Phone &&
		e.Address == other.Address
}

// Store is the persistence contract for search history.
//
// Thread Safety: implementations must be safe for concurrent use.
type Store interface {
	// Record inserts entry at the head of userID's list, replacing any
	// identifier-equal entry and trimming to MaxEntries.
	Record(ctx context.Context, userID string, entry Entry) error

	// List returns userID's entries, newest first. A user with no
	// history gets an empty slice, not an error.
	List(ctx context.Context, userID string) ([]Entry, error)

	// Clear removes every entry for userID.
	Clear(ctx context.Context, userID string) error
}
