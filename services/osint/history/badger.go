// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	dgbadger "github.com/dgraph-io/badger/v4"

	badgerstore "github.com/recoveryops/skiptrace/services/osint/storage/badger"
)

// keyPrefix versions the on-disk layout so a future format change can
// migrate instead of misparse.
const keyPrefix = "history/v1/"

// BadgerStore keeps each user's history as one JSON-encoded value
// under history/v1/{userID}. Replace-and-trim happens inside a single
// read-modify-write transaction, so concurrent Records for the same
// user serialize on badger's conflict detection.
type BadgerStore struct {
	db *badgerstore.DB
}

// NewBadgerStore wraps an open database. A nil db yields a store whose
// operations all fail with ErrDisabled; callers running without a
// history directory should use Disabled() for silent no-ops instead.
func NewBadgerStore(db *badgerstore.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// ErrDisabled is returned by a BadgerStore constructed without a
// database.
var ErrDisabled = errors.New("history: store disabled")

// Disabled returns a Store that remembers nothing: Record and Clear
// succeed as no-ops and List is always empty. Used when the history
// database cannot be opened so search still works without persistence.
func Disabled() Store {
	return disabledStore{}
}

type disabledStore struct{}

func (disabledStore) Record(context.Context, string, Entry) error { return nil }

func (disabledStore) List(context.Context, string) ([]Entry, error) {
	return []Entry{}, nil
}

func (disabledStore) Clear(context.Context, string) error { return nil }

func userKey(userID string) []byte {
	return []byte(keyPrefix + userID)
}

// Record implements Store.
func (s *BadgerStore) Record(ctx context.Context, userID string, entry Entry) error {
	if s.db == nil {
		return ErrDisabled
	}
	err := s.db.WithTxn(ctx, func(txn *dgbadger.Txn) error {
		entries, err := readEntries(txn, userID)
		if err != nil {
			return err
		}

		kept := make([]Entry, 0, len(entries)+1)
		kept = append(kept, entry)
		for _, e := range entries {
			if e.SameIdentifiers(entry) {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) > MaxEntries {
			kept = kept[:MaxEntries]
		}

		payload, err := json.Marshal(kept)
		if err != nil {
			return fmt.Errorf("encode entries: %w", err)
		}
		return txn.Set(userKey(userID), payload)
	})
	if err != nil {
		return fmt.Errorf("history: record for %q: %w", userID, err)
	}
	return nil
}

// List implements Store.
func (s *BadgerStore) List(ctx context.Context, userID string) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrDisabled
	}
	var entries []Entry
	err := s.db.WithReadTxn(ctx, func(txn *dgbadger.Txn) error {
		var err error
		entries, err = readEntries(txn, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("history: list for %q: %w", userID, err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Clear implements Store.
func (s *BadgerStore) Clear(ctx context.Context, userID string) error {
	if s.db == nil {
		return ErrDisabled
	}
	err := s.db.WithTxn(ctx, func(txn *dgbadger.Txn) error {
		err := txn.Delete(userKey(userID))
		if errors.Is(err, dgbadger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("history: clear for %q: %w", userID, err)
	}
	return nil
}

func readEntries(txn *dgbadger.Txn, userID string) ([]Entry, error) {
	item, err := txn.Get(userKey(userID))
	if errors.Is(err, dgbadger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	var entries []Entry
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &entries)
	})
	if err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	return entries, nil
}
