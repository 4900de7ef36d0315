// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package badger wraps dgraph-io/badger/v4 behind a small, context-aware
// transaction API so callers never touch raw DB handles or forget to
// commit/discard transactions.
package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	dgbadger "github.com/dgraph-io/badger/v4"
)

// Config holds the knobs for opening a DB.
type Config struct {
	// Path is the on-disk directory for the value log and LSM tree.
	// Ignored when InMemory is true.
	Path string

	// InMemory opens a non-persistent DB. Used by tests.
	InMemory bool

	// SyncWrites forces an fsync after every write transaction. The
	// history store holds at most a handful of small records, so the
	// durability win outweighs the latency cost.
	SyncWrites bool
}

// DefaultConfig returns a Config suitable for service use.
func DefaultConfig() Config {
	return Config{SyncWrites: true}
}

// DB wraps a badger database handle.
//
// Thread Safety: DB is safe for concurrent use. Badger transactions are
// per-goroutine.
type DB struct {
	db *dgbadger.DB
}

// OpenDB opens (creating if necessary) the database described by cfg.
//
// Description:
//
//	Badger's own logger is silenced in favor of slog; open/close events
//	are logged here instead. The caller owns the returned DB and must
//	Close it on shutdown.
//
// Outputs:
//   - *DB: Opened database. Nil on error.
//   - error: Non-nil if the directory cannot be created or badger fails to open.
func OpenDB(cfg Config) (*DB, error) {
	var opts dgbadger.Options
	if cfg.InMemory {
		opts = dgbadger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger: config path is empty")
		}
		if err := os.MkdirAll(cfg.Path, 0o700); err != nil {
			return nil, fmt.Errorf("badger: creating directory %s: %w", cfg.Path, err)
		}
		opts = dgbadger.DefaultOptions(cfg.Path).WithSyncWrites(cfg.SyncWrites)
	}
	opts = opts.WithLogger(nil)

	db, err := dgbadger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger: opening database: %w", err)
	}

	slog.Debug("BadgerDB opened",
		slog.String("path", cfg.Path),
		slog.Bool("in_memory", cfg.InMemory),
	)
	return &DB{db: db}, nil
}

// WithTxn runs fn inside a read-write transaction, committing on nil
// return and discarding otherwise.
//
// Thread Safety: Safe for concurrent use.
func (d *DB) WithTxn(ctx context.Context, fn func(txn *dgbadger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.db.Update(fn)
}

// WithReadTxn runs fn inside a read-only transaction.
//
// Thread Safety: Safe for concurrent use.
func (d *DB) WithReadTxn(ctx context.Context, fn func(txn *dgbadger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.db.View(fn)
}

// Close flushes and closes the underlying database.
func (d *DB) Close() error {
	if err := d.db.Close(); err != nil {
		return fmt.Errorf("badger: closing database: %w", err)
	}
	return nil
}
