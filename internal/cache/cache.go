// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache provides the sqlite-backed search result cache.
package cache

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("cache closed")

// =============================================================================
// STORE
// =============================================================================

// Store caches plugin search payloads keyed by (command, query). Each
// plugin serializes its own payload; the store only sees bytes.
type Store struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

const schema = `
CREATE TABLE IF NOT EXISTS results (
	command    TEXT NOT NULL,
	query      TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	PRIMARY KEY (command, query)
);
`

// Open creates or opens the cache database at path, creating parent
// directories as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Get returns the cached payload for (command, query) if it is younger
// than maxAge. A zero maxAge disables the age check.
func (s *Store) Get(command, query string, maxAge time.Duration) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}

	var payload []byte
	var createdAt int64
	err := s.db.QueryRow(
		"SELECT payload, created_at FROM results WHERE command = ? AND query = ?",
		command, query,
	).Scan(&payload, &createdAt)
	if err != nil {
		return nil, false
	}

	if maxAge > 0 && time.Since(time.Unix(createdAt, 0)) > maxAge {
		return nil, false
	}
	return payload, true
}

// Put stores or replaces the payload for (command, query).
func (s *Store) Put(command, query string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.Exec(
		`INSERT INTO results (command, query, payload, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(command, query) DO UPDATE SET payload = excluded.payload, created_at = excluded.created_at`,
		command, query, payload, time.Now().Unix(),
	)
	return err
}

// Prune deletes entries older than maxAge and returns how many were
// removed.
func (s *Store) Prune(maxAge time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}

	cutoff := time.Now().Add(-maxAge).Unix()
	res, err := s.db.Exec("DELETE FROM results WHERE created_at <= ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
