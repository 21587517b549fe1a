// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Fedigraph Contributors

package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fedigraph/fedigraph/internal/store"
)

// Compile-time interface check.
var _ store.GraphStore = (*GraphStore)(nil)

// GraphStore implements store.GraphStore backed by a single SQLite database.
//
// Edges are stored once with the endpoint keys in lexicographic order, so
// the unordered pair (a, b) and (b, a) map to the same row and INSERT OR
// IGNORE gives idempotent insertion. The expanded flag is only ever set
// after the corresponding edges are committed, so a crash between the two
// leaves the node safely unexpanded and retryable.
type GraphStore struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database at dbPath and initialises the
// nodes and edges tables. With wipe set, an existing database file is
// removed first.
func New(dbPath string, wipe bool) (*GraphStore, error) {
	if wipe {
		// The -wal and -shm sidecars go too, or a stale WAL lingers next
		// to the fresh database.
		for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return nil, fmt.Errorf("wiping graph db %s: %w", p, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening graph db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging graph db: %w", err)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating graph db: %w", err)
	}

	return &GraphStore{db: db}, nil
}

func migrate(db *sql.DB) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS nodes (
	key         TEXT PRIMARY KEY,
	external_id TEXT NOT NULL DEFAULT '',
	expanded    INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
	a TEXT NOT NULL,
	b TEXT NOT NULL,
	PRIMARY KEY (a, b),
	FOREIGN KEY (a) REFERENCES nodes(key),
	FOREIGN KEY (b) REFERENCES nodes(key)
) WITHOUT ROWID;

CREATE INDEX IF NOT EXISTS idx_edges_b ON edges(b);
`
	_, err := db.Exec(ddl)
	return err
}

func (g *GraphStore) GetOrCreate(ctx context.Context, key, externalID string) (*store.Node, error) {
	if key == "" {
		return nil, fmt.Errorf("node key must not be empty: %w", store.ErrInvalidInput)
	}

	// INSERT OR IGNORE keeps creation atomic per key under concurrent
	// callers; the read-back returns whichever row won.
	const ins = `INSERT OR IGNORE INTO nodes (key, external_id, expanded, created_at) VALUES (?, ?, 0, ?)`
	if _, err := g.db.ExecContext(ctx, ins, key, externalID, formatTime(time.Now())); err != nil {
		return nil, fmt.Errorf("creating node %s: %w", key, err)
	}

	return g.Get(ctx, key)
}

func (g *GraphStore) Get(ctx context.Context, key string) (*store.Node, error) {
	const q = `SELECT key, external_id, expanded, created_at FROM nodes WHERE key = ?`

	var n store.Node
	var expanded int
	var createdAt string
	err := g.db.QueryRowContext(ctx, q, key).Scan(&n.Key, &n.ExternalID, &expanded, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("node %s: %w", key, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting node %s: %w", key, err)
	}
	n.Expanded = expanded != 0
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing node %s created_at: %w", key, err)
	}
	return &n, nil
}

func (g *GraphStore) MarkExpanded(ctx context.Context, key string) error {
	result, err := g.db.ExecContext(ctx, `UPDATE nodes SET expanded = 1 WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("marking node %s expanded: %w", key, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows for node %s: %w", key, err)
	}
	if rows == 0 {
		return fmt.Errorf("node %s: %w", key, store.ErrNotFound)
	}
	return nil
}

func (g *GraphStore) AddEdge(ctx context.Context, a, b string) error {
	if a == b {
		return nil
	}
	// Canonical endpoint order so (a,b) and (b,a) share one row.
	if b < a {
		a, b = b, a
	}

	const q = `INSERT OR IGNORE INTO edges (a, b) VALUES (?, ?)`
	if _, err := g.db.ExecContext(ctx, q, a, b); err != nil {
		return fmt.Errorf("adding edge %s--%s: %w", a, b, err)
	}
	return nil
}

func (g *GraphStore) Neighbors(ctx context.Context, key string) ([]string, error) {
	if _, err := g.Get(ctx, key); err != nil {
		return nil, err
	}

	const q = `
SELECT b FROM edges WHERE a = ?
UNION
SELECT a FROM edges WHERE b = ?
ORDER BY 1`
	rows, err := g.db.QueryContext(ctx, q, key, key)
	if err != nil {
		return nil, fmt.Errorf("querying neighbors of %s: %w", key, err)
	}
	defer rows.Close() //nolint:errcheck // error on read-path close is not actionable

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning neighbor row: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating neighbors of %s: %w", key, err)
	}
	return keys, nil
}

// Close closes the underlying database connection.
func (g *GraphStore) Close() error { return g.db.Close() }

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
