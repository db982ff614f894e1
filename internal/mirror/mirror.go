// Package mirror persists selection snapshots to a local sqlite database
// so a component can restore its selection across runs. It consumes the
// engine's outputs and contains no selection logic of its own.
package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS selection (
  tree_id    TEXT NOT NULL,
  node_id    TEXT NOT NULL,
  position   INTEGER NOT NULL,
  is_primary INTEGER NOT NULL DEFAULT 0,
  PRIMARY KEY (tree_id, node_id)
);`

// Store is a sqlite-backed mirror of selection state
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the mirror database at dbPath.
// ":memory:" gives an ephemeral store.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

func sqliteDSN(dbPath string) string {
	if dbPath == ":memory:" {
		return "file::memory:?cache=shared"
	}
	u := url.URL{Scheme: "file", Path: dbPath}
	return u.String()
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot is one persisted selection state
type Snapshot struct {
	NodeIDs []string // insertion order
	Primary string   // "" when nothing was selected
}

// Save replaces the persisted selection for a tree with the given
// snapshot, transactionally
func (s *Store) Save(ctx context.Context, treeID string, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM selection WHERE tree_id = ?", treeID); err != nil {
		return fmt.Errorf("clear selection: %w", err)
	}
	for i, id := range snap.NodeIDs {
		primary := 0
		if id == snap.Primary {
			primary = 1
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO selection (tree_id, node_id, position, is_primary) VALUES (?, ?, ?, ?)",
			treeID, id, i, primary); err != nil {
			return fmt.Errorf("insert selection row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit selection: %w", err)
	}
	return nil
}

// Load returns the persisted selection for a tree, in insertion order
func (s *Store) Load(ctx context.Context, treeID string) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT node_id, is_primary FROM selection WHERE tree_id = ? ORDER BY position", treeID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query selection: %w", err)
	}
	defer rows.Close()

	var snap Snapshot
	for rows.Next() {
		var id string
		var primary int
		if err := rows.Scan(&id, &primary); err != nil {
			return Snapshot{}, fmt.Errorf("scan selection row: %w", err)
		}
		snap.NodeIDs = append(snap.NodeIDs, id)
		if primary != 0 {
			snap.Primary = id
		}
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate selection rows: %w", err)
	}
	return snap, nil
}
