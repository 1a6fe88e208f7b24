package graphstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	ferrors "git.home.luguber.info/inful/vaultsite/internal/foundation/errors"
	"git.home.luguber.info/inful/vaultsite/internal/graph"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates the database at dbPath. Use ":memory:" for
// a throwaway store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, ferrors.GraphError("could not open graph store").WithCause(err).
			WithContext("path", dbPath).Build()
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, ferrors.GraphError("failed to initialize graph store schema").WithCause(err).Build()
	}
	return store, nil
}

func (s *SQLiteStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS builds (
		build_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		node_count INTEGER NOT NULL,
		edge_count INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS nodes (
		build_id TEXT NOT NULL,
		node_id INTEGER NOT NULL,
		url TEXT NOT NULL,
		root_url TEXT NOT NULL,
		label TEXT NOT NULL,
		border TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (build_id, node_id)
	);
	CREATE TABLE IF NOT EXISTS edges (
		build_id TEXT NOT NULL,
		from_id INTEGER NOT NULL,
		to_id INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_edges_build_id ON edges(build_id);
	CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save stores g under buildID in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, buildID string, at time.Time, g graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"builds", "nodes", "edges"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE build_id = ?", buildID); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO builds (build_id, created_at, node_count, edge_count) VALUES (?, ?, ?, ?)",
		buildID, at.UnixNano(), len(g.Nodes), len(g.Edges),
	); err != nil {
		return fmt.Errorf("insert build: %w", err)
	}
	for _, n := range g.Nodes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO nodes (build_id, node_id, url, root_url, label, border, value) VALUES (?, ?, ?, ?, ?, ?, ?)",
			buildID, n.ID, n.URL, n.RootURL, n.Label, n.Color.Border, n.Value,
		); err != nil {
			return fmt.Errorf("insert node %s: %w", n.URL, err)
		}
	}
	for _, e := range g.Edges {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO edges (build_id, from_id, to_id) VALUES (?, ?, ?)",
			buildID, e.From, e.To,
		); err != nil {
			return fmt.Errorf("insert edge: %w", err)
		}
	}
	return tx.Commit()
}

// Load returns the snapshot stored under buildID.
func (s *SQLiteStore) Load(ctx context.Context, buildID string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var createdAt int64
	err := s.db.QueryRowContext(ctx, "SELECT created_at FROM builds WHERE build_id = ?", buildID).Scan(&createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query build: %w", err)
	}
	return s.load(ctx, buildID, createdAt)
}

// Latest returns the most recently created snapshot.
func (s *SQLiteStore) Latest(ctx context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		buildID   string
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT build_id, created_at FROM builds ORDER BY created_at DESC, rowid DESC LIMIT 1",
	).Scan(&buildID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("query latest build: %w", err)
	}
	return s.load(ctx, buildID, createdAt)
}

func (s *SQLiteStore) load(ctx context.Context, buildID string, createdAt int64) (Snapshot, error) {
	snap := Snapshot{
		BuildID:   buildID,
		CreatedAt: time.Unix(0, createdAt),
		Graph:     graph.Graph{Nodes: []graph.Node{}, Edges: []graph.EdgeID{}},
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT node_id, url, root_url, label, border, value FROM nodes WHERE build_id = ? ORDER BY node_id",
		buildID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query nodes: %w", err)
	}
	for rows.Next() {
		var n graph.Node
		if err := rows.Scan(&n.ID, &n.URL, &n.RootURL, &n.Label, &n.Color.Border, &n.Value); err != nil {
			_ = rows.Close()
			return Snapshot{}, fmt.Errorf("scan node: %w", err)
		}
		snap.Graph.Nodes = append(snap.Graph.Nodes, n)
	}
	if err := rows.Close(); err != nil {
		return Snapshot{}, err
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate nodes: %w", err)
	}

	rows, err = s.db.QueryContext(ctx,
		"SELECT from_id, to_id FROM edges WHERE build_id = ? ORDER BY from_id, to_id",
		buildID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e graph.EdgeID
		if err := rows.Scan(&e.From, &e.To); err != nil {
			return Snapshot{}, fmt.Errorf("scan edge: %w", err)
		}
		snap.Graph.Edges = append(snap.Graph.Edges, e)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate edges: %w", err)
	}
	return snap, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
