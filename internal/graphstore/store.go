// Package graphstore keeps a history of emitted link graphs in SQLite, one
// snapshot per conversion run.
package graphstore

import (
	"context"
	"errors"
	"time"

	"git.home.luguber.info/inful/vaultsite/internal/graph"
)

// ErrNotFound is returned when no snapshot matches.
var ErrNotFound = errors.New("graph snapshot not found")

// Snapshot is a stored graph.
type Snapshot struct {
	BuildID   string
	CreatedAt time.Time
	Graph     graph.Graph
}

// Store persists graph snapshots.
type Store interface {
	// Save stores g under buildID. Saving the same build twice replaces it.
	Save(ctx context.Context, buildID string, at time.Time, g graph.Graph) error

	// Load returns the snapshot of one build.
	Load(ctx context.Context, buildID string) (Snapshot, error)

	// Latest returns the most recent snapshot.
	Latest(ctx context.Context) (Snapshot, error)

	// Close releases resources.
	Close() error
}
