// Package persist hands encoded engine snapshots to an opaque blob store.
// The engine never blocks on persistence: the server enqueues snapshot tasks
// after each committed transaction and the worker writes them here.
package persist

import (
	"context"
	"errors"
)

// ErrNoSnapshot indicates the blob store holds no persisted state yet.
var ErrNoSnapshot = errors.New("persist: no snapshot")

// SnapshotStore is the opaque key-value blob store the engine state is
// handed to and rehydrated from at startup.
type SnapshotStore interface {
	// Save persists one snapshot version. Saving a version that already
	// exists is not an error; the first write wins.
	Save(ctx context.Context, version int64, blob []byte) error
	// Load returns the most recent snapshot, or ErrNoSnapshot.
	Load(ctx context.Context) ([]byte, error)
}
