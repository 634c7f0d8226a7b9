// Package checkpoint persists the latest workflow state per
// conversation thread, enabling multi-turn agents to resume prior
// state across runs.
package checkpoint

import "errors"

// Store persists one snapshot per thread id, latest-wins.
// Implementations must serialize writes for the same thread id; writes
// for distinct threads are independent. Implementations must be safe
// for concurrent use.
type Store interface {
	// Save stores the snapshot for a thread, replacing any previous one.
	Save(threadID string, data []byte) error

	// Load retrieves the latest snapshot for a thread.
	// Returns ErrNotFound if the thread has no snapshot.
	Load(threadID string) ([]byte, error)

	// Delete removes the snapshot for a thread.
	// Returns nil if the thread has no snapshot.
	Delete(threadID string) error

	// Threads returns all thread ids with a stored snapshot.
	Threads() ([]string, error)

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for checkpoint operations.
var (
	// ErrNotFound indicates a thread has no stored snapshot.
	ErrNotFound = errors.New("checkpoint not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("checkpoint store closed")
)
