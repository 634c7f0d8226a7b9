package checkpoint

import (
	"encoding/json"
	"fmt"
	"time"
)

// Version is the current snapshot format version.
// Increment when making breaking changes to the snapshot structure.
const Version = 1

// Snapshot is the persisted state of one completed run for a thread.
// Only the most recent snapshot per thread is retained.
type Snapshot struct {
	Version   int       `json:"version"`
	ThreadID  string    `json:"thread_id"`
	Sequence  int       `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`

	// State is the JSON-serialized final state of the run.
	State json.RawMessage `json:"state"`

	// LastNode is the node that produced the final state.
	LastNode string `json:"last_node,omitempty"`
}

// New creates a snapshot. State must already be JSON-serialized.
func New(threadID string, sequence int, state []byte, lastNode string) *Snapshot {
	return &Snapshot{
		Version:   Version,
		ThreadID:  threadID,
		Sequence:  sequence,
		Timestamp: time.Now().UTC(),
		State:     state,
		LastNode:  lastNode,
	}
}

// Marshal serializes the snapshot to JSON.
func (s *Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal deserializes a snapshot and checks its format version.
func Unmarshal(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.Version != Version {
		return nil, fmt.Errorf("snapshot version mismatch: got %d, expected %d", s.Version, Version)
	}
	return &s, nil
}
