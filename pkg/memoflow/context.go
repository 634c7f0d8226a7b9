package memoflow

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/skawahara/memoflow/pkg/memoflow/checkpoint"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
)

// Context provides execution context to nodes.
// It extends context.Context with memoflow services and run metadata.
//
// Context is immutable after creation. The executor derives a context
// per node with the NodeID set and the logger enriched.
type Context interface {
	context.Context

	// Logger returns the configured logger, enriched with run and node
	// context. Never nil; defaults to slog.Default().
	Logger() *slog.Logger

	// Provider returns the model backend, or nil if not configured.
	// Nodes that call the model should check for nil.
	Provider() provider.Provider

	// Checkpointer returns the snapshot store, or nil if not configured.
	Checkpointer() checkpoint.Store

	// RunID returns the unique identifier for this run.
	// Auto-generated if not configured.
	RunID() string

	// ThreadID returns the conversation thread this run belongs to.
	// Empty for one-shot runs.
	ThreadID() string

	// NodeID returns the node currently executing.
	// Empty before execution starts.
	NodeID() string
}

// executionContext is the internal implementation of Context.
type executionContext struct {
	context.Context

	logger       *slog.Logger
	prov         provider.Provider
	checkpointer checkpoint.Store
	runID        string
	threadID     string
	nodeID       string
}

func (c *executionContext) Logger() *slog.Logger           { return c.logger }
func (c *executionContext) Provider() provider.Provider    { return c.prov }
func (c *executionContext) Checkpointer() checkpoint.Store { return c.checkpointer }
func (c *executionContext) RunID() string                  { return c.runID }
func (c *executionContext) ThreadID() string               { return c.threadID }
func (c *executionContext) NodeID() string                 { return c.nodeID }

// ContextOption configures a Context.
type ContextOption func(*executionContext)

// WithLogger sets the logger for the context.
// The executor enriches it with run_id, thread_id, and node_id.
func WithLogger(logger *slog.Logger) ContextOption {
	return func(c *executionContext) {
		c.logger = logger
	}
}

// WithProvider sets the model backend for the context.
func WithProvider(p provider.Provider) ContextOption {
	return func(c *executionContext) {
		c.prov = p
	}
}

// WithCheckpointer sets the snapshot store for the context.
func WithCheckpointer(store checkpoint.Store) ContextOption {
	return func(c *executionContext) {
		c.checkpointer = store
	}
}

// WithRunID sets the run identifier. A UUID is generated when absent.
func WithRunID(id string) ContextOption {
	return func(c *executionContext) {
		c.runID = id
	}
}

// WithThreadID sets the conversation thread the run belongs to.
func WithThreadID(id string) ContextOption {
	return func(c *executionContext) {
		c.threadID = id
	}
}

// NewContext creates an execution context from a standard context.
//
// Example:
//
//	ctx := memoflow.NewContext(context.Background(),
//	    memoflow.WithProvider(p),
//	    memoflow.WithThreadID("thread-42"))
func NewContext(ctx context.Context, opts ...ContextOption) Context {
	ec := &executionContext{
		Context: ctx,
		logger:  slog.Default(),
		runID:   uuid.New().String(),
	}
	for _, opt := range opts {
		opt(ec)
	}
	return ec
}

// withNodeID derives a per-node context with an enriched logger.
func (c *executionContext) withNodeID(nodeID string) *executionContext {
	return &executionContext{
		Context:      c.Context,
		logger:       c.logger.With("run_id", c.runID, "thread_id", c.threadID, "node_id", nodeID),
		prov:         c.prov,
		checkpointer: c.checkpointer,
		runID:        c.runID,
		threadID:     c.threadID,
		nodeID:       nodeID,
	}
}
