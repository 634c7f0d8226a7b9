package memoflow

import (
	"github.com/skawahara/memoflow/pkg/memoflow/observability"
)

// DefaultMaxSteps bounds a run when WithMaxSteps is not given.
// Memo workflows are a handful of nodes deep; a run that takes more
// steps than this is looping.
const DefaultMaxSteps = 25

// runConfig holds configuration for one graph run.
type runConfig[S any] struct {
	maxSteps       int
	name           string
	metrics        observability.MetricsRecorder
	spans          observability.SpanManager
	tracingEnabled bool
	observer       func(nodeID string, state S)
}

func defaultRunConfig[S any]() runConfig[S] {
	return runConfig[S]{
		maxSteps: DefaultMaxSteps,
		name:     "memoflow",
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
}

// RunOption configures execution behavior.
type RunOption[S any] func(*runConfig[S])

// WithMaxSteps sets the maximum number of node executions.
// Default: DefaultMaxSteps. Exceeding the limit returns a
// StepLimitError, which unwraps to ErrStepLimit.
func WithMaxSteps[S any](n int) RunOption[S] {
	return func(c *runConfig[S]) {
		if n > 0 {
			c.maxSteps = n
		}
	}
}

// WithRunName labels the run in metrics and trace spans, typically the
// agent name. Default "memoflow".
func WithRunName[S any](name string) RunOption[S] {
	return func(c *runConfig[S]) {
		if name != "" {
			c.name = name
		}
	}
}

// WithMetrics enables metric recording for the run.
func WithMetrics[S any](m observability.MetricsRecorder) RunOption[S] {
	return func(c *runConfig[S]) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithTracing enables span creation for the run and each node.
func WithTracing[S any](sm observability.SpanManager) RunOption[S] {
	return func(c *runConfig[S]) {
		if sm != nil {
			c.spans = sm
			c.tracingEnabled = true
		}
	}
}

// WithObserver registers a callback invoked after each successful node
// with the node's ID and resulting state. Used for streaming progress.
func WithObserver[S any](fn func(nodeID string, state S)) RunOption[S] {
	return func(c *runConfig[S]) {
		c.observer = fn
	}
}
