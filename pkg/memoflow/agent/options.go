package agent

import (
	"log/slog"

	"github.com/skawahara/memoflow/pkg/memoflow/checkpoint"
	"github.com/skawahara/memoflow/pkg/memoflow/observability"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
)

// Option configures an Agent at construction.
type Option[S any] func(*Agent[S])

// WithProvider sets the model backend. Required.
func WithProvider[S any](p provider.Provider) Option[S] {
	return func(a *Agent[S]) {
		a.prov = p
	}
}

// WithCheckpoints enables thread persistence. After each successful
// run on a thread the final state is saved as the thread's snapshot;
// before each run the previous snapshot is folded into the input via
// resume. A nil resume keeps snapshots write-only (saved, never folded
// back in).
func WithCheckpoints[S any](store checkpoint.Store, resume ResumeFunc[S]) Option[S] {
	return func(a *Agent[S]) {
		a.store = store
		a.resume = resume
	}
}

// WithMaxSteps overrides the engine's default step limit for this
// agent's runs.
func WithMaxSteps[S any](n int) Option[S] {
	return func(a *Agent[S]) {
		a.maxSteps = n
	}
}

// WithLogger sets the agent's logger. Default slog.Default().
func WithLogger[S any](logger *slog.Logger) Option[S] {
	return func(a *Agent[S]) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics enables metric recording for runs, nodes, provider calls,
// and snapshots.
func WithMetrics[S any](m observability.MetricsRecorder) Option[S] {
	return func(a *Agent[S]) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithTracing enables span creation for runs and nodes.
func WithTracing[S any](sm observability.SpanManager) Option[S] {
	return func(a *Agent[S]) {
		if sm != nil {
			a.spans = sm
			a.tracing = true
		}
	}
}

// WithForcedError makes every Invoke return an ErrorOutput with the
// given message without running the graph. Test hook for exercising
// callers' error paths.
func WithForcedError[S any](msg string) Option[S] {
	return func(a *Agent[S]) {
		a.forcedError = msg
	}
}

// invokeConfig holds per-call settings.
type invokeConfig struct {
	threadID string
}

// InvokeOption configures a single Invoke or Stream call.
type InvokeOption func(*invokeConfig)

// WithThread attaches the call to a conversation thread. Requires the
// agent to be built with WithCheckpoints for persistence to happen.
func WithThread(threadID string) InvokeOption {
	return func(c *invokeConfig) {
		c.threadID = threadID
	}
}
