package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/checkpoint"
	"github.com/skawahara/memoflow/pkg/memoflow/observability"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// Outcome is the result of an agent run. Exactly one of Output and Err
// is set: a validated typed output on success, a structured error
// otherwise. Engine errors never escape as Go errors; they arrive here
// as Err so callers handle one shape.
type Outcome struct {
	Output *schema.TypedOutput
	Err    *schema.ErrorOutput
}

// Extractor pulls the agent's raw output fields from the final state
// for validation against the output schema.
type Extractor[S any] func(final S) map[string]any

// ResumeFunc folds a previous thread snapshot into the incoming state.
// prev is the state persisted by the last successful run on the thread.
type ResumeFunc[S any] func(prev S, in S) S

// Agent wires a compiled graph, a model provider, and an output schema
// into a single Invoke call. Safe for concurrent use.
type Agent[S any] struct {
	name        string
	graph       *memoflow.CompiledGraph[S]
	prov        provider.Provider
	out         *schema.Schema
	extract     Extractor[S]
	store       checkpoint.Store
	resume      ResumeFunc[S]
	maxSteps    int
	forcedError string
	logger      *slog.Logger
	metrics     observability.MetricsRecorder
	spans       observability.SpanManager
	tracing     bool
}

// New creates an agent. The graph, provider, output schema, and
// extractor are mandatory; construction fails loudly rather than at
// first Invoke.
func New[S any](name string, graph *memoflow.CompiledGraph[S], out *schema.Schema, extract Extractor[S], opts ...Option[S]) (*Agent[S], error) {
	if name == "" {
		return nil, errors.New("agent: name cannot be empty")
	}
	if graph == nil {
		return nil, fmt.Errorf("agent %s: graph cannot be nil", name)
	}
	if out == nil {
		return nil, fmt.Errorf("agent %s: output schema cannot be nil", name)
	}
	if extract == nil {
		return nil, fmt.Errorf("agent %s: extractor cannot be nil", name)
	}

	a := &Agent[S]{
		name:    name,
		graph:   graph,
		out:     out,
		extract: extract,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.prov == nil {
		return nil, fmt.Errorf("agent %s: provider cannot be nil", name)
	}
	return a, nil
}

// Name returns the agent's name.
func (a *Agent[S]) Name() string { return a.name }

// Invoke runs the graph on the input state and returns a validated
// outcome. When the agent has a checkpoint store and the call carries a
// thread ID, the previous thread snapshot is folded into the input
// before the run and the final state is persisted after it.
func (a *Agent[S]) Invoke(ctx context.Context, in S, opts ...InvokeOption) Outcome {
	return a.invoke(ctx, in, nil, opts...)
}

func (a *Agent[S]) invoke(ctx context.Context, in S, observer func(nodeID string, state S), opts ...InvokeOption) Outcome {
	var ic invokeConfig
	for _, opt := range opts {
		opt(&ic)
	}

	if a.forcedError != "" {
		return Outcome{Err: &schema.ErrorOutput{Message: a.forcedError}}
	}

	var prevSequence int
	if a.store != nil && ic.threadID != "" {
		in, prevSequence = a.resumeThread(ic.threadID, in)
	}

	prov := provider.Instrument(a.prov, a.metrics, nodeIDFromContext)
	mfCtx := memoflow.NewContext(ctx,
		memoflow.WithProvider(prov),
		memoflow.WithLogger(a.logger.With("agent", a.name)),
		memoflow.WithThreadID(ic.threadID),
		memoflow.WithCheckpointer(a.store),
	)

	var lastNode string
	runOpts := []memoflow.RunOption[S]{
		memoflow.WithRunName[S](a.name),
		memoflow.WithMetrics[S](a.metrics),
		memoflow.WithObserver[S](func(nodeID string, state S) {
			lastNode = nodeID
			if observer != nil {
				observer(nodeID, state)
			}
		}),
	}
	if a.maxSteps > 0 {
		runOpts = append(runOpts, memoflow.WithMaxSteps[S](a.maxSteps))
	}
	if a.tracing {
		runOpts = append(runOpts, memoflow.WithTracing[S](a.spans))
	}

	final, err := a.graph.Run(mfCtx, in, runOpts...)
	if err != nil {
		return Outcome{Err: errorOutput(err)}
	}

	if a.store != nil && ic.threadID != "" {
		a.saveThread(ctx, ic.threadID, prevSequence+1, final, lastNode)
	}

	typed, verr := schema.Validate(a.extract(final), *a.out)
	if verr != nil {
		return Outcome{Err: verr}
	}
	return Outcome{Output: typed}
}

// resumeThread loads and folds the previous snapshot for the thread.
// A missing snapshot is a fresh thread; a corrupt or unreadable one is
// logged and skipped rather than blocking the run.
func (a *Agent[S]) resumeThread(threadID string, in S) (S, int) {
	data, err := a.store.Load(threadID)
	if err != nil {
		if !errors.Is(err, checkpoint.ErrNotFound) {
			observability.LogCheckpointError(a.logger, threadID, "load", err)
		}
		return in, 0
	}

	snap, err := checkpoint.Unmarshal(data)
	if err != nil {
		observability.LogCheckpointError(a.logger, threadID, "decode", err)
		return in, 0
	}

	if a.resume != nil {
		var prev S
		if err := json.Unmarshal(snap.State, &prev); err != nil {
			observability.LogCheckpointError(a.logger, threadID, "decode", err)
			return in, snap.Sequence
		}
		in = a.resume(prev, in)
	}
	return in, snap.Sequence
}

// saveThread persists the final state as the thread's latest snapshot.
// Failures are logged, not fatal: the run already produced its outcome.
func (a *Agent[S]) saveThread(ctx context.Context, threadID string, sequence int, final S, lastNode string) {
	stateBytes, err := json.Marshal(final)
	if err != nil {
		observability.LogCheckpointError(a.logger, threadID, "serialize", err)
		return
	}

	snap := checkpoint.New(threadID, sequence, stateBytes, lastNode)
	data, err := snap.Marshal()
	if err != nil {
		observability.LogCheckpointError(a.logger, threadID, "marshal", err)
		return
	}

	if err := a.store.Save(threadID, data); err != nil {
		observability.LogCheckpointError(a.logger, threadID, "save", err)
		return
	}

	observability.LogCheckpoint(a.logger, threadID, len(data))
	a.metrics.RecordCheckpoint(ctx, threadID, int64(len(data)))
}

// errorOutput maps an engine error to the caller-visible shape.
func errorOutput(err error) *schema.ErrorOutput {
	var missing *memoflow.MissingFieldError
	if errors.As(err, &missing) {
		return &schema.ErrorOutput{
			Message: missing.Error(),
			Field:   missing.Field,
		}
	}
	return &schema.ErrorOutput{Message: err.Error()}
}

// nodeIDFromContext extracts the executing node from a memoflow
// context for provider metric labels.
func nodeIDFromContext(ctx context.Context) string {
	if mf, ok := ctx.(memoflow.Context); ok {
		return mf.NodeID()
	}
	return ""
}
