package memoflow

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/skawahara/memoflow/pkg/memoflow/observability"
	"go.opentelemetry.io/otel/trace"
)

// Run executes the graph with the given initial state.
// Returns the final state and any error encountered.
//
// On success, returns the state after the last node before END.
// On error, returns the state at the point of failure.
//
// Execution flow:
//  1. Start at the entry point node
//  2. Check for cancellation
//  3. Check the node's required fields
//  4. Execute the node
//  5. Determine the next node (simple or conditional edge)
//  6. Repeat until END or an error
//
// Example:
//
//	ctx := memoflow.NewContext(context.Background(), memoflow.WithProvider(p))
//	result, err := compiled.Run(ctx, initialState)
func (cg *CompiledGraph[S]) Run(ctx Context, state S, opts ...RunOption[S]) (result S, runErr error) {
	if ctx == nil {
		return state, ErrNilContext
	}

	cfg := defaultRunConfig[S]()
	for _, opt := range opts {
		opt(&cfg)
	}

	runID := ctx.RunID()
	logger := ctx.Logger()
	startTime := time.Now()

	observability.LogRunStart(logger, runID)

	var execCtx context.Context = ctx
	var runSpan trace.Span
	if cfg.tracingEnabled {
		execCtx, runSpan = cfg.spans.StartRunSpan(ctx, cfg.name, runID)
		defer func() {
			cfg.spans.EndSpanWithError(runSpan, runErr)
		}()
	}

	var nodeCount int
	result, nodeCount, runErr = cg.runLoop(execCtx, ctx, state, &cfg)

	duration := time.Since(startTime)
	durationMs := float64(duration.Milliseconds())

	cfg.metrics.RecordRun(ctx, cfg.name, runErr == nil, duration)

	if runErr != nil {
		lastNode := ""
		switch e := runErr.(type) {
		case *NodeError:
			lastNode = e.NodeID
		case *MissingFieldError:
			lastNode = e.NodeID
		case *PanicError:
			lastNode = e.NodeID
		case *StepLimitError:
			lastNode = e.LastNodeID
		case *CancelError:
			lastNode = e.NodeID
		}
		observability.LogRunError(logger, runID, runErr, durationMs, lastNode)
	} else {
		observability.LogRunComplete(logger, runID, durationMs, nodeCount)
	}

	return result, runErr
}

// runLoop is the sequential walk from entry to END.
// tracingCtx carries span context; mfCtx is the memoflow Context.
func (cg *CompiledGraph[S]) runLoop(tracingCtx context.Context, mfCtx Context, state S, cfg *runConfig[S]) (S, int, error) {
	current := cg.entryPoint
	steps := 0
	nodeCount := 0

	for current != END {
		steps++
		if steps > cfg.maxSteps {
			return state, nodeCount, &StepLimitError{
				Limit:      cfg.maxSteps,
				LastNodeID: current,
				State:      state,
			}
		}

		// Cancellation is honored between nodes, never mid-node.
		select {
		case <-mfCtx.Done():
			return state, nodeCount, &CancelError{
				NodeID: current,
				State:  state,
				Cause:  mfCtx.Err(),
			}
		default:
		}

		if err := cg.checkRequires(current, state); err != nil {
			return state, nodeCount, err
		}

		observability.LogNodeStart(mfCtx.Logger(), current)

		nodeTracingCtx := tracingCtx
		var nodeSpan trace.Span
		if cfg.tracingEnabled {
			nodeTracingCtx, nodeSpan = cfg.spans.StartNodeSpan(tracingCtx, current)
		}

		nodeStart := time.Now()

		var nodeErr error
		state, nodeErr = cg.executeNode(mfCtx, current, state)

		nodeDuration := time.Since(nodeStart)
		cfg.metrics.RecordNodeExecution(nodeTracingCtx, current, nodeDuration, nodeErr)

		if cfg.tracingEnabled {
			cfg.spans.EndSpanWithError(nodeSpan, nodeErr)
		}

		if nodeErr != nil {
			observability.LogNodeError(mfCtx.Logger(), current, nodeErr)
			return state, nodeCount, nodeErr
		}
		observability.LogNodeComplete(mfCtx.Logger(), current, float64(nodeDuration.Milliseconds()))
		nodeCount++

		if cfg.observer != nil {
			cfg.observer(current, state)
		}

		next, err := cg.nextNode(mfCtx, state, current)
		if err != nil {
			return state, nodeCount, err
		}

		current = next
	}

	return state, nodeCount, nil
}

// checkRequires verifies the node's declared input fields are present.
func (cg *CompiledGraph[S]) checkRequires(nodeID string, state S) error {
	spec, exists := cg.nodes[nodeID]
	if !exists || len(spec.requires) == 0 {
		return nil
	}
	for _, field := range spec.requires {
		if !cg.fieldCheck(state, field) {
			return &MissingFieldError{NodeID: nodeID, Field: field}
		}
	}
	return nil
}

// executeNode executes a single node with panic recovery.
func (cg *CompiledGraph[S]) executeNode(ctx Context, nodeID string, state S) (result S, err error) {
	spec, exists := cg.getNode(nodeID)
	if !exists {
		// Unreachable after a successful Compile.
		return state, &NodeError{
			NodeID: nodeID,
			Op:     "lookup",
			Err:    ErrNodeNotFound,
		}
	}

	nodeCtx := ctx
	if ec, ok := ctx.(*executionContext); ok {
		nodeCtx = ec.withNodeID(nodeID)
	}

	defer func() {
		if r := recover(); r != nil {
			result = state
			err = &PanicError{
				NodeID: nodeID,
				Value:  r,
				Stack:  string(debug.Stack()),
			}
		}
	}()

	result, err = spec.fn(nodeCtx, state)
	if err != nil {
		return result, &NodeError{
			NodeID: nodeID,
			Op:     "execute",
			Err:    err,
		}
	}

	return result, nil
}

// nextNode determines the next node. Conditional edges win over simple
// edges.
func (cg *CompiledGraph[S]) nextNode(ctx Context, state S, current string) (string, error) {
	if router, exists := cg.getRouter(current); exists {
		routerCtx := ctx
		if ec, ok := ctx.(*executionContext); ok {
			routerCtx = ec.withNodeID(current)
		}

		next := router(routerCtx, state)

		if next == "" {
			return "", &RouterError{
				FromNode: current,
				Returned: next,
				Err:      ErrInvalidRouterResult,
			}
		}

		if next != END {
			if _, exists := cg.getNode(next); !exists {
				return "", &RouterError{
					FromNode: current,
					Returned: next,
					Err:      ErrRouterTargetNotFound,
				}
			}
		}

		return next, nil
	}

	edges := cg.edges[current]
	if len(edges) == 0 {
		// Unreachable after a successful Compile.
		return "", &NodeError{
			NodeID: current,
			Op:     "routing",
			Err:    ErrNoPathToEnd,
		}
	}

	return edges[0], nil
}
