package memoflow

// END is the terminal node identifier.
// Use it as an edge or route target to terminate the run.
const END = "__end__"

// NodeFunc is the signature for all node functions.
// Nodes receive the execution context and current state, and return the
// updated state and any error.
//
// State is passed by value. Nodes modify and return a new state value
// rather than mutating through pointers.
//
// Example:
//
//	func classify(ctx memoflow.Context, s MemoState) (MemoState, error) {
//	    resp, err := ctx.Provider().Complete(ctx, req)
//	    if err != nil {
//	        return s, err
//	    }
//	    s.Classification = decode(resp)
//	    return s, nil
//	}
type NodeFunc[S any] func(ctx Context, state S) (S, error)

// RouterFunc determines the next node from the current state.
// It must return a valid node ID or END; anything else is a runtime
// RouterError. Most graphs build routers from Routes instead of
// writing one by hand.
type RouterFunc[S any] func(ctx Context, state S) string

// Predicate tests state for route selection.
type Predicate[S any] func(state S) bool

// nodeSpec holds a node function and its declared input requirements.
type nodeSpec[S any] struct {
	fn       NodeFunc[S]
	requires []string
}

// NodeOption configures a node at AddNode time.
type NodeOption func(*nodeOptions)

type nodeOptions struct {
	requires []string
}

// Requires declares state fields that must be present before the node
// runs. The graph's field check (SetFieldCheck) decides presence; a
// missing field aborts the run with a MissingFieldError naming it.
func Requires(fields ...string) NodeOption {
	return func(o *nodeOptions) {
		o.requires = append(o.requires, fields...)
	}
}
