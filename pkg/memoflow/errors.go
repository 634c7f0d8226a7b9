package memoflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for graph building and compilation.
var (
	// ErrNoEntry indicates SetEntry() was not called before Compile().
	ErrNoEntry = errors.New("entry point not set")

	// ErrEntryNotFound indicates the entry point references a non-existent node.
	ErrEntryNotFound = errors.New("entry point node not found")

	// ErrNodeNotFound indicates an edge or route references a non-existent node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNoPathToEnd indicates no path exists from the entry point to END.
	ErrNoPathToEnd = errors.New("no path to END from entry")

	// ErrEdgeFromEnd indicates an edge was declared with END as its source.
	// END is a terminal sentinel; nothing executes after it.
	ErrEdgeFromEnd = errors.New("edge cannot start at END")

	// ErrFieldCheckRequired indicates a node declares required fields
	// but the graph has no field check installed.
	ErrFieldCheckRequired = errors.New("required fields declared without a field check")
)

// Sentinel errors for execution.
var (
	// ErrStepLimit indicates the run exceeded the configured step limit.
	ErrStepLimit = errors.New("exceeded step limit")

	// ErrNilContext indicates Run() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")

	// ErrInvalidRouterResult indicates a router returned an empty string.
	ErrInvalidRouterResult = errors.New("router returned empty string")

	// ErrRouterTargetNotFound indicates a router returned an unknown node ID.
	ErrRouterTargetNotFound = errors.New("router returned unknown node")
)

// GraphConfigError aggregates everything wrong with a graph at compile
// time. Unwrap exposes the joined sentinel errors for errors.Is checks.
type GraphConfigError struct {
	// Err is the joined set of validation failures.
	Err error
}

func (e *GraphConfigError) Error() string {
	return fmt.Sprintf("graph configuration: %v", e.Err)
}

func (e *GraphConfigError) Unwrap() error {
	return e.Err
}

// NodeError wraps an error with node context.
type NodeError struct {
	// NodeID is the identifier of the node that failed.
	NodeID string
	// Op is the operation that failed (e.g., "execute").
	Op string
	// Err is the underlying error from the node.
	Err error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s: %s: %v", e.NodeID, e.Op, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a node whose declared input field is absent
// from the state. Field names the missing field so callers can surface
// it to the user.
type MissingFieldError struct {
	// NodeID is the node whose requirement failed.
	NodeID string
	// Field is the missing state field.
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("node %s: missing required field %q", e.NodeID, e.Field)
}

// PanicError captures panic information from node execution.
type PanicError struct {
	// NodeID is the identifier of the node that panicked.
	NodeID string
	// Value is the value passed to panic().
	Value any
	// Stack is the full stack trace at the point of panic.
	Stack string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("node %s panicked: %v", e.NodeID, e.Value)
}

// CancelError captures the state when execution was cancelled.
type CancelError struct {
	// NodeID is the node that was about to execute.
	NodeID string
	// State is the state at cancellation (type-assert to the actual type).
	State any
	// Cause is context.Canceled or context.DeadlineExceeded.
	Cause error
}

func (e *CancelError) Error() string {
	return fmt.Sprintf("cancelled before node %s: %v", e.NodeID, e.Cause)
}

func (e *CancelError) Unwrap() error {
	return e.Cause
}

// RouterError wraps a routing failure with the router's origin and what
// it returned.
type RouterError struct {
	// FromNode is the node with the conditional edge.
	FromNode string
	// Returned is the value the router returned.
	Returned string
	// Err is the underlying error.
	Err error
}

func (e *RouterError) Error() string {
	return fmt.Sprintf("router from %s returned %q: %v", e.FromNode, e.Returned, e.Err)
}

func (e *RouterError) Unwrap() error {
	return e.Err
}

// StepLimitError provides context when the step limit is exceeded.
type StepLimitError struct {
	// Limit is the configured step limit.
	Limit int
	// LastNodeID is the node that would have executed next.
	LastNodeID string
	// State is the state at termination (type-assert to the actual type).
	State any
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("exceeded step limit (%d) at node %s", e.Limit, e.LastNodeID)
}

// Unwrap returns ErrStepLimit for errors.Is support.
func (e *StepLimitError) Unwrap() error {
	return ErrStepLimit
}
