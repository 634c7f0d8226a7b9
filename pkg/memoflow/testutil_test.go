package memoflow

// Test state types used across tests

// Counter is a simple state for loop tests.
type Counter struct {
	Value int
}

// State is a richer state for routing and tracking tests.
type State struct {
	Memo     string
	Progress []string
	Fields   map[string]bool
	Quick    bool
	Done     bool
}

// stateHas is the field check used by Requires tests.
func stateHas(s State, field string) bool {
	return s.Fields[field]
}

// increment is a node that increments the counter.
func increment(_ Context, s Counter) (Counter, error) {
	s.Value++
	return s, nil
}

// passthrough returns the state unchanged.
func passthrough[S any](_ Context, s S) (S, error) {
	return s, nil
}

// makeTrackingNode creates a node that records its execution.
func makeTrackingNode(name string, tracker *[]string) NodeFunc[State] {
	return func(_ Context, s State) (State, error) {
		*tracker = append(*tracker, name)
		s.Progress = append(s.Progress, name)
		return s, nil
	}
}

// makeFailingNode creates a node that returns the given error.
func makeFailingNode[S any](err error) NodeFunc[S] {
	return func(_ Context, s S) (S, error) {
		return s, err
	}
}

// makePanicNode creates a node that panics with the given value.
func makePanicNode(value any) NodeFunc[State] {
	return func(_ Context, _ State) (State, error) {
		panic(value)
	}
}
