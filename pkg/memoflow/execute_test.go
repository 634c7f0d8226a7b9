package memoflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() Context {
	return NewContext(context.Background())
}

func TestRunLinearGraph(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddNode("c", increment).
		AddEdge("a", "b").
		AddEdge("b", "c").
		AddEdge("c", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testContext(), Counter{})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Value)
}

func TestRunNilContext(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(nil, Counter{})
	assert.ErrorIs(t, err, ErrNilContext)
}

func TestRunExecutionOrder(t *testing.T) {
	var order []string

	g := NewGraph[State]().
		AddNode("fetch", makeTrackingNode("fetch", &order)).
		AddNode("classify", makeTrackingNode("classify", &order)).
		AddNode("assemble", makeTrackingNode("assemble", &order)).
		AddEdge("fetch", "classify").
		AddEdge("classify", "assemble").
		AddEdge("assemble", END).
		SetEntry("fetch")

	compiled, err := g.Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testContext(), State{})
	require.NoError(t, err)
	assert.Equal(t, []string{"fetch", "classify", "assemble"}, order)
	assert.Equal(t, []string{"fetch", "classify", "assemble"}, result.Progress)
}

func TestRunRouting(t *testing.T) {
	routes := NewRoutes("slow",
		Route[State]{When: func(s State) bool { return s.Quick }, To: "quick"},
	)

	var order []string
	g := NewGraph[State]().
		AddNode("classify", makeTrackingNode("classify", &order)).
		AddNode("quick", makeTrackingNode("quick", &order)).
		AddNode("slow", makeTrackingNode("slow", &order)).
		AddRoutes("classify", routes).
		AddEdge("quick", END).
		AddEdge("slow", END).
		SetEntry("classify")

	compiled, err := g.Compile()
	require.NoError(t, err)

	t.Run("predicate match", func(t *testing.T) {
		order = nil
		_, err := compiled.Run(testContext(), State{Quick: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"classify", "quick"}, order)
	})

	t.Run("default", func(t *testing.T) {
		order = nil
		_, err := compiled.Run(testContext(), State{Quick: false})
		require.NoError(t, err)
		assert.Equal(t, []string{"classify", "slow"}, order)
	})
}

func TestRunRoutePrecedence(t *testing.T) {
	// both predicates match; the earlier route must win
	routes := NewRoutes("generic",
		Route[State]{When: func(s State) bool { return true }, To: "first"},
		Route[State]{When: func(s State) bool { return true }, To: "second"},
	)

	var order []string
	g := NewGraph[State]().
		AddNode("classify", makeTrackingNode("classify", &order)).
		AddNode("first", makeTrackingNode("first", &order)).
		AddNode("second", makeTrackingNode("second", &order)).
		AddNode("generic", makeTrackingNode("generic", &order)).
		AddRoutes("classify", routes).
		AddEdge("first", END).
		AddEdge("second", END).
		AddEdge("generic", END).
		SetEntry("classify")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testContext(), State{})
	require.NoError(t, err)
	assert.Equal(t, []string{"classify", "first"}, order)
}

func TestRunNodeError(t *testing.T) {
	boom := errors.New("provider unavailable")

	g := NewGraph[State]().
		AddNode("ok", passthrough[State]).
		AddNode("fail", makeFailingNode[State](boom)).
		AddEdge("ok", "fail").
		AddEdge("fail", END).
		SetEntry("ok")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testContext(), State{})
	require.Error(t, err)

	var nodeErr *NodeError
	require.ErrorAs(t, err, &nodeErr)
	assert.Equal(t, "fail", nodeErr.NodeID)
	assert.ErrorIs(t, err, boom)
}

func TestRunPanicRecovery(t *testing.T) {
	g := NewGraph[State]().
		AddNode("boom", makePanicNode("nil map write")).
		AddEdge("boom", END).
		SetEntry("boom")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testContext(), State{})
	require.Error(t, err)

	var panicErr *PanicError
	require.ErrorAs(t, err, &panicErr)
	assert.Equal(t, "boom", panicErr.NodeID)
	assert.Equal(t, "nil map write", panicErr.Value)
	assert.NotEmpty(t, panicErr.Stack)
}

func TestRunStepLimit(t *testing.T) {
	// route always loops back
	routes := NewRoutes("a",
		Route[Counter]{When: func(s Counter) bool { return false }, To: END},
	)

	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddRoutes("a", routes).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testContext(), Counter{}, WithMaxSteps[Counter](5))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStepLimit)

	var limitErr *StepLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, 5, limitErr.Limit)
	assert.Equal(t, "a", limitErr.LastNodeID)
	assert.Equal(t, Counter{Value: 5}, limitErr.State)
}

func TestRunDefaultStepLimit(t *testing.T) {
	routes := NewRoutes("a",
		Route[Counter]{When: func(s Counter) bool { return false }, To: END},
	)

	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddRoutes("a", routes).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(testContext(), Counter{})

	var limitErr *StepLimitError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, DefaultMaxSteps, limitErr.Limit)
}

func TestRunCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	g := NewGraph[Counter]().
		AddNode("a", func(_ Context, s Counter) (Counter, error) {
			s.Value++
			cancel() // cancel mid-run; next node must not start
			return s, nil
		}).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	_, err = compiled.Run(NewContext(ctx), Counter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	var cancelErr *CancelError
	require.ErrorAs(t, err, &cancelErr)
	assert.Equal(t, "b", cancelErr.NodeID)
	assert.Equal(t, Counter{Value: 1}, cancelErr.State)
}

func TestRunRouterErrors(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		g := NewGraph[Counter]().
			AddNode("a", increment).
			AddConditionalEdge("a", func(_ Context, _ Counter) string { return "" }).
			SetEntry("a")

		compiled, err := g.Compile()
		require.NoError(t, err)

		_, err = compiled.Run(testContext(), Counter{})
		assert.ErrorIs(t, err, ErrInvalidRouterResult)
	})

	t.Run("unknown target", func(t *testing.T) {
		g := NewGraph[Counter]().
			AddNode("a", increment).
			AddConditionalEdge("a", func(_ Context, _ Counter) string { return "ghost" }).
			SetEntry("a")

		compiled, err := g.Compile()
		require.NoError(t, err)

		_, err = compiled.Run(testContext(), Counter{})
		require.ErrorIs(t, err, ErrRouterTargetNotFound)

		var routerErr *RouterError
		require.ErrorAs(t, err, &routerErr)
		assert.Equal(t, "a", routerErr.FromNode)
		assert.Equal(t, "ghost", routerErr.Returned)
	})
}

func TestRunRequiredFields(t *testing.T) {
	g := NewGraph[State]().
		AddNode("load", func(_ Context, s State) (State, error) {
			if s.Fields == nil {
				s.Fields = make(map[string]bool)
			}
			if s.Memo != "" {
				s.Fields["memo"] = true
			}
			return s, nil
		}).
		AddNode("draft", passthrough[State], Requires("memo")).
		AddEdge("load", "draft").
		AddEdge("draft", END).
		SetEntry("load").
		SetFieldCheck(stateHas)

	compiled, err := g.Compile()
	require.NoError(t, err)

	t.Run("present", func(t *testing.T) {
		_, err := compiled.Run(testContext(), State{Memo: "buy milk"})
		assert.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := compiled.Run(testContext(), State{})
		require.Error(t, err)

		var missingErr *MissingFieldError
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, "draft", missingErr.NodeID)
		assert.Equal(t, "memo", missingErr.Field)
	})
}

func TestRunObserver(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", increment).
		AddEdge("a", "b").
		AddEdge("b", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	var seen []string
	var values []int
	_, err = compiled.Run(testContext(), Counter{}, WithObserver[Counter](func(nodeID string, s Counter) {
		seen = append(seen, nodeID)
		values = append(values, s.Value)
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, []int{1, 2}, values)
}

func TestRunStateReturnedOnError(t *testing.T) {
	boom := errors.New("boom")

	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddNode("b", makeFailingNode[Counter](boom)).
		AddEdge("a", "b").
		AddEdge("b", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	result, err := compiled.Run(testContext(), Counter{})
	require.Error(t, err)
	assert.Equal(t, 1, result.Value)
}

func TestRunConcurrent(t *testing.T) {
	g := NewGraph[Counter]().
		AddNode("a", increment).
		AddEdge("a", END).
		SetEntry("a")

	compiled, err := g.Compile()
	require.NoError(t, err)

	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			result, err := compiled.Run(testContext(), Counter{Value: 100})
			assert.NoError(t, err)
			assert.Equal(t, 101, result.Value)
		}()
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	close(done)
}
