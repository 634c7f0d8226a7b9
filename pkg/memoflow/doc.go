/*
Package memoflow provides graph-based orchestration for LLM-backed memo
workflows.

# Overview

memoflow executes directed graphs where nodes perform work (usually a
model call) and edges define flow. It powers agents that turn free-form
memos into structured output: task drafts, memo segments, weekly
reviews, chat replies.

The engine offers:
  - Type-safe generics for state management
  - Compile-time validation of graph structure, route targets included
  - Ordered route tables with a mandatory default, so routing is total
  - Declared node inputs checked before each node runs
  - OpenTelemetry integration for metrics and tracing

# Basic Usage

Create a graph with nodes and edges, then compile and run:

	type State struct {
	    Memo   string
	    Line   string
	}

	func summarize(ctx memoflow.Context, s State) (State, error) {
	    resp, err := ctx.Provider().Complete(ctx, provider.Request{
	        System: "Summarize the memo in one line.",
	        Prompt: s.Memo,
	    })
	    if err != nil {
	        return s, err
	    }
	    s.Line = resp.Text
	    return s, nil
	}

	func main() {
	    graph := memoflow.NewGraph[State]().
	        AddNode("summarize", summarize).
	        AddEdge("summarize", memoflow.END).
	        SetEntry("summarize")

	    compiled, err := graph.Compile()
	    if err != nil {
	        log.Fatal(err)
	    }

	    ctx := memoflow.NewContext(context.Background(),
	        memoflow.WithProvider(p))
	    result, err := compiled.Run(ctx, State{Memo: "standup at 10, demo friday"})
	    if err != nil {
	        log.Fatal(err)
	    }
	    fmt.Println(result.Line)
	}

# Conditional Branching

Decision points use ordered route tables. The first matching route
wins and the default catches everything else:

	routes := memoflow.NewRoutes("draft_generic_task",
	    memoflow.Route[State]{When: noAction, To: "assemble"},
	    memoflow.Route[State]{When: needsProject, To: "plan_project"},
	    memoflow.Route[State]{When: isQuick, To: "draft_quick_task"},
	)
	graph.AddRoutes("classify", routes)

Route targets are validated at Compile(), so a typo in a target fails
before any model call is made.

# Required Fields

Nodes declare the state fields they consume; the run aborts with a
MissingFieldError when one is absent:

	graph.AddNode("assemble", assemble, memoflow.Requires("classification")).
	    SetFieldCheck(func(s State, field string) bool {
	        return s.Has(field)
	    })

# Step Limit

Every run is bounded (default DefaultMaxSteps) so a routing cycle
cannot spin forever. Exceeding the limit returns a StepLimitError
carrying the state at termination.

For persistence across runs see the checkpoint package; for the
high-level agent façade (validation, snapshots, streaming) see the
agent package.
*/
package memoflow
