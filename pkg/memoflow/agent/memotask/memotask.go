// Package memotask turns a free-form memo into structured task drafts.
//
// A classifier node decides what the memo needs, an ordered route
// table picks exactly one drafting branch, and an assemble node
// finalizes the output. Branch priority is fixed: no-action short
// circuits everything, then project, quick action, delegation,
// scheduled, and finally the generic fallback.
package memotask

import (
	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/agent"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
)

// classified guards against routing before the classify node ran.
func classified(s State, pick func(Classification) bool) bool {
	return s.Classification != nil && pick(*s.Classification)
}

// buildGraph wires the memo-to-task graph.
func buildGraph() *memoflow.Graph[State] {
	g := memoflow.NewGraph[State]()
	g.SetFieldCheck(State.Has)

	g.AddNode("classify", classify, memoflow.Requires("memo", "current_datetime"))
	g.AddNode("plan_project", planProject)
	g.AddNode("draft_quick_task", draftSingle(quickTaskPrompt, StatusNextAction))
	g.AddNode("draft_delegation", draftSingle(delegationPrompt, StatusWaitingFor))
	g.AddNode("draft_scheduled_task", draftSingle(scheduledTaskPrompt, StatusCalendar))
	g.AddNode("draft_generic_task", draftSingle(genericTaskPrompt, StatusInbox))
	g.AddNode("assemble", assemble)

	g.SetEntry("classify")
	g.AddRoutes("classify", memoflow.NewRoutes[State]("draft_generic_task",
		memoflow.Route[State]{
			When: func(s State) bool { return classified(s, func(c Classification) bool { return !c.RequiresAction }) },
			To:   "assemble",
		},
		memoflow.Route[State]{
			When: func(s State) bool { return classified(s, func(c Classification) bool { return c.RequiresProject }) },
			To:   "plan_project",
		},
		memoflow.Route[State]{
			When: func(s State) bool { return classified(s, func(c Classification) bool { return c.IsQuickAction }) },
			To:   "draft_quick_task",
		},
		memoflow.Route[State]{
			When: func(s State) bool { return classified(s, func(c Classification) bool { return c.ShouldDelegate }) },
			To:   "draft_delegation",
		},
		memoflow.Route[State]{
			When: func(s State) bool { return classified(s, func(c Classification) bool { return c.RequiresSpecificDate }) },
			To:   "draft_scheduled_task",
		},
	))

	g.AddEdge("plan_project", "assemble")
	g.AddEdge("draft_quick_task", "assemble")
	g.AddEdge("draft_delegation", "assemble")
	g.AddEdge("draft_scheduled_task", "assemble")
	g.AddEdge("draft_generic_task", "assemble")
	g.AddEdge("assemble", memoflow.END)

	return g
}

// extract maps the final state onto the agent's output schema.
func extract(s State) map[string]any {
	drafts := make([]any, 0, len(s.Drafts))
	for _, d := range s.Drafts {
		draft := map[string]any{"title": d.Title}
		if d.Description != "" {
			draft["description"] = d.Description
		}
		if d.Priority != "" {
			draft["priority"] = d.Priority
		}
		if due, ok := d.DueDate.Get(); ok {
			draft["due_date"] = due
		}
		if route, ok := d.Route.Get(); ok {
			draft["route"] = route
		}
		drafts = append(drafts, draft)
	}

	out := map[string]any{
		"task_drafts": drafts,
		"no_action":   s.NoAction,
	}
	if s.SuggestedStatus != "" {
		out["suggested_status"] = s.SuggestedStatus
	}
	return out
}

// New builds the memo-to-task agent on top of the given provider.
func New(p provider.Provider, opts ...agent.Option[State]) (*agent.Agent[State], error) {
	compiled, err := buildGraph().Compile()
	if err != nil {
		return nil, err
	}

	opts = append([]agent.Option[State]{agent.WithProvider[State](p)}, opts...)
	return agent.New("memo-to-task", compiled, OutputSchema, extract, opts...)
}
