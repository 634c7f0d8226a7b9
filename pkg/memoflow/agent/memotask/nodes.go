package memotask

import (
	"fmt"

	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/prompt"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
	"github.com/skawahara/memoflow/pkg/memoflow/state"
)

// promptVars are the substitutions every memo prompt uses.
func promptVars(s State) map[string]any {
	return map[string]any{
		"memo":             s.Memo,
		"current_datetime": s.CurrentDatetime,
	}
}

// completeStructured renders the template, calls the provider with the
// schema, and validates the structured response.
func completeStructured(ctx memoflow.Context, tmpl prompt.Template, s State, out *schema.Schema) (*schema.TypedOutput, error) {
	r, err := tmpl.Render(promptVars(s))
	if err != nil {
		return nil, err
	}

	resp, err := ctx.Provider().Complete(ctx, provider.Request{
		System: r.System,
		Prompt: r.User,
		Schema: out,
	})
	if err != nil {
		return nil, err
	}

	typed, verr := schema.Validate(resp.Structured, *out)
	if verr != nil {
		return nil, fmt.Errorf("%s output: %s", out.Name, verr.Message)
	}
	return typed, nil
}

// classify asks the provider what the memo needs.
func classify(ctx memoflow.Context, s State) (State, error) {
	typed, err := completeStructured(ctx, classifyPrompt, s, classificationSchema)
	if err != nil {
		return s, err
	}

	c, err := schema.Decode[Classification](typed)
	if err != nil {
		return s, fmt.Errorf("decode classification: %w", err)
	}
	s.Classification = &c
	return s, nil
}

// draftSingle runs one draft prompt and appends the resulting task.
func draftSingle(tmpl prompt.Template, status string) memoflow.NodeFunc[State] {
	return func(ctx memoflow.Context, s State) (State, error) {
		typed, err := completeStructured(ctx, tmpl, s, draftSchema)
		if err != nil {
			return s, err
		}

		draft, err := schema.Decode[TaskDraft](typed)
		if err != nil {
			return s, fmt.Errorf("decode task draft: %w", err)
		}

		s.Drafts = append(s.Drafts, draft)
		s.SuggestedStatus = status
		return s, nil
	}
}

type projectPlan struct {
	ProjectTitle string `json:"project_title"`
	Tasks        []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"tasks"`
}

// planProject breaks the memo into an ordered list of tasks.
func planProject(ctx memoflow.Context, s State) (State, error) {
	typed, err := completeStructured(ctx, projectPlanPrompt, s, projectPlanSchema)
	if err != nil {
		return s, err
	}

	plan, err := schema.Decode[projectPlan](typed)
	if err != nil {
		return s, fmt.Errorf("decode project plan: %w", err)
	}
	if len(plan.Tasks) == 0 {
		return s, fmt.Errorf("project plan for %q has no tasks", plan.ProjectTitle)
	}

	for _, task := range plan.Tasks {
		s.Drafts = append(s.Drafts, TaskDraft{
			Title:       task.Title,
			Description: task.Description,
			Route:       state.Some(plan.ProjectTitle),
		})
	}
	s.SuggestedStatus = StatusProject
	return s, nil
}

// assemble finalizes the output fields. For no-action memos it marks
// the sentinel; draft branches have already filled Drafts and status.
func assemble(_ memoflow.Context, s State) (State, error) {
	if s.Classification != nil && !s.Classification.RequiresAction {
		s.NoAction = true
		s.SuggestedStatus = StatusReference
	}
	if s.Drafts == nil {
		s.Drafts = []TaskDraft{}
	}
	return s, nil
}
