// Package review builds a weekly review from the week's completed and
// stalled tasks: a short highlight list plus a one-paragraph summary.
package review

import (
	"fmt"
	"strings"
	"time"

	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/agent"
	"github.com/skawahara/memoflow/pkg/memoflow/prompt"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// State is the working memory of one weekly review run.
type State struct {
	WeekStart  time.Time `json:"week_start"`
	Completed  []string  `json:"completed,omitempty"`
	Stalled    []string  `json:"stalled,omitempty"`
	Digest     string    `json:"digest,omitempty"`
	Highlights []string  `json:"highlights,omitempty"`
	Summary    string    `json:"summary,omitempty"`
}

// Has reports presence of a named state field.
func (s State) Has(field string) bool {
	switch field {
	case "week_start":
		return !s.WeekStart.IsZero()
	case "tasks":
		return len(s.Completed) > 0 || len(s.Stalled) > 0
	case "digest":
		return s.Digest != ""
	default:
		return false
	}
}

var reviewSchema = &schema.Schema{
	Name: "weekly_review",
	Fields: []schema.Field{
		{Name: "highlights", Type: schema.KindStringList, Required: true,
			Description: "the week's notable outcomes, most important first"},
		{Name: "summary", Type: schema.KindString, Required: true,
			Description: "one short paragraph on the week"},
	},
}

// OutputSchema is the agent's declared output contract.
var OutputSchema = reviewSchema

var reviewPrompt = prompt.Template{
	System: "You write weekly reviews for a personal task manager. " +
		"Week starting ${week_start}. Pick highlights from what got done, " +
		"call out what stalled, and summarize in one paragraph.",
	User: "${digest}",
}

// collect folds the task lists into a plain-text digest for the model.
func collect(_ memoflow.Context, s State) (State, error) {
	var b strings.Builder
	b.WriteString("Completed this week:\n")
	if len(s.Completed) == 0 {
		b.WriteString("(nothing)\n")
	}
	for _, task := range s.Completed {
		fmt.Fprintf(&b, "- %s\n", task)
	}
	b.WriteString("Stalled:\n")
	if len(s.Stalled) == 0 {
		b.WriteString("(nothing)\n")
	}
	for _, task := range s.Stalled {
		fmt.Fprintf(&b, "- %s\n", task)
	}
	s.Digest = b.String()
	return s, nil
}

// highlight asks the provider for the review itself.
func highlight(ctx memoflow.Context, s State) (State, error) {
	r, err := reviewPrompt.Render(map[string]any{
		"week_start": s.WeekStart,
		"digest":     s.Digest,
	})
	if err != nil {
		return s, err
	}

	resp, err := ctx.Provider().Complete(ctx, provider.Request{
		System: r.System,
		Prompt: r.User,
		Schema: reviewSchema,
	})
	if err != nil {
		return s, err
	}

	typed, verr := schema.Validate(resp.Structured, *reviewSchema)
	if verr != nil {
		return s, fmt.Errorf("review output: %s", verr.Message)
	}

	s.Highlights = typed.StringList("highlights")
	s.Summary = typed.String("summary")
	return s, nil
}

func extract(s State) map[string]any {
	return map[string]any{
		"highlights": s.Highlights,
		"summary":    s.Summary,
	}
}

func buildGraph() *memoflow.Graph[State] {
	g := memoflow.NewGraph[State]()
	g.SetFieldCheck(State.Has)
	g.AddNode("collect", collect, memoflow.Requires("week_start", "tasks"))
	g.AddNode("highlight", highlight, memoflow.Requires("digest"))
	g.SetEntry("collect")
	g.AddEdge("collect", "highlight")
	g.AddEdge("highlight", memoflow.END)
	return g
}

// New builds the weekly review agent.
func New(p provider.Provider, opts ...agent.Option[State]) (*agent.Agent[State], error) {
	compiled, err := buildGraph().Compile()
	if err != nil {
		return nil, err
	}

	opts = append([]agent.Option[State]{agent.WithProvider[State](p)}, opts...)
	return agent.New("weekly-review", compiled, OutputSchema, extract, opts...)
}
