// Package splitter breaks a memo that covers several topics into
// independent memo segments, each standing on its own.
package splitter

import (
	"fmt"

	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/agent"
	"github.com/skawahara/memoflow/pkg/memoflow/prompt"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// State is the working memory of one split run.
type State struct {
	Memo     string   `json:"memo"`
	Segments []string `json:"segments,omitempty"`
}

// Has reports presence of a named state field.
func (s State) Has(field string) bool {
	switch field {
	case "memo":
		return s.Memo != ""
	case "segments":
		return s.Segments != nil
	default:
		return false
	}
}

var splitSchema = &schema.Schema{
	Name: "memo_segments",
	Fields: []schema.Field{
		{Name: "segments", Type: schema.KindStringList, Required: true,
			Description: "independent memo texts, in source order"},
	},
}

// OutputSchema is the agent's declared output contract.
var OutputSchema = splitSchema

var splitPrompt = prompt.Template{
	System: "Split the memo into independent memos, one per topic. " +
		"Keep the author's wording. A single-topic memo yields one segment.",
	User: "${memo}",
}

// split asks the provider to carve the memo into segments.
func split(ctx memoflow.Context, s State) (State, error) {
	r, err := splitPrompt.Render(map[string]any{"memo": s.Memo})
	if err != nil {
		return s, err
	}

	resp, err := ctx.Provider().Complete(ctx, provider.Request{
		System: r.System,
		Prompt: r.User,
		Schema: splitSchema,
	})
	if err != nil {
		return s, err
	}

	typed, verr := schema.Validate(resp.Structured, *splitSchema)
	if verr != nil {
		return s, fmt.Errorf("split output: %s", verr.Message)
	}

	segments := typed.StringList("segments")
	if len(segments) == 0 {
		return s, fmt.Errorf("split produced no segments")
	}
	s.Segments = segments
	return s, nil
}

func extract(s State) map[string]any {
	return map[string]any{"segments": s.Segments}
}

func buildGraph() *memoflow.Graph[State] {
	g := memoflow.NewGraph[State]()
	g.SetFieldCheck(State.Has)
	g.AddNode("split", split, memoflow.Requires("memo"))
	g.SetEntry("split")
	g.AddEdge("split", memoflow.END)
	return g
}

// New builds the splitter agent.
func New(p provider.Provider, opts ...agent.Option[State]) (*agent.Agent[State], error) {
	compiled, err := buildGraph().Compile()
	if err != nil {
		return nil, err
	}

	opts = append([]agent.Option[State]{agent.WithProvider[State](p)}, opts...)
	return agent.New("splitter", compiled, OutputSchema, extract, opts...)
}
