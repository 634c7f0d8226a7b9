// Package oneliner compresses a memo into a single line, suitable for
// list views and notification titles.
package oneliner

import (
	"fmt"
	"strings"

	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/agent"
	"github.com/skawahara/memoflow/pkg/memoflow/prompt"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// State is the working memory of one summarization run.
type State struct {
	Text string `json:"text"`
	Line string `json:"line,omitempty"`
}

// Has reports presence of a named state field.
func (s State) Has(field string) bool {
	switch field {
	case "text":
		return s.Text != ""
	case "line":
		return s.Line != ""
	default:
		return false
	}
}

// OutputSchema is the agent's declared output contract.
var OutputSchema = &schema.Schema{
	Name: "one_line_summary",
	Fields: []schema.Field{
		{Name: "line", Type: schema.KindString, Required: true},
	},
}

var summarizePrompt = prompt.Template{
	System: "Summarize the text in one short line. No trailing period, " +
		"no quotes, keep the original language.",
	User: "${text}",
}

// summarize asks the provider for the one-liner.
func summarize(ctx memoflow.Context, s State) (State, error) {
	r, err := summarizePrompt.Render(map[string]any{"text": s.Text})
	if err != nil {
		return s, err
	}

	resp, err := ctx.Provider().Complete(ctx, provider.Request{
		System:      r.System,
		Prompt:      r.User,
		Temperature: 0.2,
	})
	if err != nil {
		return s, err
	}

	line := strings.TrimSpace(resp.Text)
	if line == "" {
		return s, fmt.Errorf("empty summary")
	}
	// One line, whatever the model thinks.
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	s.Line = line
	return s, nil
}

func extract(s State) map[string]any {
	return map[string]any{"line": s.Line}
}

func buildGraph() *memoflow.Graph[State] {
	g := memoflow.NewGraph[State]()
	g.SetFieldCheck(State.Has)
	g.AddNode("summarize", summarize, memoflow.Requires("text"))
	g.SetEntry("summarize")
	g.AddEdge("summarize", memoflow.END)
	return g
}

// New builds the one-line summary agent.
func New(p provider.Provider, opts ...agent.Option[State]) (*agent.Agent[State], error) {
	compiled, err := buildGraph().Compile()
	if err != nil {
		return nil, err
	}

	opts = append([]agent.Option[State]{agent.WithProvider[State](p)}, opts...)
	return agent.New("one-liner", compiled, OutputSchema, extract, opts...)
}
