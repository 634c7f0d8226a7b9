// Package chat is a multi-turn conversation agent. History is carried
// in the checkpoint store keyed by thread id, so successive Invoke
// calls on the same thread continue the conversation.
package chat

import (
	"fmt"
	"strings"

	"github.com/skawahara/memoflow/pkg/memoflow"
	"github.com/skawahara/memoflow/pkg/memoflow/agent"
	"github.com/skawahara/memoflow/pkg/memoflow/checkpoint"
	"github.com/skawahara/memoflow/pkg/memoflow/provider"
	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// Turn is one exchange already completed on the thread.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// State is the working memory of one chat invocation.
type State struct {
	Message string `json:"message"`
	History []Turn `json:"history,omitempty"`
	Reply   string `json:"reply,omitempty"`
}

// Has reports presence of a named state field.
func (s State) Has(field string) bool {
	switch field {
	case "message":
		return s.Message != ""
	case "reply":
		return s.Reply != ""
	default:
		return false
	}
}

// OutputSchema is the agent's declared output contract.
var OutputSchema = &schema.Schema{
	Name: "chat_output",
	Fields: []schema.Field{
		{Name: "reply", Type: schema.KindString, Required: true},
	},
}

const systemPrompt = "You are a concise note-taking assistant. " +
	"Answer the user's latest message, using the prior turns for context."

// transcript renders the history plus the new message for the model.
func transcript(s State) string {
	var b strings.Builder
	for _, t := range s.History {
		fmt.Fprintf(&b, "User: %s\nAssistant: %s\n", t.User, t.Assistant)
	}
	fmt.Fprintf(&b, "User: %s", s.Message)
	return b.String()
}

// respond asks the provider for the next reply and appends the turn.
func respond(ctx memoflow.Context, s State) (State, error) {
	resp, err := ctx.Provider().Complete(ctx, provider.Request{
		System: systemPrompt,
		Prompt: transcript(s),
	})
	if err != nil {
		return s, err
	}
	if resp.Text == "" {
		return s, fmt.Errorf("empty chat reply")
	}

	s.Reply = resp.Text
	s.History = append(s.History, Turn{User: s.Message, Assistant: resp.Text})
	return s, nil
}

// resume folds the persisted thread into the incoming state. Only the
// history carries over; the new message always wins.
func resume(prev State, in State) State {
	in.History = prev.History
	return in
}

func extract(s State) map[string]any {
	return map[string]any{"reply": s.Reply}
}

func buildGraph() *memoflow.Graph[State] {
	g := memoflow.NewGraph[State]()
	g.SetFieldCheck(State.Has)
	g.AddNode("respond", respond, memoflow.Requires("message"))
	g.SetEntry("respond")
	g.AddEdge("respond", memoflow.END)
	return g
}

// New builds the chat agent. The store keeps per-thread history across
// invocations.
func New(p provider.Provider, store checkpoint.Store, opts ...agent.Option[State]) (*agent.Agent[State], error) {
	compiled, err := buildGraph().Compile()
	if err != nil {
		return nil, err
	}

	opts = append([]agent.Option[State]{
		agent.WithProvider[State](p),
		agent.WithCheckpoints(store, resume),
	}, opts...)
	return agent.New("chat", compiled, OutputSchema, extract, opts...)
}
