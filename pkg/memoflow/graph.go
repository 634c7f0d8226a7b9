package memoflow

import (
	"fmt"
	"strings"
	"sync"
)

// FieldCheck reports whether a named field is present in the state.
// Graphs whose nodes declare Requires install one with SetFieldCheck.
type FieldCheck[S any] func(state S, field string) bool

// Graph is a mutable builder for execution graphs.
// Use NewGraph, then chain AddNode, AddEdge, AddRoutes, and SetEntry
// calls to define the workflow.
//
// Graph is NOT thread-safe during building. Construct it in a single
// goroutine, then call Compile() to create an immutable CompiledGraph
// that can be shared freely.
//
// Example:
//
//	graph := memoflow.NewGraph[MemoState]().
//	    AddNode("classify", classify).
//	    AddNode("draft", draft, memoflow.Requires("classification")).
//	    AddRoutes("classify", routes).
//	    AddEdge("draft", memoflow.END).
//	    SetEntry("classify").
//	    SetFieldCheck(memoStateHas)
//
//	compiled, err := graph.Compile()
type Graph[S any] struct {
	mu               sync.RWMutex
	nodes            map[string]*nodeSpec[S]
	edges            map[string][]string
	conditionalEdges map[string]RouterFunc[S]
	routeTargets     map[string][]string
	entryPoint       string
	fieldCheck       FieldCheck[S]
}

// NewGraph creates a graph builder for state type S.
func NewGraph[S any]() *Graph[S] {
	return &Graph[S]{
		nodes:            make(map[string]*nodeSpec[S]),
		edges:            make(map[string][]string),
		conditionalEdges: make(map[string]RouterFunc[S]),
		routeTargets:     make(map[string][]string),
	}
}

// AddNode adds a named node to the graph.
// Returns the graph for method chaining.
//
// Panics if:
//   - id is empty
//   - id is the reserved word "END" or "__end__" (case-insensitive)
//   - id contains whitespace
//   - fn is nil
//   - id already exists in the graph
func (g *Graph[S]) AddNode(id string, fn NodeFunc[S], opts ...NodeOption) *Graph[S] {
	if id == "" {
		panic("memoflow: node ID cannot be empty")
	}

	idLower := strings.ToLower(id)
	if idLower == "end" || idLower == "__end__" {
		panic("memoflow: node ID cannot be reserved word 'END'")
	}

	if strings.ContainsAny(id, " \t\n\r") {
		panic("memoflow: node ID cannot contain whitespace")
	}

	if fn == nil {
		panic("memoflow: node function cannot be nil")
	}

	var no nodeOptions
	for _, opt := range opts {
		opt(&no)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.nodes[id]; exists {
		panic(fmt.Sprintf("memoflow: duplicate node ID: %s", id))
	}

	g.nodes[id] = &nodeSpec[S]{fn: fn, requires: no.requires}
	return g
}

// AddEdge adds an unconditional edge from one node to another.
// The target can be a node ID or memoflow.END.
// Returns the graph for method chaining.
//
// Edge validation happens at Compile() time, not here, so edges may be
// added in any order.
func (g *Graph[S]) AddEdge(from, to string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.edges[from] = append(g.edges[from], to)
	return g
}

// AddConditionalEdge adds a conditional edge whose next node is computed at
// runtime by a hand-written RouterFunc.
// Returns the graph for method chaining.
//
// The router must return a valid node ID or memoflow.END. Returning an
// empty string or unknown node causes a runtime RouterError. Prefer
// AddRoutes: route tables carry their target set, so Compile can verify
// every target exists.
//
// A node can have either simple edges or a conditional edge, not both.
// When both are present, the conditional edge wins.
func (g *Graph[S]) AddConditionalEdge(from string, router RouterFunc[S]) *Graph[S] {
	if router == nil {
		panic("memoflow: router function cannot be nil")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.conditionalEdges[from] = router
	return g
}

// AddRoutes adds a conditional edge built from an ordered route table.
// Precedence follows table order and the default target makes routing
// total. Targets are validated at Compile().
func (g *Graph[S]) AddRoutes(from string, routes Routes[S]) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.conditionalEdges[from] = routes.Router()
	g.routeTargets[from] = routes.Targets()
	return g
}

// SetEntry designates the entry point node.
// Returns the graph for method chaining.
//
// The entry point must reference an existing node at Compile() time.
func (g *Graph[S]) SetEntry(id string) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entryPoint = id
	return g
}

// SetFieldCheck installs the presence check backing Requires
// declarations. Compile() fails when nodes declare required fields and
// no check is installed.
func (g *Graph[S]) SetFieldCheck(check FieldCheck[S]) *Graph[S] {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.fieldCheck = check
	return g
}
