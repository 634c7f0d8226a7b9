package memoflow

// CompiledGraph is an immutable, executable graph created by Compile().
//
// CompiledGraph is thread-safe and can serve concurrent Run() calls.
// The structure cannot be modified after compilation. Use the
// introspection methods to examine the graph for debugging or
// visualization.
type CompiledGraph[S any] struct {
	nodes            map[string]*nodeSpec[S]
	edges            map[string][]string
	conditionalEdges map[string]RouterFunc[S]
	routeTargets     map[string][]string
	entryPoint       string
	isConditional    map[string]bool
	fieldCheck       FieldCheck[S]
}

// EntryPoint returns the entry node ID.
func (cg *CompiledGraph[S]) EntryPoint() string {
	return cg.entryPoint
}

// NodeIDs returns all node identifiers in unspecified order.
func (cg *CompiledGraph[S]) NodeIDs() []string {
	ids := make([]string, 0, len(cg.nodes))
	for id := range cg.nodes {
		ids = append(ids, id)
	}
	return ids
}

// HasNode checks if a node exists in the graph.
func (cg *CompiledGraph[S]) HasNode(id string) bool {
	_, exists := cg.nodes[id]
	return exists
}

// Successors returns the targets reachable from the node via simple
// edges. Route-table targets are returned by RouteTargets.
func (cg *CompiledGraph[S]) Successors(id string) []string {
	if id == END {
		return nil
	}
	return cg.edges[id]
}

// RouteTargets returns the declared targets of the node's route table,
// or nil when the node routes through simple edges or a hand-written
// router.
func (cg *CompiledGraph[S]) RouteTargets(id string) []string {
	return cg.routeTargets[id]
}

// IsConditional returns true if the node has a conditional edge.
func (cg *CompiledGraph[S]) IsConditional(id string) bool {
	return cg.isConditional[id]
}

// Requires returns the node's declared required fields, nil when none.
func (cg *CompiledGraph[S]) Requires(id string) []string {
	spec, exists := cg.nodes[id]
	if !exists {
		return nil
	}
	return spec.requires
}

// getNode returns the node spec for the given ID.
func (cg *CompiledGraph[S]) getNode(id string) (*nodeSpec[S], bool) {
	spec, exists := cg.nodes[id]
	return spec, exists
}

// getRouter returns the router function for the given node.
func (cg *CompiledGraph[S]) getRouter(id string) (RouterFunc[S], bool) {
	router, exists := cg.conditionalEdges[id]
	return router, exists
}
