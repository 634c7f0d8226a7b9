package memoflow

import (
	"errors"
	"fmt"
	"log/slog"
)

// Compile validates the graph and creates an executable CompiledGraph.
// Returns an error if validation fails. Multiple errors are joined.
//
// Validation checks (in order):
//  1. Entry point must be set
//  2. Entry point must reference an existing node
//  3. All edge sources must reference existing nodes (never END);
//     targets must reference existing nodes or END
//  4. All route-table targets must reference existing nodes or END
//  5. Nodes declaring required fields need a field check installed
//  6. A path from entry to END must exist
//
// Unreachable nodes are logged as warnings but do not fail compilation.
func (g *Graph[S]) Compile() (*CompiledGraph[S], error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var errs []error

	if g.entryPoint == "" {
		errs = append(errs, ErrNoEntry)
	} else if _, exists := g.nodes[g.entryPoint]; !exists {
		errs = append(errs, fmt.Errorf("%w: %s", ErrEntryNotFound, g.entryPoint))
	}

	for from, targets := range g.edges {
		if from == END {
			errs = append(errs, ErrEdgeFromEnd)
		} else if _, exists := g.nodes[from]; !exists {
			if _, hasConditional := g.conditionalEdges[from]; !hasConditional {
				errs = append(errs, fmt.Errorf("%w: edge source '%s' does not exist", ErrNodeNotFound, from))
			}
		}

		for _, to := range targets {
			if to != END {
				if _, exists := g.nodes[to]; !exists {
					errs = append(errs, fmt.Errorf("%w: edge target '%s' does not exist", ErrNodeNotFound, to))
				}
			}
		}
	}

	for from := range g.conditionalEdges {
		if from == END {
			errs = append(errs, ErrEdgeFromEnd)
		} else if _, exists := g.nodes[from]; !exists {
			errs = append(errs, fmt.Errorf("%w: conditional edge source '%s' does not exist", ErrNodeNotFound, from))
		}
	}

	// Route tables declare their target sets, so dangling targets are
	// caught here rather than at runtime.
	for from, targets := range g.routeTargets {
		for _, to := range targets {
			if to != END {
				if _, exists := g.nodes[to]; !exists {
					errs = append(errs, fmt.Errorf("%w: route target '%s' from '%s' does not exist", ErrNodeNotFound, to, from))
				}
			}
		}
	}

	for id, spec := range g.nodes {
		if len(spec.requires) > 0 && g.fieldCheck == nil {
			errs = append(errs, fmt.Errorf("%w: node '%s'", ErrFieldCheckRequired, id))
			break
		}
	}

	if g.entryPoint != "" {
		if _, exists := g.nodes[g.entryPoint]; exists {
			if !g.hasPathToEnd() {
				errs = append(errs, ErrNoPathToEnd)
			}
		}
	}

	g.warnUnreachableNodes()

	if len(errs) > 0 {
		return nil, &GraphConfigError{Err: errors.Join(errs...)}
	}

	return g.buildCompiledGraph(), nil
}

// hasPathToEnd checks if a path from entry to END exists, using reverse
// reachability. Route tables list their targets, so they propagate
// exactly; hand-written routers are assumed able to return END.
func (g *Graph[S]) hasPathToEnd() bool {
	canReachEnd := make(map[string]bool)
	canReachEnd[END] = true

	changed := true
	for changed {
		changed = false

		for from, targets := range g.edges {
			if canReachEnd[from] {
				continue
			}
			for _, to := range targets {
				if canReachEnd[to] {
					canReachEnd[from] = true
					changed = true
					break
				}
			}
		}

		for from := range g.conditionalEdges {
			if canReachEnd[from] {
				continue
			}
			if targets, declared := g.routeTargets[from]; declared {
				for _, to := range targets {
					if canReachEnd[to] {
						canReachEnd[from] = true
						changed = true
						break
					}
				}
			} else {
				canReachEnd[from] = true
				changed = true
			}
		}
	}

	return canReachEnd[g.entryPoint]
}

// warnUnreachableNodes logs warnings for nodes not reachable from entry.
func (g *Graph[S]) warnUnreachableNodes() {
	if g.entryPoint == "" {
		return
	}

	reachable := g.findReachableNodes()

	for nodeID := range g.nodes {
		if !reachable[nodeID] {
			slog.Warn("node is unreachable from entry", "node_id", nodeID)
		}
	}
}

// findReachableNodes returns the set of nodes reachable from the entry
// point via BFS. Declared route targets are followed exactly; a
// hand-written router could return any node, so all nodes are treated
// as reachable from it.
func (g *Graph[S]) findReachableNodes() map[string]bool {
	reachable := make(map[string]bool)

	if g.entryPoint == "" {
		return reachable
	}

	queue := []string{g.entryPoint}
	reachable[g.entryPoint] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, target := range g.edges[current] {
			if target != END && !reachable[target] {
				reachable[target] = true
				queue = append(queue, target)
			}
		}

		if _, hasConditional := g.conditionalEdges[current]; hasConditional {
			if targets, declared := g.routeTargets[current]; declared {
				for _, target := range targets {
					if target != END && !reachable[target] {
						reachable[target] = true
						queue = append(queue, target)
					}
				}
			} else {
				for nodeID := range g.nodes {
					if !reachable[nodeID] {
						reachable[nodeID] = true
						queue = append(queue, nodeID)
					}
				}
			}
		}
	}

	return reachable
}

// buildCompiledGraph creates the immutable CompiledGraph from the
// builder state.
func (g *Graph[S]) buildCompiledGraph() *CompiledGraph[S] {
	nodes := make(map[string]*nodeSpec[S], len(g.nodes))
	for id, spec := range g.nodes {
		nodes[id] = spec
	}

	edges := make(map[string][]string, len(g.edges))
	for from, targets := range g.edges {
		edges[from] = make([]string, len(targets))
		copy(edges[from], targets)
	}

	conditionalEdges := make(map[string]RouterFunc[S], len(g.conditionalEdges))
	for from, router := range g.conditionalEdges {
		conditionalEdges[from] = router
	}

	routeTargets := make(map[string][]string, len(g.routeTargets))
	for from, targets := range g.routeTargets {
		routeTargets[from] = make([]string, len(targets))
		copy(routeTargets[from], targets)
	}

	isConditional := make(map[string]bool)
	for from := range conditionalEdges {
		isConditional[from] = true
	}

	return &CompiledGraph[S]{
		nodes:            nodes,
		edges:            edges,
		conditionalEdges: conditionalEdges,
		routeTargets:     routeTargets,
		entryPoint:       g.entryPoint,
		isConditional:    isConditional,
		fieldCheck:       g.fieldCheck,
	}
}
