package memoflow

// Route pairs a predicate with a target node. Routes are evaluated in
// order; the first predicate that reports true wins.
type Route[S any] struct {
	When Predicate[S]
	To   string
}

// Routes is an ordered list of conditional routes with a mandatory
// default target. Order is the precedence: earlier routes shadow later
// ones, and the default catches everything else, so routing is total
// over all states.
type Routes[S any] struct {
	routes    []Route[S]
	defaultTo string
}

// NewRoutes builds a route table. defaultTo is taken when no predicate
// matches; it must be a node ID or END.
//
// Panics if defaultTo is empty or any route has a nil predicate or
// empty target. Structural mistakes in route tables are programmer
// errors, caught at construction like the graph builder's own checks.
func NewRoutes[S any](defaultTo string, routes ...Route[S]) Routes[S] {
	if defaultTo == "" {
		panic("memoflow: routes default target cannot be empty")
	}
	for _, r := range routes {
		if r.When == nil {
			panic("memoflow: route predicate cannot be nil")
		}
		if r.To == "" {
			panic("memoflow: route target cannot be empty")
		}
	}
	return Routes[S]{routes: routes, defaultTo: defaultTo}
}

// Router compiles the table into a RouterFunc.
func (r Routes[S]) Router() RouterFunc[S] {
	routes := r.routes
	defaultTo := r.defaultTo
	return func(_ Context, state S) string {
		for _, route := range routes {
			if route.When(state) {
				return route.To
			}
		}
		return defaultTo
	}
}

// Targets returns every target the table can produce, default included.
// Compile uses this to verify all targets exist.
func (r Routes[S]) Targets() []string {
	targets := make([]string, 0, len(r.routes)+1)
	for _, route := range r.routes {
		targets = append(targets, route.To)
	}
	return append(targets, r.defaultTo)
}
