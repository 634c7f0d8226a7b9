package agent

import (
	"fmt"

	"github.com/skawahara/memoflow/pkg/memoflow/registry"
)

// Factory caches built agents by name so construction (graph compile,
// prompt setup) happens once per process.
type Factory struct {
	agents *registry.Registry[string, any]
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{agents: registry.New[string, any]()}
}

// Cached returns the agent registered under name, building it with
// build on first use. The build function runs at most once per name; a
// failed build is not cached and retries on the next call.
//
// The state type must match across calls for a given name.
func Cached[S any](f *Factory, name string, build func() (*Agent[S], error)) (*Agent[S], error) {
	v, err := f.agents.GetOrCreateErr(name, func() (any, error) {
		return build()
	})
	if err != nil {
		return nil, err
	}

	a, ok := v.(*Agent[S])
	if !ok {
		return nil, fmt.Errorf("agent %s: cached with a different state type", name)
	}
	return a, nil
}

// Names returns the names of all built agents.
func (f *Factory) Names() []string {
	return f.agents.Keys()
}
