// Package registry provides a generic thread-safe registry for values
// indexed by key.
//
// It backs the agent factory: compiled agents are cached per name so
// repeated lookups reuse the same instance.
//
//	agents := registry.New[string, *Agent]()
//	a, err := agents.GetOrCreateErr("memo-to-task", buildMemoTaskAgent)
package registry
