// Package config provides typed configuration extraction from
// map[string]any structures.
//
// Agent and provider settings are loaded from YAML or JSON files and
// read through typed accessors with defaults:
//
//	cfg, err := config.FromFile("memoflow.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	provider := cfg.Sub("provider")
//	model := provider.String("model", "gpt-4o-mini")
//	temp := provider.Float("temperature", 0.2)
//
// Accessors never fail: a missing key or a value of the wrong type
// yields the caller's default. Config is safe for concurrent reads;
// the underlying map is not modified after creation.
package config
