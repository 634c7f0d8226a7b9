package provider

import (
	"fmt"

	"github.com/skawahara/memoflow/pkg/memoflow/config"
)

// FromConfig builds a Provider from a provider config section.
//
// Recognized keys:
//
//	name: "openai" | "canned"        (default "openai")
//	model: model name                (openai only)
//	api_key: explicit API key        (openai only)
//	base_url: compatible endpoint    (openai only)
func FromConfig(cfg config.Config) (Provider, error) {
	name := cfg.String("name", "openai")
	switch name {
	case "openai":
		var opts []OpenAIOption
		if cfg.Has("model") {
			opts = append(opts, WithModel(cfg.String("model", DefaultModel)))
		}
		if cfg.Has("api_key") {
			opts = append(opts, WithAPIKey(cfg.String("api_key", "")))
		}
		if cfg.Has("base_url") {
			opts = append(opts, WithBaseURL(cfg.String("base_url", "")))
		}
		return NewOpenAI(opts...)
	case "canned":
		return NewCanned(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", name)
	}
}
