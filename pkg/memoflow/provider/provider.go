package provider

import (
	"context"
	"fmt"

	"github.com/skawahara/memoflow/pkg/memoflow/schema"
)

// Provider is a model backend that turns a rendered prompt into a
// completion. Implementations must be safe for concurrent use.
type Provider interface {
	// Complete sends one request and returns the model's response.
	Complete(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backend in logs and errors.
	Name() string
}

// Request is a single completion request.
type Request struct {
	// System is the system prompt. Empty means no system message.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, requests structured output conforming to it.
	// The response carries the decoded object in Structured.
	Schema *schema.Schema

	// Temperature in [0, 2]. Zero value means backend default.
	Temperature float64

	// MaxTokens caps the completion length. Zero means backend default.
	MaxTokens int
}

// Usage reports token consumption for one call.
type Usage struct {
	Input  int
	Output int
	Total  int
}

// Response is a completed request.
type Response struct {
	// Text is the raw completion text.
	Text string

	// Structured holds the decoded JSON object when the request carried
	// a schema. Nil for plain-text requests.
	Structured map[string]any

	// Usage is token accounting, zero when the backend does not report
	// it.
	Usage Usage
}

// Error wraps a backend failure with the provider's name.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
