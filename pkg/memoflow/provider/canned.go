package provider

import (
	"context"
	"errors"
	"sync"
)

// Canned is a scripted Provider for tests and offline runs. Responses
// are returned in the order they were queued; once the script runs out
// the last response repeats.
type Canned struct {
	mu        sync.Mutex
	responses []*Response
	err       error
	calls     []Request
}

// NewCanned creates a Canned provider with the given scripted
// responses.
func NewCanned(responses ...*Response) *Canned {
	return &Canned{responses: responses}
}

// Text builds a plain-text response for queueing into NewCanned.
func Text(s string) *Response {
	return &Response{Text: s}
}

// Structured builds a structured response for queueing into NewCanned.
func Structured(fields map[string]any) *Response {
	return &Response{Structured: fields}
}

// Name implements Provider.
func (c *Canned) Name() string { return "canned" }

// Complete implements Provider. It records the request and returns the
// next scripted response, honoring context cancellation and any forced
// error.
func (c *Canned) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, req)

	if c.err != nil {
		return nil, &Error{Provider: c.Name(), Err: c.err}
	}
	if len(c.responses) == 0 {
		return nil, &Error{Provider: c.Name(), Err: errors.New("no scripted response")}
	}

	idx := len(c.calls) - 1
	if idx >= len(c.responses) {
		idx = len(c.responses) - 1
	}
	return c.responses[idx], nil
}

// Queue appends responses to the script.
func (c *Canned) Queue(responses ...*Response) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, responses...)
}

// Fail makes every subsequent Complete return err wrapped in *Error.
// Pass nil to clear.
func (c *Canned) Fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

// CallCount returns the number of Complete calls so far.
func (c *Canned) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// Calls returns a copy of all recorded requests.
func (c *Canned) Calls() []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Request, len(c.calls))
	copy(out, c.calls)
	return out
}
