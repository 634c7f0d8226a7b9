package prompt

import (
	"fmt"
	"strings"
)

// UndefinedVariableError is returned when MissingError is set and one
// or more placeholders have no value.
type UndefinedVariableError struct {
	Names []string
}

func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("undefined variable: %s", e.Names[0])
	}
	return fmt.Sprintf("undefined variables: %s", strings.Join(e.Names, ", "))
}

// Template pairs a system prompt with a user prompt. Both may contain
// ${var} placeholders filled at render time.
type Template struct {
	System string
	User   string
}

// Rendered is a Template with all placeholders substituted.
type Rendered struct {
	System string
	User   string
}

// Render fills both prompt parts from vars using the default expander.
// Missing variables are an error.
func (t Template) Render(vars map[string]any) (Rendered, error) {
	return t.RenderWith(defaultExpander, vars)
}

// RenderWith fills both prompt parts using a custom expander.
func (t Template) RenderWith(e *Expander, vars map[string]any) (Rendered, error) {
	system, err := e.Expand(t.System, vars)
	if err != nil {
		return Rendered{}, fmt.Errorf("render system prompt: %w", err)
	}
	user, err := e.Expand(t.User, vars)
	if err != nil {
		return Rendered{}, fmt.Errorf("render user prompt: %w", err)
	}
	return Rendered{System: system, User: user}, nil
}

var defaultExpander = NewExpander()

// Expand expands s with the default expander. Missing variables are an
// error.
func Expand(s string, vars map[string]any) (string, error) {
	return defaultExpander.Expand(s, vars)
}
