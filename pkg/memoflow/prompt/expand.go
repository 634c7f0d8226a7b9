package prompt

import (
	"fmt"
	"regexp"
	"time"
)

// bracePattern matches ${varname}. Only the brace form is recognized:
// memo text routinely contains bare dollar signs and must pass through
// untouched.
var bracePattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// MissingAction specifies how to handle variables absent from vars.
type MissingAction int

const (
	// MissingError returns an error when a variable is not found.
	// This is the default: a prompt with a hole in it should never
	// reach the model.
	MissingError MissingAction = iota

	// MissingKeep leaves the placeholder as-is.
	MissingKeep

	// MissingEmpty replaces the placeholder with an empty string.
	MissingEmpty
)

// Expander expands ${var} placeholders in prompt strings.
// Safe for concurrent use after construction.
type Expander struct {
	missingAction MissingAction
}

// Option configures an Expander.
type Option func(*Expander)

// WithMissingAction sets how missing variables are handled.
func WithMissingAction(action MissingAction) Option {
	return func(e *Expander) {
		e.missingAction = action
	}
}

// NewExpander creates an Expander. By default missing variables are an
// error.
func NewExpander(opts ...Option) *Expander {
	e := &Expander{missingAction: MissingError}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand replaces ${var} placeholders in s with values from vars.
//
// time.Time values render as RFC 3339 so the model sees an unambiguous
// timestamp. Everything else renders with fmt.Sprintf("%v").
func (e *Expander) Expand(s string, vars map[string]any) (string, error) {
	if s == "" {
		return "", nil
	}

	var missing []string
	result := bracePattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if val, ok := vars[name]; ok {
			return formatValue(val)
		}
		switch e.missingAction {
		case MissingEmpty:
			return ""
		case MissingKeep:
			return match
		default:
			missing = append(missing, name)
			return match
		}
	})

	if len(missing) > 0 {
		return result, &UndefinedVariableError{Names: missing}
	}
	return result, nil
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
