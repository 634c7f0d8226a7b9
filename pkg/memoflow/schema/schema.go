// Package schema defines the output contracts agents declare and the
// validation guard that checks a run's raw output against them.
//
// The guard is the uniform seam of the engine: whatever happens inside a
// graph, callers see exactly one of two shapes, TypedOutput or
// ErrorOutput. Validation never panics and never surfaces a Go error.
package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// Kind is the type of a schema field.
type Kind string

// Supported field kinds.
const (
	KindString     Kind = "string"
	KindBool       Kind = "bool"
	KindInt        Kind = "int"
	KindFloat      Kind = "float"
	KindTime       Kind = "time"
	KindStringList Kind = "string_list"
	KindAny        Kind = "any"
)

// Field declares one output field.
type Field struct {
	Name        string
	Type        Kind
	Required    bool
	Description string
}

// Schema is the declared output contract of an agent.
type Schema struct {
	Name   string
	Fields []Field
}

// TypedOutput is a validated, coerced output. Field values have the Go
// types their kinds imply (string, bool, int, float64, time.Time,
// []string, or any for KindAny).
type TypedOutput struct {
	Schema string
	Fields map[string]any
}

// ErrorOutput is the only error shape exposed to callers outside the
// engine. Field names the offending output field when one is known.
type ErrorOutput struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Errorf builds an ErrorOutput with a formatted message and no field.
func Errorf(format string, args ...any) *ErrorOutput {
	return &ErrorOutput{Message: fmt.Sprintf(format, args...)}
}

// Validate coerces raw into the schema's fields. Missing required
// fields and type mismatches produce an ErrorOutput naming the field;
// a conforming raw output produces a TypedOutput with identical values.
// Exactly one return value is non-nil.
func Validate(raw map[string]any, s Schema) (*TypedOutput, *ErrorOutput) {
	out := make(map[string]any, len(s.Fields))

	for _, f := range s.Fields {
		v, present := raw[f.Name]
		if !present || v == nil {
			if f.Required {
				return nil, &ErrorOutput{
					Message: fmt.Sprintf("output missing required field %q", f.Name),
					Field:   f.Name,
				}
			}
			continue
		}

		coerced, err := coerce(v, f.Type)
		if err != nil {
			return nil, &ErrorOutput{
				Message: fmt.Sprintf("output field %q: %v", f.Name, err),
				Field:   f.Name,
			}
		}
		out[f.Name] = coerced
	}

	return &TypedOutput{Schema: s.Name, Fields: out}, nil
}

// coerce converts v to the Go representation of kind.
func coerce(v any, kind Kind) (any, error) {
	switch kind {
	case KindAny:
		return v, nil

	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}

	case KindBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case KindInt:
		switch n := v.(type) {
		case int:
			return n, nil
		case int64:
			return int(n), nil
		case json.Number:
			if i, err := n.Int64(); err == nil {
				return int(i), nil
			}
		case float64:
			if n == float64(int(n)) {
				return int(n), nil
			}
		}

	case KindFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case json.Number:
			if f, err := n.Float64(); err == nil {
				return f, nil
			}
		}

	case KindTime:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if parsed, err := time.Parse(time.RFC3339, t); err == nil {
				return parsed, nil
			}
			// Date-time without zone, as emitted by some models.
			if parsed, err := time.Parse("2006-01-02T15:04:05", t); err == nil {
				return parsed, nil
			}
			if parsed, err := time.Parse("2006-01-02", t); err == nil {
				return parsed, nil
			}
			return nil, fmt.Errorf("cannot parse %q as time", t)
		}

	case KindStringList:
		switch list := v.(type) {
		case []string:
			return list, nil
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("expected string list, got %T element", item)
				}
				out = append(out, s)
			}
			return out, nil
		}

	default:
		return nil, fmt.Errorf("unknown kind %q", kind)
	}

	return nil, fmt.Errorf("expected %s, got %T", kind, v)
}

// Decode unmarshals a TypedOutput into a caller struct via JSON.
func Decode[T any](o *TypedOutput) (T, error) {
	var out T
	data, err := json.Marshal(o.Fields)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}
