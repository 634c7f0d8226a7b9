package schema

// JSONSchema renders the schema as a JSON-schema object map, suitable
// for a provider's structured-output request. Strict structured-output
// modes require every property to appear under "required", so optional
// fields are rendered as nullable type unions rather than being left
// off the required list.
func (s Schema) JSONSchema() map[string]any {
	props := make(map[string]any, len(s.Fields))
	required := make([]string, 0, len(s.Fields))

	for _, f := range s.Fields {
		props[f.Name] = fieldSchema(f)
		required = append(required, f.Name)
	}

	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

func fieldSchema(f Field) map[string]any {
	var prop map[string]any
	switch f.Type {
	case KindString:
		prop = map[string]any{"type": fieldType("string", f)}
	case KindBool:
		prop = map[string]any{"type": fieldType("boolean", f)}
	case KindInt:
		prop = map[string]any{"type": fieldType("integer", f)}
	case KindFloat:
		prop = map[string]any{"type": fieldType("number", f)}
	case KindTime:
		prop = map[string]any{"type": fieldType("string", f), "format": "date-time"}
	case KindStringList:
		prop = map[string]any{"type": fieldType("array", f), "items": map[string]any{"type": "string"}}
	default:
		types := []string{"object", "array", "string", "number", "integer", "boolean"}
		if !f.Required {
			types = append(types, "null")
		}
		prop = map[string]any{"type": types}
	}
	if f.Description != "" {
		prop["description"] = f.Description
	}
	return prop
}

// fieldType returns the base JSON type name, widened to a [T, "null"]
// union for optional fields. Null stands in for absence because every
// property is listed as required.
func fieldType(base string, f Field) any {
	if f.Required {
		return base
	}
	return []string{base, "null"}
}

// Getter helpers on TypedOutput for callers that prefer direct field
// access over Decode.

// Get returns the raw coerced value for a field.
func (o *TypedOutput) Get(field string) (any, bool) {
	v, ok := o.Fields[field]
	return v, ok
}

// String returns the string value for a field, or "" when absent.
func (o *TypedOutput) String(field string) string {
	s, _ := o.Fields[field].(string)
	return s
}

// Bool returns the bool value for a field, or false when absent.
func (o *TypedOutput) Bool(field string) bool {
	b, _ := o.Fields[field].(bool)
	return b
}

// StringList returns the string-list value for a field, or nil.
func (o *TypedOutput) StringList(field string) []string {
	list, _ := o.Fields[field].([]string)
	return list
}
