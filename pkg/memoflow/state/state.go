// Package state provides the working-memory primitives agent states are
// built from: tagged optional fields with explicit presence, field-wise
// map merging, and required-field checks.
package state

import (
	"bytes"
	"encoding/json"
)

// Opt is an optional value with explicit presence. Unlike a bare zero
// value, an unset Opt is distinguishable from any valid value, which is
// what progressive workflow fields need: a node can tell "not yet
// populated" apart from "populated with the zero value".
//
// Opt marshals transparently: unset encodes as JSON null, and null or an
// absent key decodes as unset.
type Opt[T any] struct {
	value T
	set   bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// None returns an unset Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// IsSet reports whether a value is present.
func (o Opt[T]) IsSet() bool {
	return o.set
}

// Get returns the value and whether it is present.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.set
}

// Value returns the value, or the zero value when unset.
func (o Opt[T]) Value() T {
	return o.value
}

// OrElse returns the value when set, otherwise def.
func (o Opt[T]) OrElse(def T) T {
	if o.set {
		return o.value
	}
	return def
}

var jsonNull = []byte("null")

// MarshalJSON implements json.Marshaler. Unset encodes as null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON implements json.Unmarshaler. Null decodes as unset.
func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonNull) {
		*o = Opt[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Opt[T]{value: v, set: true}
	return nil
}

// Merge performs a field-wise union of src into dst and returns the
// result. Keys absent from src are retained from dst; keys present in
// src overwrite. Neither input map is modified.
func Merge(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	for k, v := range dst {
		out[k] = v
	}
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Require checks that every named field is present. It returns the first
// missing field name and false, or "" and true when all are present.
func Require(present map[string]bool, fields ...string) (string, bool) {
	for _, f := range fields {
		if !present[f] {
			return f, false
		}
	}
	return "", true
}
