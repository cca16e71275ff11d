// Package optional provides a JSON field that distinguishes an absent key from
// an explicit null.
package optional

import (
	"bytes"
	"encoding/json"
)

// Field is absent when Set is false, null when Set is true and Null is true,
// and carries Value otherwise.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

// IsZero lets `omitzero` drop an absent field when encoding.
func (f Field[T]) IsZero() bool {
	return !f.Set
}

// Resolve returns the override when present, nil for an explicit null and
// fallback when the field was absent.
func (f Field[T]) Resolve(fallback *T) *T {
	switch {
	case !f.Set:
		return fallback
	case f.Null:
		return nil
	default:
		v := f.Value
		return &v
	}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
