package employee

import (
	"bytes"
	"encoding/json"
)

// Optional distinguishes a JSON key that is absent, present as null, and
// present with a value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns a present, non-null value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns a present value that is explicitly null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// IsZero reports absence, so `omitzero` drops keys that were never set.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

func (o Optional[T]) present() bool { return o.Set }
func (o Optional[T]) null() bool    { return o.Set && !o.Valid }
func (o Optional[T]) value() any    { return o.Value }

// section is the type-erased view of an Optional the registry works with.
type section interface {
	present() bool
	null() bool
	value() any
}
