package dto

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field used by partial-update requests.
// It distinguishes a field that was absent from the payload, one that
// was explicitly null (clear the stored value), and one carrying a value.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// NewOptional returns an Optional carrying the given value.
func NewOptional[T any](value T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: value}
}

var jsonNull = []byte("null")

// UnmarshalJSON records that the field was present before decoding it.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(data, jsonNull) {
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

// MarshalJSON renders the carried value, or null when cleared/absent.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

// Get returns the carried value and whether one was provided.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && o.Valid
}
