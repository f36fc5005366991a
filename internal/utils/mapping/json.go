package mapping

import (
	"encoding/json"
	"fmt"
)

// marshalOptional encodes v, returning nil (SQL NULL) for a nil pointer.
func marshalOptional[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// marshalList encodes a slice, always producing a JSON array.
func marshalList[T any](v []T) ([]byte, error) {
	if v == nil {
		v = []T{}
	}
	return json.Marshal(v)
}

func unmarshalOptional[T any](raw []byte, column string) (*T, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode %s: %w", column, err)
	}
	return &v, nil
}

func unmarshalList[T any](raw []byte, column string) ([]T, error) {
	out := []T{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", column, err)
	}
	return out, nil
}
