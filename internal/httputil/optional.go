package httputil

import (
	"bytes"
	"encoding/json"
)

// Optional tells an absent JSON field apart from an explicit null. Present is
// false when the field is missing; Value is nil when it is null.
type Optional[T any] struct {
	Present bool
	Value   *T
}

// UnmarshalJSON is only called for fields present in the document
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
