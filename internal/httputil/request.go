package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultBodyLimit caps JSON bodies that carry no file content
const DefaultBodyLimit = 1 << 20

// ParseJSON decodes a JSON body of at most DefaultBodyLimit bytes into dest
func ParseJSON(w http.ResponseWriter, r *http.Request, dest any) error {
	return ParseJSONLimit(w, r, dest, DefaultBodyLimit)
}

// ParseJSONLimit decodes a JSON body of at most limit bytes into dest.
// Exceeding the limit makes MaxBytesReader fail the read.
func ParseJSONLimit(w http.ResponseWriter, r *http.Request, dest any, limit int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
