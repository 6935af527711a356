package utils

import (
	"encoding/json"
	"net/http"
	"time"
)

// DecodeJSONRequest decodes a JSON request body into dst. On failure it writes
// a 400 response and returns the error, so callers can simply return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", "Body must be valid JSON")
		return err
	}
	return nil
}

// ParseDate parses an ISO 8601 date, accepting YYYY-MM-DD or full RFC3339
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
