package utils

import (
	"encoding/json"
	"net/http"

	"couplesync-backend/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteErrorResponse writes a JSON error response. The message is what the
// client sees; internal failure detail belongs in the server log, not here.
func WriteErrorResponse(w http.ResponseWriter, status int, errText string, message string) {
	WriteJSONResponse(w, status, dto.ErrorResponse{Error: errText, Message: message})
}
