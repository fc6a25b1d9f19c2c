// Package shared centralizes JSON response envelopes so every handler maps
// domain errors to HTTP statuses the same way.
package shared

import (
	"encoding/json"
	"net/http"

	dErrors "vofmun/pkg/domain-errors"
)

// ErrorBody is the envelope returned for every failed request. Messages are
// the user-safe text from the coded error, never raw collaborator output.
type ErrorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP status and safe message.
// Uncoded errors become a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, dErrors.ToHTTPStatus(dErrors.CodeOf(err)), ErrorBody{
		Status:  "error",
		Message: dErrors.MessageOf(err),
	})
}
