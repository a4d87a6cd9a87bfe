// Package httpjson holds small helpers for writing JSON responses.
package httpjson

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Write serializes v as the response body with the given status.
// A nil v writes just the status (no body).
func Write(w http.ResponseWriter, status int, v any) {
	if v == nil {
		w.WriteHeader(status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes a JSON error body {"message": ...} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, map[string]string{"message": message})
}
