// Package httpx carries the HTTP plumbing shared by all handlers: the JSON
// response envelopes, middleware chaining, request identity context and rate
// limiting.
package httpx

import (
	"encoding/json"
	"net/http"
)

// SuccessEnvelope is the body of every 2xx JSON response.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the body of every non-2xx JSON response. Error holds a
// stable machine-readable code; Message is human-readable and must never
// carry secrets or tokens.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// WriteSuccess writes a success envelope with the given status code.
func WriteSuccess(w http.ResponseWriter, code int, data any, message string) {
	writeJSON(w, code, SuccessEnvelope{Success: true, Data: data, Message: message})
}

// WriteError writes an error envelope with the given status code.
func WriteError(w http.ResponseWriter, code int, errCode, message string, details any) {
	writeJSON(w, code, ErrorEnvelope{Error: errCode, Message: message, Details: details})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache marks a response as non-cacheable. Required for anything carrying
// tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
