// Package response writes the JSON envelopes the API speaks: every body
// carries a success flag, failures carry a human-readable message.
package response

import (
	"encoding/json"
	"net/http"
)

type failureBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// JSON writes a 200 response with the given payload. Payload structs are
// expected to carry their own success field.
func JSON(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

// Error writes a structured failure with the given status code.
func Error(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureBody{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
