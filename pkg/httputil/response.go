// Package httputil provides the uniform response envelope used by every
// crosswatch API endpoint.
package httputil

import (
	"encoding/json"
	"log"
	"net/http"
	"time"
)

// Envelope is the wire shape of every API response. Data is set on success,
// Error on failure, never both.
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// WriteSuccess writes a success envelope with the given status code and data.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	writeEnvelope(w, status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteError writes an error envelope. The message must not leak internals;
// handlers log the underlying error separately.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeEnvelope(w, status, Envelope{
		Success:   false,
		Error:     message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}
