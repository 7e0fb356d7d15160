// Package llm provides an OpenAI-compatible chat completions client and the
// wire types for its requests, responses and streaming chunks.
package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned by NewClient when no API key is configured.
var ErrMissingAPIKey = errors.New("API key not configured")

// APIError is a non-2xx response from the completions API.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("chat API returned status %d: %s", e.StatusCode, e.Message)
}

// errorEnvelope is the JSON error body the API wraps failures in.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
