// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across clients.
package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody caps how much of a failed response is read while
// extracting an error message.
const maxErrorBody = 64 * 1024

// errorPayload is the JSON body collaborator services return on failure.
type errorPayload struct {
	Error string `json:"error"`
}

// ErrorMessage extracts a human-readable message from a failed response.
// It decodes the body as {"error": string}; a malformed body or an empty
// error field falls back to a generic message carrying the status code.
// The body is consumed but not closed.
func ErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil {
		var payload errorPayload
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			return payload.Error
		}
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

// Drain consumes and closes a response body so the underlying
// connection can be reused.
func Drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}
