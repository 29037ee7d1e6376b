package graph

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned for every failure of a Graph API call: error
// payloads, unexpected statuses, transport faults and undecodable bodies.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	Subcode    int    `json:"error_subcode"`
	FBTraceID  string `json:"fbtrace_id"`
	Err        error  `json:"-"`
}

func (e *APIError) Error() string {
	var b strings.Builder
	b.WriteString("graph api")
	if e.Type != "" {
		fmt.Fprintf(&b, " %s", e.Type)
	}
	if e.Code != 0 {
		fmt.Fprintf(&b, " (code %d", e.Code)
		if e.Subcode != 0 {
			fmt.Fprintf(&b, ", subcode %d", e.Subcode)
		}
		b.WriteString(")")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " [http %d]", e.StatusCode)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *APIError) Unwrap() error {
	return e.Err
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// parseError extracts the error object of a Graph API response body. It
// returns nil when the body carries no error and the status is 2xx.
func parseError(status int, body []byte) *APIError {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		env.Error.StatusCode = status
		return env.Error
	}
	if status < 200 || status >= 300 {
		return &APIError{
			StatusCode: status,
			Message:    fmt.Sprintf("unexpected status %s: %s", http.StatusText(status), truncate(string(body), 200)),
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
