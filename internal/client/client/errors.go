package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrAuthRequired means no credential was stored or the backend rejected
	// it. Navigation to the sign-in page has already been issued.
	ErrAuthRequired = errors.New("authentication required")

	// ErrTransport covers unreachable backends and unreadable responses.
	ErrTransport = errors.New("an error occurred")
)

// APIError is an application-level rejection: a non-2xx response other than
// an authentication expiry.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

// detailPayload is the backend error shape. Detail is either a message or a
// list of field validation errors.
type detailPayload struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

// parseDetail extracts the server-provided message from an error body.
// The message is returned unchanged; "" when the body carries none.
func parseDetail(body []byte) string {
	var p detailPayload
	if err := json.Unmarshal(body, &p); err != nil || len(p.Detail) == 0 {
		return ""
	}

	var msg string
	if err := json.Unmarshal(p.Detail, &msg); err == nil {
		return msg
	}

	var fields []fieldError
	if err := json.Unmarshal(p.Detail, &fields); err == nil {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Msg != "" {
				msgs = append(msgs, f.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}

func newAPIError(statusCode int, body []byte, fallback string) *APIError {
	detail := parseDetail(body)
	if detail == "" {
		detail = fallback
	}
	if detail == "" {
		detail = fmt.Sprintf("request failed: %d %s", statusCode, http.StatusText(statusCode))
	}
	return &APIError{StatusCode: statusCode, Detail: detail}
}
