package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrUnavailable wraps transport failures: the server could not be reached
	// or the connection broke before a reply was read.
	ErrUnavailable = errors.New("server unavailable")

	// ErrAuthenticationExpired is matched by any 401 reply.
	ErrAuthenticationExpired = errors.New("authentication expired")
)

// APIError is a non-2xx reply. The recognized body shapes are
// {"detail": ...}, the OAuth {"error", "error_description"} pair and
// field-level validation maps {"field": ["message", ...]}.
type APIError struct {
	StatusCode  int
	Detail      string
	Code        string
	Description string
	Fields      map[string][]string
	Body        []byte
}

func (e *APIError) Error() string {
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("api error: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), msg)
}

// Is makes a 401 APIError match ErrAuthenticationExpired.
func (e *APIError) Is(target error) bool {
	return target == ErrAuthenticationExpired && e.StatusCode == http.StatusUnauthorized
}

// Message picks the most specific human-readable text in the reply.
func (e *APIError) Message() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Detail != "":
		return e.Detail
	case len(e.Fields) > 0:
		return e.FieldMessages()
	default:
		return e.Code
	}
}

// FieldMessages formats field errors as "field: msg1, msg2; other: msg",
// ordered by field name.
func (e *APIError) FieldMessages() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return strings.Join(parts, "; ")
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Body: body}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		// Plain-text or HTML bodies carry no structure worth keeping.
		return apiErr
	}

	for key, value := range raw {
		switch key {
		case "detail":
			apiErr.Detail = asString(value)
		case "error":
			apiErr.Code = asString(value)
		case "error_description":
			apiErr.Description = asString(value)
		default:
			if msgs := asMessages(value); len(msgs) > 0 {
				if apiErr.Fields == nil {
					apiErr.Fields = make(map[string][]string)
				}
				apiErr.Fields[key] = msgs
			}
		}
	}

	return apiErr
}

func asString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func asMessages(raw json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return []string{s}
	}
	return nil
}
