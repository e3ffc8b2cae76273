package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Error is a non-2xx response from the marketplace API.
type Error struct {
	Status  int
	Message string
	// Errors holds field-level validation messages keyed by field name.
	Errors map[string][]string
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Errors) == 0 {
		return fmt.Sprintf("api: %d %s", e.Status, msg)
	}
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("api: %d %s (fields: %s)", e.Status, msg, strings.Join(fields, ", "))
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err is a 401 or 403 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized) || hasStatus(err, http.StatusForbidden)
}

// ValidationErrors returns the field errors carried by err, if any.
func ValidationErrors(err error) map[string][]string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Errors
	}
	return nil
}

func hasStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// decodeError builds an *Error from a response body. Bodies that are not
// JSON become the message.
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var payload struct {
		Message string                     `json:"message"`
		Error   string                     `json:"error"`
		Errors  map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}

	apiErr.Message = payload.Message
	if apiErr.Message == "" {
		apiErr.Message = payload.Error
	}
	if len(payload.Errors) > 0 {
		apiErr.Errors = make(map[string][]string, len(payload.Errors))
		for field, raw := range payload.Errors {
			var list []string
			if json.Unmarshal(raw, &list) == nil {
				apiErr.Errors[field] = list
				continue
			}
			var one string
			if json.Unmarshal(raw, &one) == nil {
				apiErr.Errors[field] = []string{one}
			}
		}
	}
	return apiErr
}
