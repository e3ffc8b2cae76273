package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Formatted appropriately based on request type (HTMX, JSON, or HTML)
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via core.MapError to get user-friendly message and status
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered in appropriate format for the client

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/JonMunkholm/accreditation-console/internal/web/views"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Action  string            `json:"action,omitempty"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// statusFor picks the HTTP status of err.
func statusFor(err error) int {
	var apiErr *api.Error
	var formErr *core.FormError
	switch {
	case errors.As(err, &formErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrScreenNotFound), errors.Is(err, datatable.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrActionNotAllowed), errors.Is(err, datatable.ErrActionUnavailable):
		return http.StatusMethodNotAllowed
	case errors.Is(err, core.ErrTooManyExports):
		return http.StatusTooManyRequests
	case errors.As(err, &apiErr):
		if apiErr.Status >= 500 {
			return http.StatusBadGateway
		}
		return apiErr.Status
	}
	return http.StatusInternalServerError
}

// respondError handles error responses with user-friendly messages.
// It logs the technical error server-side and returns an appropriate response
// based on the request type (HTMX, JSON, or HTML).
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := core.MapError(err)
	statusCode := statusFor(err)

	logger := logging.FromContext(r.Context())
	args := []any{
		"path", r.URL.Path,
		"method", r.Method,
		"status", statusCode,
		"error", err.Error(),
		"code", userMsg.Code,
	}
	if statusCode >= 500 {
		logger.Error("request error", args...)
	} else {
		logger.Warn("request error", args...)
	}

	switch {
	case isHTMX(r):
		renderErrorPartial(w, r, userMsg, statusCode)
	case wantsJSON(r):
		respondErrorJSON(w, err, userMsg, statusCode)
	default:
		respondErrorHTML(w, userMsg, statusCode)
	}
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, err error, msg core.UserMessage, statusCode int) {
	resp := ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	}
	var formErr *core.FormError
	if errors.As(err, &formErr) {
		resp.Fields = formErr.Fields
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

// respondErrorHTML writes a plain error response.
func respondErrorHTML(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	http.Error(w, msg.Message+" ("+msg.Code+")", statusCode)
}

// renderErrorPartial renders an HTMX error fragment into the flash slot.
// HTMX does not swap 4xx/5xx responses by default, so the fragment is sent
// with 200 and the original status in a header.
func renderErrorPartial(w http.ResponseWriter, r *http.Request, msg core.UserMessage, statusCode int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("HX-Retarget", "#flash")
	w.Header().Set("HX-Reswap", "innerHTML")
	w.Header().Set("X-Error-Status", http.StatusText(statusCode))
	w.WriteHeader(http.StatusOK)
	_ = views.ErrorAlert(msg.Message, msg.Action, msg.Code).Render(r.Context(), w)
}

// isHTMX checks if the request is an HTMX request.
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	contentType := r.Header.Get("Content-Type")

	if strings.Contains(accept, "application/json") {
		return true
	}
	return strings.Contains(contentType, "application/json")
}
