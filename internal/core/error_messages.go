// Package core provides the business logic of the accreditation console.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When operators encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// Typed errors (api.Error, FormError, the sentinels below) are matched first.
// Remaining errors are matched by substring.
//
// # Marketplace API Errors (API001-API099)
//
//	API001 - Unreachable: The marketplace API could not be reached
//	         Action: Check the network and API_BASE_URL, then retry
//	         Patterns: "connection refused", "no such host", "dial tcp"
//
//	API002 - Timeout: The marketplace API did not answer in time
//	         Action: Please try again in a few moments
//	         Patterns: "context deadline exceeded", "timeout"
//
//	API003 - Not found: The record no longer exists
//	         Action: Refresh the list; it may have been deleted
//	         Matches: api.Error with status 404
//
//	API004 - Not authorized: The console token was rejected
//	         Action: Check API_TOKEN and its role
//	         Matches: api.Error with status 401 or 403
//
//	API005 - Rejected: The API refused the submitted data
//	         Action: Correct the highlighted fields and resubmit
//	         Matches: api.Error with status 422 or 400
//
//	API006 - Server error: The marketplace API failed
//	         Action: Please try again later
//	         Matches: api.Error with status >= 500
//
//	API007 - Unexpected response: The list response had an unknown shape
//	         Action: Report this screen to support
//	         Matches: pagination.ErrUnknownShape
//
//	API008 - Cancelled: The request was cancelled
//	         Action: Please try again
//	         Patterns: "context canceled"
//
// # Form Errors (FORM001-FORM099)
//
//	FORM001 - Invalid form: Some fields need attention
//	          Action: Correct the highlighted fields
//	          Matches: *FormError
//
//	FORM002 - Required field: Required field is empty
//	          Patterns: "required field"
//
//	FORM003 - Invalid number: Patterns: "invalid number"
//	FORM004 - Invalid date: Patterns: "invalid date"
//	FORM005 - Invalid option: Patterns: "value must be one of"
//	FORM006 - Invalid email: Patterns: "invalid email"
//
// # Screen Errors (SCR001-SCR099)
//
//	SCR001 - Screen not found: Matches ErrScreenNotFound
//	SCR002 - Action not allowed: Matches ErrActionNotAllowed, datatable.ErrActionUnavailable
//	SCR003 - Row not found: Matches datatable.ErrRowNotFound
//
// # Rate Limiting (RATE001-RATE002)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit", api.Error with status 429
//
//	RATE002 - Export busy: Too many exports are running
//	          Patterns: "too many concurrent exports"
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Support staff should check application logs
// for the original technical error when operators report ERR000.
package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/pagination"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNotFound = UserMessage{
		Message: "The record no longer exists",
		Action:  "Refresh the list; it may have been deleted",
		Code:    "API003",
	}
	msgUnauthorized = UserMessage{
		Message: "The console is not authorized for this action",
		Action:  "Check API_TOKEN and its role",
		Code:    "API004",
	}
	msgRejected = UserMessage{
		Message: "The marketplace rejected the submitted data",
		Action:  "Correct the highlighted fields and resubmit",
		Code:    "API005",
	}
	msgServerError = UserMessage{
		Message: "The marketplace API failed",
		Action:  "Please try again later",
		Code:    "API006",
	}
	msgRateLimited = UserMessage{
		Message: "Too many requests",
		Action:  "Please wait a moment before trying again",
		Code:    "RATE001",
	}
)

// typedMatch maps an error type or sentinel to a user message.
type typedMatch struct {
	match func(error) bool
	msg   UserMessage
}

// typedMatches are checked before the substring patterns.
var typedMatches = []typedMatch{
	{
		match: func(err error) bool { var fe *FormError; return errors.As(err, &fe) },
		msg: UserMessage{
			Message: "Some fields need attention",
			Action:  "Correct the highlighted fields",
			Code:    "FORM001",
		},
	},
	{
		match: func(err error) bool { return errors.Is(err, ErrScreenNotFound) },
		msg: UserMessage{
			Message: "Screen not found",
			Action:  "Pick a screen from the navigation",
			Code:    "SCR001",
		},
	},
	{
		match: func(err error) bool {
			return errors.Is(err, ErrActionNotAllowed) || errors.Is(err, datatable.ErrActionUnavailable)
		},
		msg: UserMessage{
			Message: "This action is not available on this screen",
			Action:  "Use one of the buttons shown on the row",
			Code:    "SCR002",
		},
	},
	{
		match: func(err error) bool { return errors.Is(err, datatable.ErrRowNotFound) },
		msg: UserMessage{
			Message: "The row is no longer in the list",
			Action:  "Clear the search or filter, then try again",
			Code:    "SCR003",
		},
	},
	{
		match: func(err error) bool { return errors.Is(err, pagination.ErrUnknownShape) },
		msg: UserMessage{
			Message: "The marketplace returned an unexpected response",
			Action:  "Report this screen to support",
			Code:    "API007",
		},
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so more specific patterns come first.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Connectivity (API001, API002, API008)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to reach the marketplace API",
			Action:  "Check the network and API_BASE_URL, then retry",
			Code:    "API001",
		},
	},
	{
		pattern: "no such host",
		msg: UserMessage{
			Message: "Unable to reach the marketplace API",
			Action:  "Check the network and API_BASE_URL, then retry",
			Code:    "API001",
		},
	},
	{
		pattern: "dial tcp",
		msg: UserMessage{
			Message: "Unable to reach the marketplace API",
			Action:  "Check the network and API_BASE_URL, then retry",
			Code:    "API001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "The marketplace API did not answer in time",
			Action:  "Please try again in a few moments",
			Code:    "API002",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The marketplace API did not answer in time",
			Action:  "Please try again in a few moments",
			Code:    "API002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "API008",
		},
	},

	// =========================================================================
	// Form validation (FORM002-FORM006)
	// =========================================================================
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is empty",
			Action:  "Fill in every field marked as required",
			Code:    "FORM002",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format",
			Action:  "Use digits with an optional decimal point",
			Code:    "FORM003",
		},
	},
	{
		pattern: "invalid date",
		msg: UserMessage{
			Message: "Invalid date format",
			Action:  "Use YYYY-MM-DD, MM/DD/YYYY, or Jan 15, 2024",
			Code:    "FORM004",
		},
	},
	{
		pattern: "value must be one of",
		msg: UserMessage{
			Message: "Value is not in the allowed list",
			Action:  "Pick one of the listed options",
			Code:    "FORM005",
		},
	},
	{
		pattern: "invalid email",
		msg: UserMessage{
			Message: "Invalid email address",
			Action:  "Use an address like name@example.com",
			Code:    "FORM006",
		},
	},

	// =========================================================================
	// Rate Limiting (RATE001-RATE002)
	// =========================================================================
	{
		pattern: "rate limit",
		msg:     msgRateLimited,
	},
	{
		pattern: "too many concurrent exports",
		msg: UserMessage{
			Message: "Too many exports are running",
			Action:  "Wait for your other exports to finish, then retry",
			Code:    "RATE002",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Typed errors are matched first, then patterns (case-insensitive); the
// first match wins. Unmatched errors get the ERR000 fallback.
//
// Example:
//
//	err := &api.Error{Status: 404}
//	msg := MapError(err)
//	// msg.Code == "API003"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Status == http.StatusNotFound:
			return msgNotFound
		case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
			return msgUnauthorized
		case apiErr.Status == http.StatusUnprocessableEntity || apiErr.Status == http.StatusBadRequest:
			return msgRejected
		case apiErr.Status == http.StatusTooManyRequests:
			return msgRateLimited
		case apiErr.Status >= 500:
			return msgServerError
		}
	}

	for _, tm := range typedMatches {
		if tm.match(err) {
			return tm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// The original error is preserved for logging.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps a technical error to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
