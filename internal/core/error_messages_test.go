package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/pagination"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "connection refused maps correctly",
			err:         errors.New("api: GET /admin/courses: dial tcp: connection refused"),
			wantCode:    "API001",
			wantMessage: "Unable to reach the marketplace API",
		},
		{
			name:        "timeout maps correctly",
			err:         errors.New("context deadline exceeded (timeout)"),
			wantCode:    "API002",
			wantMessage: "The marketplace API did not answer in time",
		},
		{
			name:        "wrapped 404 maps to not found",
			err:         fmt.Errorf("get courses 7: %w", &api.Error{Status: 404}),
			wantCode:    "API003",
			wantMessage: "The record no longer exists",
		},
		{
			name:        "403 maps to unauthorized",
			err:         &api.Error{Status: 403, Message: "Forbidden"},
			wantCode:    "API004",
			wantMessage: "The console is not authorized for this action",
		},
		{
			name:        "422 maps to rejected",
			err:         &api.Error{Status: 422, Message: "The given data was invalid."},
			wantCode:    "API005",
			wantMessage: "The marketplace rejected the submitted data",
		},
		{
			name:        "500 maps to server error",
			err:         &api.Error{Status: 502},
			wantCode:    "API006",
			wantMessage: "The marketplace API failed",
		},
		{
			name:        "429 maps to rate limited",
			err:         &api.Error{Status: 429},
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown list shape",
			err:         fmt.Errorf("list: %w", pagination.ErrUnknownShape),
			wantCode:    "API007",
			wantMessage: "The marketplace returned an unexpected response",
		},
		{
			name:        "cancelled request",
			err:         errors.New("api: GET /acc/courses: context canceled"),
			wantCode:    "API008",
			wantMessage: "Request was cancelled",
		},
		{
			name:        "form error",
			err:         NewFormError([]ValidationError{{Field: "name", Message: "required field is empty"}}),
			wantCode:    "FORM001",
			wantMessage: "Some fields need attention",
		},
		{
			name:        "required field pattern",
			err:         errors.New("name: required field is empty"),
			wantCode:    "FORM002",
			wantMessage: "Required field is empty",
		},
		{
			name:        "invalid email pattern",
			err:         errors.New("invalid email address"),
			wantCode:    "FORM006",
			wantMessage: "Invalid email address",
		},
		{
			name:        "screen not found",
			err:         fmt.Errorf("%w: nope", ErrScreenNotFound),
			wantCode:    "SCR001",
			wantMessage: "Screen not found",
		},
		{
			name:        "action not allowed",
			err:         datatable.ErrActionUnavailable,
			wantCode:    "SCR002",
			wantMessage: "This action is not available on this screen",
		},
		{
			name:        "row not found",
			err:         fmt.Errorf("%w: 9", datatable.ErrRowNotFound),
			wantCode:    "SCR003",
			wantMessage: "The row is no longer in the list",
		},
		{
			name:        "rate limit maps correctly",
			err:         errors.New("rate limit exceeded"),
			wantCode:    "RATE001",
			wantMessage: "Too many requests",
		},
		{
			name:        "unknown error returns default",
			err:         errors.New("some random internal error"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "unhandled status falls through to default",
			err:         &api.Error{Status: 418},
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
		{
			name:        "case insensitive matching",
			err:         errors.New("DIAL TCP 10.0.0.1:443"),
			wantCode:    "API001",
			wantMessage: "Unable to reach the marketplace API",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := &api.Error{Status: 404}
	result := FormatUserError(err)

	expected := "The record no longer exists (Code: API003). Refresh the list; it may have been deleted"
	if result != expected {
		t.Errorf("FormatUserError() = %q, want %q", result, expected)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestIsUserFacing(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "nil error is not user facing",
			err:  nil,
			want: false,
		},
		{
			name: "known error is user facing",
			err:  errors.New("connection refused"),
			want: true,
		},
		{
			name: "unknown error is not user facing",
			err:  errors.New("random internal error xyz"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsUserFacing(tt.err)
			if got != tt.want {
				t.Errorf("IsUserFacing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewUserError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if got := NewUserError(nil); got != nil {
			t.Errorf("NewUserError(nil) = %v, want nil", got)
		}
	})

	t.Run("wraps technical error with user message", func(t *testing.T) {
		techErr := &api.Error{Status: 401}
		userErr := NewUserError(techErr)

		if userErr.Error() != "The console is not authorized for this action" {
			t.Errorf("Error() = %q, want user message", userErr.Error())
		}

		var apiErr *api.Error
		if !errors.As(userErr, &apiErr) {
			t.Error("Unwrap() should return original error")
		}
	})
}
