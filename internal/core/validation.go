package core

// validation.go checks submitted create/edit forms before they reach the API.
//
// ValidateForm reports every problem at once so the form can highlight all
// fields in one round trip. Validation errors carry the field name, the
// invalid value, and a human-readable message.

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
)

// ValidationError represents a single validation error for a field.
type ValidationError struct {
	Field   string // Field name
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationResult contains the result of validating a form.
type ValidationResult struct {
	Valid  bool              // True if all validations passed
	Errors []ValidationError // List of validation errors (empty if Valid)
}

// FieldErrors indexes errors by field name, first error wins.
func (r ValidationResult) FieldErrors() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

// FormError is returned when a submitted form fails validation, either
// locally or by the API's 422 response.
type FormError struct {
	Fields  map[string]string
	Message string
}

// NewFormError builds a FormError from validation errors.
func NewFormError(errs []ValidationError) *FormError {
	return &FormError{
		Fields:  ValidationResult{Errors: errs}.FieldErrors(),
		Message: fmt.Sprintf("%d field(s) need attention", len(errs)),
	}
}

func (e *FormError) Error() string {
	if len(e.Fields) == 1 {
		for f, m := range e.Fields {
			return fmt.Sprintf("%s: %s", f, m)
		}
	}
	return e.Message
}

// ValidateForm validates every spec against form.
func ValidateForm(specs []FieldSpec, form url.Values) ValidationResult {
	result := ValidationResult{Valid: true}

	for _, spec := range specs {
		raw := normalizedValue(spec, form)

		if raw == "" {
			if spec.Required && spec.Type != FieldBool {
				result.Valid = false
				result.Errors = append(result.Errors, ValidationError{
					Field:   spec.Name,
					Message: "required field is empty",
				})
			}
			continue
		}

		if err := ValidateCell(raw, spec); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   spec.Name,
				Value:   raw,
				Message: err.Error(),
			})
		}
	}

	return result
}

// ValidateCell validates a single value against a field specification.
// Returns nil if valid, or an error describing the problem.
func ValidateCell(value string, spec FieldSpec) error {
	if value == "" {
		return nil // Empty values are handled by the required check
	}

	switch spec.Type {
	case FieldNumeric:
		if !ToPgNumeric(value).Valid {
			return fmt.Errorf("invalid number format")
		}
	case FieldDate:
		if !ToPgDate(value).Valid {
			return fmt.Errorf("invalid date format (use YYYY-MM-DD or similar)")
		}
	case FieldBool:
		if !ToPgBool(value).Valid {
			return fmt.Errorf("must be yes/no, true/false, or 1/0")
		}
	case FieldEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return fmt.Errorf("invalid email address")
		}
	case FieldEnum:
		if len(spec.EnumValues) > 0 {
			for _, ev := range spec.EnumValues {
				if strings.EqualFold(ev, value) {
					return nil
				}
			}
			return fmt.Errorf("value must be one of: %s", strings.Join(spec.EnumValues, ", "))
		}
	}
	return nil
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldEnum:
		return "enum"
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "number"
	case FieldBool:
		return "boolean"
	case FieldEmail:
		return "email"
	case FieldTextArea:
		return "text"
	default:
		return "unknown"
	}
}

// InputType returns the HTML input type for a field.
func (f FieldSpec) InputType() string {
	switch f.Type {
	case FieldDate:
		return "date"
	case FieldNumeric:
		return "number"
	case FieldEmail:
		return "email"
	case FieldBool:
		return "checkbox"
	default:
		return "text"
	}
}

// TypeName returns a human-readable name of the field's type.
func (f FieldSpec) TypeName() string {
	return fieldTypeName(f.Type)
}
