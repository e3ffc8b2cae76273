package core

// convert.go turns submitted form values into API payloads and back.
//
// Operators type dates, amounts and booleans in many shapes:
//   - Multiple date formats (US, EU, ISO, etc.)
//   - Currency symbols and thousand separators in numbers
//   - Various boolean representations (yes/no, true/false, 1/0)
//
// The ToPg* functions parse those into pgtype values with Valid=false for
// empty/invalid input. The same values back the audit store columns.

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

// numericRegex validates that a string is a valid numeric format after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// PayloadDateLayout is the date format the marketplace API accepts.
const PayloadDateLayout = "2006-01-02"

// Date layouts split by year format for proper 2-digit year handling
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
		time.RFC3339,
	}
)

// ToPgText converts a string to pgtype.Text.
// Returns invalid if the string is empty or only whitespace.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts a string to pgtype.Date.
// Supports multiple date formats and handles 2-digit years with pivot.
func ToPgDate(s string) pgtype.Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Date{Valid: false}
	}

	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
func ToPgNumeric(s string) pgtype.Numeric {
	s = cleanNumber(s)
	if s == "" || !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	var n pgtype.Numeric
	if err := n.Scan(s); err != nil {
		return pgtype.Numeric{Valid: false}
	}
	return n
}

func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}
	return s
}

// ToPgBool converts a string to pgtype.Bool.
// Accepts various representations: true/false, yes/no, t/f, y/n, 1/0, on/off.
func ToPgBool(s string) pgtype.Bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return pgtype.Bool{Valid: false}
	}

	switch s {
	case "true", "t", "yes", "y", "1", "on":
		return pgtype.Bool{Bool: true, Valid: true}
	case "false", "f", "no", "n", "0", "off":
		return pgtype.Bool{Bool: false, Valid: true}
	default:
		return pgtype.Bool{Valid: false}
	}
}

// ToPgUUID converts a string to pgtype.UUID.
// Returns invalid if the string is empty or not a valid UUID.
func ToPgUUID(s string) pgtype.UUID {
	if s == "" {
		return pgtype.UUID{Valid: false}
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{Valid: false}
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}
}

// PgUUIDToString converts a pgtype.UUID to its string representation.
// Returns empty string if the UUID is invalid.
func PgUUIDToString(u pgtype.UUID) string {
	if !u.Valid {
		return ""
	}
	return uuid.UUID(u.Bytes).String()
}

// ConvertForm validates form against specs and builds the JSON payload for a
// create or update call. Blank optional fields are omitted unless
// includeEmpty is set, in which case they are sent as null so the API clears
// them. The returned error is a *FormError when any field is invalid.
func ConvertForm(specs []FieldSpec, form url.Values, includeEmpty bool) (map[string]any, error) {
	result := ValidateForm(specs, form)
	if !result.Valid {
		return nil, NewFormError(result.Errors)
	}

	payload := make(map[string]any, len(specs))
	for _, spec := range specs {
		raw := normalizedValue(spec, form)
		if raw == "" {
			if spec.Type == FieldBool {
				// Unchecked checkboxes are not submitted.
				payload[spec.Name] = false
			} else if includeEmpty {
				payload[spec.Name] = nil
			}
			continue
		}

		v, err := payloadValue(spec, raw)
		if err != nil {
			return nil, NewFormError([]ValidationError{{Field: spec.Name, Value: raw, Message: err.Error()}})
		}
		payload[spec.Name] = v
	}
	return payload, nil
}

func payloadValue(spec FieldSpec, raw string) (any, error) {
	switch spec.Type {
	case FieldNumeric:
		n := ToPgNumeric(raw)
		f, err := n.Float64Value()
		if err != nil || !f.Valid {
			return nil, fmt.Errorf("invalid number format")
		}
		if f.Float64 == float64(int64(f.Float64)) && !strings.Contains(raw, ".") {
			return int64(f.Float64), nil
		}
		return f.Float64, nil
	case FieldDate:
		d := ToPgDate(raw)
		if !d.Valid {
			return nil, fmt.Errorf("invalid date format")
		}
		return d.Time.Format(PayloadDateLayout), nil
	case FieldBool:
		return ToPgBool(raw).Bool, nil
	case FieldEnum:
		for _, ev := range spec.EnumValues {
			if strings.EqualFold(ev, raw) {
				return ev, nil
			}
		}
		return raw, nil
	case FieldEmail:
		return strings.ToLower(raw), nil
	default:
		return raw, nil
	}
}

// FormValues renders rec as form input values for an edit form.
func FormValues(specs []FieldSpec, rec datatable.Record) url.Values {
	out := make(url.Values, len(specs))
	for _, spec := range specs {
		v, ok := rec.Lookup(spec.Name)
		if !ok || v == nil {
			continue
		}
		switch spec.Type {
		case FieldDate:
			if d := ToPgDate(rec.String(spec.Name)); d.Valid {
				out.Set(spec.Name, d.Time.Format(PayloadDateLayout))
				continue
			}
		case FieldBool:
			out.Set(spec.Name, strconv.FormatBool(truthyValue(v)))
			continue
		}
		out.Set(spec.Name, rec.String(spec.Name))
	}
	return out
}

func truthyValue(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return ToPgBool(b).Bool
	default:
		return fmt.Sprint(v) == "1"
	}
}

// normalizedValue returns the trimmed, normalized form value for spec.
func normalizedValue(spec FieldSpec, form url.Values) string {
	raw := strings.TrimSpace(form.Get(spec.Name))
	if spec.Normalizer != nil && raw != "" {
		raw = spec.Normalizer(raw)
	}
	return raw
}
