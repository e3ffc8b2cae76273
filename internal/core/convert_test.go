package core

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
)

// ----------------------------------------------------------------------------
// ToPg* Tests
// ----------------------------------------------------------------------------

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue float64
	}{
		{name: "positive integer", input: "123", wantValid: true, wantValue: 123},
		{name: "negative integer", input: "-456", wantValid: true, wantValue: -456},
		{name: "decimal number", input: "123.45", wantValid: true, wantValue: 123.45},
		{name: "leading decimal point", input: ".99", wantValid: true, wantValue: 0.99},
		{name: "dollar sign", input: "$1,234.56", wantValid: true, wantValue: 1234.56},
		{name: "euro sign", input: "€1234.56", wantValid: true, wantValue: 1234.56},
		{name: "accounting negative", input: "(50.00)", wantValid: true, wantValue: -50},
		{name: "scientific notation not supported", input: "1.5e3", wantValid: false},
		{name: "empty string", input: "", wantValid: false},
		{name: "whitespace only", input: "   ", wantValid: false},
		{name: "letters", input: "abc", wantValid: false},
		{name: "mixed", input: "12abc", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgNumeric(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgNumeric(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if !tt.wantValid {
				return
			}
			f, err := got.Float64Value()
			if err != nil {
				t.Fatalf("Float64Value: %v", err)
			}
			if f.Float64 != tt.wantValue {
				t.Errorf("ToPgNumeric(%q) = %v, want %v", tt.input, f.Float64, tt.wantValue)
			}
		})
	}
}

func TestToPgDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		input     string
		wantValid bool
	}{
		{name: "ISO format", input: "2024-03-15", wantValid: true},
		{name: "US format", input: "3/15/2024", wantValid: true},
		{name: "US padded", input: "03/15/2024", wantValid: true},
		{name: "slash ISO", input: "2024/03/15", wantValid: true},
		{name: "month name", input: "Mar 15, 2024", wantValid: true},
		{name: "day month year", input: "15 Mar 2024", wantValid: true},
		{name: "compact", input: "20240315", wantValid: true},
		{name: "two digit year", input: "3/15/24", wantValid: true},
		{name: "empty", input: "", wantValid: false},
		{name: "garbage", input: "not a date", wantValid: false},
		{name: "impossible month", input: "2024-13-01", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToPgDate(tt.input)
			if got.Valid != tt.wantValid {
				t.Fatalf("ToPgDate(%q).Valid = %v, want %v", tt.input, got.Valid, tt.wantValid)
			}
			if tt.wantValid && !got.Time.Equal(want) {
				t.Errorf("ToPgDate(%q) = %v, want %v", tt.input, got.Time, want)
			}
		})
	}
}

func TestToPgDate_TwoDigitYearPivot(t *testing.T) {
	far := (time.Now().Year() + TwoDigitYearPivot + 5) % 100
	input := "1/1/" + twoDigits(far)
	got := ToPgDate(input)
	if !got.Valid {
		t.Fatalf("ToPgDate(%q) invalid", input)
	}
	if got.Time.Year() > time.Now().Year()+TwoDigitYearPivot {
		t.Errorf("ToPgDate(%q) year = %d, want previous century", input, got.Time.Year())
	}
}

func twoDigits(n int) string {
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}

func TestToPgBool(t *testing.T) {
	tests := []struct {
		input     string
		wantValid bool
		wantBool  bool
	}{
		{"true", true, true},
		{"Yes", true, true},
		{"1", true, true},
		{"on", true, true},
		{"false", true, false},
		{"N", true, false},
		{"0", true, false},
		{"off", true, false},
		{"", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ToPgBool(tt.input)
			if got.Valid != tt.wantValid || got.Bool != tt.wantBool {
				t.Errorf("ToPgBool(%q) = {%v %v}, want {%v %v}", tt.input, got.Bool, got.Valid, tt.wantBool, tt.wantValid)
			}
		})
	}
}

func TestToPgText(t *testing.T) {
	if got := ToPgText("  hello  "); !got.Valid || got.String != "hello" {
		t.Errorf("ToPgText trims: got %+v", got)
	}
	if got := ToPgText("   "); got.Valid {
		t.Errorf("ToPgText whitespace should be invalid, got %+v", got)
	}
}

func TestToPgUUID(t *testing.T) {
	id := "6f1c1f5e-7b1a-4d0e-9d2c-3a6f3c2b1a00"
	got := ToPgUUID(id)
	if !got.Valid {
		t.Fatal("ToPgUUID should accept a valid uuid")
	}
	if PgUUIDToString(got) != id {
		t.Errorf("round trip = %q, want %q", PgUUIDToString(got), id)
	}
	if ToPgUUID("nope").Valid {
		t.Error("ToPgUUID should reject garbage")
	}
	if PgUUIDToString(ToPgUUID("")) != "" {
		t.Error("invalid uuid should stringify empty")
	}
}

// ----------------------------------------------------------------------------
// Form conversion Tests
// ----------------------------------------------------------------------------

func courseFields() []FieldSpec {
	return []FieldSpec{
		{Name: "name", Type: FieldText, Required: true},
		{Name: "level", Type: FieldEnum, EnumValues: []string{"Beginner", "Advanced"}},
		{Name: "price", Type: FieldNumeric},
		{Name: "hours", Type: FieldNumeric},
		{Name: "starts_on", Type: FieldDate},
		{Name: "is_active", Type: FieldBool},
		{Name: "contact_email", Type: FieldEmail},
		{Name: "description", Type: FieldTextArea},
	}
}

func TestConvertForm(t *testing.T) {
	form := url.Values{
		"name":          {"  First Aid  "},
		"level":         {"advanced"},
		"price":         {"$1,250.50"},
		"hours":         {"16"},
		"starts_on":     {"3/15/2024"},
		"is_active":     {"on"},
		"contact_email": {"Trainer@Example.com"},
	}

	payload, err := ConvertForm(courseFields(), form, false)
	if err != nil {
		t.Fatalf("ConvertForm: %v", err)
	}

	want := map[string]any{
		"name":          "First Aid",
		"level":         "Advanced",
		"price":         1250.5,
		"hours":         int64(16),
		"starts_on":     "2024-03-15",
		"is_active":     true,
		"contact_email": "trainer@example.com",
	}
	for k, v := range want {
		if payload[k] != v {
			t.Errorf("payload[%q] = %#v, want %#v", k, payload[k], v)
		}
	}
	if _, ok := payload["description"]; ok {
		t.Error("blank optional field should be omitted on create")
	}
}

func TestConvertForm_IncludeEmpty(t *testing.T) {
	form := url.Values{"name": {"First Aid"}}
	payload, err := ConvertForm(courseFields(), form, true)
	if err != nil {
		t.Fatalf("ConvertForm: %v", err)
	}
	v, ok := payload["description"]
	if !ok || v != nil {
		t.Errorf("blank field on update = %#v (present %v), want nil", v, ok)
	}
	if payload["is_active"] != false {
		t.Errorf("unchecked checkbox = %#v, want false", payload["is_active"])
	}
}

func TestConvertForm_Invalid(t *testing.T) {
	form := url.Values{"price": {"cheap"}, "contact_email": {"not-an-email"}}
	_, err := ConvertForm(courseFields(), form, false)

	var fe *FormError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *FormError", err)
	}
	for _, field := range []string{"name", "price", "contact_email"} {
		if fe.Fields[field] == "" {
			t.Errorf("missing error for %q in %v", field, fe.Fields)
		}
	}
}

func TestFormValues(t *testing.T) {
	rec := datatable.Record{
		"name":      "First Aid",
		"price":     99.5,
		"starts_on": "2024-03-15T00:00:00Z",
		"is_active": true,
		"level":     nil,
	}
	got := FormValues(courseFields(), rec)

	if got.Get("name") != "First Aid" {
		t.Errorf("name = %q", got.Get("name"))
	}
	if got.Get("price") != "99.5" {
		t.Errorf("price = %q, want 99.5", got.Get("price"))
	}
	if got.Get("starts_on") != "2024-03-15" {
		t.Errorf("starts_on = %q, want 2024-03-15", got.Get("starts_on"))
	}
	if got.Get("is_active") != "true" {
		t.Errorf("is_active = %q, want true", got.Get("is_active"))
	}
	if _, ok := got["level"]; ok {
		t.Error("nil fields should be omitted")
	}
}
