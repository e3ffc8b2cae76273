package datatable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Displayable is implemented by values that know their own display label.
// Object-valued fields use it for sorting and default cell text.
type Displayable interface {
	DisplayString() string
}

// DisplayLabel returns the text a user sees for v.
//
// Objects resolve to their "name", then "title", then their JSON encoding.
// Arrays join their element labels with ", ". nil is the empty string.
func DisplayLabel(v any) string {
	if v == nil {
		return ""
	}
	if d, ok := v.(Displayable); ok {
		return d.DisplayString()
	}
	if obj, ok := asObject(v); ok {
		return stringify(objectKey(obj))
	}
	if arr, ok := asArray(v); ok {
		parts := make([]string, 0, len(arr))
		for _, el := range arr {
			if s := DisplayLabel(el); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return stringify(v)
}

// objectKey picks the value an object is compared and displayed by.
func objectKey(obj map[string]any) any {
	if v, ok := obj["name"]; ok && v != nil {
		return v
	}
	if v, ok := obj["title"]; ok && v != nil {
		return v
	}
	return jsonString(obj)
}

// asObject reports whether v is a plain object (not an array).
func asObject(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case Record:
		return map[string]any(t), true
	}
	return nil, false
}

// asArray reports whether v is an array and returns its elements.
func asArray(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	case []Record:
		out := make([]any, len(t))
		for i, r := range t {
			out[i] = r
		}
		return out, true
	case []byte, json.RawMessage:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// stringify converts v the way a loosely typed UI would print it.
// nil becomes the empty string.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return formatNumber(t)
	case float32:
		return formatNumber(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case json.Number:
		if f, ok := toNumber(t); ok {
			return formatNumber(f)
		}
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	case Displayable:
		return t.DisplayString()
	case fmt.Stringer:
		return t.String()
	}
	if _, ok := asObject(v); ok {
		return "[object Object]"
	}
	if arr, ok := asArray(v); ok {
		parts := make([]string, len(arr))
		for i, el := range arr {
			parts[i] = stringify(el)
		}
		return strings.Join(parts, ",")
	}
	if n, ok := toNumber(v); ok {
		return formatNumber(n)
	}
	return fmt.Sprint(v)
}

// formatNumber prints a float without trailing zeros or exponent for the
// usual magnitudes.
func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// jsonString encodes v without HTML escaping. Encoding failures yield "".
func jsonString(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// toNumber reports whether v holds a number. Numeric strings are not numbers.
func toNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case int32:
		return float64(t), true
	case int16:
		return float64(t), true
	case int8:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint8:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	return 0, false
}

// truthy mirrors the presence check the date comparator applies.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	}
	if n, ok := toNumber(v); ok {
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// parseDate interprets v as a point in time. Numbers are epoch milliseconds.
func parseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts, true
			}
		}
		return time.Time{}, false
	}
	if n, ok := toNumber(v); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
		return time.UnixMilli(int64(n)).UTC(), true
	}
	return time.Time{}, false
}
