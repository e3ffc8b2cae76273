package datatable

import "strings"

// normalizeQuery trims and lower-cases a query. An empty result disables
// the search stage.
func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// matchesQuery reports whether rec contains needle (already normalized),
// first through its precomputed search text and then through any column.
func matchesQuery(rec Record, columns []Column, needle string) bool {
	if st, ok := rec[SearchTextField].(string); ok && strings.Contains(st, needle) {
		return true
	}
	for _, col := range columns {
		if valueContains(rec[col.Accessor], needle) {
			return true
		}
	}
	return false
}

// valueContains applies the type-aware substring match to a single value.
func valueContains(v any, needle string) bool {
	if v == nil {
		return false
	}
	if d, ok := v.(Displayable); ok {
		return strings.Contains(strings.ToLower(d.DisplayString()), needle)
	}
	if obj, ok := asObject(v); ok {
		return strings.Contains(strings.ToLower(jsonString(obj)), needle)
	}
	if arr, ok := asArray(v); ok {
		for _, el := range arr {
			s := "null"
			if el != nil {
				s = stringify(el)
			}
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(stringify(v)), needle)
}
