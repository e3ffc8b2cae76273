package datatable

import (
	"cmp"
	"strings"
)

// Direction is the sort order of the active column.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection accepts "desc" (any case); everything else is ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return Descending
	}
	return Ascending
}

// SortState is the single active sort. An empty Key means unsorted.
type SortState struct {
	Key       string
	Direction Direction
}

// Active reports whether a sort key is set.
func (s SortState) Active() bool {
	return s.Key != ""
}

// IsDateAccessor reports whether values under key are compared as dates.
// The decision is made from the field name alone: any accessor containing
// "date" or "Date" qualifies.
func IsDateAccessor(key string) bool {
	return strings.Contains(key, "date") || strings.Contains(key, "Date")
}

// sortValue replaces object values with the label they are ordered by.
func sortValue(v any) any {
	if d, ok := v.(Displayable); ok {
		return d.DisplayString()
	}
	if obj, ok := asObject(v); ok {
		return objectKey(obj)
	}
	return v
}

// Compare orders two raw field values found under key, ascending.
//
// Date-named keys compare chronologically when both values are present;
// unparseable dates compare equal. Two numbers compare numerically. All
// other values compare as lower-cased strings, with nil as "".
func Compare(key string, a, b any) int {
	a, b = sortValue(a), sortValue(b)

	if IsDateAccessor(key) && truthy(a) && truthy(b) {
		ta, okA := parseDate(a)
		tb, okB := parseDate(b)
		if !okA || !okB {
			return 0
		}
		return ta.Compare(tb)
	}

	if na, ok := toNumber(a); ok {
		if nb, ok := toNumber(b); ok {
			return cmp.Compare(na, nb)
		}
	}

	return strings.Compare(strings.ToLower(stringify(a)), strings.ToLower(stringify(b)))
}
