package datatable

import "strings"

// AllFilter is the default filter option value; its predicate keeps every
// record.
const AllFilter = "all"

// Predicate decides whether a record stays in the view.
type Predicate func(Record) bool

// FilterOption is one entry of the filter dropdown.
type FilterOption struct {
	Value     string
	Label     string
	Predicate Predicate
}

// IsFilterActive reports whether value selects a predicate, i.e. is neither
// empty nor AllFilter.
func IsFilterActive(value string) bool {
	return value != "" && value != AllFilter
}

// activePredicate returns the predicate of the selected option, or nil when
// the selection is the default or has no predicate.
func activePredicate(options []FilterOption, value string) Predicate {
	if !IsFilterActive(value) {
		return nil
	}
	for _, opt := range options {
		if opt.Value == value {
			return opt.Predicate
		}
	}
	return nil
}

// FieldEquals matches records whose field label equals value, ignoring case.
func FieldEquals(field, value string) Predicate {
	return func(r Record) bool {
		return strings.EqualFold(r.String(field), value)
	}
}

// FieldIn matches records whose field label is one of values, ignoring case.
func FieldIn(field string, values ...string) Predicate {
	return func(r Record) bool {
		got := r.String(field)
		for _, v := range values {
			if strings.EqualFold(got, v) {
				return true
			}
		}
		return false
	}
}

// FieldTruthy matches records whose field is present and truthy.
func FieldTruthy(field string) Predicate {
	return func(r Record) bool {
		v, ok := r.Lookup(field)
		return ok && truthy(v)
	}
}

// StatusOptions builds the usual "All" plus one option per status value.
func StatusOptions(field string, statuses ...string) []FilterOption {
	opts := []FilterOption{{Value: AllFilter, Label: "All"}}
	for _, s := range statuses {
		opts = append(opts, FilterOption{
			Value:     s,
			Label:     titleWords(s),
			Predicate: FieldEquals(field, s),
		})
	}
	return opts
}

// titleWords turns "under_review" into "Under Review".
func titleWords(s string) string {
	words := strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
