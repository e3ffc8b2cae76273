package datatable

import (
	"net/url"
	"slices"
	"strings"
)

// Query parameter names used to carry table state between requests.
const (
	ParamSearch   = "q"
	ParamFilter   = "filter"
	ParamMenu     = "menu"
	ParamSort     = "sort"
	ParamDir      = "dir"
	ParamExpanded = "open"

	// ParamPointer reports a document pointer-down relative to the filter
	// menu; it is an event, not state, and is never encoded.
	ParamPointer = "pointer"
)

// Values of ParamPointer.
const (
	PointerInside  = "inside"
	PointerOutside = "outside"
)

// State is the transient UI state of a table.
type State struct {
	Search         string
	Filter         string
	FilterMenuOpen bool
	Sort           SortState
	Expanded       []string // sorted, unique row ids
}

// NewState returns the initial state for a table whose default filter is
// defaultFilter ("" means AllFilter).
func NewState(defaultFilter string) State {
	if defaultFilter == "" {
		defaultFilter = AllFilter
	}
	return State{Filter: defaultFilter}
}

// StateFromQuery restores a state from URL query values.
func StateFromQuery(v url.Values, defaultFilter string) State {
	s := NewState(defaultFilter)
	s.Search = v.Get(ParamSearch)
	if f := v.Get(ParamFilter); f != "" {
		s.Filter = f
	}
	s.FilterMenuOpen = v.Get(ParamMenu) == "1"
	if key := strings.TrimSpace(v.Get(ParamSort)); key != "" {
		s.Sort = SortState{Key: key, Direction: ParseDirection(v.Get(ParamDir))}
	}
	for _, id := range v[ParamExpanded] {
		if id != "" {
			s.Expanded = append(s.Expanded, id)
		}
	}
	slices.Sort(s.Expanded)
	s.Expanded = slices.Compact(s.Expanded)
	return s
}

// Values encodes the state as URL query values. Empty fields are omitted.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Search != "" {
		v.Set(ParamSearch, s.Search)
	}
	if s.Filter != "" {
		v.Set(ParamFilter, s.Filter)
	}
	if s.FilterMenuOpen {
		v.Set(ParamMenu, "1")
	}
	if s.Sort.Active() {
		v.Set(ParamSort, s.Sort.Key)
		v.Set(ParamDir, s.Sort.Direction.String())
	}
	for _, id := range s.Expanded {
		v.Add(ParamExpanded, id)
	}
	return v
}

// Encode returns the state as a query string.
func (s State) Encode() string {
	return s.Values().Encode()
}

// Searching reports whether a non-blank search is active.
func (s State) Searching() bool {
	return normalizeQuery(s.Search) != ""
}

// Narrowed reports whether a search is active or the selected filter differs
// from the table's default. An empty filter means the default, and an empty
// default means AllFilter.
func (s State) Narrowed(defaultFilter string) bool {
	if s.Searching() {
		return true
	}
	if defaultFilter == "" {
		defaultFilter = AllFilter
	}
	return s.Filter != "" && s.Filter != defaultFilter
}

// IsExpanded reports whether row id is expanded.
func (s State) IsExpanded(id string) bool {
	_, found := slices.BinarySearch(s.Expanded, id)
	return found
}

// WithSearch returns s with the search text replaced.
func (s State) WithSearch(q string) State {
	s.Search = q
	return s
}

// WithFilter returns s with value selected and the menu closed.
func (s State) WithFilter(value string) State {
	s.Filter = value
	s.FilterMenuOpen = false
	return s
}

// WithMenu returns s with the filter menu open or closed.
func (s State) WithMenu(open bool) State {
	s.FilterMenuOpen = open
	return s
}

// WithSortClick returns the state after the header of accessor is clicked.
// The same key flips direction, a new key sorts ascending, and unsortable or
// unknown columns leave the state unchanged.
func (s State) WithSortClick(columns []Column, accessor string) State {
	col, ok := findColumn(columns, accessor)
	if !ok || !col.Sortable() {
		return s
	}
	if s.Sort.Key == accessor {
		if s.Sort.Direction == Ascending {
			s.Sort.Direction = Descending
		} else {
			s.Sort.Direction = Ascending
		}
		return s
	}
	s.Sort = SortState{Key: accessor, Direction: Ascending}
	return s
}

// WithExpandToggled returns s with row id's expanded flag flipped.
func (s State) WithExpandToggled(id string) State {
	expanded := slices.Clone(s.Expanded)
	if i, found := slices.BinarySearch(expanded, id); found {
		expanded = slices.Delete(expanded, i, i+1)
	} else {
		expanded = slices.Insert(expanded, i, id)
	}
	s.Expanded = expanded
	return s
}
