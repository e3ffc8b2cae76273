package datatable

import (
	"slices"
)

// Query is everything besides the records and columns that shapes a view.
type Query struct {
	Search  string
	Filter  string
	Filters []FilterOption
	Sort    SortState
}

// Apply runs search, then the named filter, then the sort, and returns a new
// slice. Neither records nor columns are modified, and records keep their
// relative order wherever no sort decides otherwise.
func Apply(records []Record, columns []Column, q Query) []Record {
	return pick(records, positions(records, columns, q))
}

// positions is Apply expressed as indexes into records, in view order.
func positions(records []Record, columns []Column, q Query) []int {
	out := make([]int, 0, len(records))

	needle := normalizeQuery(q.Search)
	for i, rec := range records {
		if needle != "" && !matchesQuery(rec, columns, needle) {
			continue
		}
		out = append(out, i)
	}

	if pred := activePredicate(q.Filters, q.Filter); pred != nil {
		out = slices.DeleteFunc(out, func(i int) bool { return !pred(records[i]) })
	}

	if q.Sort.Active() {
		if _, ok := findColumn(columns, q.Sort.Key); ok {
			key, desc := q.Sort.Key, q.Sort.Direction == Descending
			slices.SortStableFunc(out, func(i, j int) int {
				c := Compare(key, records[i][key], records[j][key])
				if desc {
					return -c
				}
				return c
			})
		}
	}

	return out
}

func pick(records []Record, idx []int) []Record {
	out := make([]Record, len(idx))
	for n, i := range idx {
		out[n] = records[i]
	}
	return out
}

// Engine memoizes Apply on its inputs. Records, columns and filter options
// are replaced through setters, which invalidate the cached view.
//
// An Engine is owned by a single table and is not safe for concurrent use.
type Engine struct {
	records []Record
	columns []Column
	filters []FilterOption
	gen     uint64

	memo struct {
		valid  bool
		gen    uint64
		key    memoKey
		result []int
	}
}

type memoKey struct {
	search string
	filter string
	sort   SortState
}

// NewEngine returns an engine over the given columns and filter options.
func NewEngine(columns []Column, filters []FilterOption) *Engine {
	return &Engine{columns: columns, filters: filters}
}

// SetRecords replaces the source records.
func (e *Engine) SetRecords(records []Record) {
	e.records = records
	e.gen++
}

// SetColumns replaces the column descriptors.
func (e *Engine) SetColumns(columns []Column) {
	e.columns = columns
	e.gen++
}

// SetFilters replaces the filter options.
func (e *Engine) SetFilters(filters []FilterOption) {
	e.filters = filters
	e.gen++
}

// Records returns the source records.
func (e *Engine) Records() []Record {
	return e.records
}

// Columns returns the column descriptors.
func (e *Engine) Columns() []Column {
	return e.columns
}

// Filters returns the filter options.
func (e *Engine) Filters() []FilterOption {
	return e.filters
}

// Run returns the view for the given search, filter and sort, reusing the
// previous computation when nothing changed. The returned slice is always a
// fresh copy.
func (e *Engine) Run(search, filter string, sort SortState) []Record {
	return pick(e.records, e.Positions(search, filter, sort))
}

// Positions is Run as indexes into Records. A row without an id is known by
// its position here, which does not move when the view is searched or sorted.
func (e *Engine) Positions(search, filter string, sort SortState) []int {
	key := memoKey{search: normalizeQuery(search), filter: filter, sort: sort}
	if e.memo.valid && e.memo.gen == e.gen && e.memo.key == key {
		return slices.Clone(e.memo.result)
	}

	result := positions(e.records, e.columns, Query{
		Search:  search,
		Filter:  filter,
		Filters: e.filters,
		Sort:    sort,
	})

	e.memo.valid = true
	e.memo.gen = e.gen
	e.memo.key = key
	e.memo.result = result
	return slices.Clone(result)
}
