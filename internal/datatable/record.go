package datatable

import (
	"maps"
	"strconv"
	"strings"
)

// Record is one row of a collection: field name to decoded value.
type Record map[string]any

// SearchTextField is the synthetic field callers may precompute to widen
// search beyond the declared columns. Its value must already be lower-case.
const SearchTextField = "_searchText"

// ID returns the record's stable identifier, or index when it has none.
func (r Record) ID(index int) string {
	if v, ok := r["id"]; ok && v != nil {
		if s := stringify(v); s != "" {
			return s
		}
	}
	return strconv.Itoa(index)
}

// Lookup resolves a dotted path such as "training_center.name" through
// nested objects.
func (r Record) Lookup(path string) (any, bool) {
	var cur any = map[string]any(r)
	for _, part := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the display label of the field at path.
func (r Record) String(path string) string {
	v, _ := r.Lookup(path)
	return DisplayLabel(v)
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// AttachSearchText returns copies of records with SearchTextField set to the
// lower-cased, space-joined labels of the given paths. The input is not
// modified.
func AttachSearchText(records []Record, paths ...string) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		parts := make([]string, 0, len(paths))
		for _, p := range paths {
			v, ok := rec.Lookup(p)
			if !ok || v == nil {
				continue
			}
			if arr, ok := asArray(v); ok {
				for _, el := range arr {
					if s := DisplayLabel(el); s != "" {
						parts = append(parts, s)
					}
				}
				continue
			}
			if s := DisplayLabel(v); s != "" {
				parts = append(parts, s)
			}
		}
		c := rec.Clone()
		if c == nil {
			c = Record{}
		}
		c[SearchTextField] = strings.ToLower(strings.Join(parts, " "))
		out[i] = c
	}
	return out
}

// Records converts decoded JSON objects into records.
func Records(items []map[string]any) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = Record(it)
	}
	return out
}
