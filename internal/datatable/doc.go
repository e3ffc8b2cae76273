// Package datatable is the tabular data engine behind every list screen in
// the console.
//
// Screens hand a table their records, column descriptors, filter options and
// row callbacks. The engine narrows the records in a fixed order: free-text
// search, then the selected filter, then a single-column stable sort. The
// Table type owns the transient UI state (search text, filter menu, sort,
// expanded rows), decides which row actions are shown, and renders itself as
// a templ component whose controls issue HTMX requests carrying the next
// state in the URL.
//
// Nothing here performs I/O or logs. Malformed or missing field values are
// coerced, never reported.
package datatable
