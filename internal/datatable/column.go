package datatable

import "github.com/a-h/templ"

// Column describes one displayed column. Columns are ordered for display only;
// order has no effect on search, filtering or sorting.
type Column struct {
	Header   string
	Accessor string

	// DisableSort makes the header inert. Columns sort by default.
	DisableSort bool

	// Render overrides the default text cell.
	Render CellRenderer
}

// Sortable reports whether clicking the header changes the sort.
func (c Column) Sortable() bool {
	return !c.DisableSort
}

// RowContext is passed to cell renderers.
type RowContext struct {
	ID         string
	Index      int
	IsExpanded bool

	// ToggleExpand is the request that flips IsExpanded. Zero when the
	// table is not expandable or is rendered outside a browser.
	ToggleExpand Link
}

// CellRenderer renders one cell.
type CellRenderer interface {
	RenderCell(value any, rec Record, row RowContext) templ.Component
}

// CellRendererFunc adapts a function to CellRenderer.
type CellRendererFunc func(value any, rec Record, row RowContext) templ.Component

// RenderCell implements CellRenderer.
func (f CellRendererFunc) RenderCell(value any, rec Record, row RowContext) templ.Component {
	return f(value, rec, row)
}

// PlainTexter is implemented by renderers that also have a text form, used
// by CSV export and terminal output.
type PlainTexter interface {
	PlainText(value any, rec Record) string
}

// CellText returns the plain text of a column for rec.
func CellText(col Column, rec Record) string {
	v := rec[col.Accessor]
	if pt, ok := col.Render.(PlainTexter); ok {
		return pt.PlainText(v, rec)
	}
	return DisplayLabel(v)
}

func findColumn(columns []Column, accessor string) (Column, bool) {
	for _, c := range columns {
		if c.Accessor == accessor {
			return c, true
		}
	}
	return Column{}, false
}
