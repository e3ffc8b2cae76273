package views

import (
	"slices"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// DetailParams configures the record detail view.
type DetailParams struct {
	Record datatable.Record
	// Columns are shown first, with their renderers; every other field of
	// the record follows in key order.
	Columns []datatable.Column
	Actions []HeaderAction
}

// Detail renders a record as a definition list.
func Detail(p DetailParams) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		shown := map[string]bool{datatable.SearchTextField: true}

		h.Open("dl", templ.Attributes{"class": "detail"})
		for _, col := range p.Columns {
			shown[col.Accessor] = true
			h.Element("dt", nil, col.Header)
			h.Open("dd", nil)
			if col.Render != nil {
				h.Component(col.Render.RenderCell(p.Record[col.Accessor], p.Record, datatable.RowContext{}))
			} else {
				h.Text(datatable.DisplayLabel(p.Record[col.Accessor]))
			}
			h.Close("dd")
		}

		keys := make([]string, 0, len(p.Record))
		for k := range p.Record {
			if !shown[k] {
				keys = append(keys, k)
			}
		}
		slices.Sort(keys)
		for _, k := range keys {
			h.Element("dt", nil, core.HumanizeKey(k))
			h.Element("dd", nil, datatable.DisplayLabel(p.Record[k]))
		}
		h.Close("dl")

		if len(p.Actions) > 0 {
			h.Open("div", templ.Attributes{"class": "form-actions"})
			for _, a := range p.Actions {
				headerAction(h, a)
			}
			h.Close("div")
		}
	})
}

// Children renders the nested table of an expanded row.
func Children(columns []datatable.Column, children []datatable.Record) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		if len(children) == 0 {
			h.Element("p", templ.Attributes{"class": "muted"}, "No sub-items.")
			return
		}
		h.Open("table", templ.Attributes{"class": "dt-table dt-nested"})
		h.Raw("<thead><tr>")
		for _, c := range columns {
			h.Element("th", templ.Attributes{"scope": "col"}, c.Header)
		}
		h.Raw("</tr></thead><tbody>")
		for _, rec := range children {
			h.Raw("<tr>")
			for _, c := range columns {
				h.Element("td", templ.Attributes{"data-label": c.Header}, datatable.CellText(c, rec))
			}
			h.Raw("</tr>")
		}
		h.Raw("</tbody>")
		h.Close("table")
	})
}
