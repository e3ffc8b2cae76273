package datatable

import (
	"strconv"

	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/a-h/templ"
)

// Triggers are plain event names: the console runs under a CSP without
// 'unsafe-eval', so htmx trigger filters are never used.
const (
	// consumeClick stops a control's click from reaching the row.
	consumeClick = "click consume"

	// rowClickTrigger fires the row request. The request's target parameter
	// names what was clicked, and RowClick ignores anything but a cell.
	rowClickTrigger = "click"
)

// Component renders the table with the given request builders.
func (t *Table) Component(links Links) templ.Component {
	return markup.Func(func(h *markup.Writer) {
		vm := t.View()

		h.Open("div", templ.Attributes{"id": t.cfg.ID, "class": "datatable"})
		t.renderToolbar(h, links)

		h.Open("table", templ.Attributes{"class": "dt-table"})
		t.renderHead(h, vm, links)
		h.Raw("<tbody>")
		if vm.Placeholder != nil {
			t.renderPlaceholder(h, vm.Placeholder)
		} else {
			for _, row := range vm.Rows {
				t.renderRow(h, vm, row, links)
			}
		}
		h.Raw("</tbody>")
		h.Close("table")

		if !t.cfg.IsLoading {
			h.Element("p", templ.Attributes{"class": "dt-count"},
				"Showing "+strconv.Itoa(vm.Visible)+" of "+strconv.Itoa(vm.Total))
		}
		h.Close("div")
	})
}

func (t *Table) renderToolbar(h *markup.Writer, links Links) {
	h.Open("div", templ.Attributes{"class": "dt-toolbar"})

	search := links.State(t.state.WithSearch("").WithMenu(false))
	attrs := search.Attrs()
	attrs["type"] = "search"
	attrs["name"] = ParamSearch
	attrs["class"] = "dt-search"
	attrs["autocomplete"] = "off"
	attrs["hx-trigger"] = "input changed delay:200ms, search"
	if t.state.Search != "" {
		attrs["value"] = t.state.Search
	}
	if t.cfg.SearchPlaceholder != "" {
		attrs["placeholder"] = t.cfg.SearchPlaceholder
	}
	h.Open("input", attrs)

	if len(t.cfg.Filters) > 0 {
		t.renderFilterMenu(h, links)
	}
	h.Close("div")
}

func (t *Table) renderFilterMenu(h *markup.Writer, links Links) {
	open := t.state.FilterMenuOpen

	class := "dt-filter"
	if open {
		class = "dt-filter is-open"
	}
	h.Open("div", templ.Attributes{"class": class, "data-filter-menu": "true"})

	toggle := links.State(t.state.WithMenu(!open)).Attrs()
	toggle["type"] = "button"
	toggle["class"] = "dt-filter-toggle"
	toggle["aria-haspopup"] = "menu"
	toggle["aria-expanded"] = strconv.FormatBool(open)
	h.Open("button", toggle)
	h.Text(t.activeFilterLabel())
	h.Raw(" &#9662;")
	h.Close("button")

	if open {
		h.Open("ul", templ.Attributes{"class": "dt-filter-options", "role": "menu"})
		for _, opt := range t.cfg.Filters {
			attrs := links.State(t.state.WithFilter(opt.Value)).Attrs()
			attrs["type"] = "button"
			attrs["role"] = "menuitem"
			attrs["class"] = "dt-filter-option"
			if opt.Value == t.state.Filter {
				attrs["class"] = "dt-filter-option is-active"
			}
			h.Raw("<li>")
			h.Element("button", attrs, opt.Label)
			h.Raw("</li>")
		}
		h.Close("ul")
	}

	// The backdrop covers the page beneath the open menu and exists only
	// while a listener is attached. A pointer-down on it is by definition
	// outside the menu; the server replays it into the table.
	if t.ListeningOutside() {
		attrs := links.State(t.state).Attrs()
		attrs["hx-trigger"] = "pointerdown"
		attrs["hx-vals"] = `{"` + ParamPointer + `":"` + PointerOutside + `"}`
		attrs["class"] = "dt-filter-backdrop"
		attrs["aria-hidden"] = "true"
		h.Open("div", attrs)
		h.Close("div")
	}

	h.Close("div")
}

func (t *Table) activeFilterLabel() string {
	for _, opt := range t.cfg.Filters {
		if opt.Value == t.state.Filter {
			return opt.Label
		}
	}
	return "All"
}

func (t *Table) renderHead(h *markup.Writer, vm ViewModel, links Links) {
	h.Raw("<thead><tr>")
	for _, col := range vm.Columns {
		if !col.Sortable() {
			h.Element("th", templ.Attributes{"scope": "col"}, col.Header)
			continue
		}

		th := templ.Attributes{"scope": "col", "class": "dt-sortable"}
		indicator := ""
		if t.state.Sort.Key == col.Accessor {
			if t.state.Sort.Direction == Descending {
				th["aria-sort"] = "descending"
				indicator = " ▼"
			} else {
				th["aria-sort"] = "ascending"
				indicator = " ▲"
			}
		}
		h.Open("th", th)
		btn := links.State(t.state.WithSortClick(vm.Columns, col.Accessor)).Attrs()
		btn["type"] = "button"
		btn["class"] = "dt-sort"
		h.Element("button", btn, col.Header+indicator)
		h.Close("th")
	}
	if vm.HasActions() {
		h.Element("th", templ.Attributes{"scope": "col", "class": "dt-actions-head"}, "Actions")
	}
	h.Raw("</tr></thead>")
}

func (t *Table) renderPlaceholder(h *markup.Writer, p *Placeholder) {
	h.Open("tr", templ.Attributes{"class": "dt-placeholder dt-" + p.Kind.String()})
	h.Open("td", templ.Attributes{"colspan": strconv.Itoa(p.Colspan)})
	if p.Kind == PlaceholderEmpty && t.cfg.EmptyContent != nil {
		h.Component(t.cfg.EmptyContent)
	} else {
		h.Text(p.Message)
	}
	h.Close("td")
	h.Close("tr")
}

func (t *Table) renderRow(h *markup.Writer, vm ViewModel, row Row, links Links) {
	attrs := templ.Attributes{
		"id":          t.cfg.ID + "-row-" + row.ID,
		"class":       "dt-row",
		"data-row-id": row.ID,
	}
	cb := t.cfg.Callbacks
	if cb.OnRowClick != nil || cb.OnView != nil {
		if click := links.RowClick(row.ID, t.state); !click.Zero() {
			for k, v := range click.Attrs() {
				attrs[k] = v
			}
			attrs["hx-trigger"] = rowClickTrigger
			attrs["class"] = "dt-row dt-clickable"
		}
	}
	if row.Expanded {
		attrs["aria-expanded"] = "true"
	}
	h.Open("tr", attrs)

	rc := RowContext{ID: row.ID, Index: row.Index, IsExpanded: row.Expanded}
	if t.cfg.Expandable {
		rc.ToggleExpand = links.State(t.state.WithExpandToggled(row.ID))
	}
	for _, col := range vm.Columns {
		h.Open("td", templ.Attributes{"data-label": col.Header})
		value := row.Record[col.Accessor]
		if col.Render != nil {
			h.Component(col.Render.RenderCell(value, row.Record, rc))
		} else {
			h.Text(DisplayLabel(value))
		}
		h.Close("td")
	}

	if vm.HasActions() {
		h.Open("td", templ.Attributes{"class": "dt-actions"})
		for _, a := range vm.Actions {
			btn := links.Action(a, row.ID, t.state).Attrs()
			btn["hx-trigger"] = consumeClick
			btn["type"] = "button"
			btn["class"] = "dt-action dt-action-" + string(a)
			h.Element("button", btn, a.Label())
		}
		h.Close("td")
	}
	h.Close("tr")

	if row.Expanded && t.cfg.RenderExpanded != nil {
		h.Open("tr", templ.Attributes{"class": "dt-expanded-row"})
		h.Open("td", templ.Attributes{"colspan": strconv.Itoa(vm.Colspan)})
		h.Component(t.cfg.RenderExpanded(row.Record))
		h.Close("td")
		h.Close("tr")
	}
}
