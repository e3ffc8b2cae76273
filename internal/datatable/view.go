package datatable

// Messages used by the placeholder rows.
const (
	LoadingMessage      = "Loading..."
	NoResultsMessage    = "No results found. Try adjusting your search or filter."
	DefaultEmptyMessage = "No records found."
)

// PlaceholderKind says why a table shows a single full-width row.
type PlaceholderKind int

const (
	PlaceholderLoading PlaceholderKind = iota + 1
	PlaceholderEmpty
	PlaceholderNoResults
)

// String returns a CSS-friendly name.
func (k PlaceholderKind) String() string {
	switch k {
	case PlaceholderLoading:
		return "loading"
	case PlaceholderEmpty:
		return "empty"
	case PlaceholderNoResults:
		return "no-results"
	}
	return ""
}

// Placeholder is the full-width row shown instead of data rows.
type Placeholder struct {
	Kind    PlaceholderKind
	Message string
	Colspan int
}

// Row is one rendered data row.
type Row struct {
	ID       string
	Index    int
	Record   Record
	Expanded bool
}

// ViewModel is the renderable state of a table.
type ViewModel struct {
	Columns     []Column
	Actions     []Action
	Rows        []Row
	Placeholder *Placeholder

	// Colspan covers every column plus the actions column when present.
	Colspan int

	Total   int // records before search and filter
	Visible int // records after the pipeline
}

// HasActions reports whether the actions column is rendered.
func (vm ViewModel) HasActions() bool {
	return len(vm.Actions) > 0
}

// View computes the view model for the current state.
func (t *Table) View() ViewModel {
	vm := ViewModel{
		Columns: t.cfg.Columns,
		Actions: t.Actions(),
		Total:   len(t.engine.Records()),
	}
	vm.Colspan = len(vm.Columns)
	if vm.HasActions() {
		vm.Colspan++
	}

	if t.cfg.IsLoading {
		vm.Placeholder = &Placeholder{Kind: PlaceholderLoading, Message: LoadingMessage, Colspan: vm.Colspan}
		return vm
	}

	rows, ids := t.viewRows()
	vm.Visible = len(rows)
	if len(rows) == 0 {
		if t.state.Narrowed(t.cfg.DefaultFilter) {
			vm.Placeholder = &Placeholder{Kind: PlaceholderNoResults, Message: NoResultsMessage, Colspan: vm.Colspan}
		} else {
			msg := t.cfg.EmptyMessage
			if msg == "" {
				msg = DefaultEmptyMessage
			}
			vm.Placeholder = &Placeholder{Kind: PlaceholderEmpty, Message: msg, Colspan: vm.Colspan}
		}
		return vm
	}

	vm.Rows = make([]Row, len(rows))
	for i, rec := range rows {
		id := ids[i]
		vm.Rows[i] = Row{
			ID:       id,
			Index:    i,
			Record:   rec,
			Expanded: t.cfg.Expandable && t.state.IsExpanded(id),
		}
	}
	return vm
}
