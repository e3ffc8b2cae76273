package datatable

import (
	"context"
	"fmt"

	"github.com/a-h/templ"
)

// Config is what a screen hands to its table.
type Config struct {
	// ID is the DOM id of the table container.
	ID string

	Columns           []Column
	Filters           []FilterOption
	DefaultFilter     string
	SearchPlaceholder string

	IsLoading bool

	// EmptyMessage is shown when the collection is genuinely empty.
	// EmptyContent, when set, is rendered instead.
	EmptyMessage string
	EmptyContent templ.Component

	Callbacks Callbacks

	Expandable     bool
	RenderExpanded func(rec Record) templ.Component

	// Pointer delivers outside pointer-down events while the filter menu
	// is open. Nil disables outside-click closing.
	Pointer PointerSource
}

// Table is the presentation component: it owns the transient UI state and
// turns the engine's output into rows, delegating record actions to the
// configured callbacks.
type Table struct {
	cfg         Config
	engine      *Engine
	state       State
	unsubscribe func()
}

// New builds a table over records in state. A state with the filter menu
// open attaches the outside-pointer listener immediately.
func New(cfg Config, records []Record, state State) *Table {
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = AllFilter
	}
	if state.Filter == "" {
		state.Filter = cfg.DefaultFilter
	}
	if !cfg.Expandable {
		state.Expanded = nil
	}
	t := &Table{
		cfg:    cfg,
		engine: NewEngine(cfg.Columns, cfg.Filters),
		state:  state,
	}
	t.engine.SetRecords(records)
	if state.FilterMenuOpen {
		t.state.FilterMenuOpen = false
		t.openMenu()
	}
	return t
}

// Config returns the table configuration.
func (t *Table) Config() Config {
	return t.cfg
}

// State returns the current UI state.
func (t *Table) State() State {
	return t.state
}

// SetRecords replaces the source records.
func (t *Table) SetRecords(records []Record) {
	t.engine.SetRecords(records)
}

// SetLoading toggles the loading placeholder.
func (t *Table) SetLoading(loading bool) {
	t.cfg.IsLoading = loading
}

// SetSearch replaces the search text.
func (t *Table) SetSearch(q string) {
	t.state.Search = q
}

// ToggleFilterMenu opens a closed menu and closes an open one.
func (t *Table) ToggleFilterMenu() {
	if t.state.FilterMenuOpen {
		t.closeMenu()
		return
	}
	t.openMenu()
}

// SelectFilter activates a filter option and closes the menu.
func (t *Table) SelectFilter(value string) {
	t.state.Filter = value
	t.closeMenu()
}

// FilterMenuOpen reports whether the dropdown is open.
func (t *Table) FilterMenuOpen() bool {
	return t.state.FilterMenuOpen
}

// ListeningOutside reports whether the outside-pointer listener is attached.
func (t *Table) ListeningOutside() bool {
	return t.unsubscribe != nil
}

func (t *Table) openMenu() {
	t.state.FilterMenuOpen = true
	if t.cfg.Pointer != nil && t.unsubscribe == nil {
		t.unsubscribe = t.cfg.Pointer.Subscribe(t.pointerDown)
	}
}

func (t *Table) closeMenu() {
	t.state.FilterMenuOpen = false
	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
}

func (t *Table) pointerDown(insideMenu bool) {
	if !insideMenu && t.state.FilterMenuOpen {
		t.closeMenu()
	}
}

// SortBy applies a header click. It reports whether the sort changed.
func (t *Table) SortBy(accessor string) bool {
	next := t.state.WithSortClick(t.cfg.Columns, accessor)
	changed := next.Sort != t.state.Sort
	t.state = next
	return changed
}

// ToggleExpand flips row id's expanded flag. Non-expandable tables ignore it.
func (t *Table) ToggleExpand(id string) {
	if !t.cfg.Expandable {
		return
	}
	t.state = t.state.WithExpandToggled(id)
}

// Close detaches any listener. Call it when the table goes away.
func (t *Table) Close() {
	t.closeMenu()
}

// Rows returns the search/filter/sort output for the current state.
func (t *Table) Rows() []Record {
	return t.engine.Run(t.state.Search, t.state.Filter, t.state.Sort)
}

// viewRows pairs each visible record with its id. Records without an id
// fall back to their index in the source list.
func (t *Table) viewRows() ([]Record, []string) {
	source := t.engine.Records()
	pos := t.engine.Positions(t.state.Search, t.state.Filter, t.state.Sort)
	recs := make([]Record, len(pos))
	ids := make([]string, len(pos))
	for n, i := range pos {
		recs[n] = source[i]
		ids[n] = source[i].ID(i)
	}
	return recs, ids
}

// Actions returns the row buttons.
func (t *Table) Actions() []Action {
	return t.cfg.Callbacks.Actions()
}

// Invoke runs a row action on the row with the given id. Any wired callback
// can be invoked, including View when Edit and Delete take the two buttons.
func (t *Table) Invoke(ctx context.Context, a Action, id string) error {
	cb := t.cfg.Callbacks.callback(a)
	if cb == nil {
		return fmt.Errorf("%w: %s", ErrActionUnavailable, a)
	}
	rec, err := t.find(id)
	if err != nil {
		return err
	}
	return cb(ctx, rec)
}

// RowClick handles a click on row id. Clicks on buttons, links, flagged
// elements or the actions cell are ignored; otherwise OnRowClick runs, or
// OnView when no row handler is set.
func (t *Table) RowClick(ctx context.Context, id string, target ClickTarget) error {
	if target != TargetCell {
		return nil
	}
	cb := t.cfg.Callbacks.OnRowClick
	if cb == nil {
		cb = t.cfg.Callbacks.OnView
	}
	if cb == nil {
		return nil
	}
	rec, err := t.find(id)
	if err != nil {
		return err
	}
	return cb(ctx, rec)
}

func (t *Table) find(id string) (Record, error) {
	if t.cfg.IsLoading {
		return nil, fmt.Errorf("%w: %s", ErrRowNotFound, id)
	}
	recs, ids := t.viewRows()
	for i, rowID := range ids {
		if rowID == id {
			return recs[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRowNotFound, id)
}
