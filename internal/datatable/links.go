package datatable

import "github.com/a-h/templ"

// Link is an HTMX request issued by a table control.
type Link struct {
	Method  string // "get" or "post"; empty means no request
	URL     string
	Target  string // CSS selector of the element to swap
	Swap    string // hx-swap value
	Confirm string // optional confirmation prompt
}

// Zero reports whether the link carries no request.
func (l Link) Zero() bool {
	return l.URL == ""
}

// Attrs returns the hx-* attributes for l.
func (l Link) Attrs() templ.Attributes {
	if l.Zero() {
		return templ.Attributes{}
	}
	method := l.Method
	if method == "" {
		method = "get"
	}
	attrs := templ.Attributes{"hx-" + method: l.URL}
	if l.Target != "" {
		attrs["hx-target"] = l.Target
	}
	if l.Swap != "" {
		attrs["hx-swap"] = l.Swap
	}
	if l.Confirm != "" {
		attrs["hx-confirm"] = l.Confirm
	}
	return attrs
}

// Links builds the requests a rendered table issues. The web layer supplies
// the implementation; state is carried in the URL.
type Links interface {
	// State re-renders the table in state s.
	State(s State) Link
	// Action invokes a row action on row id while the table is in state s.
	Action(a Action, id string, s State) Link
	// RowClick reports a click on row id.
	RowClick(id string, s State) Link
}
