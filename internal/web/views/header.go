package views

import "github.com/JonMunkholm/accreditation-console/internal/datatable"

// HeaderAction is a button in the page header, such as "New Course".
type HeaderAction struct {
	Label   string
	Link    datatable.Link
	Href    string // plain navigation when Link is zero
	Variant string // "primary" or "secondary"
}

// HeaderSink receives a screen's page header. Each screen render is handed
// its own sink; nothing is shared between pages.
type HeaderSink interface {
	SetHeader(title, subtitle string, actions ...HeaderAction)
}

// Header is the page header slot. *Header implements HeaderSink.
type Header struct {
	Title    string
	Subtitle string
	Actions  []HeaderAction
}

// SetHeader implements HeaderSink. A later call replaces an earlier one.
func (h *Header) SetHeader(title, subtitle string, actions ...HeaderAction) {
	h.Title = title
	h.Subtitle = subtitle
	h.Actions = append([]HeaderAction(nil), actions...)
}
