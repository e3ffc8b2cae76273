package web

import (
	"net/url"

	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/web/views"
)

// tableSlot wraps a screen's table; every table interaction re-renders its
// contents.
const tableSlot = "#table-slot"

// screenLinks builds the HTMX requests of one screen's table.
type screenLinks struct {
	key string
}

var _ datatable.Links = screenLinks{}

func (l screenLinks) base() string {
	return "/screens/" + url.PathEscape(l.key)
}

func (l screenLinks) State(s datatable.State) datatable.Link {
	return datatable.Link{
		Method: "get",
		URL:    withQuery(l.base()+"/table", s.Encode()),
		Target: tableSlot,
		Swap:   "innerHTML",
	}
}

func (l screenLinks) Action(a datatable.Action, id string, s datatable.State) datatable.Link {
	return datatable.Link{
		Method: "get",
		URL:    withState(l.rowPath(id)+"/"+string(a), s),
		Target: views.ModalTarget,
		Swap:   "innerHTML",
	}
}

func (l screenLinks) RowClick(id string, s datatable.State) datatable.Link {
	return datatable.Link{
		Method: "get",
		URL:    withState(l.rowPath(id)+"/click", s),
		Target: views.ModalTarget,
		Swap:   "innerHTML",
	}
}

func (l screenLinks) rowPath(id string) string {
	return l.base() + "/rows/" + url.PathEscape(id)
}

// recordPath addresses a record by its API identifier.
func (l screenLinks) recordPath(id string) string {
	return l.base() + "/records/" + url.PathEscape(id)
}

// withState appends the table state, menu closed, to path. The state rides
// along on row and record requests so a mutation can re-render the table the
// user was looking at.
func withState(path string, s datatable.State) string {
	return withQuery(path, s.WithMenu(false).Encode())
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	return path + "?" + query
}
