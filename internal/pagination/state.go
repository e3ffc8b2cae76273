// Package pagination normalizes the paginated list shapes the marketplace
// API returns and tracks the page a screen is on.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/dustin/go-humanize"
)

// DefaultPerPage is used when a page size is missing or not positive.
const DefaultPerPage = 15

// State is the local pagination shape every screen uses.
type State struct {
	CurrentPage int
	PerPage     int
	TotalPages  int
	TotalItems  int
}

// New returns page 1 of an empty collection.
func New(perPage int) State {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return State{CurrentPage: 1, PerPage: perPage, TotalPages: 1}
}

// UpdateFromResponse folds a decoded list response into s. Afterwards
// TotalPages is at least 1 and CurrentPage lies in [1, TotalPages].
func (s *State) UpdateFromResponse(env Envelope) {
	if s.PerPage <= 0 {
		s.PerPage = DefaultPerPage
	}

	switch env.Kind {
	case KindLaravel:
		s.TotalItems = env.Total
		s.TotalPages = env.LastPage
		if env.PerPage > 0 {
			s.PerPage = env.PerPage
		}
		if env.CurrentPage > 0 {
			s.CurrentPage = env.CurrentPage
		}
		if s.TotalPages <= 0 {
			s.TotalPages = pages(s.TotalItems, s.PerPage)
		}
	case KindNamed:
		s.TotalItems = env.Total
		s.TotalPages = env.TotalPages
		if s.TotalPages <= 0 {
			s.TotalPages = pages(s.TotalItems, s.PerPage)
		}
	default:
		s.TotalItems = len(env.Items)
		s.TotalPages = pages(s.TotalItems, s.PerPage)
	}

	s.clamp()
}

// SetPage moves to page, clamped into range.
func (s *State) SetPage(page int) {
	s.CurrentPage = page
	s.clamp()
}

// SetPerPage changes the page size and returns to page 1.
func (s *State) SetPerPage(perPage int) {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	s.PerPage = perPage
	s.CurrentPage = 1
	if s.TotalItems > 0 {
		s.TotalPages = pages(s.TotalItems, perPage)
	}
	s.clamp()
}

// HasPrev reports whether a previous page exists.
func (s State) HasPrev() bool { return s.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (s State) HasNext() bool { return s.CurrentPage < s.TotalPages }

// Bounds returns the [start, end) item range of the current page within
// TotalItems, for slicing a fully loaded collection.
func (s State) Bounds() (start, end int) {
	start = (s.CurrentPage - 1) * s.PerPage
	start = max(0, min(start, s.TotalItems))
	end = min(start+s.PerPage, s.TotalItems)
	return start, end
}

// Params returns the page and per_page query parameters.
func (s State) Params() url.Values {
	v := url.Values{}
	v.Set("page", strconv.Itoa(max(1, s.CurrentPage)))
	v.Set("per_page", strconv.Itoa(s.PerPage))
	return v
}

// Summary describes the position for display.
func (s State) Summary() string {
	noun := "items"
	if s.TotalItems == 1 {
		noun = "item"
	}
	return fmt.Sprintf("Page %s of %s (%s %s)",
		humanize.Comma(int64(s.CurrentPage)),
		humanize.Comma(int64(s.TotalPages)),
		humanize.Comma(int64(s.TotalItems)),
		noun)
}

func (s *State) clamp() {
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
	if s.CurrentPage < 1 {
		s.CurrentPage = 1
	}
	if s.CurrentPage > s.TotalPages {
		s.CurrentPage = s.TotalPages
	}
}

func pages(items, perPage int) int {
	if perPage <= 0 || items <= 0 {
		return 1
	}
	return (items + perPage - 1) / perPage
}
