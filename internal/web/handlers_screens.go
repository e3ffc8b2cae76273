package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/JonMunkholm/accreditation-console/internal/markup"
	"github.com/JonMunkholm/accreditation-console/internal/web/views"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// screenView is one request's view of a screen: the loaded collection, the
// table built over it, and the response its row callbacks write to.
type screenView struct {
	s     *Server
	w     http.ResponseWriter
	r     *http.Request
	def   core.ScreenDefinition
	data  *core.ScreenData
	links screenLinks
	hub   *datatable.PointerHub
	table *datatable.Table

	// commitDelete makes the delete callback remove the record instead of
	// asking for confirmation.
	commitDelete bool
	// wrote is set once a callback has written the response.
	wrote bool
}

// openScreen loads the screen named in the URL and builds its table from the
// query string. Callers must Close the table.
func (s *Server) openScreen(w http.ResponseWriter, r *http.Request, opts ...func(*screenView)) (*screenView, error) {
	data, err := s.service.LoadScreen(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		return nil, err
	}
	state := datatable.StateFromQuery(r.URL.Query(), data.Definition.DefaultFilter)
	v := s.newScreenView(w, r, data, state, opts...)

	if p := r.URL.Query().Get(datatable.ParamPointer); p != "" {
		v.hub.PointerDown(p == datatable.PointerInside)
	}
	return v, nil
}

func (s *Server) newScreenView(w http.ResponseWriter, r *http.Request, data *core.ScreenData, state datatable.State, opts ...func(*screenView)) *screenView {
	v := &screenView{
		s:     s,
		w:     w,
		r:     r,
		def:   data.Definition,
		data:  data,
		links: screenLinks{key: data.Definition.Info.Key},
		hub:   datatable.NewPointerHub(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.table = datatable.New(v.tableConfig(), data.Records, state)
	return v
}

func (v *screenView) tableConfig() datatable.Config {
	def := v.def
	cfg := datatable.Config{
		ID:                "dt-" + def.Info.Key,
		Columns:           def.Columns,
		Filters:           def.Filters,
		DefaultFilter:     def.DefaultFilter,
		SearchPlaceholder: def.SearchPlaceholder,
		EmptyMessage:      def.EmptyMessage,
		Callbacks:         v.callbacks(),
		Expandable:        def.Expandable,
		Pointer:           v.hub,
	}
	if def.Expandable {
		cfg.RenderExpanded = func(rec datatable.Record) templ.Component {
			return views.Children(def.ChildColumns, childRecords(rec, def.ChildrenField))
		}
	}
	return cfg
}

// childRecords returns the nested records stored under field.
func childRecords(rec datatable.Record, field string) []datatable.Record {
	v, _ := rec.Lookup(field)
	items, _ := v.([]any)
	out := make([]datatable.Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, datatable.Record(m))
		}
	}
	return out
}

// handleDashboard renders the overview of every registered screen.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var groups []views.CardGroup
	for _, group := range core.Groups() {
		defs := core.ByGroup(group)
		cards := make([]views.ScreenCard, len(defs))
		for i, def := range defs {
			cards[i] = views.ScreenCard{
				NavItem:  navItem(def),
				Subtitle: def.Info.Subtitle,
				Entity:   def.Entity(),
				Actions:  capabilityTags(def.Can),
			}
		}
		groups = append(groups, views.CardGroup{Name: group, Cards: cards})
	}

	hdr := &views.Header{}
	hdr.SetHeader("Dashboard", "Accreditation marketplace administration")
	render(w, r, views.Layout(views.Page{
		Title:  "Dashboard",
		Nav:    navigation(),
		Active: "dashboard",
		Header: hdr,
		Body:   views.Dashboard(groups, s.auditEnabled()),
	}))
}

// handleScreen renders a full screen page: header, table and modal slot.
func (s *Server) handleScreen(w http.ResponseWriter, r *http.Request) {
	v, err := s.openScreen(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer v.table.Close()

	hdr := &views.Header{}
	v.describe(hdr)
	render(w, r, views.Layout(views.Page{
		Title:  v.def.Info.Title,
		Nav:    navigation(),
		Active: v.def.Info.Key,
		Header: hdr,
		Body: markup.Func(func(h *markup.Writer) {
			h.Open("div", templ.Attributes{"id": strings.TrimPrefix(tableSlot, "#")})
			h.Component(v.table.Component(v.links))
			h.Close("div")
		}),
	}))
}

// handleTable re-renders a screen's table for the state in the query. It
// answers every search, filter, sort, menu and expand interaction.
func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	v, err := s.openScreen(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer v.table.Close()

	render(w, r, v.table.Component(v.links))
}

// describe publishes the screen's title and header actions.
func (v *screenView) describe(sink views.HeaderSink) {
	info := v.def.Info
	state := v.table.State()

	var actions []views.HeaderAction
	if v.def.Can.Create {
		actions = append(actions, views.HeaderAction{
			Label: "New " + v.def.Entity(),
			Link: datatable.Link{
				Method: "get",
				URL:    withState(v.links.base()+"/new", state),
				Target: views.ModalTarget,
				Swap:   "innerHTML",
			},
		})
	}
	actions = append(actions, views.HeaderAction{
		Label:   "Export CSV",
		Href:    withState(v.links.base()+"/export", state),
		Variant: "secondary",
	})
	sink.SetHeader(info.Title, info.Subtitle, actions...)
}

func navItem(def core.ScreenDefinition) views.NavItem {
	return views.NavItem{
		Key:   def.Info.Key,
		Label: def.Info.Label,
		Href:  screenLinks{key: def.Info.Key}.base(),
	}
}

// navigation lists every screen by group for the sidebar.
func navigation() []views.NavGroup {
	var nav []views.NavGroup
	for _, group := range core.Groups() {
		defs := core.ByGroup(group)
		items := make([]views.NavItem, len(defs))
		for i, def := range defs {
			items[i] = navItem(def)
		}
		nav = append(nav, views.NavGroup{Name: group, Items: items})
	}
	return nav
}

func capabilityTags(c core.Capabilities) []string {
	var tags []string
	if c.Create {
		tags = append(tags, "create")
	}
	if c.Edit {
		tags = append(tags, "edit")
	}
	if c.Delete {
		tags = append(tags, "delete")
	}
	if c.Approve {
		tags = append(tags, "approve")
	}
	if len(tags) == 0 && c.View {
		tags = append(tags, "read-only")
	}
	return tags
}

func (s *Server) auditEnabled() bool {
	_, nop := s.service.Audit().(core.NopAuditStore)
	return !nop
}

// render writes c as HTML. Errors after the first byte can only be logged.
func render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "error", err)
	}
}
