package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/web/views"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// recordRequest is a create, update or workflow request against one screen.
type recordRequest struct {
	def   core.ScreenDefinition
	links screenLinks
	state datatable.State
	id    string
}

// openRecordRequest resolves the screen and the table state carried in the
// query string. Form fields come from the body.
func (s *Server) openRecordRequest(r *http.Request, allowed func(core.Capabilities) bool) (recordRequest, error) {
	key := chi.URLParam(r, "key")
	def, err := s.service.Screen(key)
	if err != nil {
		return recordRequest{}, err
	}
	if !allowed(def.Can) {
		return recordRequest{}, fmt.Errorf("%w: %s", core.ErrActionNotAllowed, key)
	}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			return recordRequest{}, err
		}
	}
	return recordRequest{
		def:   def,
		links: screenLinks{key: key},
		state: datatable.StateFromQuery(r.URL.Query(), def.DefaultFilter),
		id:    chi.URLParam(r, "id"),
	}, nil
}

func canCreate(c core.Capabilities) bool  { return c.Create }
func canEdit(c core.Capabilities) bool    { return c.Edit }
func canApprove(c core.Capabilities) bool { return c.Approve }

// handleNewForm renders the empty create form.
func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	req, err := s.openRecordRequest(r, canCreate)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render(w, r, req.createForm(nil, nil))
}

// handleCreate creates a record from the submitted form.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, err := s.openRecordRequest(r, canCreate)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rec, err := s.service.Create(r.Context(), req.def.Info.Key, r.PostForm)
	var fe *core.FormError
	if errors.As(err, &fe) {
		render(w, r, req.createForm(r.PostForm, fe))
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderMutationResult(w, r, req.def.Info.Key, req.state,
		req.def.Entity()+" created: "+core.RecordSummary(rec))
}

// handleUpdate saves the edit form.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req, err := s.openRecordRequest(r, canEdit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rec, err := s.service.Update(r.Context(), req.def.Info.Key, req.id, r.PostForm)
	var fe *core.FormError
	if errors.As(err, &fe) {
		render(w, r, req.editForm(r.PostForm, fe))
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderMutationResult(w, r, req.def.Info.Key, req.state,
		req.def.Entity()+" updated: "+core.RecordSummary(rec))
}

// handleApprove approves a pending record.
func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	req, err := s.openRecordRequest(r, canApprove)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	rec, err := s.service.Approve(r.Context(), req.def.Info.Key, req.id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderMutationResult(w, r, req.def.Info.Key, req.state,
		req.def.Entity()+" approved: "+core.RecordSummary(rec))
}

// handleRejectForm asks for a rejection reason.
func (s *Server) handleRejectForm(w http.ResponseWriter, r *http.Request) {
	req, err := s.openRecordRequest(r, canApprove)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	render(w, r, req.rejectForm("", ""))
}

// handleReject rejects a pending record with the submitted reason.
func (s *Server) handleReject(w http.ResponseWriter, r *http.Request) {
	req, err := s.openRecordRequest(r, canApprove)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	reason := r.PostForm.Get(core.RejectionReasonField)
	rec, err := s.service.Reject(r.Context(), req.def.Info.Key, req.id, reason)
	var fe *core.FormError
	if errors.As(err, &fe) {
		msg := fe.Fields[core.RejectionReasonField]
		if msg == "" {
			msg = fe.Message
		}
		render(w, r, req.rejectForm(reason, msg))
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderMutationResult(w, r, req.def.Info.Key, req.state,
		req.def.Entity()+" rejected: "+core.RecordSummary(rec))
}

func (req recordRequest) createForm(values url.Values, fe *core.FormError) templ.Component {
	p := views.FormParams{
		Post:   withState(req.links.base(), req.state),
		Fields: req.def.Fields,
		Values: values,
		Submit: "Create " + req.def.Entity(),
	}
	withFormError(&p, fe)
	return views.Modal("New "+req.def.Entity(), views.Form(p))
}

func (req recordRequest) editForm(values url.Values, fe *core.FormError) templ.Component {
	p := views.FormParams{
		Post:   withState(req.links.recordPath(req.id), req.state),
		Fields: req.def.EditFields(),
		Values: values,
		Submit: "Save changes",
	}
	withFormError(&p, fe)
	return views.Modal("Edit "+req.def.Entity(), views.Form(p))
}

func (req recordRequest) rejectForm(reason, errMsg string) templ.Component {
	post := withState(req.links.recordPath(req.id)+"/reject", req.state)
	return views.Modal("Reject "+req.def.Entity(), views.RejectForm(post, reason, errMsg))
}

func withFormError(p *views.FormParams, fe *core.FormError) {
	if fe == nil {
		return
	}
	p.Errors = fe.Fields
	p.Message = fe.Message
}
