package web

import (
	"context"
	"fmt"
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

// pendingStatus is the status of records awaiting approval.
const pendingStatus = "pending"

// callbacks wires the screen's capabilities to modal responses.
func (v *screenView) callbacks() datatable.Callbacks {
	var cb datatable.Callbacks
	if v.def.Can.View {
		cb.OnView = v.showDetail
	}
	if v.def.Can.Edit {
		cb.OnEdit = v.showEditForm
	}
	if v.def.Can.Delete {
		cb.OnDelete = v.confirmDelete
		if v.commitDelete {
			cb.OnDelete = v.deleteRecord
		}
	}
	return cb
}

func (v *screenView) showDetail(ctx context.Context, rec datatable.Record) error {
	full := rec
	id := core.RecordID(rec)
	if id != "" {
		var err error
		full, err = v.s.service.Detail(ctx, v.def.Info.Key, id, rec)
		if err != nil {
			return err
		}
	}

	var actions []views.HeaderAction
	if v.def.Can.Approve && id != "" && strings.EqualFold(full.String("status"), pendingStatus) {
		state := v.table.State()
		actions = append(actions,
			views.HeaderAction{
				Label: "Approve",
				Link: datatable.Link{
					Method:  "post",
					URL:     withState(v.links.recordPath(id)+"/approve", state),
					Target:  views.ModalTarget,
					Swap:    "innerHTML",
					Confirm: "Approve " + core.RecordSummary(full) + "?",
				},
			},
			views.HeaderAction{
				Label:   "Reject",
				Variant: "danger",
				Link: datatable.Link{
					Method: "get",
					URL:    withState(v.links.recordPath(id)+"/reject", state),
					Target: views.ModalTarget,
					Swap:   "innerHTML",
				},
			},
		)
	}

	v.write(views.Modal(v.def.Entity()+": "+core.RecordSummary(full), views.Detail(views.DetailParams{
		Record:  full,
		Columns: v.def.Columns,
		Actions: actions,
	})))
	return nil
}

func (v *screenView) showEditForm(_ context.Context, rec datatable.Record) error {
	id := core.RecordID(rec)
	if id == "" {
		return fmt.Errorf("%w: record has no id", core.ErrActionNotAllowed)
	}
	fields := v.def.EditFields()
	v.write(views.Modal("Edit "+v.def.Entity(), views.Form(views.FormParams{
		Post:   withState(v.links.recordPath(id), v.table.State()),
		Fields: fields,
		Values: core.FormValues(fields, rec),
		Submit: "Save changes",
	})))
	return nil
}

func (v *screenView) confirmDelete(_ context.Context, rec datatable.Record) error {
	confirm := datatable.Link{
		Method: "post",
		URL:    withState(v.links.rowPath(chi.URLParam(v.r, "id"))+"/delete", v.table.State()),
		Target: views.ModalTarget,
		Swap:   "innerHTML",
	}
	v.write(views.Modal("Delete "+v.def.Entity(), views.Confirm(
		"Delete "+core.RecordSummary(rec)+"? This cannot be undone.",
		"Delete",
		confirm.Attrs(),
	)))
	return nil
}

func (v *screenView) deleteRecord(ctx context.Context, rec datatable.Record) error {
	id := core.RecordID(rec)
	if id == "" {
		return fmt.Errorf("%w: record has no id", core.ErrActionNotAllowed)
	}
	summary := core.RecordSummary(rec)
	if err := v.s.service.Delete(ctx, v.def.Info.Key, id, summary); err != nil {
		return err
	}
	v.wrote = true
	v.s.renderMutationResult(v.w, v.r, v.def.Info.Key, v.table.State(), v.def.Entity()+" deleted: "+summary)
	return nil
}

func (v *screenView) write(c templ.Component) {
	v.wrote = true
	render(v.w, v.r, c)
}

// handleRowAction runs a row button or row click through the table. The row
// is located by its identifier in the current search/filter/sort output.
func (s *Server) handleRowAction(w http.ResponseWriter, r *http.Request) {
	v, err := s.openScreen(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer v.table.Close()

	id := chi.URLParam(r, "id")
	action := chi.URLParam(r, "action")
	if action == "click" {
		target := datatable.ParseClickTarget(r.URL.Query().Get("target"))
		err = v.table.RowClick(r.Context(), id, target)
	} else {
		err = v.table.Invoke(r.Context(), datatable.Action(action), id)
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !v.wrote {
		// Ignored click: nothing to swap.
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleDelete commits a confirmed delete.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	v, err := s.openScreen(w, r, commitDelete)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer v.table.Close()

	if err := v.table.Invoke(r.Context(), datatable.ActionDelete, chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
	}
}

func commitDelete(v *screenView) {
	v.commitDelete = true
}

// renderMutationResult answers a successful mutation: the modal slot is
// emptied, the table is re-rendered out of band with fresh data and a flash
// message is shown.
func (s *Server) renderMutationResult(w http.ResponseWriter, r *http.Request, key string, state datatable.State, message string) {
	logging.WithFields(r.Context(), "screen", key).Info(message)

	data, err := s.service.LoadScreen(r.Context(), key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	v := s.newScreenView(w, r, data, state.WithMenu(false))
	defer v.table.Close()

	render(w, r, markup.Func(func(h *markup.Writer) {
		h.Open("div", templ.Attributes{
			"id":          strings.TrimPrefix(tableSlot, "#"),
			"hx-swap-oob": "innerHTML",
		})
		h.Component(v.table.Component(v.links))
		h.Close("div")
		h.Component(views.Flash(message))
	}))
}
