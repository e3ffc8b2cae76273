package core

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
)

// RejectionReasonField is the form and payload field of a rejection reason.
const RejectionReasonField = "rejection_reason"

// Create validates form against the screen's fields and creates a record.
func (s *Service) Create(ctx context.Context, key string, form url.Values) (datatable.Record, error) {
	def, ns, err := s.mutationTarget(key, func(c Capabilities) bool { return c.Create })
	if err != nil {
		return nil, err
	}

	payload, err := ConvertForm(def.Fields, form, false)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, MutationTimeout)
	defer cancel()

	rec, err := ns.Create(ctx, def.Info.Resource, payload)
	if err != nil {
		return nil, s.mutationError(ctx, def, "create", err)
	}

	out := datatable.Record(rec)
	s.logAudit(ctx, def, AuditLogParams{
		Action:   ActionCreate,
		RecordID: RecordID(out),
		Summary:  RecordSummary(out),
		Payload:  payload,
	})
	return out, nil
}

// Update validates form against the screen's edit fields and updates id.
// Blank optional fields are sent as null.
func (s *Service) Update(ctx context.Context, key, id string, form url.Values) (datatable.Record, error) {
	def, ns, err := s.mutationTarget(key, func(c Capabilities) bool { return c.Edit })
	if err != nil {
		return nil, err
	}

	payload, err := ConvertForm(def.EditFields(), form, true)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, MutationTimeout)
	defer cancel()

	rec, err := ns.Update(ctx, def.Info.Resource, id, payload)
	if err != nil {
		return nil, s.mutationError(ctx, def, "update", err)
	}

	out := datatable.Record(rec)
	s.logAudit(ctx, def, AuditLogParams{
		Action:   ActionUpdate,
		RecordID: id,
		Summary:  RecordSummary(out),
		Payload:  payload,
	})
	return out, nil
}

// Delete removes id. summary labels the audit entry.
func (s *Service) Delete(ctx context.Context, key, id, summary string) error {
	def, ns, err := s.mutationTarget(key, func(c Capabilities) bool { return c.Delete })
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, MutationTimeout)
	defer cancel()

	if err := ns.Delete(ctx, def.Info.Resource, id); err != nil {
		return s.mutationError(ctx, def, "delete", err)
	}

	s.logAudit(ctx, def, AuditLogParams{
		Action:   ActionDelete,
		RecordID: id,
		Summary:  summary,
	})
	return nil
}

// Approve approves a pending record.
func (s *Service) Approve(ctx context.Context, key, id string) (datatable.Record, error) {
	def, ns, err := s.mutationTarget(key, func(c Capabilities) bool { return c.Approve })
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, MutationTimeout)
	defer cancel()

	rec, err := ns.Approve(ctx, def.Info.Resource, id)
	if err != nil {
		return nil, s.mutationError(ctx, def, "approve", err)
	}

	out := datatable.Record(rec)
	s.logAudit(ctx, def, AuditLogParams{
		Action:   ActionApprove,
		RecordID: id,
		Summary:  RecordSummary(out),
	})
	return out, nil
}

// Reject rejects a pending record. reason is required.
func (s *Service) Reject(ctx context.Context, key, id, reason string) (datatable.Record, error) {
	def, ns, err := s.mutationTarget(key, func(c Capabilities) bool { return c.Approve })
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, NewFormError([]ValidationError{{
			Field:   RejectionReasonField,
			Message: "required field is empty",
		}})
	}

	ctx, cancel := context.WithTimeout(ctx, MutationTimeout)
	defer cancel()

	rec, err := ns.Reject(ctx, def.Info.Resource, id, reason)
	if err != nil {
		return nil, s.mutationError(ctx, def, "reject", err)
	}

	out := datatable.Record(rec)
	s.logAudit(ctx, def, AuditLogParams{
		Action:   ActionReject,
		RecordID: id,
		Summary:  RecordSummary(out),
		Reason:   reason,
	})
	return out, nil
}

// mutationTarget resolves the screen and namespace, checking the screen
// offers the workflow.
func (s *Service) mutationTarget(key string, allowed func(Capabilities) bool) (ScreenDefinition, api.Namespace, error) {
	def, err := s.Screen(key)
	if err != nil {
		return ScreenDefinition{}, api.Namespace{}, err
	}
	if !allowed(def.Can) {
		return ScreenDefinition{}, api.Namespace{}, fmt.Errorf("%w: %s", ErrActionNotAllowed, key)
	}
	ns, err := s.namespace(def)
	if err != nil {
		return ScreenDefinition{}, api.Namespace{}, err
	}
	return def, ns, nil
}

// mutationError logs err and turns API field errors into a *FormError.
func (s *Service) mutationError(ctx context.Context, def ScreenDefinition, op string, err error) error {
	logging.WithFields(ctx, "screen", def.Info.Key, "op", op).Warn("mutation failed", "error", err)

	if fields := api.ValidationErrors(err); len(fields) > 0 {
		fe := &FormError{Fields: make(map[string]string, len(fields))}
		for f, msgs := range fields {
			if len(msgs) > 0 {
				fe.Fields[f] = msgs[0]
			}
		}
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			fe.Message = apiErr.Message
		}
		if fe.Message == "" {
			fe.Message = fmt.Sprintf("%d field(s) need attention", len(fe.Fields))
		}
		return fe
	}
	return fmt.Errorf("%s %s: %w", op, def.Info.Resource, err)
}

// logAudit records a mutation. Audit failures are logged, never returned.
func (s *Service) logAudit(ctx context.Context, def ScreenDefinition, params AuditLogParams) {
	params.ScreenKey = def.Info.Key
	params.Resource = def.Info.Resource
	params.Actor = GetActorFromContext(ctx)
	params.IPAddress = GetIPAddressFromContext(ctx)
	params.UserAgent = GetUserAgentFromContext(ctx)

	if _, err := s.audit.Log(context.WithoutCancel(ctx), params); err != nil {
		logging.WithFields(ctx, "screen", def.Info.Key, "action", string(params.Action)).
			Error("audit log failed", "error", err)
	}
}
