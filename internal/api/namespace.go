package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/accreditation-console/internal/pagination"
)

// Namespace names.
const (
	NamespaceAdmin          = "admin"
	NamespaceACC            = "acc"
	NamespaceTrainingCenter = "training_center"
)

// Params are the query parameters of a list call.
type Params struct {
	Page    int
	PerPage int
	Search  string
	// Extra is merged into the query as-is.
	Extra url.Values
}

func (p Params) values() url.Values {
	v := url.Values{}
	for k, vals := range p.Extra {
		v[k] = append([]string(nil), vals...)
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// Namespace is one role's view of the API. Resources are path segments such
// as "training-centers" or "courses/categories".
type Namespace struct {
	c      *Client
	name   string
	prefix string
}

// Name returns the namespace name.
func (n Namespace) Name() string {
	return n.name
}

// path joins the namespace prefix, the resource and escaped id segments.
// The result is in escaped form.
func (n Namespace) path(resource string, parts ...string) string {
	p := n.prefix + "/" + resource
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

// List fetches a collection. entityKey names the array field for responses
// that use the named shape.
func (n Namespace) List(ctx context.Context, resource, entityKey string, p Params) (pagination.Envelope, error) {
	data, err := n.c.do(ctx, http.MethodGet, n.path(resource), p.values(), nil)
	if err != nil {
		return pagination.Envelope{}, err
	}
	env, err := pagination.Decode(data, entityKey)
	if err != nil {
		return pagination.Envelope{}, fmt.Errorf("api: list %s: %w", resource, err)
	}
	return env, nil
}

// Get fetches one record.
func (n Namespace) Get(ctx context.Context, resource, id string) (map[string]any, error) {
	data, err := n.c.do(ctx, http.MethodGet, n.path(resource, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// Create posts a new record and returns what the API stored.
func (n Namespace) Create(ctx context.Context, resource string, body map[string]any) (map[string]any, error) {
	data, err := n.c.do(ctx, http.MethodPost, n.path(resource), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// Update replaces fields of record id.
func (n Namespace) Update(ctx context.Context, resource, id string, body map[string]any) (map[string]any, error) {
	data, err := n.c.do(ctx, http.MethodPut, n.path(resource, id), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// Delete removes record id.
func (n Namespace) Delete(ctx context.Context, resource, id string) error {
	_, err := n.c.do(ctx, http.MethodDelete, n.path(resource, id), nil, nil)
	return err
}

// Approve marks record id approved.
func (n Namespace) Approve(ctx context.Context, resource, id string) (map[string]any, error) {
	data, err := n.c.do(ctx, http.MethodPut, n.path(resource, id, "approve"), nil, map[string]any{})
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// Reject marks record id rejected with a reason.
func (n Namespace) Reject(ctx context.Context, resource, id, reason string) (map[string]any, error) {
	body := map[string]any{"rejection_reason": reason}
	data, err := n.c.do(ctx, http.MethodPut, n.path(resource, id, "reject"), nil, body)
	if err != nil {
		return nil, err
	}
	return decodeRecord(data)
}

// decodeRecord unwraps {"data": {...}} and returns the object. Empty bodies
// yield an empty record.
func decodeRecord(data []byte) (map[string]any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("api: decode record: %w", err)
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		return inner, nil
	}
	if obj == nil {
		obj = map[string]any{}
	}
	return obj, nil
}
