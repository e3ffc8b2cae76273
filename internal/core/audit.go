package core

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionCreate  AuditAction = "create"
	ActionUpdate  AuditAction = "update"
	ActionDelete  AuditAction = "delete"
	ActionApprove AuditAction = "approve"
	ActionReject  AuditAction = "reject"
)

// AuditSeverity represents the severity level of an audit entry.
type AuditSeverity string

const (
	SeverityLow    AuditSeverity = "low"
	SeverityMedium AuditSeverity = "medium"
	SeverityHigh   AuditSeverity = "high"
)

// DefaultHistoryLimit is the page size of audit log queries.
const DefaultHistoryLimit = 50

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string         `json:"id"`
	Action    AuditAction    `json:"action"`
	Severity  AuditSeverity  `json:"severity"`
	ScreenKey string         `json:"screenKey"`
	Resource  string         `json:"resource"`
	RecordID  string         `json:"recordId,omitempty"`
	Summary   string         `json:"summary,omitempty"`
	Actor     string         `json:"actor"`
	IPAddress string         `json:"ipAddress,omitempty"`
	UserAgent string         `json:"userAgent,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Reason    string         `json:"reason,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// AuditLogParams contains parameters for creating an audit log entry.
type AuditLogParams struct {
	Action    AuditAction
	ScreenKey string
	Resource  string
	RecordID  string
	Summary   string
	Actor     string
	IPAddress string
	UserAgent string
	Payload   map[string]any
	Reason    string
}

// AuditLogFilter contains filtering options for querying audit logs.
type AuditLogFilter struct {
	ScreenKey string
	Action    AuditAction
	Severity  AuditSeverity
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}

// AuditStore persists console mutations.
type AuditStore interface {
	Log(ctx context.Context, params AuditLogParams) (*AuditEntry, error)
	List(ctx context.Context, filter AuditLogFilter) ([]AuditEntry, error)
	// Purge deletes entries created before cutoff and returns how many.
	Purge(ctx context.Context, cutoff time.Time) (int64, error)
}

// determineSeverity returns the appropriate severity for an action.
func determineSeverity(action AuditAction) AuditSeverity {
	switch action {
	case ActionDelete, ActionReject:
		return SeverityHigh
	case ActionCreate:
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// newAuditEntry fills the derived fields of an entry.
func newAuditEntry(params AuditLogParams, now time.Time) AuditEntry {
	actor := params.Actor
	if actor == "" {
		actor = "anonymous"
	}
	return AuditEntry{
		ID:        uuid.NewString(),
		Action:    params.Action,
		Severity:  determineSeverity(params.Action),
		ScreenKey: params.ScreenKey,
		Resource:  params.Resource,
		RecordID:  params.RecordID,
		Summary:   params.Summary,
		Actor:     actor,
		IPAddress: params.IPAddress,
		UserAgent: params.UserAgent,
		Payload:   params.Payload,
		Reason:    params.Reason,
		CreatedAt: now,
	}
}

// NopAuditStore discards entries. Used when no database is configured.
type NopAuditStore struct{}

func (NopAuditStore) Log(_ context.Context, params AuditLogParams) (*AuditEntry, error) {
	e := newAuditEntry(params, time.Now())
	return &e, nil
}

func (NopAuditStore) List(context.Context, AuditLogFilter) ([]AuditEntry, error) {
	return nil, nil
}

func (NopAuditStore) Purge(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// MemoryAuditStore keeps entries in process memory, newest first.
type MemoryAuditStore struct {
	mu      sync.RWMutex
	entries []AuditEntry
	now     func() time.Time
}

// NewMemoryAuditStore creates an empty in-memory store.
func NewMemoryAuditStore() *MemoryAuditStore {
	return &MemoryAuditStore{now: time.Now}
}

func (m *MemoryAuditStore) Log(_ context.Context, params AuditLogParams) (*AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := newAuditEntry(params, m.now())
	m.entries = append(m.entries, e)
	return &e, nil
}

func (m *MemoryAuditStore) List(_ context.Context, filter AuditLogFilter) ([]AuditEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if filter.Limit <= 0 {
		filter.Limit = DefaultHistoryLimit
	}

	var out []AuditEntry
	for _, e := range m.entries {
		if filter.ScreenKey != "" && e.ScreenKey != filter.ScreenKey {
			continue
		}
		if filter.Action != "" && !strings.EqualFold(string(e.Action), string(filter.Action)) {
			continue
		}
		if filter.Severity != "" && e.Severity != filter.Severity {
			continue
		}
		if !filter.StartTime.IsZero() && e.CreatedAt.Before(filter.StartTime) {
			continue
		}
		if !filter.EndTime.IsZero() && !e.CreatedAt.Before(filter.EndTime) {
			continue
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset >= len(out) {
		return nil, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MemoryAuditStore) Purge(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.entries[:0]
	var purged int64
	for _, e := range m.entries {
		if e.CreatedAt.Before(cutoff) {
			purged++
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
	return purged, nil
}
