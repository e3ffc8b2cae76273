package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS console_audit_log (
	id          UUID PRIMARY KEY,
	action      TEXT NOT NULL,
	severity    TEXT NOT NULL,
	screen_key  TEXT NOT NULL,
	resource    TEXT NOT NULL,
	record_id   TEXT,
	summary     TEXT,
	actor       TEXT NOT NULL,
	ip_address  TEXT,
	user_agent  TEXT,
	payload     JSONB,
	reason      TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS console_audit_log_created_at_idx ON console_audit_log (created_at DESC);
CREATE INDEX IF NOT EXISTS console_audit_log_screen_key_idx ON console_audit_log (screen_key);
`

// PgAuditStore keeps the audit trail in Postgres.
type PgAuditStore struct {
	pool *pgxpool.Pool
}

// NewPgAuditStore creates the audit table if needed and returns the store.
func NewPgAuditStore(ctx context.Context, pool *pgxpool.Pool) (*PgAuditStore, error) {
	if _, err := pool.Exec(ctx, auditSchema); err != nil {
		return nil, fmt.Errorf("create audit table: %w", err)
	}
	return &PgAuditStore{pool: pool}, nil
}

// Log inserts an entry.
func (a *PgAuditStore) Log(ctx context.Context, params AuditLogParams) (*AuditEntry, error) {
	entry := newAuditEntry(params, time.Now().UTC())

	var payload []byte
	if entry.Payload != nil {
		var err error
		payload, err = json.Marshal(entry.Payload)
		if err != nil {
			payload = nil // Fall back to nil if marshaling fails
		}
	}

	err := a.pool.QueryRow(ctx, `
		INSERT INTO console_audit_log
			(id, action, severity, screen_key, resource, record_id, summary,
			 actor, ip_address, user_agent, payload, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at`,
		ToPgUUID(entry.ID),
		string(entry.Action),
		string(entry.Severity),
		entry.ScreenKey,
		entry.Resource,
		ToPgText(entry.RecordID),
		ToPgText(entry.Summary),
		entry.Actor,
		ToPgText(entry.IPAddress),
		ToPgText(entry.UserAgent),
		payload,
		ToPgText(entry.Reason),
		entry.CreatedAt,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert audit entry: %w", err)
	}
	return &entry, nil
}

// List retrieves entries newest first with optional filtering.
func (a *PgAuditStore) List(ctx context.Context, filter AuditLogFilter) ([]AuditEntry, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultHistoryLimit
	}

	wb := NewWhereBuilder()
	wb.Add("screen_key", filter.ScreenKey)
	wb.Add("action", string(filter.Action))
	wb.Add("severity", string(filter.Severity))
	wb.AddTimestampRange("created_at", filter.StartTime, filter.EndTime)

	whereClause, args := wb.Build()

	query := `SELECT id, action, severity, screen_key, resource, record_id, summary,
		actor, ip_address, user_agent, payload, reason, created_at
		FROM console_audit_log` + whereClause + ` ORDER BY created_at DESC LIMIT $` +
		fmt.Sprintf("%d OFFSET $%d", wb.NextArgIndex(), wb.NextArgIndex()+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]AuditEntry, 0)
	for rows.Next() {
		entry, err := scanAuditRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Purge deletes entries older than cutoff.
func (a *PgAuditStore) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM console_audit_log WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge audit log: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanAuditRow(rows pgx.Rows) (*AuditEntry, error) {
	var (
		entry             AuditEntry
		id                pgtype.UUID
		action, severity  string
		recordID, summary pgtype.Text
		ip, userAgent     pgtype.Text
		reason            pgtype.Text
		payload           []byte
	)
	err := rows.Scan(&id, &action, &severity, &entry.ScreenKey, &entry.Resource,
		&recordID, &summary, &entry.Actor, &ip, &userAgent, &payload, &reason, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan audit row: %w", err)
	}

	entry.ID = PgUUIDToString(id)
	entry.Action = AuditAction(action)
	entry.Severity = AuditSeverity(severity)
	entry.RecordID = recordID.String
	entry.Summary = summary.String
	entry.IPAddress = ip.String
	entry.UserAgent = userAgent.String
	entry.Reason = reason.String
	if len(payload) > 0 {
		_ = json.Unmarshal(payload, &entry.Payload)
	}
	return &entry, nil
}
