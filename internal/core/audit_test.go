package core

import (
	"context"
	"testing"
	"time"
)

func TestDetermineSeverity(t *testing.T) {
	tests := map[AuditAction]AuditSeverity{
		ActionCreate:  SeverityLow,
		ActionUpdate:  SeverityMedium,
		ActionApprove: SeverityMedium,
		ActionDelete:  SeverityHigh,
		ActionReject:  SeverityHigh,
	}
	for action, want := range tests {
		if got := determineSeverity(action); got != want {
			t.Errorf("determineSeverity(%s) = %s, want %s", action, got, want)
		}
	}
}

// newClockedStore returns a memory store whose clock advances a minute per entry.
func newClockedStore(start time.Time) *MemoryAuditStore {
	m := NewMemoryAuditStore()
	next := start
	m.now = func() time.Time {
		t := next
		next = next.Add(time.Minute)
		return t
	}
	return m
}

func TestMemoryAuditStore_LogAndList(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := newClockedStore(start)

	entries := []AuditLogParams{
		{Action: ActionCreate, ScreenKey: "admin_courses", RecordID: "1", Actor: "ops"},
		{Action: ActionDelete, ScreenKey: "admin_courses", RecordID: "2"},
		{Action: ActionApprove, ScreenKey: "admin_training_centers", RecordID: "3", Actor: "ops"},
	}
	for _, p := range entries {
		e, err := store.Log(ctx, p)
		if err != nil {
			t.Fatalf("Log: %v", err)
		}
		if e.ID == "" {
			t.Error("Log should assign an id")
		}
	}

	all, err := store.List(ctx, AuditLogFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List returned %d entries, want 3", len(all))
	}
	if all[0].RecordID != "3" || all[2].RecordID != "1" {
		t.Errorf("List order = %s,%s,%s; want newest first", all[0].RecordID, all[1].RecordID, all[2].RecordID)
	}
	if all[1].Actor != "anonymous" {
		t.Errorf("missing actor = %q, want anonymous", all[1].Actor)
	}
	if all[1].Severity != SeverityHigh {
		t.Errorf("delete severity = %s, want high", all[1].Severity)
	}

	byScreen, _ := store.List(ctx, AuditLogFilter{ScreenKey: "admin_courses"})
	if len(byScreen) != 2 {
		t.Errorf("screen filter returned %d entries, want 2", len(byScreen))
	}

	bySeverity, _ := store.List(ctx, AuditLogFilter{Severity: SeverityHigh})
	if len(bySeverity) != 1 || bySeverity[0].Action != ActionDelete {
		t.Errorf("severity filter = %+v", bySeverity)
	}

	windowed, _ := store.List(ctx, AuditLogFilter{StartTime: start.Add(time.Minute), EndTime: start.Add(2 * time.Minute)})
	if len(windowed) != 1 || windowed[0].RecordID != "2" {
		t.Errorf("time window = %+v", windowed)
	}

	paged, _ := store.List(ctx, AuditLogFilter{Limit: 1, Offset: 1})
	if len(paged) != 1 || paged[0].RecordID != "2" {
		t.Errorf("paging = %+v", paged)
	}

	beyond, _ := store.List(ctx, AuditLogFilter{Offset: 10})
	if len(beyond) != 0 {
		t.Errorf("offset beyond end returned %d entries", len(beyond))
	}
}

func TestMemoryAuditStore_Purge(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	store := newClockedStore(start)

	for i := 0; i < 3; i++ {
		if _, err := store.Log(ctx, AuditLogParams{Action: ActionUpdate}); err != nil {
			t.Fatal(err)
		}
	}

	purged, err := store.Purge(ctx, start.Add(90*time.Second))
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}
	left, _ := store.List(ctx, AuditLogFilter{})
	if len(left) != 1 {
		t.Errorf("remaining = %d, want 1", len(left))
	}
}

func TestNopAuditStore(t *testing.T) {
	var store AuditStore = NopAuditStore{}
	e, err := store.Log(context.Background(), AuditLogParams{Action: ActionReject})
	if err != nil || e == nil {
		t.Fatalf("Log = %v, %v", e, err)
	}
	if e.Severity != SeverityHigh {
		t.Errorf("severity = %s, want high", e.Severity)
	}
	if got, _ := store.List(context.Background(), AuditLogFilter{}); len(got) != 0 {
		t.Errorf("List returned %d entries", len(got))
	}
}

func TestRetentionJobPurgesThroughService(t *testing.T) {
	store := NewMemoryAuditStore()
	store.now = func() time.Time { return time.Now().AddDate(0, 0, -400) }
	store.Log(context.Background(), AuditLogParams{Action: ActionCreate})
	store.now = time.Now
	store.Log(context.Background(), AuditLogParams{Action: ActionCreate})

	svc := NewService(nil, store, 0)
	purged := svc.runRetentionJob(context.Background(), RetentionConfig{}.withDefaults())
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}
}
