package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExportLimiter_AcquireRelease(t *testing.T) {
	limiter := NewExportLimiter(2, time.Second)
	ctx := context.Background()

	if got := limiter.Available(); got != 2 {
		t.Errorf("initial Available = %d, want 2", got)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire failed: %v", err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire failed: %v", err)
	}
	if got := limiter.Active(); got != 2 {
		t.Errorf("Active = %d, want 2", got)
	}
	if limiter.TryAcquire() {
		t.Error("TryAcquire succeeded on a full limiter")
	}

	limiter.Release()
	if got := limiter.Available(); got != 1 {
		t.Errorf("after Release, Available = %d, want 1", got)
	}
	limiter.Release()
	if got := limiter.Active(); got != 0 {
		t.Errorf("after second Release, Active = %d, want 0", got)
	}
}

func TestExportLimiter_TimesOutWhenFull(t *testing.T) {
	limiter := NewExportLimiter(1, 20*time.Millisecond)
	if !limiter.TryAcquire() {
		t.Fatal("TryAcquire failed on an empty limiter")
	}
	defer limiter.Release()

	err := limiter.Acquire(context.Background())
	if !errors.Is(err, ErrTooManyExports) {
		t.Errorf("Acquire error = %v, want ErrTooManyExports", err)
	}
	if got := MapError(err).Code; got != "RATE002" {
		t.Errorf("MapError code = %q, want RATE002", got)
	}
}

func TestExportLimiter_ContextCancellation(t *testing.T) {
	limiter := NewExportLimiter(1, time.Second)
	limiter.TryAcquire()
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire error = %v, want context.Canceled", err)
	}
}

func TestExportLimiter_WaitForDrain(t *testing.T) {
	limiter := NewExportLimiter(2, time.Second)
	limiter.TryAcquire()

	go func() {
		time.Sleep(20 * time.Millisecond)
		limiter.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := limiter.WaitForDrain(ctx); err != nil {
		t.Fatalf("WaitForDrain: %v", err)
	}
	if got := limiter.Active(); got != 0 {
		t.Errorf("Active after drain = %d, want 0", got)
	}
}

func TestExportLimiter_DefaultValues(t *testing.T) {
	limiter := NewExportLimiter(0, 0)
	if got := limiter.Available(); got != DefaultMaxConcurrentExports {
		t.Errorf("Available = %d, want %d", got, DefaultMaxConcurrentExports)
	}
	if limiter.maxWait != DefaultExportWait {
		t.Errorf("maxWait = %v, want %v", limiter.maxWait, DefaultExportWait)
	}
}
