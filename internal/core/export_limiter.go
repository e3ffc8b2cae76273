package core

// export_limiter.go bounds how many CSV exports run at once.
//
// An export loads a full collection from the API and streams it to the
// client, so a burst of exports can hold many large responses in memory.
// When all slots are busy, new exports wait up to maxWait before failing
// with ErrTooManyExports. WaitForDrain supports graceful shutdown.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrTooManyExports is returned when no export slot frees up in time.
var ErrTooManyExports = errors.New("too many concurrent exports, please try again later")

// DefaultMaxConcurrentExports is the default limit for parallel exports.
const DefaultMaxConcurrentExports = 4

// DefaultExportWait is how long to wait for a slot before rejecting.
const DefaultExportWait = 10 * time.Second

// ExportLimiter controls concurrent exports with a weighted semaphore.
type ExportLimiter struct {
	sem     *semaphore.Weighted
	max     int
	maxWait time.Duration
	active  atomic.Int64
}

// NewExportLimiter allows at most maxConcurrent simultaneous exports.
func NewExportLimiter(maxConcurrent int, maxWait time.Duration) *ExportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExports
	}
	if maxWait <= 0 {
		maxWait = DefaultExportWait
	}
	return &ExportLimiter{
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		max:     maxConcurrent,
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. The caller must Release it when done.
func (l *ExportLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyExports
	}
	l.active.Add(1)
	return nil
}

// TryAcquire takes a slot without blocking.
func (l *ExportLimiter) TryAcquire() bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	l.active.Add(1)
	return true
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *ExportLimiter) Release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// Active returns the number of running exports.
func (l *ExportLimiter) Active() int {
	return int(l.active.Load())
}

// Available returns the number of free slots.
func (l *ExportLimiter) Available() int {
	return l.max - l.Active()
}

// WaitForDrain blocks until no export is running or ctx is done.
func (l *ExportLimiter) WaitForDrain(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, int64(l.max)); err != nil {
		return err
	}
	l.sem.Release(int64(l.max))
	return nil
}
