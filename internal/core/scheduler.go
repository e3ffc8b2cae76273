package core

// scheduler.go provides background job scheduling for maintenance tasks.
//
// Currently implements audit retention: entries older than the retention
// window are purged from the audit store. The scheduler is long-running and
// context-aware for graceful shutdown. It logs failures but never stops the
// application.

import (
	"context"
	"log/slog"
	"time"
)

// RetentionConfig holds configuration for the retention scheduler.
type RetentionConfig struct {
	RetentionDays int           // Days to keep audit entries (default: 365)
	CheckInterval time.Duration // How often to run (default: 24h)
}

func (c RetentionConfig) withDefaults() RetentionConfig {
	if c.RetentionDays <= 0 {
		c.RetentionDays = 365
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 24 * time.Hour
	}
	return c
}

// StartRetentionScheduler purges old audit entries immediately and then
// every CheckInterval until ctx is cancelled.
func (s *Service) StartRetentionScheduler(ctx context.Context, cfg RetentionConfig) {
	cfg = cfg.withDefaults()
	slog.Info("retention scheduler started",
		"retention_days", cfg.RetentionDays,
		"interval", cfg.CheckInterval,
	)

	s.runRetentionJob(ctx, cfg)

	ticker := time.NewTicker(cfg.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention scheduler stopped")
			return
		case <-ticker.C:
			s.runRetentionJob(ctx, cfg)
		}
	}
}

// runRetentionJob performs one purge cycle.
func (s *Service) runRetentionJob(ctx context.Context, cfg RetentionConfig) int64 {
	start := time.Now()
	cutoff := start.AddDate(0, 0, -cfg.RetentionDays)

	purged, err := s.audit.Purge(ctx, cutoff)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return 0
	}
	slog.Info("purged old audit entries",
		"entries_purged", purged,
		"cutoff", cutoff.Format(time.RFC3339),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return purged
}
