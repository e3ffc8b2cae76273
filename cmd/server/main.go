package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/config"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	_ "github.com/JonMunkholm/accreditation-console/internal/core/screens" // Register all screens
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/JonMunkholm/accreditation-console/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	closeLog := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logging.FileSink{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		MaxBackups: cfg.Logging.FileMaxBackups,
		MaxAgeDays: cfg.Logging.FileMaxAgeDays,
		Compress:   cfg.Logging.FileCompress,
	})
	defer closeLog()

	slog.Info("configuration loaded", "config", cfg.String())

	client, err := api.New(api.Config{
		BaseURL:       cfg.API.BaseURL,
		Token:         cfg.API.Token,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
		Burst:         cfg.API.Burst,
	})
	if err != nil {
		slog.Error("failed to create marketplace client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	audit, closeAudit, err := openAuditStore(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open audit store", "error", err)
		os.Exit(1)
	}
	defer closeAudit()

	service := core.NewService(client, audit, cfg.API.PageSize)

	slog.Info("screens registered",
		"count", core.ScreenCount(),
		"groups", len(core.Groups()),
	)
	for _, group := range core.Groups() {
		slog.Debug("screen group", "group", group, "screens", len(core.ByGroup(group)))
	}

	exports := core.NewExportLimiter(cfg.Export.MaxConcurrent, cfg.Export.MaxWaitTime)
	server := web.NewServer(service, web.Options{
		Server:   cfg.Server,
		Security: cfg.Security,
		Rate:     cfg.Rate,
		Exports:  exports,
	})

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()

	if cfg.Database.Enabled() {
		go service.StartRetentionScheduler(jobCtx, core.RetentionConfig{
			RetentionDays: cfg.Audit.RetentionDays,
			CheckInterval: cfg.Audit.CheckInterval,
		})
	}

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if active := exports.Active(); active > 0 {
			slog.Info("waiting for exports to complete", "active", active)
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	addr := cfg.Server.Addr()
	if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	<-done
	slog.Info("server stopped")
}

// openAuditStore connects to Postgres when a database is configured. Without
// one, console changes are not recorded.
func openAuditStore(ctx context.Context, cfg config.DatabaseConfig) (core.AuditStore, func(), error) {
	if !cfg.Enabled() {
		slog.Warn("DATABASE_URL not set, audit trail disabled")
		return core.NopAuditStore{}, func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	store, err := core.NewPgAuditStore(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	slog.Info("connected to audit database", "database", poolConfig.ConnConfig.Database)
	return store, pool.Close, nil
}
