// Package cli implements consolectl, the command-line companion of the
// console. It reads the same environment as the server and talks to the
// marketplace API directly, so screens can be inspected and exported from a
// terminal or a cron job.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/accreditation-console/internal/api"
	"github.com/JonMunkholm/accreditation-console/internal/config"
	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/logging"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

// Env supplies the commands' dependencies. Tests replace the constructors.
type Env struct {
	Out io.Writer

	// Service builds the console service. The returned func releases it.
	Service func(ctx context.Context) (*core.Service, func(), error)
	// Audit opens the audit store. The returned func releases it.
	Audit func(ctx context.Context) (core.AuditStore, func(), error)
}

// DefaultEnv builds dependencies from the environment, like the server.
func DefaultEnv(out io.Writer) Env {
	return Env{
		Out:     out,
		Service: serviceFromConfig,
		Audit:   auditFromConfig,
	}
}

// NewRootCommand returns the consolectl command tree.
func NewRootCommand(env Env, version string) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "consolectl",
		Short: "Inspect and export accreditation console screens",
		Long: `consolectl lists the console's screens, exports any screen as CSV or a
terminal table using the same search, filter and sort rules as the web
console, and shows the audit trail.

Configuration is read from the environment (API_BASE_URL, API_TOKEN,
DATABASE_URL, ...), with an optional .env file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(logLevel, "text", logging.FileSink{})
		},
	}
	root.SetOut(env.Out)
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newScreensCommand(env),
		newExportCommand(env),
		newAuditCommand(env),
	)
	return root
}

func serviceFromConfig(ctx context.Context) (*core.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	client, err := api.New(api.Config{
		BaseURL:       cfg.API.BaseURL,
		Token:         cfg.API.Token,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
		Burst:         cfg.API.Burst,
		UserAgent:     "consolectl",
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create marketplace client: %w", err)
	}
	// Exports only read; nothing is audited.
	return core.NewService(client, core.NopAuditStore{}, cfg.API.PageSize), func() {}, nil
}

func auditFromConfig(ctx context.Context) (core.AuditStore, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Database.Enabled() {
		return nil, nil, fmt.Errorf("DATABASE_URL is not set; the audit trail lives in Postgres")
	}
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to audit database: %w", err)
	}
	store, err := core.NewPgAuditStore(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}
