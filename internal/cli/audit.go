package cli

import (
	"fmt"
	"time"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newAuditCommand(env Env) *cobra.Command {
	var (
		screen   string
		action   string
		severity string
		since    string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent console changes",
		Long: `Show the newest audit trail entries recorded by the console.

Examples:
  # Last 20 changes
  consolectl audit

  # Deletions on one screen in the last week
  consolectl audit --screen admin_courses --action delete --since 168h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := core.AuditLogFilter{
				ScreenKey: screen,
				Action:    core.AuditAction(action),
				Severity:  core.AuditSeverity(severity),
				Limit:     limit,
			}
			if since != "" {
				d, err := time.ParseDuration(since)
				if err != nil {
					return fmt.Errorf("invalid --since value: %w", err)
				}
				filter.StartTime = time.Now().Add(-d)
			}

			store, release, err := env.Audit(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			entries, err := store.List(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list audit log: %w", err)
			}

			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{
					humanize.Time(e.CreatedAt),
					string(e.Action),
					string(e.Severity),
					e.ScreenKey,
					e.Summary,
					e.Actor,
				}
			}
			if err := writeTable(env.Out, []string{"When", "Action", "Severity", "Screen", "Record", "Actor"}, rows); err != nil {
				return err
			}
			return writeFooter(env.Out, "%d entries", len(entries))
		},
	}
	cmd.Flags().StringVar(&screen, "screen", "", "Only entries for this screen key")
	cmd.Flags().StringVar(&action, "action", "", "Only this action (create, update, delete, approve, reject)")
	cmd.Flags().StringVar(&severity, "severity", "", "Only this severity (low, medium, high)")
	cmd.Flags().StringVar(&since, "since", "", "Only entries newer than this duration, e.g. 24h")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries")
	return cmd
}
