package cli

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/JonMunkholm/accreditation-console/internal/datatable"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	search string
	filter string
	sort   string
	desc   bool
	format string
	output string
}

func newExportCommand(env Env) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export SCREEN",
		Short: "Export a screen's rows",
		Long: `Load a screen from the marketplace API and print the rows the web table
would show for the given search, filter and sort.

Examples:
  # Pending training centers as a terminal table
  consolectl export admin_training_centers --filter pending

  # Every payment matching "visa", newest first, to a CSV file
  consolectl export admin_payments --search visa --sort payment_date --desc \
      --format csv --output payments.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, env, args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Search text")
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "Filter value (default: the screen's default filter)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Column accessor to sort by")
	cmd.Flags().BoolVar(&opts.desc, "desc", false, "Sort descending")
	cmd.Flags().StringVar(&opts.format, "format", "table", "Output format: table or csv")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, env Env, key string, opts exportOptions) error {
	if opts.format != "table" && opts.format != "csv" {
		return fmt.Errorf("unknown format %q (use table or csv)", opts.format)
	}
	ctx := cmd.Context()

	svc, release, err := env.Service(ctx)
	if err != nil {
		return err
	}
	defer release()

	state := datatable.State{Search: opts.search, Filter: opts.filter}
	if opts.sort != "" {
		state.Sort = datatable.SortState{Key: opts.sort, Direction: datatable.Ascending}
		if opts.desc {
			state.Sort.Direction = datatable.Descending
		}
	}

	def, rows, err := svc.ExportRows(ctx, key, state)
	if err != nil {
		return fmt.Errorf("export %s: %w", key, err)
	}

	out := env.Out
	if opts.output != "" {
		f, err := os.Create(opts.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if opts.format == "csv" {
		if err := core.WriteCSV(out, def.Columns, rows); err != nil {
			return err
		}
	} else {
		headers := make([]string, len(def.Columns))
		for i, col := range def.Columns {
			headers[i] = col.Header
		}
		cells := make([][]string, len(rows))
		for i, row := range rows {
			cells[i] = make([]string, len(def.Columns))
			for j, col := range def.Columns {
				cells[i][j] = datatable.CellText(col, row)
			}
		}
		if err := writeTable(out, headers, cells); err != nil {
			return err
		}
	}

	if opts.output != "" || opts.format == "table" {
		return writeFooter(env.Out, "%s %s row(s) from %s", humanize.Comma(int64(len(rows))), def.Entity(), def.Info.Title)
	}
	return nil
}
