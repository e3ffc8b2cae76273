package cli

import (
	"strings"

	"github.com/JonMunkholm/accreditation-console/internal/core"
	"github.com/spf13/cobra"
)

func newScreensCommand(env Env) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "screens",
		Short: "List the registered screens",
		Long: `List every screen the console serves, grouped by role, with the API
resource it lists and the workflows it offers.

Examples:
  # All screens
  consolectl screens

  # Only the training center role
  consolectl screens --group "Training Center"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rows [][]string
			for _, g := range core.Groups() {
				if group != "" && !strings.EqualFold(g, group) {
					continue
				}
				for _, def := range core.ByGroup(g) {
					rows = append(rows, []string{
						def.Info.Key,
						g,
						def.Info.Label,
						def.Info.Namespace + "/" + def.Info.Resource,
						capabilities(def.Can),
					})
				}
			}
			if err := writeTable(env.Out, []string{"Key", "Group", "Label", "Resource", "Workflows"}, rows); err != nil {
				return err
			}
			return writeFooter(env.Out, "%d screen(s)", len(rows))
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "Only list screens in this navigation group")
	return cmd
}

func capabilities(c core.Capabilities) string {
	var out []string
	for _, w := range []struct {
		on   bool
		name string
	}{
		{c.View, "view"},
		{c.Create, "create"},
		{c.Edit, "edit"},
		{c.Delete, "delete"},
		{c.Approve, "approve"},
	} {
		if w.on {
			out = append(out, w.name)
		}
	}
	return strings.Join(out, ", ")
}
