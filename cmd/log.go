package cmd

import (
	"github.com/bnema/tenderlogic-cli/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func newLogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Inspect the activity log",
	}

	cmd.AddCommand(newLogListCmd(app))

	return cmd
}

func newLogListCmd(app *app) *cobra.Command {
	var limit int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the most recent activity, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.activity.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, entries)
			}

			rendered, err := report.RenderActivity(entries)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
