package cmd

import (
	"fmt"
	"os"

	"github.com/bnema/tenderlogic-cli/internal/adapters/render/report"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the company profile used to draft proposals",
	}

	cmd.AddCommand(newProfileShowCmd(app), newProfileSetCmd(app))

	return cmd
}

func newProfileShowCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the company profile of --account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			profile, err := app.accounts.GetProfile(cmd.Context(), actor)
			if err != nil {
				return err
			}

			rendered, err := report.RenderProfile(profile)
			return writeRendered(cmd, rendered, err)
		},
	}
}

func newProfileSetCmd(app *app) *cobra.Command {
	var name, experience, bidHistoryFile string
	var certifications, projects []string
	var clearHistory bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the company profile; flags left unset keep their value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			profile, err := app.accounts.GetProfile(cmd.Context(), actor)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				profile.Name = name
			}
			if flags.Changed("experience") {
				profile.Experience = experience
			}
			if flags.Changed("cert") {
				profile.Certifications = certifications
			}
			if flags.Changed("project") {
				profile.PastProjects = projects
			}
			if clearHistory {
				profile.BidHistory = ""
			}
			if bidHistoryFile != "" {
				data, err := os.ReadFile(bidHistoryFile)
				if err != nil {
					return fmt.Errorf("read bid history: %w", err)
				}
				profile.BidHistory = string(data)
			}

			if err := app.accounts.SaveProfile(cmd.Context(), profile); err != nil {
				return withUpgradeHint(err)
			}

			rendered, err := report.RenderProfile(profile)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Company name")
	cmd.Flags().StringVar(&experience, "experience", "", "Experience summary")
	cmd.Flags().StringSliceVar(&certifications, "cert", nil, "Certification (repeatable)")
	cmd.Flags().StringSliceVar(&projects, "project", nil, "Past project (repeatable)")
	cmd.Flags().StringVar(&bidHistoryFile, "bid-history-file", "", "File holding past bids for the archive (ENTERPRISE)")
	cmd.Flags().BoolVar(&clearHistory, "clear-bid-history", false, "Remove the stored bid history")

	return cmd
}
