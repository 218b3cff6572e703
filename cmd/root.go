package cmd

import (
	"errors"

	"github.com/bnema/tenderlogic-cli/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	rootCmd, app := buildRootCmd()
	err := rootCmd.Execute()
	if app != nil {
		err = errors.Join(err, app.close())
	}

	return err
}

func newRootCmd() *cobra.Command {
	rootCmd, _ := buildRootCmd()
	return rootCmd
}

func buildRootCmd() (*cobra.Command, *app) {
	rootCmd := &cobra.Command{
		Use:           "tl",
		Short:         "TenderLogic CLI (tl): tender analysis, proposals and subscriptions",
		Long:          "tl (TenderLogic CLI) analyzes public tender documents with a generative model, drafts technical proposals from your company profile, and enforces subscription tiers and quotas on a local store.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().String("account", "", "Account to act as (env TL_ACCOUNT)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, nil
	}
	_ = app.cfg.BindPFlag(config.KeyAccount, rootCmd.PersistentFlags().Lookup("account"))
	_ = app.cfg.BindPFlag(config.KeyMetricsFile, rootCmd.PersistentFlags().Lookup("metrics-file"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newProfileCmd(app),
		newTenderCmd(app),
		newProposalCmd(app),
		newVisualCmd(app),
		newTeamCmd(app),
		newBackupCmd(app),
		newLogCmd(app),
		newAuthCmd(app),
	)

	return rootCmd, app
}
