package cmd

import (
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/spf13/cobra"
)

func newAuthCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage oracle API keys",
	}

	cmd.AddCommand(newAuthSetCmd(app), newAuthRemoveCmd(app))

	return cmd
}

func newAuthSetCmd(app *app) *cobra.Command {
	var provider string
	var secretValue string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the API key of a provider in pass, or the secrets directory when pass is unavailable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := application.ParseProvider(provider)
			if err != nil {
				return err
			}
			if err := app.credentials.SetKey(cmd.Context(), parsed, secretValue); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s key\n", parsed)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider (gemini|openai)")
	cmd.Flags().StringVar(&secretValue, "secret-value", "", "API key")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("secret-value")

	return cmd
}

func newAuthRemoveCmd(app *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove the stored API key of a provider",
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := application.ParseProvider(provider)
			if err != nil {
				return err
			}

			return app.credentials.RemoveKey(cmd.Context(), parsed)
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider (gemini|openai)")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}
