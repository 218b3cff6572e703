package cmd

import (
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/adapters/render/report"
	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts and subscriptions",
	}

	cmd.AddCommand(
		newAccountCreateCmd(app),
		newAccountListCmd(app),
		newAccountShowCmd(app),
		newAccountSetTierCmd(app),
		newAccountSetRoleCmd(app),
	)

	return cmd
}

func newAccountCreateCmd(app *app) *cobra.Command {
	var id, email, name, role, tier, origin string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			create := application.CreateAccountCommand{
				ID:    domain.AccountID(strings.TrimSpace(id)),
				Email: email,
				Name:  name,
			}
			if role != "" {
				parsed, err := domain.ParseRole(role)
				if err != nil {
					return err
				}
				create.Role = parsed
			}
			if tier != "" {
				parsed, err := domain.ParseTier(tier)
				if err != nil {
					return err
				}
				create.Tier = parsed
			}
			if origin != "" {
				parsed, err := domain.ParseAuthOrigin(origin)
				if err != nil {
					return err
				}
				create.AuthOrigin = parsed
			}

			account, err := app.accounts.Create(cmd.Context(), create)
			if err != nil {
				return err
			}

			return writeStatuses(cmd, app, []domain.Account{account}, false)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Account ID (generated when empty)")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the email's local part)")
	cmd.Flags().StringVar(&role, "role", "", "Role (admin|editor|viewer)")
	cmd.Flags().StringVar(&tier, "tier", "", "Subscription tier (FREE|PRO|ENTERPRISE)")
	cmd.Flags().StringVar(&origin, "origin", "", "Sign-up origin (email|google)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAccountListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with their quota and features",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.accounts.List(cmd.Context())
			if err != nil {
				return err
			}

			return writeStatuses(cmd, app, accounts, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newAccountShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [account-id]",
		Short: "Show one account (defaults to --account)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := accountArg(app, args)
			if err != nil {
				return err
			}
			account, err := app.accounts.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			return writeStatuses(cmd, app, []domain.Account{account}, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newAccountSetTierCmd(app *app) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "set-tier <FREE|PRO|ENTERPRISE>",
		Short: "Change the subscription tier; the quota counter restarts at zero",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}

			account, err := app.accounts.ChangeTier(cmd.Context(), application.ChangeTierCommand{
				Actor:  actor,
				Target: domain.AccountID(target),
				Tier:   domain.Tier(args[0]),
			})
			if err != nil {
				return err
			}

			return writeStatuses(cmd, app, []domain.Account{account}, false)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Account to change (admins only; defaults to --account)")

	return cmd
}

func newAccountSetRoleCmd(app *app) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "set-role <admin|editor|viewer>",
		Short: "Change another account's role (admins only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}

			account, err := app.accounts.SetRole(cmd.Context(), application.SetRoleCommand{
				Actor:  actor,
				Target: domain.AccountID(target),
				Role:   domain.Role(args[0]),
			})
			if err != nil {
				return err
			}

			return writeStatuses(cmd, app, []domain.Account{account}, false)
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "Account to change")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func writeStatuses(cmd *cobra.Command, app *app, accounts []domain.Account, asJSON bool) error {
	statuses := make([]application.Status, 0, len(accounts))
	for _, account := range accounts {
		status, err := app.accounts.Status(cmd.Context(), account.ID)
		if err != nil {
			return err
		}
		statuses = append(statuses, status)
		app.metrics.SetQuota(string(account.ID), string(status.Account.Tier()), status.Account.Subscription.Consumed, status.Account.Subscription.Ceiling)
	}

	if asJSON {
		return writeJSON(cmd, statuses)
	}

	rendered, err := report.RenderStatus(statuses)
	return writeRendered(cmd, rendered, err)
}

func accountArg(app *app, args []string) (domain.AccountID, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return domain.AccountID(strings.TrimSpace(args[0])), nil
	}

	return app.actor()
}
