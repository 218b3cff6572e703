package cmd

import (
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/adapters/render/report"
	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newTeamCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Invite collaborators (ENTERPRISE)",
	}

	cmd.AddCommand(newTeamInviteCmd(app), newTeamListCmd(app), newTeamAcceptCmd(app))

	return cmd
}

func newTeamInviteCmd(app *app) *cobra.Command {
	var email, role string

	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Create an invitation; without --email it is an open link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			invite := application.InviteCommand{AccountID: actor, Email: email}
			if role != "" {
				if invite.Role, err = domain.ParseRole(role); err != nil {
					return err
				}
			}

			invitation, err := app.team.Invite(cmd.Context(), invite)
			if err != nil {
				return withUpgradeHint(err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "invitation %s created for %s as %s\ntoken: %s\n",
				invitation.ID, orOpenLink(invitation.Email), invitation.Role, invitation.Token)
			return err
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Invitee email")
	cmd.Flags().StringVar(&role, "role", "", "Role granted (admin|editor|viewer, default viewer)")

	return cmd
}

func newTeamListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the invitations sent by --account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			invitations, err := app.team.List(cmd.Context(), actor)
			if err != nil {
				return err
			}

			rendered, err := report.RenderInvitations(invitations)
			return writeRendered(cmd, rendered, err)
		},
	}
}

func newTeamAcceptCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "accept <token>",
		Short: "Accept an invitation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			invitation, err := app.team.Accept(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "joined the team of %s as %s\n", invitation.AccountID, invitation.Role)
			return err
		},
	}
}

func orOpenLink(email string) string {
	if email == "" {
		return "an open link"
	}
	return email
}
