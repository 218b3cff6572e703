package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/bnema/tenderlogic-cli/internal/adapters/render/report"
	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/contract"
	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/spf13/cobra"
)

func newProposalCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proposal",
		Short: "Draft technical proposals for analyzed tenders",
	}

	cmd.AddCommand(newProposalGenerateCmd(app))

	return cmd
}

func newProposalGenerateCmd(app *app) *cobra.Command {
	var out string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "generate <account/seq>",
		Short: "Draft the technical memory, compliance checklist and score (PRO and up)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}
			key, err := domain.ParseTenderKey(args[0])
			if err != nil {
				return err
			}
			tender, err := app.analysis.Get(cmd.Context(), key)
			if err != nil {
				return err
			}

			var proposal domain.GeneratedProposal
			err = runWithPhases(cmd.Context(), cmd.ErrOrStderr(), "Drafting proposal", func(ctx context.Context, observer progress.Observer) error {
				var err error
				proposal, err = app.proposals.Generate(ctx, application.GenerateProposalCommand{
					AccountID: actor,
					Tender:    key,
					Observer:  observer,
				})
				return err
			})
			if err != nil {
				return withUpgradeHint(err)
			}

			if out != "" {
				if err := os.WriteFile(out, []byte(proposal.TechnicalMemory), 0o644); err != nil {
					return fmt.Errorf("write technical memory: %w", err)
				}
			}

			if asJSON {
				return writeJSON(cmd, contract.NewProposalDocument(proposal))
			}

			rendered, err := report.RenderProposal(tender, proposal)
			return writeRendered(cmd, rendered, err)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Also write the technical memory (markdown) to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}
