package cmd

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/tenderlogic-cli/internal/application"
	"github.com/bnema/tenderlogic-cli/internal/ports"
	"github.com/bnema/tenderlogic-cli/internal/progress"
	"github.com/spf13/cobra"
)

func newVisualCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visual",
		Short: "Generate project concept visuals (PRO and up)",
	}

	cmd.AddCommand(newVisualGenerateCmd(app), newVisualEditCmd(app))

	return cmd
}

func newVisualGenerateCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "generate <description>...",
		Short: "Render a concept visual from a description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}

			var image ports.Image
			err = runWithPhases(cmd.Context(), cmd.ErrOrStderr(), "Rendering visual", func(ctx context.Context, observer progress.Observer) error {
				var err error
				image, err = app.assets.Generate(ctx, application.GenerateAssetCommand{
					AccountID:   actor,
					Description: strings.Join(args, " "),
					Observer:    observer,
				})
				return err
			})
			if err != nil {
				return withUpgradeHint(err)
			}

			return writeImage(cmd, out, image)
		},
	}

	cmd.Flags().StringVar(&out, "out", "visual.png", "Output image file")

	return cmd
}

func newVisualEditCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "edit <image> <instruction>...",
		Short: "Apply an instruction to an existing visual",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read source image: %w", err)
			}
			source := ports.Image{MIMEType: mime.TypeByExtension(filepath.Ext(args[0])), Data: data}

			var image ports.Image
			err = runWithPhases(cmd.Context(), cmd.ErrOrStderr(), "Editing visual", func(ctx context.Context, observer progress.Observer) error {
				var err error
				image, err = app.assets.Edit(ctx, application.EditAssetCommand{
					AccountID:   actor,
					Source:      source,
					Instruction: strings.Join(args[1:], " "),
					Observer:    observer,
				})
				return err
			})
			if err != nil {
				return withUpgradeHint(err)
			}

			return writeImage(cmd, out, image)
		},
	}

	cmd.Flags().StringVar(&out, "out", "visual-edited.png", "Output image file")

	return cmd
}

func writeImage(cmd *cobra.Command, out string, image ports.Image) error {
	if err := os.WriteFile(out, image.Data, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d bytes)\n", out, image.MIMEType, len(image.Data))
	return err
}
