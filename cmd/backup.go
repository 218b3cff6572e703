package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore the whole local database",
	}

	cmd.AddCommand(newBackupExportCmd(app), newBackupImportCmd(app))

	return cmd
}

func newBackupExportCmd(app *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of every table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, name, err := app.backup.Export(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				out = name
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("write backup: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return err
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default tenderlogic_backup_<date>.json)")

	return cmd
}

func newBackupImportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the local database with a snapshot",
		Long:  "Import validates the whole snapshot before touching the store. A snapshot with another version or a missing table is rejected and nothing changes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read backup: %w", err)
			}

			dataset, err := app.backup.Import(cmd.Context(), data)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "restored %d accounts, %d tenders, %d profiles, %d log entries\n",
				len(dataset.Accounts), len(dataset.Tenders), len(dataset.Profiles), len(dataset.Activity))
			return err
		},
	}
}
