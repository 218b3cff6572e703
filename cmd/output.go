package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/tenderlogic-cli/internal/domain"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func writeRendered(cmd *cobra.Command, rendered string, err error) error {
	if err != nil {
		return fmt.Errorf("render output: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// withUpgradeHint points entitlement failures at the tier command.
func withUpgradeHint(err error) error {
	switch {
	case errors.Is(err, domain.ErrQuotaExceeded):
		return fmt.Errorf("%w; upgrade with `tl account set-tier PRO` for a monthly quota", err)
	case errors.Is(err, domain.ErrFeatureLocked):
		return fmt.Errorf("%w; see `tl account show` for the features of each tier", err)
	default:
		return err
	}
}
