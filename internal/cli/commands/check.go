package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/forecast"
	"github.com/chuawjk/ecda/internal/ingest"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the input datasets without running a forecast",
		Long: `Load and cross-validate the input datasets: referential integrity
against the subzone registry, chronological fertility series, and
non-negative counts. Exits nonzero on the first problem found.`,
		Aliases: []string{"validate"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			snap, err := ingest.LoadSnapshot(cfg.DataDir, cfg.SchedulePath, logger)
			if err != nil {
				return fmt.Errorf("failed to load datasets: %w", err)
			}

			eng, err := forecast.New(cfg.ForecastParams(), logger)
			if err != nil {
				return err
			}
			if err := eng.Validate(snap); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"OK: %d subzones, %d fertility records, %d housing completions, %d population rows, %d facilities\n",
				len(snap.Subzones), len(snap.Fertility), len(snap.Housing), len(snap.Baseline), len(snap.Facilities))
			return nil
		},
	}
}
