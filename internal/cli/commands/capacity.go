package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/forecast"
	"github.com/chuawjk/ecda/internal/ingest"
)

// NewCapacityCommand creates the capacity command.
func NewCapacityCommand() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "capacity",
		Short: "Show current preschool capacity per subzone",
		Long: `Aggregate rated capacity of operational preschools by subzone,
applying any scheduled capacity changes up to the requested years.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := configFromContext(ctx)
			logger := loggerFromContext(ctx)

			snap, err := ingest.LoadSnapshot(cfg.DataDir, cfg.SchedulePath, logger)
			if err != nil {
				return fmt.Errorf("failed to load datasets: %w", err)
			}

			ledger := forecast.NewCapacityLedger(snap.Facilities, snap.Schedule)

			var years []int
			if year != 0 {
				years = []int{year}
			} else {
				for y := cfg.ReferenceYear; y <= cfg.HorizonYear; y++ {
					years = append(years, y)
				}
			}

			renderCapacityTable(cmd.OutOrStdout(), ledger, years)
			return nil
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Show capacity for a single year only")

	return cmd
}
