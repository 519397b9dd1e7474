package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/config"
	"github.com/chuawjk/ecda/internal/forecast"
	"github.com/chuawjk/ecda/internal/ingest"
	"github.com/chuawjk/ecda/internal/state"
)

// RunOptions holds options for the run command.
type RunOptions struct {
	Year   int
	Strict bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the demand forecast and show the supply gap",
		Long: `Load the input datasets, project preschool demand per subzone from
the reference year to the horizon, and reconcile it against existing
capacity. Results are recorded in the run-history database unless
--state-path is set to an empty string.`,
		Example: `  # Full forecast with the default configuration
  ecda run

  # Only show the gap table for one forecast year
  ecda run --year 2027

  # Machine-readable output
  ecda run -o json`,
		Aliases: []string{"forecast"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRun(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Year, "year", 0, "Limit the gap table to a single forecast year")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit nonzero when any subzone fails to project")

	return cmd
}

func runRun(cmd *cobra.Command, opts *RunOptions) error {
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

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	var run *state.Run
	if store != nil {
		run, err = store.CreateRun(cfg.ReferenceYear, cfg.HorizonYear)
		if err != nil {
			return err
		}
	}

	res, err := eng.Run(ctx, snap)
	if err != nil {
		if store != nil {
			_ = store.CompleteRun(run.ID, state.RunStatusFailed, err.Error())
		}
		return fmt.Errorf("forecast run failed: %w", err)
	}

	if store != nil {
		if err := store.RecordManifest(run.ID, res.Manifest); err != nil {
			return err
		}
		if err := store.SaveGapResults(run.ID, res.Gaps); err != nil {
			return err
		}
		if err := store.CompleteRun(run.ID, state.RunStatusCompleted, ""); err != nil {
			return err
		}
		logger.Debug("run recorded", "run_id", run.ID)
	}

	if cfg.Output == "json" {
		if err := renderResultJSON(cmd.OutOrStdout(), res); err != nil {
			return err
		}
	} else {
		renderGapTable(cmd.OutOrStdout(), res, opts.Year)
	}

	if opts.Strict && res.Failed() {
		return fmt.Errorf("%d subzone(s) failed to project", countFailures(res.Manifest))
	}
	return nil
}

// openStore opens the run-history store, creating its directory if
// needed. An empty state path disables persistence.
func openStore(cfg *config.Config, logger *slog.Logger) (*state.SQLiteStore, error) {
	if cfg.StatePath == "" {
		return nil, nil
	}

	if dir := filepath.Dir(cfg.StatePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	s := state.NewSQLiteStore(logger)
	if err := s.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func countFailures(manifest []forecast.SubzoneOutcome) int {
	n := 0
	for _, o := range manifest {
		if o.Status == forecast.SubzoneFailed {
			n++
		}
	}
	return n
}
