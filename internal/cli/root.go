// Package cli provides the ecda command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/cli/commands"
	"github.com/chuawjk/ecda/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ecda",
		Short: "ecda - Preschool Demand Forecaster",
		Long: `ecda forecasts preschool demand per subzone by combining historical
fertility data, planned housing completions and the current child
population, then reconciles the projection against existing preschool
capacity to show where places will run short.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, configFileUsed, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			ctx := commands.ContextWithConfig(cmd.Context(), cfg)
			ctx = commands.ContextWithLogger(ctx, logger)
			cmd.SetContext(ctx)

			if cfg.Verbose && configFileUsed != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFileUsed)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./ecda.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding the input CSV datasets")
	rootCmd.PersistentFlags().String("schedule-path", "", "Optional capacity-change schedule (YAML)")
	rootCmd.PersistentFlags().String("state-path", "", "Run-history database path (empty string disables)")
	rootCmd.PersistentFlags().Int("reference-year", 0, "Reference (year-zero) year")
	rootCmd.PersistentFlags().Int("horizon-year", 0, "Last forecast year")
	rootCmd.PersistentFlags().Float64("children-per-unit", 0, "Preschool-age children per new housing unit")
	rootCmd.PersistentFlags().Int("eligibility-delay-years", 0, "Years from occupancy to preschool eligibility")
	rootCmd.PersistentFlags().Float64("attrition-rate", 0, "Yearly rate of children aging out of the band")
	rootCmd.PersistentFlags().Int("min-historical-points", 0, "Minimum fertility points before trend fitting")
	rootCmd.PersistentFlags().String("trend-model", "", "Birth trend model (linear|flat)")
	rootCmd.PersistentFlags().String("fallback-policy", "", "Policy for subzones without fertility data (error|zero|citywide)")
	rootCmd.PersistentFlags().Int("precision", 0, "Decimal places for reported demand")
	rootCmd.PersistentFlags().Int("places-per-centre", 0, "Places per centre for the centres-needed figure")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|json)")

	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewCapacityCommand())
	rootCmd.AddCommand(commands.NewRunsCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
