// Command salaries analyzes the Data Science Salaries dataset.
//
//	salaries report [file]   print the report and write charts and exports
//	salaries serve [file]    analyze once and serve the report over HTTP
//
// Settings come from the environment (optionally a .env file); see
// internal/config for the variables.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salaries/internal/config"
	"github.com/JonMunkholm/salaries/internal/core"
	_ "github.com/JonMunkholm/salaries/internal/core/views" // register views
	"github.com/JonMunkholm/salaries/internal/logging"
)

// errHypothesis marks a run whose outputs were written but whose cohort
// comparison could not be made. It only changes the exit status.
var errHypothesis = errors.New("hypothesis not evaluated")

var (
	envFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "salaries",
	Short:         "Analyze the Data Science Salaries dataset",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil {
			if cmd.Flags().Changed("env-file") {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			slog.Debug("no .env file found, using environment variables")
		}

		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if len(args) > 0 {
			loaded.Input.Path = args[0]
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
		slog.Debug("configuration loaded", "config", cfg.String(), "views", core.ViewCount())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.AddCommand(reportCmd, serveCmd)
}

// newService builds the analysis service from cfg.
func newService(cfg *config.Config) *core.Service {
	return core.NewService(core.Options{
		Load: core.LoadOptions{
			Delimiter:   cfg.Input.DelimiterRune(),
			MaxFileSize: cfg.Input.MaxFileSize,
		},
		Clean: core.CleanOptions{
			OtherThreshold: cfg.Analysis.OtherThreshold,
			OtherLabel:     cfg.Analysis.OtherLabel,
		},
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHypothesis) {
			fmt.Fprintln(os.Stderr, "Error:", err)
			if core.IsUserFacing(err) {
				fmt.Fprintln(os.Stderr, core.FormatUserError(err))
			}
		}
		os.Exit(1)
	}
}
