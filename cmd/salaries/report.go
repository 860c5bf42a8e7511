package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salaries/internal/charts"
	"github.com/JonMunkholm/salaries/internal/core"
	"github.com/JonMunkholm/salaries/internal/export"
	"github.com/JonMunkholm/salaries/internal/report"
)

var (
	outputDir  string
	noCharts   bool
	noWorkbook bool
)

var reportCmd = &cobra.Command{
	Use:   "report [file]",
	Short: "Print the salary report and write charts and exports",
	Long: `Loads and cleans the salaries file, prints the descriptive statistics,
the aggregate views and the hypothesis verdict, then writes the PNG charts,
the cleaned CSV and the xlsx workbook into the output directory.

Exits with status 1 when the hypothesis could not be evaluated, after all
other outputs have been written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (overrides OUTPUT_DIR)")
	reportCmd.Flags().BoolVar(&noCharts, "no-charts", false, "skip PNG charts")
	reportCmd.Flags().BoolVar(&noWorkbook, "no-workbook", false, "skip the xlsx workbook")
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}

	rep, err := newService(cfg).Run(ctx, cfg.Input.Path)
	if err != nil {
		return err
	}

	report.NewPrinter(cmd.OutOrStdout()).Print(rep)

	written, err := writeOutputs(ctx, rep)
	if err != nil {
		return err
	}
	if len(written) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %d files to %s\n", len(written), cfg.Output.Dir)
	}

	if rep.HypothesisErr != nil {
		return errHypothesis
	}
	return nil
}

// writeOutputs saves the charts and exports enabled by cfg and the flags.
func writeOutputs(ctx context.Context, rep *core.Report) ([]string, error) {
	var written []string

	if cfg.Output.Charts && !noCharts {
		renderer := charts.NewRenderer(cfg.Output.ChartWidth, cfg.Output.ChartHeight)
		paths, err := renderer.SaveAll(ctx, rep, filepath.Join(cfg.Output.Dir, "charts"))
		written = append(written, paths...)
		if err != nil {
			return written, fmt.Errorf("save charts: %w", err)
		}
	}

	paths, err := export.SaveAll(ctx, rep, cfg.Output.Dir, export.Options{
		Delimiter: cfg.Input.DelimiterRune(),
		Workbook:  cfg.Output.Workbook && !noWorkbook,
	})
	written = append(written, paths...)
	if err != nil {
		return written, fmt.Errorf("save exports: %w", err)
	}

	slog.Info("outputs written", "run_id", rep.RunID, "dir", cfg.Output.Dir, "files", len(written))
	return written, nil
}
