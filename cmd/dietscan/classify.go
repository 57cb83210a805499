package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restivus/dietscan/internal/common"
	"github.com/restivus/dietscan/internal/config"
	"github.com/restivus/dietscan/internal/engine"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify survey answers and write per-file category counts",
		Long: `Classify every approved survey answer in a directory of CSV exports.

The run derives a standardized category list from the unique answers, then
classifies each approved row against it. Results are written to a new
numbered CSV next to the configured output base, never overwriting a
previous run.

Examples:
  dietscan classify --data-dir ./data
  dietscan classify --data-dir ./data --test-run   # first 10 rows per file`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("data-dir", "d", "./data", "directory of survey CSV files")
	cmd.Flags().StringP("column", "c", "Do you have any dietary restrictions?", "target answer column")
	cmd.Flags().StringP("output", "o", "./classification_results", "output CSV base path (suffix and counter are appended)")
	cmd.Flags().BoolP("test-run", "t", false, "smoke test: classify only the first 10 rows per file")
	cmd.Flags().Int("rate-limit", 10, "classification calls per second")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("data.dir", cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag("data.column", cmd.Flags().Lookup("column"))
	_ = viper.BindPFlag("output.base", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("classification.test_run", cmd.Flags().Lookup("test-run"))
	_ = viper.BindPFlag("classification.rate_limit", cmd.Flags().Lookup("rate-limit"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	strategies, err := createStrategies()
	if err != nil {
		return err
	}

	cfg := engine.Config{
		DataDir:    config.ExpandPath(viper.GetString("data.dir")),
		Column:     viper.GetString("data.column"),
		OutputBase: config.ExpandPath(viper.GetString("output.base")),
		TestRun:    viper.GetBool("classification.test_run"),
		RateLimit:  viper.GetInt("classification.rate_limit"),
		Progress:   true,
	}

	slog.Info("Starting survey classification",
		"data_dir", cfg.DataDir,
		"column", cfg.Column,
		"test_run", cfg.TestRun)

	pipeline, err := engine.NewPipeline(cfg, strategies, slog.Default())
	if err != nil {
		return err
	}

	outputPath, err := pipeline.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Warn("Classification interrupted; no results written")
			return nil
		}
		return common.NewUserError("classification failed", err)
	}

	fmt.Printf("Results have been saved to %s\n", outputPath)
	return nil
}
