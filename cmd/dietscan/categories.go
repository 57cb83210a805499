package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/restivus/dietscan/internal/config"
	"github.com/restivus/dietscan/internal/engine"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Derive and print the standardized category list",
		Long: `Run only the derivation stage: collect the unique approved answers
from the survey CSVs and ask the LLM for a standardized category list.
Useful for inspecting the taxonomy before paying for a full
classification run.`,
		RunE: runCategories,
	}

	cmd.Flags().StringP("data-dir", "d", "./data", "directory of survey CSV files")
	cmd.Flags().StringP("column", "c", "Do you have any dietary restrictions?", "target answer column")

	_ = viper.BindPFlag("data.dir", cmd.Flags().Lookup("data-dir"))
	_ = viper.BindPFlag("data.column", cmd.Flags().Lookup("column"))

	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	strategies, err := createStrategies()
	if err != nil {
		return err
	}

	cfg := engine.Config{
		DataDir: config.ExpandPath(viper.GetString("data.dir")),
		Column:  viper.GetString("data.column"),
	}

	pipeline, err := engine.NewPipeline(cfg, strategies, slog.Default())
	if err != nil {
		return err
	}

	categories, err := pipeline.DeriveCategories(cmd.Context())
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories derived.")
		return nil
	}

	for _, category := range categories {
		fmt.Println(category)
	}
	return nil
}
