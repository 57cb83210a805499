package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/restivus/dietscan/internal/common"
	"github.com/restivus/dietscan/internal/export"
	"github.com/restivus/dietscan/internal/llm"
	"github.com/restivus/dietscan/internal/survey"
)

// testRunRowLimit caps rows per file during a test run, keeping API spend
// down while smoke-testing the pipeline.
const testRunRowLimit = 10

// Config holds pipeline configuration.
type Config struct {
	DataDir    string
	Column     string
	OutputBase string
	TestRun    bool
	RateLimit  int // classification calls per second
	Progress   bool
}

// Pipeline sequences the full run: discover files, derive categories,
// classify every approved row, aggregate, and write the output CSV.
// Execution is single threaded with one provider call in flight at a time.
type Pipeline struct {
	cfg        Config
	strategies []Strategy
	logger     *slog.Logger
}

// NewPipeline validates the configuration and creates a pipeline.
func NewPipeline(cfg Config, strategies []Strategy, logger *slog.Logger) (*Pipeline, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("%w: data directory", common.ErrMissingConfig)
	}
	if cfg.Column == "" {
		return nil, fmt.Errorf("%w: target column", common.ErrMissingConfig)
	}
	if len(strategies) == 0 {
		return nil, common.ErrNoProviders
	}

	return &Pipeline{cfg: cfg, strategies: strategies, logger: logger}, nil
}

// DeriveCategories runs only the derivation stage: unique values of the
// target column across all files, compressed into a category list.
func (p *Pipeline) DeriveCategories(ctx context.Context) ([]string, error) {
	files, err := survey.ListFiles(p.cfg.DataDir)
	if err != nil {
		return nil, err
	}

	values, err := survey.UniqueValues(files, p.cfg.Column)
	if err != nil {
		return nil, err
	}

	p.logger.Info("collected unique survey answers",
		"files", len(files),
		"unique_values", len(values))

	deriver := NewDeriver(p.strategies[0].Client, p.logger)
	return deriver.Derive(ctx, values)
}

// Run executes the full pipeline and returns the output file path.
func (p *Pipeline) Run(ctx context.Context) (string, error) {
	if p.cfg.OutputBase == "" {
		return "", fmt.Errorf("%w: output base path", common.ErrMissingConfig)
	}

	files, err := survey.ListFiles(p.cfg.DataDir)
	if err != nil {
		return "", err
	}

	values, err := survey.UniqueValues(files, p.cfg.Column)
	if err != nil {
		return "", err
	}

	p.logger.Info("collected unique survey answers",
		"files", len(files),
		"unique_values", len(values))

	deriver := NewDeriver(p.strategies[0].Client, p.logger)
	categories, err := deriver.Derive(ctx, values)
	if err != nil {
		return "", err
	}

	limiter := llm.NewRateLimiter(p.cfg.RateLimit)
	defer limiter.Close()

	classifier, err := NewClassifier(p.strategies, categories, limiter, p.logger)
	if err != nil {
		return "", err
	}

	rowLimit := 0
	if p.cfg.TestRun {
		rowLimit = testRunRowLimit
		p.logger.Info("test run: capping rows per file", "limit", rowLimit)
	}

	aggregator := NewAggregator()
	bar := p.progressBar(len(files))

	for _, file := range files {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		responses, err := survey.ReadRows(file, p.cfg.Column, rowLimit)
		if err != nil {
			return "", err
		}

		name := filepath.Base(file)
		for _, response := range responses {
			categories, err := classifier.Classify(ctx, name, response)
			if err != nil {
				return "", err
			}
			aggregator.Add(name, categories)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	outputPath := export.UniquePath(p.cfg.OutputBase, ".csv")
	if err := export.WriteCounts(outputPath, aggregator.Results()); err != nil {
		return "", err
	}

	p.logger.Info("results written", "path", outputPath)
	return outputPath, nil
}

func (p *Pipeline) progressBar(total int) *progressbar.ProgressBar {
	if !p.cfg.Progress {
		return nil
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying survey files..."),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
	)
}
