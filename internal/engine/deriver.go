// Package engine implements the two-stage classification pipeline:
// category derivation, per-row classification with provider fallback, and
// per-file aggregation of category counts.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/restivus/dietscan/internal/llm"
	"github.com/restivus/dietscan/internal/model"
)

// Deriver asks an LLM to compress the unique raw survey answers into a
// standardized category list.
type Deriver struct {
	client llm.Client
	logger *slog.Logger
}

// NewDeriver creates a deriver backed by the given client.
func NewDeriver(client llm.Client, logger *slog.Logger) *Deriver {
	return &Deriver{client: client, logger: logger}
}

// Derive returns the standardized category list for the given unique
// answer values. Transport failures and unparseable responses are fatal; a
// response without a usable category list yields an empty set, in which
// case classification leans entirely on the prompt-level "No restrictions"
// instruction.
func (d *Deriver) Derive(ctx context.Context, values []string) ([]string, error) {
	prompt := buildDerivePrompt(values)

	response, err := d.client.DeriveCategories(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("category derivation failed: %w", err)
	}

	if len(response.Categories) == 0 {
		d.logger.Warn("category derivation returned no categories; classification will rely on the prompt fallback")
	} else {
		d.logger.Info("derived standardized categories",
			"count", len(response.Categories),
			"categories", response.Categories)
	}

	return response.Categories, nil
}

// buildDerivePrompt creates the prompt for category derivation.
func buildDerivePrompt(values []string) string {
	return fmt.Sprintf(`Given the following list of dietary restrictions and food allergies, create a standardized list of category names: %s.
Include %q as a category.
Respond with a JSON object whose "categories" key holds the list of category name strings, for example: {"categories": ["one", "two"]}`,
		strings.Join(values, ", "),
		model.CategoryNoRestrictions)
}
