package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/restivus/dietscan/internal/common"
	"github.com/restivus/dietscan/internal/llm"
	"github.com/restivus/dietscan/internal/model"
)

// Strategy is one provider attempt in the classification fallback chain.
type Strategy struct {
	Name   string
	Client llm.Client
}

// Classifier assigns standardized categories to survey answers, trying an
// ordered list of provider strategies until one succeeds. A text that
// exhausts every strategy is assigned the sentinel "Error" category, so a
// single bad row never aborts the run.
type Classifier struct {
	strategies   []Strategy
	systemPrompt string
	limiter      *llm.RateLimiter
	logger       *slog.Logger
}

// NewClassifier creates a classifier over the given strategy chain and the
// immutable category set derived for this run.
func NewClassifier(strategies []Strategy, categories []string, limiter *llm.RateLimiter, logger *slog.Logger) (*Classifier, error) {
	if len(strategies) == 0 {
		return nil, common.ErrNoProviders
	}

	return &Classifier{
		strategies:   strategies,
		systemPrompt: buildClassifySystemPrompt(categories),
		limiter:      limiter,
		logger:       logger,
	}, nil
}

// Classify returns the categories for one survey answer. Empty answers are
// classified as "No restrictions" without any provider call; a Multiple
// answer's sub-texts are classified independently, in order, and their
// category lists concatenated. A non-nil error means the context was
// canceled; provider failures never surface here, they degrade to the
// sentinel instead.
func (c *Classifier) Classify(ctx context.Context, file string, response model.Response) ([]string, error) {
	if response.IsEmpty() {
		return []string{model.CategoryNoRestrictions}, nil
	}

	var categories []string
	for _, part := range response.Parts() {
		partCategories, err := c.classifyText(ctx, file, part)
		if err != nil {
			return nil, err
		}
		categories = append(categories, partCategories...)
	}
	return categories, nil
}

// classifyText runs one text through the strategy chain. Cancellation is
// checked before each provider call so an interrupted run aborts rather
// than counting the remaining texts as classification failures.
func (c *Classifier) classifyText(ctx context.Context, file, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	for _, strategy := range c.strategies {
		response, err := strategy.Client.ClassifyRestrictions(ctx, c.systemPrompt, text)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.logger.Warn("classification attempt failed",
				"provider", strategy.Name,
				"file", file,
				"text", text,
				"error", err)
			continue
		}
		return response.Restrictions, nil
	}

	c.logger.Error("classification failed",
		"file", file,
		"text", text,
		"providers", len(c.strategies),
		"error", common.ErrProvidersExhausted)
	return []string{model.CategoryError}, nil
}

// buildClassifySystemPrompt creates the system prompt embedding the full
// category list for every classification call of the run.
func buildClassifySystemPrompt(categories []string) string {
	return fmt.Sprintf(`You're an expert at classifying descriptions of dietary restrictions using the following categories: %s.
If there is no restriction, or the text indicates no restrictions, classify it as %q.
Respond with a JSON object whose "dietary_restrictions" key holds the list of categories you classified from the user message, for example: {"dietary_restrictions": ["one", "two"]}
There could be more than one category.
Do not preface anything, just return the JSON object and nothing else.`,
		strings.Join(categories, ", "),
		model.CategoryNoRestrictions)
}
