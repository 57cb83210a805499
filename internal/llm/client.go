package llm

import (
	"context"
)

// Client defines the interface for LLM providers.
type Client interface {
	// DeriveCategories asks the provider to compress raw survey answers
	// into a standardized category list.
	DeriveCategories(ctx context.Context, prompt string) (CategoriesResponse, error)
	// ClassifyRestrictions asks the provider to assign categories to one
	// answer text under the given system prompt.
	ClassifyRestrictions(ctx context.Context, systemPrompt, text string) (RestrictionsResponse, error)
}

// CategoriesResponse contains the standardized category list derived by
// the LLM. Categories is empty when the response carried no usable
// "categories" key.
type CategoriesResponse struct {
	Categories []string
}

// RestrictionsResponse contains the categories the LLM assigned to one
// answer text. Restrictions is empty when the response carried no usable
// "dietary_restrictions" key.
type RestrictionsResponse struct {
	Restrictions []string
}

// Config holds provider configuration. It is built once at startup and
// passed in explicitly; clients never read the environment themselves.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}
