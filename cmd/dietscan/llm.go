package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/restivus/dietscan/internal/common"
	"github.com/restivus/dietscan/internal/engine"
	"github.com/restivus/dietscan/internal/llm"
)

// createStrategies builds the ordered provider fallback chain from
// configuration: Groq first, OpenAI second. The fallback is optional and
// only joins the chain when an OpenAI key is configured.
func createStrategies() ([]engine.Strategy, error) {
	groqKey := viper.GetString("llm.groq.api_key")
	if groqKey == "" {
		groqKey = os.Getenv("GROQ_API_KEY")
	}
	if groqKey == "" {
		return nil, common.NewUserError("groq API key not found; set llm.groq.api_key or GROQ_API_KEY", nil)
	}

	primary, err := llm.NewClient(llm.Config{
		Provider:  "groq",
		APIKey:    groqKey,
		Model:     viper.GetString("llm.groq.model"),
		MaxTokens: viper.GetInt("llm.max_tokens"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create groq client: %w", err)
	}

	strategies := []engine.Strategy{{Name: "groq", Client: primary}}

	openAIKey := viper.GetString("llm.openai.api_key")
	if openAIKey == "" {
		openAIKey = os.Getenv("OPENAI_API_KEY")
	}
	if openAIKey != "" {
		fallback, err := llm.NewClient(llm.Config{
			Provider:  "openai",
			APIKey:    openAIKey,
			Model:     viper.GetString("llm.openai.model"),
			MaxTokens: viper.GetInt("llm.max_tokens"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		strategies = append(strategies, engine.Strategy{Name: "openai", Client: fallback})
	}

	return strategies, nil
}
