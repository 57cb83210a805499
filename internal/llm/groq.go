package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	groqBaseURL      = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama-3.1-70b-versatile"
)

// deriveSystemPrompt instructs the model during category derivation. The
// classification system prompt is built per run by the engine, because it
// embeds the derived category set.
const deriveSystemPrompt = "You're an expert at identifying and categorizing dietary restrictions. Your response must be in JSON format."

// groqClient implements the Client interface for the Groq API, which
// speaks the OpenAI chat completions wire format.
type groqClient struct {
	httpClient  *http.Client
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
}

// newGroqClient creates a new Groq API client.
func newGroqClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = groqDefaultModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = groqBaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1024
	}

	return &groqClient{
		apiKey:      cfg.APIKey,
		model:       model,
		baseURL:     baseURL,
		temperature: cfg.Temperature,
		maxTokens:   maxTokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// DeriveCategories sends a category derivation request to Groq.
func (c *groqClient) DeriveCategories(ctx context.Context, prompt string) (CategoriesResponse, error) {
	content, err := c.complete(ctx, deriveSystemPrompt, prompt)
	if err != nil {
		return CategoriesResponse{}, err
	}

	categories, err := parseCategories(content)
	if err != nil {
		return CategoriesResponse{}, err
	}

	return CategoriesResponse{Categories: categories}, nil
}

// ClassifyRestrictions sends a classification request to Groq.
func (c *groqClient) ClassifyRestrictions(ctx context.Context, systemPrompt, text string) (RestrictionsResponse, error) {
	content, err := c.complete(ctx, systemPrompt, text)
	if err != nil {
		return RestrictionsResponse{}, err
	}

	restrictions, err := parseRestrictions(content)
	if err != nil {
		return RestrictionsResponse{}, err
	}

	return RestrictionsResponse{Restrictions: restrictions}, nil
}

// complete performs one JSON-mode chat completion and returns the message
// content.
func (c *groqClient) complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": systemPrompt,
			},
			{
				"role":    "user",
				"content": userMessage,
			},
		},
		"temperature":     c.temperature,
		"max_tokens":      c.maxTokens,
		"top_p":           1,
		"stream":          false,
		"response_format": map[string]string{"type": "json_object"},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq API error (status %d): %s", resp.StatusCode, string(body))
	}

	var response groqResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return response.Choices[0].Message.Content, nil
}

// groqResponse represents the Groq API response structure.
type groqResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
	Created int64 `json:"created"`
}
