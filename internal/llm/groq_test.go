package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGroqClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "valid config",
			config: Config{APIKey: "test-key"},
		},
		{
			name:    "missing API key",
			config:  Config{},
			wantErr: true,
		},
		{
			name: "custom model and settings",
			config: Config{
				APIKey:    "test-key",
				Model:     "llama-3.3-70b-versatile",
				MaxTokens: 2048,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := newGroqClient(tt.config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client)
			}
		})
	}
}

// chatServer fakes a chat completions endpoint returning the given message
// content, while capturing the request body for assertions.
func chatServer(t *testing.T, content string, status int, captured *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
			return
		}
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
}

func TestGroqClassifyRestrictions(t *testing.T) {
	t.Run("successful classification", func(t *testing.T) {
		var captured map[string]any
		server := chatServer(t, `{"dietary_restrictions": ["Vegan", "Nut Allergy"]}`, http.StatusOK, &captured)
		defer server.Close()

		client, err := newGroqClient(Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		resp, err := client.ClassifyRestrictions(context.Background(), "system prompt", "no meat, allergic to peanuts")
		require.NoError(t, err)
		assert.Equal(t, []string{"Vegan", "Nut Allergy"}, resp.Restrictions)

		// Zero-temperature JSON mode is part of the request contract.
		assert.Equal(t, float64(0), captured["temperature"])
		assert.Equal(t, float64(1024), captured["max_tokens"])
		assert.Equal(t, map[string]any{"type": "json_object"}, captured["response_format"])
		assert.Equal(t, false, captured["stream"])
	})

	t.Run("missing key reads as empty", func(t *testing.T) {
		server := chatServer(t, `{"something_else": []}`, http.StatusOK, nil)
		defer server.Close()

		client, err := newGroqClient(Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		resp, err := client.ClassifyRestrictions(context.Background(), "system prompt", "vegan")
		require.NoError(t, err)
		assert.Empty(t, resp.Restrictions)
	})

	t.Run("non-JSON content is an error", func(t *testing.T) {
		server := chatServer(t, "I cannot respond in JSON, sorry.", http.StatusOK, nil)
		defer server.Close()

		client, err := newGroqClient(Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.ClassifyRestrictions(context.Background(), "system prompt", "vegan")
		require.Error(t, err)
	})

	t.Run("API error status", func(t *testing.T) {
		server := chatServer(t, "", http.StatusTooManyRequests, nil)
		defer server.Close()

		client, err := newGroqClient(Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		_, err = client.ClassifyRestrictions(context.Background(), "system prompt", "vegan")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestGroqDeriveCategories(t *testing.T) {
	t.Run("successful derivation", func(t *testing.T) {
		var captured map[string]any
		server := chatServer(t, `{"categories": ["Vegan", "Kosher", "No restrictions"]}`, http.StatusOK, &captured)
		defer server.Close()

		client, err := newGroqClient(Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		resp, err := client.DeriveCategories(context.Background(), "derive from: vegan, kosher")
		require.NoError(t, err)
		assert.Equal(t, []string{"Vegan", "Kosher", "No restrictions"}, resp.Categories)

		messages, ok := captured["messages"].([]any)
		require.True(t, ok)
		require.Len(t, messages, 2)
		system, ok := messages[0].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "system", system["role"])
		assert.Contains(t, system["content"], "JSON")
	})

	t.Run("malformed categories key degrades to empty", func(t *testing.T) {
		server := chatServer(t, `{"categories": {"oops": true}}`, http.StatusOK, nil)
		defer server.Close()

		client, err := newGroqClient(Config{APIKey: "test-key", BaseURL: server.URL})
		require.NoError(t, err)

		resp, err := client.DeriveCategories(context.Background(), "derive")
		require.NoError(t, err)
		assert.Empty(t, resp.Categories)
	})
}
