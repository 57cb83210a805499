package engine

import (
	"context"
	"sync"

	"github.com/restivus/dietscan/internal/llm"
)

// MockClient is a scripted test implementation of the llm.Client
// interface. It returns per-text results and records every call so tests
// can assert call counts and ordering.
type MockClient struct {
	// DeriveResult and DeriveErr script DeriveCategories.
	DeriveResult []string
	DeriveErr    error

	// Results and Errs script ClassifyRestrictions per input text; texts
	// absent from both maps get DefaultResult.
	Results       map[string][]string
	Errs          map[string]error
	DefaultResult []string

	calls []MockCall
	mu    sync.Mutex
}

// MockCall records one request made to the mock.
type MockCall struct {
	Op   string // "derive" or "classify"
	Text string
}

// DeriveCategories returns the scripted derivation result.
func (m *MockClient) DeriveCategories(_ context.Context, prompt string) (llm.CategoriesResponse, error) {
	m.record("derive", prompt)
	if m.DeriveErr != nil {
		return llm.CategoriesResponse{}, m.DeriveErr
	}
	return llm.CategoriesResponse{Categories: m.DeriveResult}, nil
}

// ClassifyRestrictions returns the scripted classification for text.
func (m *MockClient) ClassifyRestrictions(_ context.Context, _, text string) (llm.RestrictionsResponse, error) {
	m.record("classify", text)
	if err, ok := m.Errs[text]; ok {
		return llm.RestrictionsResponse{}, err
	}
	if result, ok := m.Results[text]; ok {
		return llm.RestrictionsResponse{Restrictions: result}, nil
	}
	return llm.RestrictionsResponse{Restrictions: m.DefaultResult}, nil
}

// Calls returns a copy of the recorded calls.
func (m *MockClient) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.calls...)
}

// ClassifyCalls returns the texts of the recorded classification calls, in
// order.
func (m *MockClient) ClassifyCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var texts []string
	for _, call := range m.calls {
		if call.Op == "classify" {
			texts = append(texts, call.Text)
		}
	}
	return texts
}

func (m *MockClient) record(op, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Op: op, Text: text})
}
