// Package model defines the core domain types used throughout the application.
package model

import (
	"encoding/json"
	"strings"
)

// Standard category names with fixed meaning across the pipeline.
const (
	// CategoryNoRestrictions is the mandatory member of every derived
	// category set, and the classification of an empty survey answer.
	CategoryNoRestrictions = "No restrictions"
	// CategoryError is the sentinel assigned when every provider fails
	// to classify a response.
	CategoryError = "Error"
)

// Response is a single survey answer, decoded once at ingestion.
// Exports sometimes hold a JSON-encoded list of sub-answers in the same
// column that otherwise carries plain text, so the value is either a
// Single free-text answer or a Multiple list of them.
type Response struct {
	raw   string
	parts []string
	multi bool
}

// ParseResponse decodes a raw column value into a Response. The value is
// trimmed, then decoded as a JSON string list; anything that does not
// decode cleanly is kept whole as a single answer.
func ParseResponse(text string) Response {
	text = strings.TrimSpace(text)
	r := Response{raw: text}
	if text == "" {
		return r
	}

	var parts []string
	if err := json.Unmarshal([]byte(text), &parts); err == nil {
		r.parts = parts
		r.multi = true
	}
	return r
}

// IsEmpty reports whether the answer was blank.
func (r Response) IsEmpty() bool {
	return r.raw == ""
}

// IsMultiple reports whether the answer decoded as a list of sub-answers.
func (r Response) IsMultiple() bool {
	return r.multi
}

// Raw returns the trimmed original column value.
func (r Response) Raw() string {
	return r.raw
}

// Parts returns the units to classify, in order: the sub-answers of a
// Multiple response, or the whole text of a Single one. An empty response
// has no parts.
func (r Response) Parts() []string {
	if r.multi {
		return r.parts
	}
	if r.raw == "" {
		return nil
	}
	return []string{r.raw}
}
