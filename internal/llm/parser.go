package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseCategories extracts the "categories" list from a derivation
// response. Non-JSON content is an error; a missing or wrongly shaped key
// degrades to an empty list, leaving the run to proceed with only the
// prompt-enforced "No restrictions" category.
func parseCategories(content string) ([]string, error) {
	return parseStringList(content, "categories")
}

// parseRestrictions extracts the "dietary_restrictions" list from a
// classification response. Non-JSON content is an error and triggers the
// caller's provider fallback; a missing key reads as an empty list.
func parseRestrictions(content string) ([]string, error) {
	return parseStringList(content, "dietary_restrictions")
}

func parseStringList(content, key string) ([]string, error) {
	content = cleanMarkdownWrapper(content)

	var object map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &object); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	raw, ok := object[key]
	if !ok {
		return []string{}, nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return []string{}, nil
	}

	return list, nil
}

// cleanMarkdownWrapper strips a markdown code fence from around the JSON
// body. Models occasionally wrap JSON-mode output despite instructions.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		} else {
			content = strings.TrimPrefix(content, "```json")
			content = strings.TrimPrefix(content, "```")
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	return strings.TrimSpace(content)
}
