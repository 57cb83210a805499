// Package llm provides language model clients for dietary-restriction
// category derivation and classification. It supports Groq and OpenAI
// through their JSON-mode chat completion APIs, plus a token-bucket rate
// limiter to pace classification calls.
package llm
