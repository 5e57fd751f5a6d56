package ai

import (
	"context"
	"encoding/json"
)

// Generation is a single-turn model answer
type Generation struct {
	Text string          // text of the first candidate, may be empty
	Raw  json.RawMessage // provider response body as received
}

// Provider defines the interface for generative-text providers
type Provider interface {
	// Generate sends prompt as a single user turn. On ErrModelUnavailable the returned
	// Generation may still carry the raw response.
	Generate(ctx context.Context, prompt string) (*Generation, error)

	// Name returns the name of the provider (e.g., "gemini", "openai")
	Name() string
}
