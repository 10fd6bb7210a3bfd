package providers

import (
	"context"

	"github.com/sentinelhq/sentinel/pkg/types"
)

// Config carries everything a provider client needs for one call. The model
// has already been resolved by the caller; DefaultModel is the provider's
// fallback identifier used when the requested model is rejected upstream.
type Config struct {
	APIKey       string  `json:"api_key"`
	Model        string  `json:"model"`
	DefaultModel string  `json:"default_model"`
	MaxTokens    int     `json:"max_tokens,omitempty"`
	Temperature  float64 `json:"temperature,omitempty"`
}

// Client sends role-tagged messages to one upstream LLM provider.
type Client interface {
	Chat(ctx context.Context, config *Config, messages []types.ChatMessage) (*CompletionResponse, error)
}
