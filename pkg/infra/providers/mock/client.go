package mock

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/sentinelhq/sentinel/pkg/infra/providers"
	"github.com/sentinelhq/sentinel/pkg/types"
)

var tokenPattern = regexp.MustCompile(`<[A-Z_]+_\d+>`)

// Client produces a deterministic local completion. It is the terminal
// fallback when no provider credential is configured or every real provider
// failed; echoing the first placeholder token back exercises the rehydration
// path end to end without any upstream call.
type Client struct{}

func NewMockClient() providers.Client {
	return &Client{}
}

func (c *Client) Chat(
	ctx context.Context,
	config *providers.Config,
	messages []types.ChatMessage,
) (*providers.CompletionResponse, error) {
	var lastUser string
	for _, m := range messages {
		if m.Role == "user" {
			lastUser = m.Content
		}
	}

	response := "This is a simulated response; no upstream provider was contacted."
	if token := tokenPattern.FindString(lastUser); token != "" {
		response = fmt.Sprintf("Understood, %s. I have noted your message. (simulated response; no upstream provider was contacted)", token)
	}

	return &providers.CompletionResponse{
		ID:       fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		Model:    "mock",
		Response: response,
	}, nil
}
