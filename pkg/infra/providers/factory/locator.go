package factory

import (
	"fmt"
	"strings"

	"github.com/sentinelhq/sentinel/pkg/infra/providers"
	"github.com/sentinelhq/sentinel/pkg/infra/providers/anthropic"
	"github.com/sentinelhq/sentinel/pkg/infra/providers/gemini"
	"github.com/sentinelhq/sentinel/pkg/infra/providers/mock"
	"github.com/sentinelhq/sentinel/pkg/infra/providers/openai"
)

const (
	ProviderOpenAI    = "openai"
	ProviderGoogle    = "google"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

type ProviderLocator interface {
	Get(provider string) (providers.Client, error)
}

type providerLocator struct {
	openai    providers.Client
	google    providers.Client
	anthropic providers.Client
	mock      providers.Client
}

func NewProviderLocator() ProviderLocator {
	return &providerLocator{
		openai:    openai.NewOpenaiClient(),
		google:    gemini.NewGeminiClient(),
		anthropic: anthropic.NewAnthropicClient(),
		mock:      mock.NewMockClient(),
	}
}

func (f *providerLocator) Get(provider string) (providers.Client, error) {
	switch provider {
	case ProviderOpenAI:
		return f.openai, nil
	case ProviderGoogle:
		return f.google, nil
	case ProviderAnthropic:
		return f.anthropic, nil
	case ProviderMock:
		return f.mock, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

// ResolveFromModel picks a provider from the model name. The heuristic is a
// substring match on provider-identifying model prefixes; anything
// unrecognized goes to OpenAI, whose wire shape the proxy speaks natively.
func ResolveFromModel(model string) string {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "gemini"):
		return ProviderGoogle
	case strings.Contains(m, "claude"):
		return ProviderAnthropic
	default:
		return ProviderOpenAI
	}
}
