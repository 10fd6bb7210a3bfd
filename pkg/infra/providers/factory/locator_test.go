package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFromModel(t *testing.T) {
	tests := []struct {
		model    string
		expected string
	}{
		{"gpt-4o", ProviderOpenAI},
		{"gpt-3.5-turbo", ProviderOpenAI},
		{"gemini-2.0-flash", ProviderGoogle},
		{"models/gemini-pro", ProviderGoogle},
		{"claude-sonnet-4-5", ProviderAnthropic},
		{"Claude-Opus-4", ProviderAnthropic},
		{"some-unknown-model", ProviderOpenAI},
		{"", ProviderOpenAI},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ResolveFromModel(tt.model), "model %q", tt.model)
	}
}

func TestLocatorKnowsEveryProvider(t *testing.T) {
	locator := NewProviderLocator()

	for _, name := range []string{ProviderOpenAI, ProviderGoogle, ProviderAnthropic, ProviderMock} {
		client, err := locator.Get(name)
		require.NoError(t, err)
		assert.NotNil(t, client)
	}

	_, err := locator.Get("bedrock")
	assert.Error(t, err)
}
