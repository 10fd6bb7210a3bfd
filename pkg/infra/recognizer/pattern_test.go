package recognizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func detectedTypes(t *testing.T, text string) map[string]bool {
	t.Helper()
	detections, err := NewPatternRecognizer().Analyze(context.Background(), text, "en")
	require.NoError(t, err)
	types := make(map[string]bool)
	for _, d := range detections {
		types[d.EntityType] = true
	}
	return types
}

func TestPatternRecognizerEmail(t *testing.T) {
	types := detectedTypes(t, "reach me at ann.lee@example.com please")
	assert.True(t, types["EMAIL_ADDRESS"])
}

func TestPatternRecognizerSSNAndPhone(t *testing.T) {
	types := detectedTypes(t, "SSN 856-45-6789, call +1 555 867 5309")
	assert.True(t, types["US_SSN"])
	assert.True(t, types["PHONE_NUMBER"])
}

func TestPatternRecognizerOffsetsMatchText(t *testing.T) {
	text := "ip is 10.0.0.1 today"
	detections, err := NewPatternRecognizer().Analyze(context.Background(), text, "en")
	require.NoError(t, err)

	found := false
	for _, d := range detections {
		if d.EntityType == "IP_ADDRESS" {
			found = true
			assert.Equal(t, "10.0.0.1", text[d.Start:d.End])
		}
	}
	assert.True(t, found)
}

func TestPatternRecognizerCleanText(t *testing.T) {
	detections, err := NewPatternRecognizer().Analyze(context.Background(), "nothing sensitive here", "en")
	require.NoError(t, err)
	assert.Empty(t, detections)
}
