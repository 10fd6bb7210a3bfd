package redaction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRehydrateRestoresOriginalText(t *testing.T) {
	text := "My name is Ann Lee and my email is ann@example.com."
	detections := []Detection{
		{EntityType: "PERSON", Start: 11, End: 18, Score: 0.85},
		{EntityType: "EMAIL_ADDRESS", Start: 35, End: 50, Score: 1.0},
	}

	r := NewResolver(DefaultExcludedEntities)
	mapper := NewMapper()
	redacted := r.Redact(text, detections, mapper)

	assert.Equal(t, text, Rehydrate(redacted, mapper.Mapping()))
}

func TestRehydrateReplacesEveryOccurrence(t *testing.T) {
	mapping := TokenMapping{"<PERSON_1>": "Ann Lee"}
	out := Rehydrate("Sure, <PERSON_1>. I will remind <PERSON_1> tomorrow.", mapping)
	assert.Equal(t, "Sure, Ann Lee. I will remind Ann Lee tomorrow.", out)
}

func TestRehydrateIgnoresMissingTokens(t *testing.T) {
	mapping := TokenMapping{
		"<PERSON_1>":        "Ann Lee",
		"<EMAIL_ADDRESS_1>": "ann@example.com",
	}
	out := Rehydrate("Understood.", mapping)
	assert.Equal(t, "Understood.", out)
}

func TestRehydrateEmptyMapping(t *testing.T) {
	assert.Equal(t, "hello", Rehydrate("hello", TokenMapping{}))
	assert.Equal(t, "hello", Rehydrate("hello", nil))
}
