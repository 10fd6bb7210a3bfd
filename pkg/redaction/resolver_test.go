package redaction

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEmptyInput(t *testing.T) {
	r := NewResolver(DefaultExcludedEntities)
	assert.Empty(t, r.Resolve(nil))
	assert.Empty(t, r.Resolve([]Detection{}))
}

func TestResolveDropsExcludedEntities(t *testing.T) {
	r := NewResolver([]string{"UK_NHS"})
	spans := r.Resolve([]Detection{
		{EntityType: "UK_NHS", Start: 0, End: 10, Score: 0.99},
		{EntityType: "PHONE_NUMBER", Start: 20, End: 30, Score: 0.4},
	})
	require.Len(t, spans, 1)
	assert.Equal(t, "PHONE_NUMBER", spans[0].EntityType)
}

func TestResolveHigherScoreWins(t *testing.T) {
	r := NewResolver(nil)
	spans := r.Resolve([]Detection{
		{EntityType: "PERSON", Start: 0, End: 8, Score: 0.9},
		{EntityType: "LOCATION", Start: 4, End: 12, Score: 0.95},
	})
	require.Len(t, spans, 1)
	assert.Equal(t, "LOCATION", spans[0].EntityType)
}

func TestResolveLongerSpanWinsOnEqualScore(t *testing.T) {
	r := NewResolver(nil)
	spans := r.Resolve([]Detection{
		{EntityType: "PERSON", Start: 0, End: 5, Score: 0.9},
		{EntityType: "ORGANIZATION", Start: 3, End: 13, Score: 0.9},
	})
	require.Len(t, spans, 1)
	assert.Equal(t, "ORGANIZATION", spans[0].EntityType)
}

func TestResolveOverlappingLoserDroppedEntirely(t *testing.T) {
	// PERSON [0,8) 0.85 vs LOCATION [5,12) 0.90: LOCATION survives and
	// PERSON is discarded, not trimmed to the non-overlapping prefix.
	r := NewResolver(DefaultExcludedEntities)
	spans := r.Resolve([]Detection{
		{EntityType: "PERSON", Start: 0, End: 8, Score: 0.85},
		{EntityType: "LOCATION", Start: 5, End: 12, Score: 0.90},
	})
	require.Len(t, spans, 1)
	assert.Equal(t, Detection{EntityType: "LOCATION", Start: 5, End: 12, Score: 0.90}, spans[0])
}

func TestResolveKeepsDisjointSpansSortedByStartDesc(t *testing.T) {
	r := NewResolver(nil)
	spans := r.Resolve([]Detection{
		{EntityType: "PERSON", Start: 0, End: 4, Score: 0.5},
		{EntityType: "EMAIL_ADDRESS", Start: 20, End: 30, Score: 0.9},
		{EntityType: "PHONE_NUMBER", Start: 10, End: 15, Score: 0.7},
	})
	require.Len(t, spans, 3)
	assert.Equal(t, 20, spans[0].Start)
	assert.Equal(t, 10, spans[1].Start)
	assert.Equal(t, 0, spans[2].Start)
}

func TestResolveOutputNeverOverlaps(t *testing.T) {
	r := NewResolver(nil)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		n := rng.Intn(20)
		detections := make([]Detection, 0, n)
		for j := 0; j < n; j++ {
			start := rng.Intn(100)
			detections = append(detections, Detection{
				EntityType: "PERSON",
				Start:      start,
				End:        start + 1 + rng.Intn(20),
				Score:      rng.Float64(),
			})
		}

		spans := r.Resolve(detections)
		for a := 0; a < len(spans); a++ {
			for b := a + 1; b < len(spans); b++ {
				overlap := spans[a].Start < spans[b].End && spans[b].Start < spans[a].End
				assert.False(t, overlap, "spans %v and %v overlap", spans[a], spans[b])
			}
		}
	}
}
