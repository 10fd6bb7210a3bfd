package recognizer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelhq/sentinel/pkg/redaction"
)

func TestPresidioAnalyzeDecodesDetections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"entity_type": "PERSON", "start": 11, "end": 18, "score": 0.85},
			{"entity_type": "EMAIL_ADDRESS", "start": 35, "end": 50, "score": 1.0}
		]`))
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	detections, err := rec.Analyze(context.Background(), "My name is Ann Lee and my email is ann@example.com", "en")

	require.NoError(t, err)
	require.Len(t, detections, 2)
	assert.Equal(t, redaction.Detection{EntityType: "PERSON", Start: 11, End: 18, Score: 0.85}, detections[0])
}

func TestPresidioAnalyzeTranslatesCodePointOffsets(t *testing.T) {
	// The analyzer counts code points, so "Ann Lee" in a text with a
	// two-byte rune up front comes back as [18,25). The client must emit
	// the byte span [19,26) or the engine slices the wrong literal.
	text := "Héllo, my name is Ann Lee"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"entity_type": "PERSON", "start": 18, "end": 25, "score": 0.85}]`))
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	detections, err := rec.Analyze(context.Background(), text, "en")

	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, redaction.Detection{EntityType: "PERSON", Start: 19, End: 26, Score: 0.85}, detections[0])
	assert.Equal(t, "Ann Lee", text[detections[0].Start:detections[0].End])
}

func TestPresidioAnalyzeNonASCIIRoundTrip(t *testing.T) {
	text := "Héllo, my name is Ann Lee"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"entity_type": "PERSON", "start": 18, "end": 25, "score": 0.85}]`))
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	detections, err := rec.Analyze(context.Background(), text, "en")
	require.NoError(t, err)

	resolver := redaction.NewResolver(nil)
	mapper := redaction.NewMapper()
	redacted := resolver.Redact(text, detections, mapper)

	assert.Equal(t, "Héllo, my name is <PERSON_1>", redacted)
	assert.Equal(t, redaction.TokenMapping{"<PERSON_1>": "Ann Lee"}, mapper.Mapping())
	assert.Equal(t, text, redaction.Rehydrate(redacted, mapper.Mapping()))
}

func TestPresidioAnalyzeDropsOutOfRangeSpans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"entity_type": "PERSON", "start": 0, "end": 99, "score": 0.9},
			{"entity_type": "PERSON", "start": -1, "end": 3, "score": 0.9},
			{"entity_type": "PERSON", "start": 5, "end": 5, "score": 0.9},
			{"entity_type": "PERSON", "start": 0, "end": 3, "score": 0.9}
		]`))
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	detections, err := rec.Analyze(context.Background(), "Ann stayed home", "en")

	require.NoError(t, err)
	require.Len(t, detections, 1)
	assert.Equal(t, "PERSON", detections[0].EntityType)
	assert.Equal(t, 3, detections[0].End)
}

func TestPresidioAnalyzeEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	detections, err := rec.Analyze(context.Background(), "nothing sensitive here", "")

	require.NoError(t, err)
	assert.Empty(t, detections)
}

func TestPresidioAnalyzeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	_, err := rec.Analyze(context.Background(), "text", "en")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPresidioBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	rec := NewPresidioRecognizer(srv.URL, time.Second)
	for i := 0; i < 6; i++ {
		_, err := rec.Analyze(context.Background(), "text", "en")
		require.Error(t, err)
	}

	srv.Close()
	// Breaker is open now; the failure is immediate, not a connect timeout.
	start := time.Now()
	_, err := rec.Analyze(context.Background(), "text", "en")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
