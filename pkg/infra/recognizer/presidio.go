package recognizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/sentinelhq/sentinel/pkg/redaction"
)

const defaultTimeout = 10 * time.Second

type presidioRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type presidioResult struct {
	EntityType string  `json:"entity_type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

// PresidioRecognizer calls a Presidio-style analyzer service over HTTP. A
// circuit breaker keeps a dead analyzer from adding its full timeout to
// every request once it starts failing consecutively.
type PresidioRecognizer struct {
	analyzerURL string
	client      *http.Client
	breaker     *gobreaker.CircuitBreaker
}

func NewPresidioRecognizer(analyzerURL string, timeout time.Duration) *PresidioRecognizer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	settings := gobreaker.Settings{
		Name:        "presidio-analyzer",
		MaxRequests: 5,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &PresidioRecognizer{
		analyzerURL: analyzerURL,
		client:      &http.Client{Timeout: timeout},
		breaker:     gobreaker.NewCircuitBreaker(settings),
	}
}

func (p *PresidioRecognizer) Analyze(ctx context.Context, text, language string) ([]redaction.Detection, error) {
	if language == "" {
		language = "en"
	}

	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.analyze(ctx, text, language)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	detections, ok := result.([]redaction.Detection)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected analyzer result type", ErrUnavailable)
	}
	return detections, nil
}

func (p *PresidioRecognizer) analyze(ctx context.Context, text, language string) ([]redaction.Detection, error) {
	body, err := json.Marshal(presidioRequest{Text: text, Language: language})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyzer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.analyzerURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analyzer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("analyzer returned status %d: %s", resp.StatusCode, preview)
	}

	var results []presidioResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode analyzer response: %w", err)
	}

	// Presidio indexes text by Unicode code point; the engine slices Go
	// strings by byte. Spans are translated before they leave the client.
	offsets := codePointByteOffsets(text)
	detections := make([]redaction.Detection, 0, len(results))
	for _, res := range results {
		if res.Start < 0 || res.Start >= res.End || res.End >= len(offsets) {
			continue
		}
		detections = append(detections, redaction.Detection{
			EntityType: res.EntityType,
			Start:      offsets[res.Start],
			End:        offsets[res.End],
			Score:      res.Score,
		})
	}
	return detections, nil
}

// codePointByteOffsets maps each code-point index in text to its byte
// offset, with one extra entry for the end of string, so offsets[cpEnd] is
// valid for a span closing at the last rune.
func codePointByteOffsets(text string) []int {
	offsets := make([]int, 0, len(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	return append(offsets, len(text))
}
