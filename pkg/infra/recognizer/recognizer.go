package recognizer

import (
	"context"
	"errors"

	"github.com/sentinelhq/sentinel/pkg/redaction"
)

// ErrUnavailable reports that the recognizer service could not be reached or
// refused the request. Callers decide whether to fail open (treat as zero
// detections) or closed.
var ErrUnavailable = errors.New("entity recognizer unavailable")

// Recognizer is the external PII classifier. Output ordering is not
// guaranteed and results may overlap; the engine resolves both.
type Recognizer interface {
	Analyze(ctx context.Context, text, language string) ([]redaction.Detection, error)
}
