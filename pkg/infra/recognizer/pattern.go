package recognizer

import (
	"context"
	"regexp"

	"github.com/sentinelhq/sentinel/pkg/redaction"
)

// patternDef binds one entity type to its detection regex. Scores rank the
// patterns by specificity so the span resolver prefers a credit card match
// over the looser phone number pattern covering the same digits.
type patternDef struct {
	entityType string
	score      float64
	pattern    *regexp.Regexp
}

var patterns = []patternDef{
	{"EMAIL_ADDRESS", 0.95, regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)},
	{"IP_ADDRESS", 0.9, regexp.MustCompile(`\b((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\b`)},
	{"CRYPTO", 0.85, regexp.MustCompile(`\b(bc1|[13])[a-zA-HJ-NP-Z0-9]{25,39}\b|0x[a-fA-F0-9]{40}\b`)},
	{"IBAN_CODE", 0.8, regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{10,30}\b`)},
	{"CREDIT_CARD", 0.75, regexp.MustCompile(`\b(?:\d[ -]?){13,19}\b`)},
	{"US_SSN", 0.7, regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"US_PASSPORT", 0.55, regexp.MustCompile(`\b[A-Z]{1,2}[0-9]{6,9}\b`)},
	{"PHONE_NUMBER", 0.5, regexp.MustCompile(`\b\+?\d{1,3}[\s-]?\(?\d{2,4}\)?[\s-]?\d{3}[\s-]?\d{3,4}\b`)},
}

// PatternRecognizer detects PII with regular expressions only. It backs
// deployments that run without an external analyzer and never reports
// itself unavailable.
type PatternRecognizer struct{}

func NewPatternRecognizer() *PatternRecognizer {
	return &PatternRecognizer{}
}

func (r *PatternRecognizer) Analyze(ctx context.Context, text, language string) ([]redaction.Detection, error) {
	var detections []redaction.Detection
	for _, def := range patterns {
		for _, loc := range def.pattern.FindAllStringIndex(text, -1) {
			detections = append(detections, redaction.Detection{
				EntityType: def.entityType,
				Start:      loc[0],
				End:        loc[1],
				Score:      def.score,
			})
		}
	}
	return detections, nil
}
