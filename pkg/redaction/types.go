package redaction

// Detection is a candidate PII span produced by an entity recognizer.
// Start and End are character offsets into the analyzed text, [Start, End).
type Detection struct {
	EntityType string  `json:"entity_type"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Score      float64 `json:"score"`
}

// Length returns the number of characters covered by the detection.
func (d Detection) Length() int {
	return d.End - d.Start
}

// ResolvedSpan is a detection that survived filtering and overlap resolution.
type ResolvedSpan = Detection

// TokenMapping maps a placeholder token such as "<PERSON_1>" to the original
// literal it replaced. Scoped to a single redaction call.
type TokenMapping map[string]string
