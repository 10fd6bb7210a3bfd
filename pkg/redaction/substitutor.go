package redaction

// Substitute splices the token assigned to each span into the text. Spans
// must be non-overlapping and sorted by descending start: every splice then
// edits a region strictly after all spans still to be processed, so their
// offsets, measured on the original text, remain valid.
func Substitute(text string, spans []ResolvedSpan, tokens []string) string {
	redacted := text
	for i, span := range spans {
		redacted = redacted[:span.Start] + tokens[i] + redacted[span.End:]
	}
	return redacted
}

// Redact runs resolution, token assignment and substitution in one pass,
// accumulating tokens into the given per-request mapper.
func (r *Resolver) Redact(text string, detections []Detection, mapper *Mapper) string {
	spans := r.Resolve(detections)
	tokens := mapper.Assign(text, spans)
	return Substitute(text, spans, tokens)
}
