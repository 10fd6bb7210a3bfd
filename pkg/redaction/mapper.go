package redaction

import "fmt"

// Mapper assigns placeholder tokens to resolved spans. A Mapper carries the
// per-type counters and the literal reverse index for exactly one redaction
// call (one inbound request); build a fresh one per request and never share
// it across requests.
type Mapper struct {
	mapping        TokenMapping
	tokenByLiteral map[string]string
	counters       map[string]int
}

func NewMapper() *Mapper {
	return &Mapper{
		mapping:        make(TokenMapping),
		tokenByLiteral: make(map[string]string),
		counters:       make(map[string]int),
	}
}

// Assign returns the token for each span, index-aligned with spans. Spans are
// expected in descending start order, as produced by Resolver.Resolve.
//
// The same literal value appearing more than once reuses its previously
// minted token, so the mapping holds exactly one entry per distinct literal.
// Reuse is keyed by the literal alone: if two entity types ever match equal
// literals, the first type's token wins. That is the intended behavior, not
// an accident of implementation.
func (m *Mapper) Assign(text string, spans []ResolvedSpan) []string {
	tokens := make([]string, len(spans))
	for i, span := range spans {
		literal := text[span.Start:span.End]

		token, seen := m.tokenByLiteral[literal]
		if !seen {
			m.counters[span.EntityType]++
			token = fmt.Sprintf("<%s_%d>", span.EntityType, m.counters[span.EntityType])
			m.tokenByLiteral[literal] = token
			m.mapping[token] = literal
		}
		tokens[i] = token
	}
	return tokens
}

// Mapping returns the token to original-literal mapping accumulated so far.
func (m *Mapper) Mapping() TokenMapping {
	return m.mapping
}
