package completion

import "github.com/sentinelhq/sentinel/pkg/infra/providers"

type OutcomeKind int

// Upstream round-trip outcome. Degraded means the caller still got a usable
// completion, but not from the requested provider/model combination.
const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeDegraded
	OutcomeFailed
)

// Outcome is the tagged result of the upstream call. The audit step branches
// on Kind rather than on error values, so every degradation path is recorded
// with an accurate status.
type Outcome struct {
	Kind       OutcomeKind
	Completion *providers.CompletionResponse
	Reason     string
}

func success(resp *providers.CompletionResponse) Outcome {
	return Outcome{Kind: OutcomeSuccess, Completion: resp}
}

func degraded(resp *providers.CompletionResponse, reason string) Outcome {
	return Outcome{Kind: OutcomeDegraded, Completion: resp, Reason: reason}
}

func failed(reason string) Outcome {
	return Outcome{Kind: OutcomeFailed, Reason: reason}
}
