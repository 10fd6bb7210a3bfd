package redaction

import "sort"

// DefaultExcludedEntities lists recognizer categories dropped before overlap
// resolution. UK_NHS routinely misidentifies plain phone numbers as NHS
// numbers, so it is excluded out of the box.
var DefaultExcludedEntities = []string{"UK_NHS"}

// Resolver filters candidate detections and resolves overlapping spans into a
// non-overlapping set. It is stateless and safe for concurrent use.
type Resolver struct {
	excluded map[string]struct{}
}

func NewResolver(excludedEntities []string) *Resolver {
	excluded := make(map[string]struct{}, len(excludedEntities))
	for _, e := range excludedEntities {
		excluded[e] = struct{}{}
	}
	return &Resolver{excluded: excluded}
}

// Resolve drops excluded entity types, resolves overlaps by score (higher
// wins) then span length (longer wins), and returns the surviving spans
// sorted by descending start, which is the order Substitute consumes.
func (r *Resolver) Resolve(detections []Detection) []ResolvedSpan {
	candidates := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if _, ok := r.excluded[d.EntityType]; ok {
			continue
		}
		candidates = append(candidates, d)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Length() > candidates[j].Length()
	})

	kept := make([]ResolvedSpan, 0, len(candidates))
	for _, d := range candidates {
		if !overlapsAny(d, kept) {
			kept = append(kept, d)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Start > kept[j].Start
	})
	return kept
}

func overlapsAny(d Detection, spans []ResolvedSpan) bool {
	for _, s := range spans {
		// [a,b) and [c,d) overlap iff a < d && c < b.
		if d.Start < s.End && s.Start < d.End {
			return true
		}
	}
	return false
}
