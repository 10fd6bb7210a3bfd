package redaction

import "strings"

// Rehydrate replaces every occurrence of every token in text with its
// original literal. The bracketed token grammar guarantees no token is a
// substring of another, so replacement order across tokens does not matter.
// Tokens the provider never echoed back are simply absent from the result.
func Rehydrate(text string, mapping TokenMapping) string {
	for token, original := range mapping {
		text = strings.ReplaceAll(text, token, original)
	}
	return text
}
