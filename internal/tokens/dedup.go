package tokens

import "slices"

// DefaultExemptKeywords lists tokens that may repeat in a prompt.
var DefaultExemptKeywords = []string{"BREAK"}

// Dedup removes repeated tokens, keeping the first occurrence of each.
// Tokens listed in exempt are kept every time they appear.
func Dedup(tokens []string, exempt []string) []string {
	exemptSet := make(map[string]struct{}, len(exempt))
	for _, keyword := range exempt {
		exemptSet[keyword] = struct{}{}
	}

	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		_, isExempt := exemptSet[token]
		if _, dup := seen[token]; dup && !isExempt {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Sorted returns a sorted copy of tokens for display. The input is not
// modified.
func Sorted(tokens []string) []string {
	out := slices.Clone(tokens)
	slices.Sort(out)
	return out
}
