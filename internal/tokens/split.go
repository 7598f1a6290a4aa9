package tokens

import (
	"strings"
	"unicode"
)

// Separator joins rendered tokens in the output file.
const Separator = ", "

// Split separates the top-level tokens of a prompt.
//
// Top-level tokens are separated by commas that are not nested inside
// parentheses or brackets. Each token is trimmed of surrounding whitespace and
// the trailing segment is always appended, so Split("") returns [""] and
// Split("a,") returns ["a", ""].
//
// The two depth counters are independent and unbounded in both directions. A
// stray closing marker drives its counter negative and commas stay part of the
// token until the counter is back at zero.
func Split(text string) []string {
	var (
		out          []string
		current      strings.Builder
		parenDepth   int
		bracketDepth int
	)

	for _, r := range text {
		switch r {
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '[':
			bracketDepth++
		case ']':
			bracketDepth--
		}

		if r == ',' && parenDepth == 0 && bracketDepth == 0 {
			out = append(out, strings.TrimSpace(current.String()))
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}

	return append(out, strings.TrimSpace(current.String()))
}

// Render joins tokens for the output file. Leading whitespace of the whole
// result is dropped; there is no trailing separator.
func Render(tokens []string) string {
	return strings.TrimLeftFunc(strings.Join(tokens, Separator), unicode.IsSpace)
}
