package completion

import "unicode"

// Delimiter separates completion words on an input line.
const Delimiter = ','

// CompleteWord adapts the engine to a word-completing line editor.
//
// The word under completion is the text between the last comma before pos and
// pos. Whitespace after that comma stays in head so completing "a, re" yields
// "a, red fur". Completions are returned in Suggest order.
func (e *Engine) CompleteWord(line string, pos int) (head string, completions []string, tail string) {
	runes := []rune(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	start := 0
	for i := pos - 1; i >= 0; i-- {
		if runes[i] == Delimiter {
			start = i + 1
			break
		}
	}
	for start < pos && unicode.IsSpace(runes[start]) {
		start++
	}

	word := string(runes[start:pos])
	return string(runes[:start]), e.Matches(word), string(runes[pos:])
}
