// Package categorize runs the interactive loop that sorts prompt tokens into
// named categories.
package categorize

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"tagsort/internal/completion"
	tserrors "tagsort/internal/errors"
	"tagsort/internal/logging"
	"tagsort/internal/prompt"
	"tagsort/internal/tokens"
	"tagsort/internal/ui"
)

// Header is printed before the first category prompt.
const Header = "Categorize your tokens (separated by commas):"

// Category is a named bucket and the tokens the user put in it.
type Category struct {
	Name   string
	Tokens []string
}

// Result is the outcome of one categorization pass.
type Result struct {
	// Tokens is the final order: assigned tokens by category, then every
	// original token that was never assigned.
	Tokens []string
	// Categories holds only the categories that received tokens.
	Categories []Category
	// Remaining are the original tokens appended after the categories.
	Remaining []string
	// Interrupted is set when the user cancelled the loop early.
	Interrupted bool
}

// Loop asks for each category in turn.
type Loop struct {
	Prompter prompt.Prompter
	Provider completion.Provider
	// Exempt keywords may repeat within one category's input.
	Exempt []string
	// Listing is the numbered token list shown to the user. Digit-only
	// entries select from it when IndexSelection is set.
	Listing        []string
	IndexSelection bool
	Printer        *ui.Printer
	Logger         logging.Logger
}

// Categorize runs a Loop with default settings.
func Categorize(original []string, provider completion.Provider, names []string, prompter prompt.Prompter) []string {
	loop := &Loop{
		Prompter: prompter,
		Provider: provider,
		Exempt:   tokens.DefaultExemptKeywords,
	}
	return loop.Run(original, names).Tokens
}

// Run prompts for every category in names and builds the final token order.
//
// An empty line or end of input skips a category. An interrupt stops asking but
// keeps what was assigned so far. Original tokens never assigned are appended
// at the end in their original order.
func (l *Loop) Run(original []string, names []string) Result {
	logger := logging.OrNop(l.Logger)
	var res Result

	if l.Printer != nil {
		l.Printer.Heading(Header)
	}

	for _, name := range names {
		assigned, err := l.ask(name)
		if err != nil {
			if tserrors.IsInterrupted(err) {
				logger.Info("categorization interrupted at %q", name)
				res.Interrupted = true
				break
			}
			logger.Warn("reading category %q failed: %v", name, err)
			break
		}
		if len(assigned) == 0 {
			logger.Debug("category %q skipped", name)
			continue
		}

		if l.Provider != nil {
			l.Provider.Remove(assigned)
		}
		res.Categories = append(res.Categories, Category{Name: name, Tokens: assigned})
		res.Tokens = append(res.Tokens, assigned...)
		logger.Debug("category %q assigned %d tokens", name, len(assigned))
	}

	for _, token := range original {
		if slices.Contains(res.Tokens, token) {
			continue
		}
		res.Tokens = append(res.Tokens, token)
		res.Remaining = append(res.Remaining, token)
	}
	logger.Info("categorized %d tokens into %d categories, %d appended", len(res.Tokens)-len(res.Remaining), len(res.Categories), len(res.Remaining))
	return res
}

// ask reads one category, asking again while the input holds an invalid
// selection. A nil slice means the category is skipped.
func (l *Loop) ask(name string) ([]string, error) {
	if l.Prompter == nil {
		return nil, nil
	}
	label := name + "? "
	for {
		line, ok, err := l.Prompter.Prompt(label)
		if err != nil {
			return nil, err
		}
		if !ok || line == "" {
			return nil, nil
		}

		assigned, err := l.parse(line)
		if err == nil {
			return assigned, nil
		}
		if !tserrors.IsSelection(err) {
			return nil, err
		}
		if l.Printer != nil {
			l.Printer.Warn("%v, try again", err)
		}
	}
}

// parse turns one non-empty line of category input into tokens. Input with a
// comma is split and deduplicated, empty pieces included; anything else is a
// single trimmed token, which may itself be empty.
func (l *Loop) parse(line string) ([]string, error) {
	if !strings.ContainsRune(line, ',') {
		entry, err := l.resolve(strings.TrimSpace(line))
		if err != nil {
			return nil, err
		}
		return []string{entry}, nil
	}

	entries := tokens.Split(line)
	for i, entry := range entries {
		resolved, err := l.resolve(entry)
		if err != nil {
			return nil, err
		}
		entries[i] = resolved
	}
	return tokens.Dedup(entries, l.Exempt), nil
}

// resolve maps a listing index to its token when index selection is on.
func (l *Loop) resolve(entry string) (string, error) {
	if !l.IndexSelection || !isIndex(entry) {
		return entry, nil
	}
	return l.resolveIndex(entry)
}

func (l *Loop) resolveIndex(entry string) (string, error) {
	n, err := strconv.Atoi(entry)
	if err != nil {
		return "", tserrors.NewSelectionError(entry, "not a number")
	}
	if n < 1 {
		return "", tserrors.NewSelectionError(entry, "indexes start at 1")
	}
	if n > len(l.Listing) {
		return "", tserrors.NewSelectionError(entry, fmt.Sprintf("only %d tokens listed", len(l.Listing)))
	}
	return l.Listing[n-1], nil
}

func isIndex(entry string) bool {
	for _, r := range entry {
		if r < '0' || r > '9' {
			return false
		}
	}
	return entry != ""
}
