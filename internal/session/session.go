// Package session drives one run of the tool: read a prompt, list its tokens,
// optionally categorize them and write the result.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"tagsort/internal/categorize"
	"tagsort/internal/completion"
	tserrors "tagsort/internal/errors"
	"tagsort/internal/logging"
	"tagsort/internal/prompt"
	"tagsort/internal/tokens"
	"tagsort/internal/ui"
)

const (
	promptLabel        = "(prompt): "
	confirmSortedLabel = "Tokens sorted, categorize? (Y/n): "
	confirmLabel       = "Tokens listed, categorize? (Y/n): "
)

// Options configure a Session.
type Options struct {
	OutputPath     string
	PromptFile     string
	Categories     []string
	ExemptKeywords []string
	SortListing    bool
	IndexSelection bool
}

// Outcome summarizes a finished run.
type Outcome struct {
	Tokens      []string
	Rendered    string
	Categorized bool
	Interrupted bool
	Categories  []categorize.Category
}

// Session wires the prompter, completion engine and printer for one run.
type Session struct {
	opts     Options
	prompter prompt.Prompter
	engine   *completion.Engine
	printer  *ui.Printer
	logger   logging.Logger
}

// New creates a session. A nil engine or printer gets a default one.
func New(opts Options, prompter prompt.Prompter, engine *completion.Engine, printer *ui.Printer, logger logging.Logger) *Session {
	if engine == nil {
		engine = completion.NewEngine(completion.WithLogger(logger))
	}
	if printer == nil {
		printer = ui.NewPrinter(nil, true)
	}
	return &Session{
		opts:     opts,
		prompter: prompter,
		engine:   engine,
		printer:  printer,
		logger:   logging.OrNop(logger),
	}
}

// Run executes the session and writes the output file. Interrupts never fail
// the run; only writing the output can.
func (s *Session) Run() (Outcome, error) {
	var outcome Outcome
	s.printer.Banner()

	original := s.readTokens()
	s.logger.Info("prompt split into %d tokens", len(original))

	listing := original
	if s.opts.SortListing {
		listing = tokens.Sorted(original)
	}
	s.printer.TokenList(listing)

	s.engine.Initialize(original)

	outcome.Tokens = original
	if s.confirm() {
		loop := &categorize.Loop{
			Prompter:       s.prompter,
			Provider:       s.engine,
			Exempt:         s.opts.ExemptKeywords,
			Listing:        listing,
			IndexSelection: s.opts.IndexSelection,
			Printer:        s.printer,
			Logger:         s.logger,
		}
		res := loop.Run(original, s.opts.Categories)
		outcome.Tokens = res.Tokens
		outcome.Categories = res.Categories
		outcome.Interrupted = res.Interrupted
		outcome.Categorized = true
	}

	outcome.Rendered = tokens.Render(outcome.Tokens)
	if err := s.write(outcome.Rendered); err != nil {
		return outcome, err
	}
	s.logger.Info("wrote %d tokens to %s", len(outcome.Tokens), s.opts.OutputPath)
	return outcome, nil
}

// readTokens loads the prompt from the prompt file when it exists and asks for
// it otherwise. End of input or an interrupt yields no tokens.
func (s *Session) readTokens() []string {
	if s.opts.PromptFile != "" {
		data, err := os.ReadFile(s.opts.PromptFile)
		switch {
		case err == nil:
			s.logger.Debug("prompt read from %s", s.opts.PromptFile)
			return tokens.Split(string(data))
		case errors.Is(err, fs.ErrNotExist):
		default:
			s.printer.Warn("cannot read %s: %v", s.opts.PromptFile, err)
		}
	}

	if s.prompter == nil {
		return nil
	}
	line, ok, err := s.prompter.Prompt(promptLabel)
	if err != nil {
		if !tserrors.IsInterrupted(err) {
			s.logger.Warn("reading prompt failed: %v", err)
		}
		return nil
	}
	if !ok {
		return nil
	}
	return tokens.Split(strings.TrimRightFunc(line, unicode.IsSpace))
}

func (s *Session) confirm() bool {
	if s.prompter == nil {
		return false
	}
	label := confirmLabel
	if s.opts.SortListing {
		label = confirmSortedLabel
	}
	answer, ok, err := s.prompter.Prompt(label)
	if err != nil || !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	}
	return false
}

func (s *Session) write(rendered string) error {
	if s.opts.OutputPath == "" {
		return fmt.Errorf("no output file given")
	}
	if err := os.WriteFile(s.opts.OutputPath, []byte(rendered), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
