// Package completion provides the interactive suggestion pool used while the
// user assigns tokens to categories.
package completion

import (
	"strings"

	"tagsort/internal/logging"
)

// Provider is the completion contract the categorization loop depends on.
type Provider interface {
	// Initialize seeds the candidate pool and clears any prior input history.
	Initialize(tokens []string)
	// Suggest returns the index-th candidate matching partial, or false when
	// there are no more matches.
	Suggest(partial string, index int) (string, bool)
	// Remove drops tokens from the pool. Tokens not in the pool are ignored.
	Remove(tokens []string)
}

// HistoryClearer is implemented by line editors that keep input history.
type HistoryClearer interface {
	ClearHistory()
}

// Engine is the default Provider. It is not safe for concurrent use; the line
// editor calls it synchronously from the goroutine that is reading input.
type Engine struct {
	pool    []string
	history HistoryClearer
	logger  logging.Logger
}

var _ Provider = (*Engine)(nil)

// Option configures an Engine.
type Option func(*Engine)

// WithHistory binds the engine to a line editor whose history is cleared on
// Initialize.
func WithHistory(history HistoryClearer) Option {
	return func(e *Engine) {
		e.history = history
	}
}

// WithLogger sets the engine logger.
func WithLogger(logger logging.Logger) Option {
	return func(e *Engine) {
		e.logger = logging.OrNop(logger)
	}
}

// NewEngine returns an empty engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: logging.Nop()}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Bind attaches a line editor after construction. The editor is usually
// created with the engine's CompleteWord as its completer, so it cannot be
// passed to NewEngine.
func (e *Engine) Bind(history HistoryClearer) {
	e.history = history
}

// Initialize replaces the pool with tokens. Each token is held once, in order
// of first appearance.
func (e *Engine) Initialize(tokens []string) {
	e.pool = make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		e.pool = append(e.pool, token)
	}
	if e.history != nil {
		e.history.ClearHistory()
	}
	e.logger.Debug("completion pool initialized with %d candidates", len(e.pool))
}

// Suggest returns the index-th pool entry containing partial. Surrounding
// whitespace in partial is ignored, and an empty partial matches every entry.
// The match set is rebuilt on every call.
func (e *Engine) Suggest(partial string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}
	partial = strings.TrimSpace(partial)
	for _, candidate := range e.pool {
		if partial != "" && !strings.Contains(candidate, partial) {
			continue
		}
		if index == 0 {
			return candidate, true
		}
		index--
	}
	return "", false
}

// Matches returns every candidate Suggest would yield for partial, in order.
func (e *Engine) Matches(partial string) []string {
	var out []string
	for i := 0; ; i++ {
		candidate, ok := e.Suggest(partial, i)
		if !ok {
			return out
		}
		out = append(out, candidate)
	}
}

// Remove drops every listed token from the pool.
func (e *Engine) Remove(tokens []string) {
	if len(tokens) == 0 || len(e.pool) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		drop[token] = struct{}{}
	}
	kept := e.pool[:0]
	for _, candidate := range e.pool {
		if _, ok := drop[candidate]; ok {
			continue
		}
		kept = append(kept, candidate)
	}
	removed := len(e.pool) - len(kept)
	e.pool = kept
	if removed > 0 {
		e.logger.Debug("removed %d candidates, %d remaining", removed, len(e.pool))
	}
}

// Pool returns a copy of the remaining candidates.
func (e *Engine) Pool() []string {
	return append([]string(nil), e.pool...)
}
