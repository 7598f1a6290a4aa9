// Package prompt reads interactive input, either through a line editor with
// tab completion or from a plain buffered stream.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	tserrors "tagsort/internal/errors"
)

const inputBufferSize = 1024 * 1024

// Prompter reads one line of input per call.
//
// Prompt returns ok=false when the input is exhausted and an error wrapping
// errors.ErrInterrupted when the user cancels the read.
type Prompter interface {
	Prompt(label string) (line string, ok bool, err error)
	Close() error
}

// WordCompleter matches liner.WordCompleter without importing liner in callers.
type WordCompleter func(line string, pos int) (head string, completions []string, tail string)

// Options configure Open.
type Options struct {
	In         io.Reader
	Out        io.Writer
	Completer  WordCompleter
	Interrupts <-chan os.Signal
}

// Open returns a liner-backed prompter when both ends are terminals and a
// buffered prompter otherwise.
func Open(opts Options) Prompter {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if isTerminal(opts.In) && isTerminal(opts.Out) && liner.TerminalSupported() {
		return NewLinerPrompter(opts.Completer)
	}
	return NewBufferedPrompter(opts.In, opts.Out, opts.Interrupts)
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

// LinerPrompter reads from the terminal with history and tab completion.
type LinerPrompter struct {
	state *liner.State
}

// NewLinerPrompter puts the terminal under liner's control. Completion cycles
// through candidates on repeated Tab presses.
func NewLinerPrompter(completer WordCompleter) *LinerPrompter {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetMultiLineMode(false)
	state.SetTabCompletionStyle(liner.TabCircular)
	if completer != nil {
		state.SetWordCompleter(liner.WordCompleter(completer))
	}
	return &LinerPrompter{state: state}
}

func (p *LinerPrompter) Prompt(label string) (string, bool, error) {
	if p == nil || p.state == nil {
		return "", false, nil
	}
	line, err := p.state.Prompt(label)
	if err == nil {
		if strings.TrimSpace(line) != "" {
			p.state.AppendHistory(line)
		}
		return line, true, nil
	}
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", false, tserrors.ErrInterrupted
	}
	if errors.Is(err, io.EOF) {
		return "", false, nil
	}
	return "", false, err
}

// ClearHistory drops all recorded input lines.
func (p *LinerPrompter) ClearHistory() {
	if p == nil || p.state == nil {
		return
	}
	p.state.ClearHistory()
}

func (p *LinerPrompter) Close() error {
	if p == nil || p.state == nil {
		return nil
	}
	return p.state.Close()
}

type lineResult struct {
	line string
	ok   bool
	err  error
}

// BufferedPrompter reads lines from a non-terminal stream. When interrupts is
// set, a pending read is abandoned as soon as a signal arrives and its line is
// handed to the next Prompt call. Signals received between prompts are
// ignored.
type BufferedPrompter struct {
	reader     *bufio.Reader
	out        io.Writer
	interrupts <-chan os.Signal
	lines      chan lineResult
}

func NewBufferedPrompter(in io.Reader, out io.Writer, interrupts <-chan os.Signal) *BufferedPrompter {
	return &BufferedPrompter{
		reader:     bufio.NewReaderSize(in, inputBufferSize),
		out:        out,
		interrupts: interrupts,
	}
}

func (p *BufferedPrompter) Prompt(label string) (string, bool, error) {
	if p == nil || p.reader == nil {
		return "", false, nil
	}
	if p.out != nil && label != "" {
		fmt.Fprint(p.out, label)
	}
	if p.interrupts == nil {
		return readLine(p.reader)
	}

	if p.lines == nil {
		p.lines = make(chan lineResult, 1)
		go p.pump()
	}
	p.dropPendingInterrupts()
	select {
	case res, open := <-p.lines:
		if !open {
			return "", false, nil
		}
		return res.line, res.ok, res.err
	case <-p.interrupts:
		if p.out != nil {
			fmt.Fprintln(p.out)
		}
		return "", false, tserrors.ErrInterrupted
	}
}

// dropPendingInterrupts discards signals that arrived while no read was
// pending, so only Ctrl+C during this prompt aborts it.
func (p *BufferedPrompter) dropPendingInterrupts() {
	for {
		select {
		case <-p.interrupts:
		default:
			return
		}
	}
}

func (p *BufferedPrompter) pump() {
	defer close(p.lines)
	for {
		line, ok, err := readLine(p.reader)
		p.lines <- lineResult{line: line, ok: ok, err: err}
		if !ok || err != nil {
			return
		}
	}
}

func (p *BufferedPrompter) Close() error { return nil }

func readLine(reader *bufio.Reader) (string, bool, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}
