package ui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"tagsort/internal/logging"
)

// Shared terminal styles.
var (
	styleGray    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleBold    = lipgloss.NewStyle().Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	indexColor = color.New(color.FgCyan)
)

// Banner is printed when an interactive session starts.
const Banner = "(Use Ctrl+C to quit, Tab to autocomplete)"

// Printer writes user-facing messages.
type Printer struct {
	out     io.Writer
	noColor bool
}

// NewPrinter returns a printer writing to out. With noColor set, no escape
// sequences are emitted.
func NewPrinter(out io.Writer, noColor bool) *Printer {
	if out == nil {
		out = io.Discard
	}
	return &Printer{out: out, noColor: noColor}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if p.noColor {
		return s
	}
	return style.Render(s)
}

// Banner prints the session banner.
func (p *Printer) Banner() {
	fmt.Fprintln(p.out, p.render(styleGray, Banner))
}

// Heading prints a bold line.
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.out, p.render(styleBold, text))
}

// Info prints a dim status line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(styleGray, fmt.Sprintf(format, args...)))
}

// Warn prints a warning line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.out, p.render(styleWarning, "Warning: "+fmt.Sprintf(format, args...)))
}

// TokenList prints tokens numbered from 1.
func (p *Printer) TokenList(tokens []string) {
	for i, token := range tokens {
		index := strconv.Itoa(i+1) + "."
		if !p.noColor {
			index = indexColor.Sprint(index)
		}
		fmt.Fprintf(p.out, "%s %s\n", index, token)
	}
}

// Logger adapts the printer for problems the user should see. Warnings and
// errors are printed; debug and info lines are dropped.
func (p *Printer) Logger() logging.Logger {
	return printerLogger{p: p}
}

type printerLogger struct {
	p *Printer
}

func (printerLogger) Debug(string, ...any) {}
func (printerLogger) Info(string, ...any)  {}

func (l printerLogger) Warn(format string, args ...any) {
	l.p.Warn(format, args...)
}

func (l printerLogger) Error(format string, args ...any) {
	fmt.Fprintln(l.p.out, l.p.render(styleError, "Error: "+fmt.Sprintf(format, args...)))
}
