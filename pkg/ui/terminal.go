package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	errs "mastodiary/pkg/errors"
)

// Styles for terminal output
type Styles struct {
	Error     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Highlight lipgloss.Style
}

func colorStyles() Styles {
	return Styles{
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Label:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Value:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	}
}

func plainStyles() Styles {
	return Styles{
		Error:     lipgloss.NewStyle(),
		Success:   lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
		Label:     lipgloss.NewStyle(),
		Value:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
	}
}

// Printer writes results to out and diagnostics to errOut
type Printer struct {
	out    io.Writer
	errOut io.Writer
	color  bool
	styles Styles
}

// NewPrinter creates a printer. Colors are used only when out is a terminal.
func NewPrinter(out, errOut io.Writer) *Printer {
	color := IsTerminal(out)
	styles := plainStyles()
	if color {
		styles = colorStyles()
	}

	return &Printer{
		out:    out,
		errOut: errOut,
		color:  color,
		styles: styles,
	}
}

// NewStdPrinter creates a printer for stdout and stderr
func NewStdPrinter() *Printer {
	return NewPrinter(os.Stdout, os.Stderr)
}

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Color reports whether styled output is enabled
func (p *Printer) Color() bool {
	return p.color
}

// PrintSuccess prints a success message on stdout
func (p *Printer) PrintSuccess(msg string) {
	fmt.Fprintln(p.out, p.styles.Success.Render(msg))
}

// PrintInfo prints a label and its value on stdout
func (p *Printer) PrintInfo(label, value string) {
	fmt.Fprintf(p.out, "%s: %s\n", p.styles.Label.Render(label), p.styles.Value.Render(value))
}

// PrintHighlight prints a highlighted message on stdout
func (p *Printer) PrintHighlight(msg string) {
	fmt.Fprintln(p.out, p.styles.Highlight.Render(msg))
}

// Print writes text to stdout unstyled
func (p *Printer) Print(text string) {
	fmt.Fprint(p.out, text)
}

// PrintWarning prints a warning on stderr
func (p *Printer) PrintWarning(msg string) {
	fmt.Fprintln(p.errOut, p.styles.Warning.Render(msg))
}

// PrintError prints a one-line diagnostic naming the failed step on stderr
func (p *Printer) PrintError(err error) {
	step := errs.Step(errs.TypeOf(err))
	fmt.Fprintf(p.errOut, "%s %s: %v\n", p.styles.Error.Render("Error"), step, err)
}
