// Package console prints the extraction narrative to the terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const rule = 40

// Printer writes styled progress lines. Info and success lines go to out,
// warnings and errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	info    lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	header  lipgloss.Style
}

// New returns a Printer. With color false every style renders plain text.
// Color is also dropped automatically when out is not a terminal.
func New(out, errOut io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(out)
	p := &Printer{
		out:     out,
		errOut:  errOut,
		info:    r.NewStyle(),
		success: r.NewStyle(),
		warn:    r.NewStyle(),
		err:     r.NewStyle(),
		header:  r.NewStyle(),
	}
	if color {
		p.success = p.success.Foreground(lipgloss.Color("78"))
		p.warn = p.warn.Foreground(lipgloss.Color("214"))
		p.err = p.err.Foreground(lipgloss.Color("197"))
		p.header = p.header.Bold(true).Foreground(lipgloss.Color("63"))
	}
	return p
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.out, p.info, format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.out, p.success, format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(p.errOut, p.warn, format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.errOut, p.err, format, args...)
}

// Banner prints title between two horizontal rules.
func (p *Printer) Banner(title string) {
	bar := strings.Repeat("=", rule)
	_, _ = fmt.Fprintln(p.out)
	_, _ = fmt.Fprintln(p.out, bar)
	_, _ = fmt.Fprintln(p.out, p.header.Render(title))
	_, _ = fmt.Fprintln(p.out, bar)
}

// Rule prints a horizontal rule.
func (p *Printer) Rule() {
	_, _ = fmt.Fprintln(p.out, strings.Repeat("=", rule))
}

// line styles each line of the message on its own; lipgloss would
// otherwise pad a multi-line string into a block.
func (p *Printer) line(w io.Writer, s lipgloss.Style, format string, args ...any) {
	lines := strings.Split(fmt.Sprintf(format, args...), "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = s.Render(l)
		}
	}
	_, _ = fmt.Fprintln(w, strings.Join(lines, "\n"))
}
