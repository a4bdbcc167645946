package output

import (
	"fmt"
	"io"

	"github.com/atikulmunna/logscan/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// NoLogMessage is printed when no log file matched.
const NoLogMessage = "No log file found."

// Renderer writes an Analysis to an output stream.
type Renderer interface {
	Render(a model.Analysis) error
}

type styles struct {
	title   lipgloss.Style
	source  lipgloss.Style
	heading lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	perf    lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true),
		source:  r.NewStyle().Foreground(lipgloss.Color("39")).Faint(true), // cyan
		heading: r.NewStyle().Bold(true).Underline(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true), // red bold
		warn:    r.NewStyle().Foreground(lipgloss.Color("220")),            // yellow
		perf:    r.NewStyle().Foreground(lipgloss.Color("42")),             // green
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),            // gray
	}
}

// TextRenderer prints a report as labelled sections.
// Colors are only emitted when the writer is a terminal.
type TextRenderer struct {
	w  io.Writer
	st styles
}

// NewTextRendererTo returns a Renderer that writes to w.
func NewTextRendererTo(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w, st: newStyles(lipgloss.NewRenderer(w))}
}

func (r *TextRenderer) Render(a model.Analysis) error {
	p := &printer{w: r.w}

	p.line(r.st.title.Render("=== Log Analysis ==="))
	if a.Found() {
		p.line(fmt.Sprintf("File: %s", r.st.source.Render(a.Path)))
		p.line(fmt.Sprintf("Last modified: %s", a.Modified.Format("2006-01-02 15:04:05")))
	} else {
		p.line(r.st.muted.Render(NoLogMessage))
	}
	p.line("")

	r.section(p, "Errors:", a.Report.Errors, r.st.err)
	r.section(p, "Warnings:", a.Report.Warnings, r.st.warn)
	r.section(p, "Performance metrics:", a.Report.Performance, r.st.perf)

	if a.Found() {
		s := a.Summary
		p.line(r.st.heading.Render("Summary:"))
		p.line(fmt.Sprintf("- Lines: %d", s.Lines))
		p.line(fmt.Sprintf("- Critical: %d", s.Critical))
		p.line(fmt.Sprintf("- Errors: %d", s.Errors))
		p.line(fmt.Sprintf("- Warnings: %d", s.Warnings))
		p.line(fmt.Sprintf("- Performance blocks: %d", s.PerformanceBlocks))
	}

	return p.err
}

func (r *TextRenderer) section(p *printer, title string, entries []string, style lipgloss.Style) {
	p.line(r.st.heading.Render(title))
	if len(entries) == 0 {
		p.line(r.st.muted.Render("  none found"))
	}
	for _, e := range entries {
		// Entries are written verbatim; only the marker is styled.
		p.line(style.Render("-") + " " + e)
	}
	p.line("")
}

// printer keeps the first write error so rendering code stays linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}
