// Package report renders harness results as aligned terminal text.
//
// Each test produces one line of the form
//
//	<name padded to the longest name> ... PASS
//
// followed, for failing tests, by their staged diagnostics. With timing
// enabled the line carries "<test>ms + <overhead>ms", flush right within
// the terminal width when it fits.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/roach88/chest/internal/harness"
)

// Default texts and layout.
const (
	DefaultPassText  = "PASS"
	DefaultFailText  = "FAIL"
	DefaultTermWidth = 80
)

// Palette holds ANSI-256 color codes for the three styled fields.
type Palette struct {
	Pass    string
	Fail    string
	Measure string
}

// DefaultPalette returns bold green, bold red and gray.
func DefaultPalette() Palette {
	return Palette{Pass: "2", Fail: "1", Measure: "8"}
}

// Options configures a Text reporter.
type Options struct {
	PassText  string
	FailText  string
	Color     bool
	Palette   Palette
	TermWidth int // Columns for flush-right timing; <= 0 means DefaultTermWidth
}

// Text is a harness.Reporter writing plain or colored text.
type Text struct {
	w     io.Writer
	opts  Options
	color bool
	width int

	pass    lipgloss.Style
	fail    lipgloss.Style
	measure lipgloss.Style
}

var _ harness.Reporter = (*Text)(nil)

// New creates a Text reporter writing to w.
func New(w io.Writer, opts Options) *Text {
	if opts.PassText == "" {
		opts.PassText = DefaultPassText
	}
	if opts.FailText == "" {
		opts.FailText = DefaultFailText
	}
	if opts.TermWidth <= 0 {
		opts.TermWidth = DefaultTermWidth
	}
	p := opts.Palette
	def := DefaultPalette()
	if p.Pass == "" {
		p.Pass = def.Pass
	}
	if p.Fail == "" {
		p.Fail = def.Fail
	}
	if p.Measure == "" {
		p.Measure = def.Measure
	}
	opts.Palette = p

	r := lipgloss.NewRenderer(w)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Text{
		w:       w,
		opts:    opts,
		color:   opts.Color,
		width:   opts.TermWidth,
		pass:    r.NewStyle().Foreground(lipgloss.Color(p.Pass)).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color(p.Fail)).Bold(true),
		measure: r.NewStyle().Foreground(lipgloss.Color(p.Measure)),
	}
}

// Report writes one test line and, for failures, its messages.
func (t *Text) Report(rep harness.Report) {
	status, style := t.opts.PassText, t.pass
	if !rep.Passed {
		status, style = t.opts.FailText, t.fail
	}

	var sb strings.Builder
	name := runewidth.FillRight(rep.Name, rep.Width)
	line := name + " ... " + status
	sb.WriteString(name)
	sb.WriteString(" ... ")
	sb.WriteString(t.paint(style, status))

	if rep.Timing.Measured {
		test := formatMillis(rep.Timing.Test)
		over := formatMillis(rep.Timing.Overhead)
		plain := test + " + " + over
		used := runewidth.StringWidth(line)
		if pad := t.width - used - runewidth.StringWidth(plain); pad >= 1 {
			sb.WriteString(strings.Repeat(" ", pad))
		} else {
			sb.WriteString("\t\t")
		}
		sb.WriteString(t.paint(t.measure, test))
		sb.WriteString(" + ")
		sb.WriteString(t.paint(t.measure, over))
	}
	sb.WriteByte('\n')

	if !rep.Passed {
		for _, m := range rep.Messages {
			sb.WriteString(m)
		}
	}
	io.WriteString(t.w, sb.String())
}

// Summary writes the closing tally followed by every failing test's name
// and messages, in registration order.
func (t *Text) Summary(sum harness.Summary) {
	var sb strings.Builder
	sb.WriteString("---\n")
	fmt.Fprintf(&sb, "%d/%d PASSED\n", sum.Passed, sum.Total)
	fmt.Fprintf(&sb, "%d FAILED\n", sum.Failed)
	for _, e := range sum.Failing {
		sb.WriteString(e.Name)
		sb.WriteByte('\n')
		for _, m := range e.Messages {
			sb.WriteString(m)
		}
	}
	io.WriteString(t.w, sb.String())
}

func (t *Text) paint(style lipgloss.Style, s string) string {
	if !t.color {
		return s
	}
	return style.Render(s)
}

func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
