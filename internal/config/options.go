package config

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/language"

	"github.com/roach88/chest/internal/harness"
	"github.com/roach88/chest/internal/report"
)

// Phrasebook builds the operator phrase table for the configured language
// and overrides. Phrase keys may be symbols ("<") or names ("lt").
func (c *Config) Phrasebook() (*harness.Phrasebook, error) {
	tag := language.English
	if c.Language != "" {
		t, err := language.Parse(c.Language)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", c.Language, err)
		}
		tag = t
	}

	var overrides map[harness.CmpOp]string
	if len(c.Phrases) > 0 {
		overrides = make(map[harness.CmpOp]string, len(c.Phrases))
		for key, text := range c.Phrases {
			op, err := harness.ParseCmpOp(key)
			if err != nil {
				return nil, fmt.Errorf("phrases: %w", err)
			}
			if prev, dup := overrides[op]; dup && prev != text {
				return nil, fmt.Errorf("phrases: operator %s given twice", op)
			}
			overrides[op] = text
		}
	}
	return harness.NewPhrasebook(tag, overrides)
}

// SuiteOptions converts the configuration into harness options.
func (c *Config) SuiteOptions(logger *slog.Logger) ([]harness.Option, error) {
	pb, err := c.Phrasebook()
	if err != nil {
		return nil, err
	}
	opts := []harness.Option{
		harness.WithLocking(c.ThreadSafe),
		harness.WithTiming(c.Measure),
		harness.WithPhrasebook(pb),
	}
	if logger != nil {
		opts = append(opts, harness.WithLogger(logger))
	}
	return opts, nil
}

// ReportOptions resolves the presentation settings for output w. In auto
// mode color is used only when w is a terminal; a zero term_width is
// detected from w.
func (c *Config) ReportOptions(w io.Writer) report.Options {
	color := false
	switch c.Color {
	case ColorAlways:
		color = true
	case ColorAuto, "":
		color = report.IsTerminal(w)
	}

	width := c.TermWidth
	if width <= 0 {
		width = report.TermWidth(w)
	}

	return report.Options{
		PassText:  c.PassText,
		FailText:  c.FailText,
		Color:     color,
		TermWidth: width,
		Palette: report.Palette{
			Pass:    string(c.Colors.Pass),
			Fail:    string(c.Colors.Fail),
			Measure: string(c.Colors.Measure),
		},
	}
}
