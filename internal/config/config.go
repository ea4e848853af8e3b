// Package config loads harness settings from YAML files.
//
// A configuration file is decoded strictly (unknown keys are rejected) on
// top of Default, then validated against an embedded CUE schema. Every
// field is optional:
//
//	pass_text: PASS
//	fail_text: FAIL
//	color: auto          # auto | always | never
//	measure: false
//	term_width: 0        # 0 detects the terminal, falling back to 80
//	thread_safe: false
//	language: en         # BCP 47 tag for operator phrases
//	phrases:
//	  "<": KLEINER ALS
//	colors:
//	  pass: 2
//	  fail: 1
//	  measure: 8
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/chest/internal/report"
)

// ColorMode selects when output is colored.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	}
	return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// ANSI is an ANSI-256 color code. YAML may spell it as a number or a string.
type ANSI string

// UnmarshalYAML accepts any scalar and keeps its literal text.
func (a *ANSI) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a scalar", node.Line)
	}
	*a = ANSI(node.Value)
	return nil
}

// Colors holds the per-field color codes.
type Colors struct {
	Pass    ANSI `yaml:"pass"`
	Fail    ANSI `yaml:"fail"`
	Measure ANSI `yaml:"measure"`
}

// Config is the complete harness configuration.
type Config struct {
	PassText   string            `yaml:"pass_text"`
	FailText   string            `yaml:"fail_text"`
	Color      ColorMode         `yaml:"color"`
	Measure    bool              `yaml:"measure"`
	TermWidth  int               `yaml:"term_width"`
	ThreadSafe bool              `yaml:"thread_safe"`
	Language   string            `yaml:"language"`
	Phrases    map[string]string `yaml:"phrases"`
	Colors     Colors            `yaml:"colors"`
}

// Default returns the classic settings: PASS/FAIL, color only on a
// terminal, no timing, no locking, English phrases.
func Default() *Config {
	p := report.DefaultPalette()
	return &Config{
		PassText: report.DefaultPassText,
		FailText: report.DefaultFailText,
		Color:    ColorAuto,
		Language: "en",
		Colors: Colors{
			Pass:    ANSI(p.Pass),
			Fail:    ANSI(p.Fail),
			Measure: ANSI(p.Measure),
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result.
// An empty document yields Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against the schema and resolves its language and
// phrase settings.
func (c *Config) Validate() error {
	if err := validateSchema(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Phrasebook(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
