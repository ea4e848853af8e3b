package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/roach88/chest/internal/harness"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "PASS", cfg.PassText)
	assert.Equal(t, "FAIL", cfg.FailText)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.False(t, cfg.Measure)
	assert.False(t, cfg.ThreadSafe)
	assert.Equal(t, 0, cfg.TermWidth)
}

func TestParse_AllFields(t *testing.T) {
	data := []byte(`
pass_text: ok
fail_text: not ok
color: always
measure: true
term_width: 120
thread_safe: true
language: de
phrases:
  "<": KLEINER ALS
  eq: GLEICH
colors:
  pass: 46
  fail: "196"
  measure: 244
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "ok", cfg.PassText)
	assert.Equal(t, "not ok", cfg.FailText)
	assert.Equal(t, ColorAlways, cfg.Color)
	assert.True(t, cfg.Measure)
	assert.Equal(t, 120, cfg.TermWidth)
	assert.True(t, cfg.ThreadSafe)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, map[string]string{"<": "KLEINER ALS", "eq": "GLEICH"}, cfg.Phrases)
	assert.Equal(t, Colors{Pass: "46", Fail: "196", Measure: "244"}, cfg.Colors)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("measure: true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Measure)
	assert.Equal(t, "PASS", cfg.PassText)
	assert.Equal(t, ANSI("2"), cfg.Colors.Pass)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "colour: always\n"},
		{"unknown nested field", "colors:\n  warn: 3\n"},
		{"bad color mode", "color: sometimes\n"},
		{"negative width", "term_width: -1\n"},
		{"empty pass text", "pass_text: \"\"\n"},
		{"color out of range", "colors:\n  pass: 300\n"},
		{"color not a number", "colors:\n  fail: red\n"},
		{"unknown operator", "phrases:\n  \"<>\": NEITHER\n"},
		{"empty phrase", "phrases:\n  \"<\": \"\"\n"},
		{"bad language", "language: \"not a tag!!\"\n"},
		{"malformed yaml", "measure: [true\n"},
		{"wrong type", "measure: maybe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	cfg := Default()
	cfg.Color = ColorMode("rainbow")
	assert.Error(t, cfg.Validate())

	cfg.Color = ColorNever
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fail_text: BROKEN\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "BROKEN", cfg.FailText)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("colour: never\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never"} {
		m, err := ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, ColorMode(s), m)
	}
	_, err := ParseColorMode("yes")
	assert.Error(t, err)
}

func TestPhrasebook(t *testing.T) {
	cfg := Default()
	cfg.Language = "de"
	cfg.Phrases = map[string]string{"<": "KLEINER ALS"}

	pb, err := cfg.Phrasebook()
	require.NoError(t, err)
	assert.Equal(t, language.German, pb.Language())
	assert.Equal(t, "KLEINER ALS", pb.Phrase(harness.LT))
	assert.Equal(t, "GREATER THAN", pb.Phrase(harness.GT))
}

func TestPhrasebook_ConflictingAliases(t *testing.T) {
	cfg := Default()
	cfg.Phrases = map[string]string{"<": "A", "lt": "B"}

	_, err := cfg.Phrasebook()
	assert.Error(t, err)
}

func TestSuiteOptions_AppliesPhrases(t *testing.T) {
	cfg, err := Parse([]byte("phrases:\n  \"==\": SAME AS\n"))
	require.NoError(t, err)

	opts, err := cfg.SuiteOptions(nil)
	require.NoError(t, err)

	s := harness.New(opts...)
	defer s.Close()
	require.NoError(t, s.RegisterFunc(func(s *harness.Suite) {
		harness.Compare(s, harness.EQ, 1, 2)
	}, "test_phrase"))

	assert.Equal(t, harness.AssertionFailed, s.Run())
	assert.Contains(t, s.Entry(0).Message(), "'1' is not SAME AS '2'")
}

func TestReportOptions(t *testing.T) {
	var buf bytes.Buffer

	cfg := Default()
	opts := cfg.ReportOptions(&buf)
	assert.False(t, opts.Color, "auto mode on a non-terminal")
	assert.Equal(t, 80, opts.TermWidth)
	assert.Equal(t, "PASS", opts.PassText)
	assert.Equal(t, "2", opts.Palette.Pass)

	cfg.Color = ColorAlways
	cfg.TermWidth = 100
	opts = cfg.ReportOptions(&buf)
	assert.True(t, opts.Color)
	assert.Equal(t, 100, opts.TermWidth)

	cfg.Color = ColorNever
	assert.False(t, cfg.ReportOptions(&buf).Color)
}
