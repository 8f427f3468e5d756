package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybersorcerer/cmtwidth/internal/reflow"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultLintConfig(t *testing.T) {
	cfg := DefaultLintConfig()
	for _, code := range allCodes {
		assert.True(t, cfg.IsEnabled(code), code)
	}
	assert.False(t, cfg.WarningsAsErrors)
	assert.Equal(t, reflow.DefaultConfig(), cfg.ToReflowConfig())
}

func TestLoadConfigFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: ".cmtwidth.yaml",
			content: `warnings_as_errors: true
reflow:
  max_width: 100
  break_long_words: true
diagnostics:
  comment_underflow: false
`,
		},
		{
			name: "json",
			file: ".cmtwidth.json",
			content: `{
  "warnings_as_errors": true,
  "reflow": {"max_width": 100, "break_long_words": true},
  "diagnostics": {"comment_underflow": false}
}`,
		},
		{
			name: "toml",
			file: ".cmtwidth.toml",
			content: `warnings_as_errors = true

[reflow]
max_width = 100
break_long_words = true

[diagnostics]
comment_underflow = false
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), tt.file, tt.content)
			cfg, err := LoadConfig(path)
			require.NoError(t, err)

			assert.True(t, cfg.WarningsAsErrors)
			assert.Equal(t, 100, cfg.Reflow.MaxWidth)
			assert.Equal(t, 4, cfg.Reflow.TabSize)
			assert.True(t, cfg.Reflow.BreakLongWords)
			assert.True(t, cfg.Reflow.JoinShortLines)
			assert.False(t, cfg.IsEnabled(DiagCommentUnderflow))
			assert.True(t, cfg.IsEnabled(DiagCommentOverflow))

			diagCfg := cfg.ToDiagnosticsConfig()
			assert.False(t, diagCfg.CommentUnderflow)
			assert.True(t, diagCfg.UnfixableOverflow)
		})
	}
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("CMTWIDTH_REFLOW_MAX_WIDTH", "72")
	t.Setenv("CMTWIDTH_WARNINGS_AS_ERRORS", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.Reflow.MaxWidth)
	assert.True(t, cfg.WarningsAsErrors)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), ".cmtwidth.yaml"))
	assert.Error(t, err)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	assert.Empty(t, FindConfigFile())

	writeFile(t, dir, ".cmtwidth.yml", "reflow:\n  max_width: 90\n")
	assert.Equal(t, ".cmtwidth.yml", FindConfigFile())
}

func TestDisable(t *testing.T) {
	cfg := DefaultLintConfig()
	require.NoError(t, cfg.Disable("unfixable_overflow"))
	assert.False(t, cfg.IsEnabled(DiagUnfixableOverflow))

	assert.Error(t, cfg.Disable("no_such_code"))
}

func TestCreateSampleConfig(t *testing.T) {
	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			path, err := createSampleConfig(format, dir)
			require.NoError(t, err)

			cfg, err := LoadConfig(path)
			require.NoError(t, err)
			assert.Equal(t, DefaultLintConfig(), cfg)

			_, err = createSampleConfig(format, dir)
			assert.ErrorIs(t, err, errConfigExists)
		})
	}

	_, err := createSampleConfig("xml", t.TempDir())
	assert.Error(t, err)
}
