package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cybersorcerer/cmtwidth/internal/diagnostics"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
)

// DiagnosticCode represents the code for each diagnostic type
type DiagnosticCode string

const (
	DiagCommentOverflow   DiagnosticCode = diagnostics.CodeOverflow
	DiagCommentUnderflow  DiagnosticCode = diagnostics.CodeUnderflow
	DiagUnfixableOverflow DiagnosticCode = diagnostics.CodeUnfixable
)

// allCodes lists the diagnostic codes in report order
var allCodes = []DiagnosticCode{DiagCommentOverflow, DiagCommentUnderflow, DiagUnfixableOverflow}

// envPrefix prefixes environment overrides, e.g. CMTWIDTH_REFLOW_MAX_WIDTH
const envPrefix = "CMTWIDTH"

// configNames are searched in the current directory, then in the home directory
var configNames = []string{
	".cmtwidth.yaml",
	".cmtwidth.yml",
	".cmtwidth.json",
	".cmtwidth.toml",
}

// ReflowSettings mirrors reflow.Config in the configuration file
type ReflowSettings struct {
	MaxWidth               int  `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
	TabSize                int  `mapstructure:"tab_size" yaml:"tab_size" json:"tab_size"`
	IgnoreURLs             bool `mapstructure:"ignore_urls" yaml:"ignore_urls" json:"ignore_urls"`
	IgnoreCommentsWithCode bool `mapstructure:"ignore_comments_with_code" yaml:"ignore_comments_with_code" json:"ignore_comments_with_code"`
	BreakLongWords         bool `mapstructure:"break_long_words" yaml:"break_long_words" json:"break_long_words"`
	SplitAtHyphens         bool `mapstructure:"split_at_hyphens" yaml:"split_at_hyphens" json:"split_at_hyphens"`
	JoinShortLines         bool `mapstructure:"join_short_lines" yaml:"join_short_lines" json:"join_short_lines"`
	OpaqueFencedCode       bool `mapstructure:"opaque_fenced_code" yaml:"opaque_fenced_code" json:"opaque_fenced_code"`
	OpaqueExamples         bool `mapstructure:"opaque_examples" yaml:"opaque_examples" json:"opaque_examples"`
}

// LintConfig holds the linter configuration
// All diagnostics default to true (enabled)
type LintConfig struct {
	// WarningsAsErrors treats all warnings as errors (exit code 1)
	WarningsAsErrors bool `mapstructure:"warnings_as_errors" yaml:"warnings_as_errors" json:"warnings_as_errors"`

	Reflow ReflowSettings `mapstructure:"reflow" yaml:"reflow" json:"reflow"`

	// Diagnostics maps diagnostic codes to enabled/disabled (true/false)
	Diagnostics map[string]bool `mapstructure:"diagnostics" yaml:"diagnostics" json:"diagnostics"`
}

// DefaultLintConfig returns a config with all diagnostics enabled
func DefaultLintConfig() *LintConfig {
	cfg := reflow.DefaultConfig()
	diags := make(map[string]bool, len(allCodes))
	for _, code := range allCodes {
		diags[string(code)] = true
	}
	return &LintConfig{
		Reflow: ReflowSettings{
			MaxWidth:               cfg.MaxWidth,
			TabSize:                cfg.TabSize,
			IgnoreURLs:             cfg.IgnoreURLs,
			IgnoreCommentsWithCode: cfg.IgnoreCommentsWithCode,
			BreakLongWords:         cfg.BreakLongWords,
			SplitAtHyphens:         cfg.SplitAtHyphens,
			JoinShortLines:         cfg.JoinShortLines,
			OpaqueFencedCode:       cfg.OpaqueFencedCode,
			OpaqueExamples:         cfg.OpaqueExamples,
		},
		Diagnostics: diags,
	}
}

func setDefaults(v *viper.Viper) {
	def := DefaultLintConfig()
	v.SetDefault("warnings_as_errors", def.WarningsAsErrors)
	v.SetDefault("reflow.max_width", def.Reflow.MaxWidth)
	v.SetDefault("reflow.tab_size", def.Reflow.TabSize)
	v.SetDefault("reflow.ignore_urls", def.Reflow.IgnoreURLs)
	v.SetDefault("reflow.ignore_comments_with_code", def.Reflow.IgnoreCommentsWithCode)
	v.SetDefault("reflow.break_long_words", def.Reflow.BreakLongWords)
	v.SetDefault("reflow.split_at_hyphens", def.Reflow.SplitAtHyphens)
	v.SetDefault("reflow.join_short_lines", def.Reflow.JoinShortLines)
	v.SetDefault("reflow.opaque_fenced_code", def.Reflow.OpaqueFencedCode)
	v.SetDefault("reflow.opaque_examples", def.Reflow.OpaqueExamples)
	for _, code := range allCodes {
		v.SetDefault("diagnostics."+string(code), true)
	}
}

// LoadConfig loads configuration from a file and the environment. An empty
// path yields the defaults with environment overrides applied.
// The format follows the file extension (yaml, yml, json or toml).
func LoadConfig(path string) (*LintConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	config := DefaultLintConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config %s: %w", path, err)
	}
	return config, nil
}

// FindConfigFile looks for a config file in standard locations
func FindConfigFile() string {
	// Check current directory first
	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		for _, name := range configNames {
			path := filepath.Join(home, name)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}

	return ""
}

// IsEnabled returns true if the diagnostic is enabled
// Defaults to true if not explicitly configured
func (c *LintConfig) IsEnabled(code DiagnosticCode) bool {
	if enabled, ok := c.Diagnostics[string(code)]; ok {
		return enabled
	}
	return true // Default: enabled
}

// Disable turns off a diagnostic. Unknown codes are rejected.
func (c *LintConfig) Disable(code string) error {
	for _, known := range allCodes {
		if string(known) == code {
			if c.Diagnostics == nil {
				c.Diagnostics = make(map[string]bool)
			}
			c.Diagnostics[code] = false
			return nil
		}
	}
	return fmt.Errorf("unknown diagnostic code %q", code)
}

// ToDiagnosticsConfig converts LintConfig to diagnostics.Config
func (c *LintConfig) ToDiagnosticsConfig() *diagnostics.Config {
	cfg := diagnostics.DefaultConfig()
	cfg.CommentOverflow = c.IsEnabled(DiagCommentOverflow)
	cfg.CommentUnderflow = c.IsEnabled(DiagCommentUnderflow)
	cfg.UnfixableOverflow = c.IsEnabled(DiagUnfixableOverflow)
	return cfg
}

// ToReflowConfig converts the reflow section to reflow.Config
func (c *LintConfig) ToReflowConfig() reflow.Config {
	return reflow.Config{
		MaxWidth:               c.Reflow.MaxWidth,
		TabSize:                c.Reflow.TabSize,
		IgnoreURLs:             c.Reflow.IgnoreURLs,
		IgnoreCommentsWithCode: c.Reflow.IgnoreCommentsWithCode,
		BreakLongWords:         c.Reflow.BreakLongWords,
		SplitAtHyphens:         c.Reflow.SplitAtHyphens,
		JoinShortLines:         c.Reflow.JoinShortLines,
		OpaqueFencedCode:       c.Reflow.OpaqueFencedCode,
		OpaqueExamples:         c.Reflow.OpaqueExamples,
	}
}

var errConfigExists = errors.New("config file already exists")

// createSampleConfig writes the default configuration to dir and returns the
// path of the new file
func createSampleConfig(format, dir string) (string, error) {
	var filename string
	var content []byte

	switch strings.ToLower(format) {
	case "yaml", "yml":
		filename = ".cmtwidth.yaml"
		out, err := yaml.Marshal(DefaultLintConfig())
		if err != nil {
			return "", err
		}
		header := "# cmtwidth configuration\n# Generated by cmtwidth_lint --init yaml\n\n"
		content = append([]byte(header), out...)
	case "json":
		filename = ".cmtwidth.json"
		out, err := json.MarshalIndent(DefaultLintConfig(), "", "  ")
		if err != nil {
			return "", err
		}
		content = append(out, '\n')
	default:
		return "", fmt.Errorf("unknown format '%s' (use 'yaml' or 'json')", format)
	}

	path := filepath.Join(dir, filename)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", errConfigExists, path)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", err
	}
	return path, nil
}
