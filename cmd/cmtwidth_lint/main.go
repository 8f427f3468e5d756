package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cybersorcerer/cmtwidth/internal/logger"
)

var (
	version = "v0.1.0"
	commit  = "unknown"
)

// errLintFailed makes the process exit with code 1 without printing anything
// beyond the report
var errLintFailed = errors.New("lint failed")

type options struct {
	configFile       string
	maxWidth         int
	jsonMode         bool
	fix              bool
	diff             bool
	watch            bool
	warningsAsErrors bool
	disable          []string
	initFormat       string
	showVersion      bool
	debug            bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "cmtwidth_lint [flags] <file-or-glob>...",
		Short: "Reports and reflows comments wider than the maximum line width",
		Long: `Reports comment lines that are wider than the maximum width and comment
lines that could take words from the line below. With --fix the comments are
reflowed in place.

Diagnostic Codes:
  comment_overflow, comment_underflow, unfixable_overflow`,
		Example: `  cmtwidth_lint *.go
  cmtwidth_lint --max-width 100 --fix "src/*.ts"
  cmtwidth_lint --diff --disable comment_underflow main.go
  cmtwidth_lint --init yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to configuration file (.cmtwidth.yaml, .json or .toml)")
	flags.IntVar(&opts.maxWidth, "max-width", 0, "Maximum comment line width (overrides the config file)")
	flags.BoolVar(&opts.jsonMode, "json", false, "Output results in JSON format")
	flags.BoolVar(&opts.fix, "fix", false, "Reflow comments in place")
	flags.BoolVar(&opts.diff, "diff", false, "Show the reflow as a unified diff")
	flags.BoolVar(&opts.watch, "watch", false, "Lint again whenever a file changes")
	flags.BoolVar(&opts.warningsAsErrors, "warnings-as-errors", false, "Treat warnings as errors (exit code 1)")
	flags.StringArrayVar(&opts.disable, "disable", nil, "Disable specific diagnostic (can be used multiple times)")
	flags.StringVar(&opts.initFormat, "init", "", "Create a sample configuration file (yaml or json)")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "Show version information")
	flags.BoolVar(&opts.debug, "debug", false, "Write debug logging to "+logger.GetLogPath())

	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errLintFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	out := cmd.OutOrStdout()

	// Handle version
	if opts.showVersion {
		fmt.Fprintf(out, "cmtwidth_lint %s\n", version)
		fmt.Fprintf(out, "Commit: %s\n", commit)
		return nil
	}

	// Handle --init to create sample config
	if opts.initFormat != "" {
		path, err := createSampleConfig(opts.initFormat, ".")
		if err != nil {
			return fmt.Errorf("creating config: %w", err)
		}
		fmt.Fprintf(out, "Created %s\n", path)
		return nil
	}

	if len(args) == 0 {
		_ = cmd.Usage()
		return errors.New("no files given")
	}

	if opts.debug {
		if err := logger.Init(true); err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		defer logger.Close()
	}

	files, err := expandArgs(args)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	l, err := newLinter(cfg, opts.fix, opts.diff)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	success, err := lintAndReport(ctx, out, l, cfg, files, opts.jsonMode)
	if err != nil {
		return err
	}

	if opts.watch {
		return watchFiles(ctx, cmd.ErrOrStderr(), files, func(changed []string) {
			if _, err := lintAndReport(ctx, out, l, cfg, changed, opts.jsonMode); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		})
	}

	if !success {
		return errLintFailed
	}
	return nil
}

func lintAndReport(ctx context.Context, out io.Writer, l *linter, cfg *LintConfig, files []string, jsonMode bool) (bool, error) {
	results, err := l.lintFiles(ctx, files)
	if err != nil {
		return false, err
	}

	report := buildReport(results, cfg)
	if jsonMode {
		if err := writeJSON(out, report); err != nil {
			return false, fmt.Errorf("encoding JSON: %w", err)
		}
	} else {
		writeText(out, report)
	}
	return report.Summary.Success, nil
}

// resolveConfig loads the configuration file and applies command-line
// overrides
func resolveConfig(cmd *cobra.Command, opts *options) (*LintConfig, error) {
	configPath := opts.configFile
	explicit := configPath != ""
	if !explicit {
		configPath = FindConfigFile()
	}

	lintConfig, err := LoadConfig(configPath)
	if err != nil {
		if explicit {
			return nil, err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Error loading config from %s: %v\n", configPath, err)
		if lintConfig, err = LoadConfig(""); err != nil {
			return nil, err
		}
	}
	if configPath != "" {
		logger.Info("Using config file: %s", configPath)
	}

	if cmd.Flags().Changed("max-width") {
		lintConfig.Reflow.MaxWidth = opts.maxWidth
	}
	if opts.warningsAsErrors {
		lintConfig.WarningsAsErrors = true
	}
	for _, code := range opts.disable {
		if err := lintConfig.Disable(code); err != nil {
			return nil, err
		}
	}
	return lintConfig, nil
}

// expandArgs collects files from all arguments. This handles both
// shell-expanded file lists and quoted globs.
func expandArgs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern '%s': %w", arg, err)
		}
		if len(matches) == 0 {
			// Reading it reports the proper error later
			files = append(files, arg)
		} else {
			files = append(files, matches...)
		}
	}

	files = uniqueFiles(files)
	if len(files) == 0 {
		return nil, errors.New("no files found matching arguments")
	}
	return files, nil
}

// uniqueFiles removes duplicate file paths from a slice
func uniqueFiles(files []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(files))
	for _, file := range files {
		if !seen[file] {
			seen[file] = true
			result = append(result, file)
		}
	}
	return result
}
