package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cybersorcerer/cmtwidth/internal/diagnostics"
	"github.com/cybersorcerer/cmtwidth/internal/diff"
	"github.com/cybersorcerer/cmtwidth/internal/fix"
	"github.com/cybersorcerer/cmtwidth/internal/logger"
	"github.com/cybersorcerer/cmtwidth/internal/reflow"
	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

// fileResult is the outcome of linting one file
type fileResult struct {
	Path        string
	Diagnostics []lsp.Diagnostic
	Fixed       int    // edits written back with --fix
	Diff        string // unified diff of the reflow with --diff
	Err         error
}

type linter struct {
	engine       *reflow.Engine
	diagProvider *diagnostics.Provider
	fix          bool
	diff         bool
}

func newLinter(cfg *LintConfig, fix, diff bool) (*linter, error) {
	engine, err := reflow.NewEngine(cfg.ToReflowConfig())
	if err != nil {
		return nil, err
	}
	provider := diagnostics.NewProvider(engine)
	provider.SetConfig(cfg.ToDiagnosticsConfig())
	return &linter{
		engine:       engine,
		diagProvider: provider,
		fix:          fix,
		diff:         diff,
	}, nil
}

// lintFiles lints files concurrently. Results keep the order of files.
func (l *linter) lintFiles(ctx context.Context, files []string) ([]fileResult, error) {
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = l.lintFile(file)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *linter) lintFile(path string) fileResult {
	res := fileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		res.Err = err
		return res
	}
	content, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	text := string(content)

	if l.fix || l.diff {
		out, err := fix.Run(text, l.engine)
		if err != nil {
			if !errors.Is(err, fix.ErrNoFixpoint) {
				res.Err = err
				return res
			}
			logger.Error("%s: %v", path, err)
		}

		if l.diff {
			res.Diff, err = diff.Unified(filepath.ToSlash(path), text, out.Text, diff.DefaultContext)
			if err != nil {
				res.Err = err
				return res
			}
		}

		if l.fix && out.Changed() {
			if err := os.WriteFile(path, []byte(out.Text), info.Mode().Perm()); err != nil {
				res.Err = fmt.Errorf("writing %s: %w", path, err)
				return res
			}
			res.Fixed = out.Applied
			logger.Info("Fixed %s: %d edits in %d passes", path, out.Applied, out.Passes)
			// report what is left after fixing
			text = out.Text
		}
	}

	res.Diagnostics, res.Err = l.diagProvider.Analyze(text)
	return res
}
