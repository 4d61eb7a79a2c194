// Package reporter formats and writes fix run results.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files with changes and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = DefaultOptions().ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath makes path relative to workingDir for output, falling back
// to the input when that produces an unwieldy traversal.
func displayPath(path, workingDir string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil {
		return path
	}
	if strings.Count(rel, "..") > 2 {
		return path
	}
	return rel
}
