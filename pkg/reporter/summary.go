package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// SummaryReporter writes only the aggregate summary block.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats))

	return result.Stats.FilesChanged, nil
}
