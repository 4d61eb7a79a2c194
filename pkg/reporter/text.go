package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// TextReporter formats results as styled terminal output: one line per
// file that needed fixing, errors inline, and a closing summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No Markdown files found."))
		}
		return 0, nil
	}

	var changed int

	for _, file := range result.Files {
		path := displayPath(file.Path, r.opts.WorkingDir)

		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		fr := file.Result
		if fr == nil || !fr.Changed {
			continue
		}
		changed++

		switch {
		case fr.Skipped:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Skipped.Render("skipped: "+fr.SkipReason),
			)
		case fr.Written:
			fmt.Fprintf(r.bw, "%s %s\n",
				r.styles.Action.Render("Fixed:"),
				r.styles.FilePath.Render(path),
			)
		default:
			fmt.Fprintf(r.bw, "%s %s\n",
				r.styles.Skipped.Render("Would fix:"),
				r.styles.FilePath.Render(path),
			)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return changed, nil
}
