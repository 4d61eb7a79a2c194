package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/diff"
	"github.com/yaklabco/mdfix/pkg/runner"
)

// DiffReporter formats results as unified diffs in GitHub style.
// It only produces output for files whose pipeline run collected a diff,
// which means dry-run mode.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var filesWithDiffs int
	var totalAdditions, totalDeletions int

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		filesWithDiffs++
		totalAdditions += file.Result.Diff.Additions
		totalDeletions += file.Result.Diff.Deletions
		r.writeDiff(file.Result.Diff)
	}

	if filesWithDiffs > 0 && r.opts.ShowSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffReporter) writeDiff(d *diff.Diff) {
	path := displayPath(d.Path, r.opts.WorkingDir)

	// Git-style header: "diff --git a/file b/file"
	header := fmt.Sprintf("diff --git a/%s b/%s", path, path)
	fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))

	fmt.Fprintln(r.out, r.styles.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, r.styles.DiffAdd.Render("+++ b/"+path))

	// Colorize the hunk content (skip the --- and +++ lines from String()).
	for _, line := range strings.Split(d.String(), "\n") {
		if line == "" || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}
		r.writeDiffLine(line)
	}

	fmt.Fprintln(r.out) // Blank line between files
}

// writeDiffLine formats a single diff line with color.
func (r *DiffReporter) writeDiffLine(line string) {
	var styled string

	switch {
	case strings.HasPrefix(line, "@@"):
		styled = r.styles.DiffHunk.Render(line)
	case strings.HasPrefix(line, "+"):
		styled = r.styles.DiffAdd.Render(line)
	case strings.HasPrefix(line, "-"):
		styled = r.styles.DiffRemove.Render(line)
	default:
		styled = r.styles.DiffContext.Render(line)
	}

	fmt.Fprintln(r.out, styled)
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	var parts []string

	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts = append(parts, fmt.Sprintf("%d %s changed", files, fileWord))

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}

	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}
