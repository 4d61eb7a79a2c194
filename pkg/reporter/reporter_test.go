package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/mdfix/pkg/diff"
	"github.com/yaklabco/mdfix/pkg/reporter"
	"github.com/yaklabco/mdfix/pkg/runner"
	"github.com/yaklabco/mdfix/pkg/transform"
)

// sampleResult builds a run result with one fixed, one clean, one skipped,
// and one errored file.
func sampleResult() *runner.Result {
	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "docs/fixed.md", Result: &transform.FileResult{Path: "docs/fixed.md", Changed: true, Written: true}},
			{Path: "docs/clean.md", Result: &transform.FileResult{Path: "docs/clean.md"}},
			{Path: "docs/racy.md", Result: &transform.FileResult{
				Path: "docs/racy.md", Changed: true, Skipped: true,
				SkipReason: "file modified during processing",
			}},
			{Path: "docs/broken.md", Error: errors.New("permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 4,
			FilesProcessed:  3,
			FilesChanged:    2,
			FilesModified:   1,
			FilesSkipped:    1,
			FilesErrored:    1,
		},
	}
}

func newOpts(buf *bytes.Buffer, format reporter.Format) reporter.Options {
	opts := reporter.DefaultOptions()
	opts.Writer = buf
	opts.ErrorWriter = buf
	opts.Format = format
	opts.Color = "never"
	return opts
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{input: "text", want: reporter.FormatText},
		{input: "", want: reporter.FormatText},
		{input: "json", want: reporter.FormatJSON},
		{input: "diff", want: reporter.FormatDiff},
		{input: "summary", want: reporter.FormatSummary},
		{input: "sarif", wantErr: true},
		{input: "bogus", wantErr: true},
	}

	for _, tt := range tests {
		got, err := reporter.ParseFormat(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNew_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := reporter.New(newOpts(&buf, reporter.Format("yaml"))); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestTextReporter(t *testing.T) {
	t.Parallel()

	t.Run("reports fixed skipped and errored files", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r, err := reporter.New(newOpts(&buf, reporter.FormatText))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		changed, err := r.Report(context.Background(), sampleResult())
		if err != nil {
			t.Fatalf("Report() error = %v", err)
		}
		if changed != 2 {
			t.Errorf("changed = %d, want 2", changed)
		}

		out := buf.String()
		for _, want := range []string{
			"Fixed: docs/fixed.md",
			"skipped: file modified during processing",
			"error: permission denied",
			"Total files fixed: 1",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}

		if strings.Contains(out, "clean.md") {
			t.Errorf("clean file should not be listed:\n%s", out)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r, err := reporter.New(newOpts(&buf, reporter.FormatText))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if _, err := r.Report(context.Background(), &runner.Result{}); err != nil {
			t.Fatalf("Report() error = %v", err)
		}

		if !strings.Contains(buf.String(), "No Markdown files found.") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("check mode lists pending files", func(t *testing.T) {
		t.Parallel()

		result := &runner.Result{
			Files: []runner.FileOutcome{
				{Path: "doc.md", Result: &transform.FileResult{Path: "doc.md", Changed: true}},
			},
			Stats: runner.Stats{FilesProcessed: 1, FilesChanged: 1},
		}

		var buf bytes.Buffer
		r, err := reporter.New(newOpts(&buf, reporter.FormatText))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}

		if _, err := r.Report(context.Background(), result); err != nil {
			t.Fatalf("Report() error = %v", err)
		}

		if !strings.Contains(buf.String(), "Would fix: doc.md") {
			t.Errorf("output = %q", buf.String())
		}
	})
}

func TestJSONReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(newOpts(&buf, reporter.FormatJSON))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.Report(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var out reporter.JSONOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}

	if len(out.Files) != 4 {
		t.Errorf("files = %d, want 4", len(out.Files))
	}
	if out.Summary.FilesFixed != 1 {
		t.Errorf("filesFixed = %d, want 1", out.Summary.FilesFixed)
	}
	if out.Summary.FilesErrored != 1 {
		t.Errorf("filesErrored = %d, want 1", out.Summary.FilesErrored)
	}
	if out.Files[3].Error == "" {
		t.Error("errored file should carry the error message")
	}
}

func TestDiffReporter(t *testing.T) {
	t.Parallel()

	d := diff.Generate("doc.md", []byte("Title\n# H\nBody\n"), []byte("Title\n\n# H\n\nBody\n"))
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "doc.md", Result: &transform.FileResult{Path: "doc.md", Changed: true, Diff: d}},
		},
		Stats: runner.Stats{FilesProcessed: 1, FilesChanged: 1},
	}

	var buf bytes.Buffer
	r, err := reporter.New(newOpts(&buf, reporter.FormatDiff))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	files, err := r.Report(context.Background(), result)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if files != 1 {
		t.Errorf("files with diffs = %d, want 1", files)
	}

	out := buf.String()
	for _, want := range []string{"diff --git a/doc.md b/doc.md", "--- a/doc.md", "+++ b/doc.md", "@@", "1 file changed"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryReporter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r, err := reporter.New(newOpts(&buf, reporter.FormatSummary))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := r.Report(context.Background(), sampleResult()); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Summary", "Files checked:", "Files fixed:", "Completed with errors"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
