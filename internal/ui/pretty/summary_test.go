package pretty_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/mdfix/internal/ui/pretty"
	"github.com/yaklabco/mdfix/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("clean run", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummaryOneLine(runner.Stats{FilesProcessed: 5})
		if !strings.Contains(got, "All files clean") {
			t.Errorf("summary = %q", got)
		}
		if !strings.Contains(got, "5 checked") {
			t.Errorf("summary = %q", got)
		}
	})

	t.Run("fixed files", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed: 12,
			FilesChanged:   3,
			FilesModified:  3,
		})
		if !strings.Contains(got, "Total files fixed: 3") {
			t.Errorf("summary = %q", got)
		}
		if !strings.Contains(got, "12 checked") {
			t.Errorf("summary = %q", got)
		}
	})

	t.Run("pending changes", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed: 4,
			FilesChanged:   2,
		})
		if !strings.Contains(got, "2 files would be fixed") {
			t.Errorf("summary = %q", got)
		}
	})

	t.Run("single pending change uses singular", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed: 4,
			FilesChanged:   1,
		})
		if !strings.Contains(got, "1 file would be fixed") {
			t.Errorf("summary = %q", got)
		}
	})

	t.Run("skips and errors", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummaryOneLine(runner.Stats{
			FilesProcessed: 10,
			FilesChanged:   5,
			FilesModified:  3,
			FilesSkipped:   1,
			FilesErrored:   1,
		})
		if !strings.Contains(got, "1 skipped") {
			t.Errorf("summary = %q", got)
		}
		if !strings.Contains(got, "1 errored") {
			t.Errorf("summary = %q", got)
		}
	})
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	t.Run("block layout", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummary(runner.Stats{
			FilesDiscovered: 10,
			FilesProcessed:  10,
			FilesChanged:    2,
			FilesModified:   2,
			BackupsCreated:  2,
		})

		for _, want := range []string{"Summary", "Files discovered:", "Files fixed:", "Backups created:", "Done"} {
			if !strings.Contains(got, want) {
				t.Errorf("summary missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("errored run", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummary(runner.Stats{FilesProcessed: 3, FilesErrored: 1})
		if !strings.Contains(got, "Completed with errors") {
			t.Errorf("summary = %q", got)
		}
	})

	t.Run("pending run", func(t *testing.T) {
		t.Parallel()

		got := styles.FormatSummary(runner.Stats{FilesProcessed: 3, FilesChanged: 2})
		if !strings.Contains(got, "Changes pending") {
			t.Errorf("summary = %q", got)
		}
	})
}
