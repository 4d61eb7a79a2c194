package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// writeFiles creates the given relative paths under dir with dummy content.
func writeFiles(t *testing.T, dir string, paths ...string) {
	t.Helper()

	for _, rel := range paths {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("# Title\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
}

// relPaths converts absolute discovered paths back to slash-separated
// paths relative to dir.
func relPaths(t *testing.T, dir string, paths []string) []string {
	t.Helper()

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			t.Fatalf("rel: %v", err)
		}
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func assertSameFiles(t *testing.T, want, got []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("discovered %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("discovered %v, want %v", got, want)
		}
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("finds markdown files recursively", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "readme.md", "docs/guide.md", "docs/deep/notes.markdown", "main.go", "data.txt")

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t,
			[]string{"docs/deep/notes.markdown", "docs/guide.md", "readme.md"},
			relPaths(t, dir, files))
	})

	t.Run("results are sorted", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "z.md", "a.md", "m.md")

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"a.md", "m.md", "z.md"}, relPaths(t, dir, files))
	})

	t.Run("skips hidden files and directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "visible.md", ".hidden.md", ".git/config.md")

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"visible.md"}, relPaths(t, dir, files))
	})

	t.Run("exclude globs skip directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "keep.md", "target/skip.md", "target/deep/skip.md", "node_modules/pkg/readme.md")

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:   dir,
			ExcludeGlobs: []string{"**/target/**", "**/node_modules/**"},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"keep.md"}, relPaths(t, dir, files))
	})

	t.Run("include globs narrow the set", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "readme.md", "docs/guide.md", "notes/todo.md")

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:   dir,
			IncludeGlobs: []string{"docs/**"},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"docs/guide.md"}, relPaths(t, dir, files))
	})

	t.Run("explicit file path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "one.md", "two.md")

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"one.md"},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"one.md"}, relPaths(t, dir, files))
	})

	t.Run("deduplicates overlapping paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "docs/guide.md")

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{".", "docs", "docs/guide.md"},
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"docs/guide.md"}, relPaths(t, dir, files))
	})

	t.Run("skips backup files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "doc.md", "doc.md.mdfix.bak")

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"doc.md"}, relPaths(t, dir, files))
	})

	t.Run("missing explicit path is an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		_, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"nope.md"},
		})
		if err == nil {
			t.Fatal("expected error for missing path")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "doc.md")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := runner.Discover(ctx, runner.Options{WorkingDir: dir}); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestDiscover_ExcludePatternForms(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir,
		"keep.md",
		"vendor/lib/readme.md",
		"build/out.md",
		"docs/draft.md",
	)

	tests := []struct {
		name    string
		exclude []string
		want    []string
	}{
		{
			name:    "double star middle",
			exclude: []string{"**/vendor/**"},
			want:    []string{"build/out.md", "docs/draft.md", "keep.md"},
		},
		{
			name:    "trailing double star",
			exclude: []string{"build/**"},
			want:    []string{"docs/draft.md", "keep.md", "vendor/lib/readme.md"},
		},
		{
			name:    "filename glob",
			exclude: []string{"draft.md"},
			want:    []string{"build/out.md", "keep.md", "vendor/lib/readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files, err := runner.Discover(context.Background(), runner.Options{
				WorkingDir:   dir,
				ExcludeGlobs: tt.exclude,
			})
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			assertSameFiles(t, tt.want, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	t.Run("directory symlink skipped by default", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := t.TempDir()
		writeFiles(t, target, "linked.md")

		if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		if len(files) != 0 {
			t.Errorf("expected no files, got %v", files)
		}
	})

	t.Run("directory symlink followed when enabled", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := t.TempDir()
		writeFiles(t, target, "linked.md")

		if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		files, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:     dir,
			FollowSymlinks: true,
		})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		if len(files) != 1 {
			t.Errorf("expected 1 file, got %v", files)
		}
	})

	t.Run("broken symlink skipped silently", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "doc.md")

		if err := os.Symlink(filepath.Join(dir, "gone.md"), filepath.Join(dir, "broken.md")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}

		assertSameFiles(t, []string{"doc.md"}, relPaths(t, dir, files))
	})
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	exts := runner.DefaultExtensions()
	if len(exts) != 2 || exts[0] != ".md" || exts[1] != ".markdown" {
		t.Errorf("DefaultExtensions() = %v", exts)
	}
}
