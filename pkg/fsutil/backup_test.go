package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/mdfix/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		mode fsutil.BackupMode
		want string
	}{
		{
			name: "sidecar mode",
			path: "/path/to/file.md",
			mode: fsutil.BackupModeSidecar,
			want: "/path/to/file.md.mdfix.bak",
		},
		{
			name: "none mode returns empty",
			path: "/path/to/file.md",
			mode: fsutil.BackupModeNone,
			want: "",
		},
		{
			name: "unknown mode defaults to sidecar",
			path: "/path/to/file.md",
			mode: fsutil.BackupMode("unknown"),
			want: "/path/to/file.md.mdfix.bak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fsutil.BackupPath(tt.path, tt.mode); got != tt.want {
				t.Errorf("BackupPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	t.Run("creates sidecar backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		content := []byte("original content")

		if err := os.WriteFile(path, content, 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if !created {
			t.Error("expected created = true")
		}

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("backup content = %q, want %q", got, content)
		}
	})

	t.Run("never overwrites existing backup", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")
		backupPath := path + fsutil.BackupSuffix

		if err := os.WriteFile(path, []byte("current"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(backupPath, []byte("first backup"), 0644); err != nil {
			t.Fatalf("setup backup: %v", err)
		}

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("expected created = false for existing backup")
		}

		got, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}
		if string(got) != "first backup" {
			t.Errorf("backup content = %q, want %q", got, "first backup")
		}
	})

	t.Run("disabled config is a no-op", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")

		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		created, err := fsutil.CreateBackup(context.Background(), path, fsutil.DefaultBackupConfig())
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("expected created = false when disabled")
		}

		if _, err := os.Stat(path + fsutil.BackupSuffix); !os.IsNotExist(err) {
			t.Error("backup should not have been created")
		}
	})

	t.Run("none mode is a no-op", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")

		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeNone}
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("expected created = false in none mode")
		}
	})

	t.Run("missing original is not an error", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "missing.md")

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		created, err := fsutil.CreateBackup(context.Background(), path, cfg)
		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}
		if created {
			t.Error("expected created = false for missing original")
		}
	})

	t.Run("backup preserves file mode", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")

		if err := os.WriteFile(path, []byte("content"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		if _, err := fsutil.CreateBackup(context.Background(), path, cfg); err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		stat, err := os.Stat(path + fsutil.BackupSuffix)
		if err != nil {
			t.Fatalf("stat backup: %v", err)
		}
		if gotMode := stat.Mode().Perm(); gotMode != 0600 {
			t.Errorf("backup mode = %o, want %o", gotMode, 0600)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "doc.md")

		if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cfg := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}
		if _, err := fsutil.CreateBackup(ctx, path, cfg); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}
