package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar stores backups alongside the original file with a
	// .mdfix.bak suffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is the suffix used for sidecar backup files.
const BackupSuffix = ".mdfix.bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	// Enabled indicates whether backups should be created.
	Enabled bool

	// Mode specifies how backups are stored.
	Mode BackupMode
}

// DefaultBackupConfig returns sidecar-mode backups, disabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{
		Enabled: false,
		Mode:    BackupModeSidecar,
	}
}

// BackupPath returns the backup path for the given file based on the mode.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file at path to its backup location. Returns true
// if a backup was created, false if one already existed or backups are off.
//
// Backup creation is idempotent: an existing backup is never overwritten,
// so repeated runs keep the original pre-fix content.
func CreateBackup(ctx context.Context, path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}

	select {
	case <-ctx.Done():
		return false, fmt.Errorf("create backup: %w", ctx.Err())
	default:
	}

	backupPath := BackupPath(path, cfg.Mode)
	if backupPath == "" {
		return false, nil
	}

	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}

	if err := WriteAtomic(ctx, backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}

	return true, nil
}
