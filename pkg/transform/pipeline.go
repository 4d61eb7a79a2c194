package transform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/diff"
	"github.com/yaklabco/mdfix/pkg/fsutil"
	"github.com/yaklabco/mdfix/pkg/verify"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// FileResult is the outcome of processing a single file.
type FileResult struct {
	// Path is the file path that was processed.
	Path string

	// Changed is true if the transformation modified the content.
	Changed bool

	// Written is true if the file was rewritten on disk.
	Written bool

	// Skipped is true if a pending change was not written.
	Skipped bool

	// SkipReason explains why the change was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created before writing.
	BackupCreated bool

	// Diff holds the pending change in dry-run mode (nil otherwise).
	Diff *diff.Diff
}

// Summary returns a short human-readable outcome for the file.
func (fr *FileResult) Summary() string {
	switch {
	case fr.Skipped:
		return "skipped: " + fr.SkipReason
	case fr.Written && fr.BackupCreated:
		return "fixed (backup created)"
	case fr.Written:
		return "fixed"
	case fr.Changed:
		return "changes pending"
	default:
		return "ok"
	}
}

// PipelineOptions controls write-back behavior.
type PipelineOptions struct {
	// DryRun generates diffs without writing files.
	DryRun bool

	// Check records pending changes without writing or diffing.
	Check bool

	// Verify compares the block structure of original and fixed content
	// and skips the write on a mismatch.
	Verify bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// BackupConfigFromConfig maps config backup settings to fsutil form.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.BackupsEnabled() && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig maps a resolved configuration to pipeline options.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		DryRun:              cfg.DryRun,
		Check:               cfg.Check,
		Verify:              cfg.Verify,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
	}
}

// Pipeline runs the transformation and write-back sequence for one file
// at a time. A Pipeline is safe for concurrent use: all per-file state
// lives in the FileResult.
type Pipeline struct {
	// Opts select the fixes to apply.
	Opts Options
}

// NewPipeline creates a pipeline applying the given transform options.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{Opts: opts}
}

// ProcessFile reads, transforms, and conditionally rewrites a single file.
//
// The sequence:
//  1. Read and hash the original file.
//  2. Apply the transformation in memory.
//  3. If the content is unchanged, stop: the file is never rewritten.
//  4. In dry-run mode, generate a diff instead of writing.
//  5. In check mode, record the pending change without writing.
//  6. Optionally verify the block structure survived.
//  7. Check for concurrent external modification.
//  8. Create a backup if enabled, then write atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*FileResult, error) {
	result := &FileResult{Path: path}

	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	fixed := Apply(original, p.Opts)
	if bytes.Equal(original, fixed) {
		return result, nil
	}
	result.Changed = true

	if opts.DryRun {
		result.Diff = diff.Generate(path, original, fixed)
		return result, nil
	}

	if opts.Check {
		return result, nil
	}

	if opts.Verify && !verify.StructurePreserved(original, fixed) {
		result.Skipped = true
		result.SkipReason = "block structure not preserved"
		return result, nil
	}

	modified, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, fixed, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// checkModified checks if a file changed since it was read.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	if strict {
		return fsutil.CheckModified(ctx, info)
	}
	return fsutil.CheckModifiedQuick(ctx, info)
}

// categorizeError wraps an error with the matching pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}
