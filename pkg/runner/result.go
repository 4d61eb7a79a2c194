package runner

import "github.com/yaklabco/mdfix/pkg/transform"

// FileOutcome wraps a per-file result with resolved path metadata.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Result contains the pipeline result for this file.
	// May be nil if the file encountered an error during processing.
	Result *transform.FileResult

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesChanged is the number of files whose content needed fixing,
	// whether or not the fix was written back.
	FilesChanged int

	// FilesModified is the number of files rewritten on disk.
	FilesModified int

	// FilesSkipped is the number of files with a pending fix that was not
	// written (e.g. due to concurrent modification).
	FilesSkipped int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BackupsCreated is the number of backup files created.
	BackupsCreated int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// HasPendingChanges reports whether any file needed fixing but was not
// rewritten. This drives the check-mode exit code.
func (r *Result) HasPendingChanges() bool {
	if r == nil {
		return false
	}
	for _, outcome := range r.Files {
		if outcome.Result != nil && outcome.Result.Changed && !outcome.Result.Written {
			return true
		}
	}
	return false
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	if outcome.Result.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.BackupCreated {
		r.Stats.BackupsCreated++
	}
}
