package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"

	// Run options.
	FieldDryRun = "dry_run"
	FieldCheck  = "check"
	FieldVerify = "verify"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Run statistics.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesModified   = "files_modified"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
