package cli

import "github.com/yaklabco/mdfix/pkg/runner"

// Exit codes for mdfix.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitError indicates a fatal error or per-file failures.
	ExitError = 1

	// ExitChangesPending indicates check mode found files needing fixes.
	ExitChangesPending = 2
)

// ExitCodeFromResult determines the exit code for a completed run.
// Check mode signals pending changes through the exit code so CI jobs
// can fail without mdfix writing anything.
func ExitCodeFromResult(result *runner.Result, checkMode bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return ExitError
	}

	if checkMode && result.HasPendingChanges() {
		return ExitChangesPending
	}

	return ExitSuccess
}
