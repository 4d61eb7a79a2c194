package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdfix/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "backups.mode").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
	"":        true,
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	if cfg == nil {
		result.Errors = append(result.Errors, ValidationError{Message: "nil configuration"})
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("unknown output format %q", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "must be zero or positive",
		})
	}

	if !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("unknown backup mode %q (valid: sidecar, none)", cfg.Backups.Mode),
		})
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Errors = append(result.Errors, ValidationError{
				Field:   "extensions",
				Value:   ext,
				Message: fmt.Sprintf("extension %q must start with a dot", ext),
			})
		}
	}

	if cfg.Fence.Language != "" && strings.ContainsAny(cfg.Fence.Language, " \t`") {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "fence.language",
			Value:   cfg.Fence.Language,
			Message: "must be a single language token",
		})
	}

	if cfg.DryRun && cfg.Check {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "check",
			Message: "--check has no effect together with --dry-run",
		})
	}

	return result
}
