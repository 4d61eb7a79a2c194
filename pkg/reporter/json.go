package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	Changed    bool   `json:"changed"`
	Written    bool   `json:"written"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
	Backup     bool   `json:"backup,omitempty"`
	Diff       string `json:"diff,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked int `json:"filesChecked"`
	FilesChanged int `json:"filesChanged"`
	FilesFixed   int `json:"filesFixed"`
	FilesSkipped int `json:"filesSkipped,omitempty"`
	FilesErrored int `json:"filesErrored,omitempty"`
	Backups      int `json:"backups,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	if len(result.Files) > 0 {
		output.Files = make([]JSONFileResult, 0, len(result.Files))
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path: displayPath(file.Path, r.opts.WorkingDir),
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}

		if fr := file.Result; fr != nil {
			fileResult.Changed = fr.Changed
			fileResult.Written = fr.Written
			fileResult.Skipped = fr.Skipped
			fileResult.SkipReason = fr.SkipReason
			fileResult.Backup = fr.BackupCreated
			if fr.Diff != nil {
				fileResult.Diff = fr.Diff.String()
			}
		}

		output.Files = append(output.Files, fileResult)
	}

	output.Summary = JSONSummary{
		FilesChecked: result.Stats.FilesProcessed,
		FilesChanged: result.Stats.FilesChanged,
		FilesFixed:   result.Stats.FilesModified,
		FilesSkipped: result.Stats.FilesSkipped,
		FilesErrored: result.Stats.FilesErrored,
		Backups:      result.Stats.BackupsCreated,
	}

	return output
}
