package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdfix/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "Total files fixed: 3 (12 checked, 1 skipped)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.FilesModified == 0 && stats.FilesErrored == 0 && stats.FilesSkipped == 0 {
		if stats.FilesChanged > 0 {
			fileWord := wordFiles
			if stats.FilesChanged == 1 {
				fileWord = wordFile
			}
			return s.Failure.Render(fmt.Sprintf("%d %s would be fixed", stats.FilesChanged, fileWord)) +
				s.Dim.Render(fmt.Sprintf(" (%d checked)", stats.FilesProcessed)) + "\n"
		}
		return s.Success.Render("All files clean") +
			s.Dim.Render(fmt.Sprintf(" (%d checked)", stats.FilesProcessed)) + "\n"
	}

	parts := []string{
		s.Bold.Render("Total files fixed: " + strconv.Itoa(stats.FilesModified)),
	}

	var details []string
	details = append(details, fmt.Sprintf("%d checked", stats.FilesProcessed))
	if stats.FilesSkipped > 0 {
		details = append(details, s.Skipped.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		details = append(details, s.Error.Render(fmt.Sprintf("%d errored", stats.FilesErrored)))
	}
	if stats.BackupsCreated > 0 {
		details = append(details, fmt.Sprintf("%d backups", stats.BackupsCreated))
	}
	parts = append(parts, "("+strings.Join(details, ", ")+")")

	return strings.Join(parts, " ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files discovered:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Files checked:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesChanged > 0 {
		builder.WriteString("  Files needing fix: " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesChanged)) + "\n")
	}
	if stats.FilesModified > 0 {
		builder.WriteString("  Files fixed:       " +
			s.Success.Render(strconv.Itoa(stats.FilesModified)) + "\n")
	}
	if stats.FilesSkipped > 0 {
		builder.WriteString("  Files skipped:     " +
			s.Skipped.Render(strconv.Itoa(stats.FilesSkipped)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files errored:     " +
			s.Error.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}
	if stats.BackupsCreated > 0 {
		builder.WriteString("  Backups created:   " +
			s.SummaryValue.Render(strconv.Itoa(stats.BackupsCreated)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Completed with errors"))
	case stats.FilesChanged > stats.FilesModified:
		builder.WriteString(s.Skipped.Render("Changes pending"))
	default:
		builder.WriteString(s.Success.Render("Done"))
	}
	builder.WriteString("\n")

	return builder.String()
}
