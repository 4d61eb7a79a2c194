package transform

import (
	"regexp"
	"strings"
)

// fenceMarker is the delimiter opening or closing a fenced code block.
const fenceMarker = "```"

// LineKind classifies a single source line for the spacing passes.
type LineKind int

const (
	// LineBlank is a line containing only whitespace.
	LineBlank LineKind = iota

	// LineHeading is an ATX heading: one to six '#' characters followed
	// by whitespace, at the start of the line.
	LineHeading

	// LineListItem is a bullet ('-', '*', '+') or ordered ("1.") list
	// item marker, after optional indentation.
	LineListItem

	// LineFence is a line whose trimmed content starts with the fence marker.
	LineFence

	// LineText is any other line.
	LineText
)

var (
	headingPattern = regexp.MustCompile(`^#{1,6}\s`)
	bulletPattern  = regexp.MustCompile(`^\s*[-*+]\s`)
	orderedPattern = regexp.MustCompile(`^\s*\d+\.\s`)
)

// Classify returns the kind of a single line. Classification is purely
// line-local: a heading-looking line inside a code block still classifies
// as a heading. The spacing passes layer fence awareness on top.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return LineBlank
	case strings.HasPrefix(trimmed, fenceMarker):
		return LineFence
	case headingPattern.MatchString(line):
		return LineHeading
	case bulletPattern.MatchString(line), orderedPattern.MatchString(line):
		return LineListItem
	default:
		return LineText
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
