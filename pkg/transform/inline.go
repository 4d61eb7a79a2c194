package transform

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdfix/pkg/langdetect"
)

var (
	// bareURLPattern matches an http(s) URL surrounded by whitespace.
	// Already-wrapped URLs are preceded by '<', not whitespace, so the
	// substitution is idempotent.
	bareURLPattern = regexp.MustCompile(`(\s)(https?://[^\s)>\]]+)(\s)`)

	// bareEmailPattern matches a simple email address surrounded by whitespace.
	bareEmailPattern = regexp.MustCompile(`(\s)([\w.-]+@[\w.-]+\.\w+)(\s)`)

	// extraBlanksPattern matches two or more consecutive blank lines.
	extraBlanksPattern = regexp.MustCompile(`\n\n\n+`)
)

// WrapBareURLs wraps bare URLs in angle brackets, preserving the
// surrounding whitespace.
func WrapBareURLs(text string) string {
	return substituteToFixpoint(bareURLPattern, text)
}

// WrapBareEmails wraps bare email addresses in angle brackets.
func WrapBareEmails(text string) string {
	return substituteToFixpoint(bareEmailPattern, text)
}

// substituteToFixpoint wraps matches of pattern until nothing changes.
// A single ReplaceAll pass consumes the whitespace groups around each
// match, so two bare URLs separated by one space need a second pass:
// the shared space was already eaten as the first match's trailing
// group. Iterating keeps the substitution idempotent in one call.
// Termination: each pass only adds angle brackets, and a wrapped match
// is preceded by '<' rather than whitespace, so it can never rematch.
func substituteToFixpoint(pattern *regexp.Regexp, text string) string {
	for {
		next := pattern.ReplaceAllString(text, "${1}<${2}>${3}")
		if next == text {
			return text
		}
		text = next
	}
}

// CollapseBlankLines collapses runs of blank lines to a single blank line.
func CollapseBlankLines(text string) string {
	return extraBlanksPattern.ReplaceAllString(text, "\n\n")
}

// TagFences adds a language tag to untagged opening fences. Closing fences
// are recognized by tracking fence state and left alone; tagging them would
// corrupt the document.
//
// When detect is true the tag is inferred from the enclosed block content,
// falling back to fallback when detection is inconclusive.
func TagFences(text, fallback string, detect bool) string {
	lines := strings.Split(text, "\n")
	inFence := false

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, fenceMarker) {
			continue
		}

		if inFence {
			inFence = false
			continue
		}
		inFence = true

		// Only bare opening fences need a tag.
		if trimmed != fenceMarker {
			continue
		}

		tag := fallback
		if detect {
			if detected := langdetect.Detect(fenceBody(lines, i+1)); detected != "" {
				tag = detected
			}
		}

		// On CRLF lines the tag goes before the trailing carriage
		// return, not after it.
		if body, ok := strings.CutSuffix(line, "\r"); ok {
			lines[i] = body + tag + "\r"
		} else {
			lines[i] = line + tag
		}
	}

	return strings.Join(lines, "\n")
}

// fenceBody collects the block content from start until the closing fence.
func fenceBody(lines []string, start int) []byte {
	var body []string
	for _, line := range lines[start:] {
		if strings.HasPrefix(strings.TrimSpace(line), fenceMarker) {
			break
		}
		body = append(body, line)
	}
	return []byte(strings.Join(body, "\n"))
}
