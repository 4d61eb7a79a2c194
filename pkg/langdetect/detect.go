// Package langdetect detects the programming language of code snippets.
// It is used to pick a language tag for untagged fenced code blocks,
// combining go-enry's shebang and classifier strategies with a few
// fast pattern checks for languages common in documentation.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const (
	langGo     = "go"
	langPython = "python"
	langJSON   = "json"
	langYAML   = "yaml"
	langHTML   = "html"
	langSQL    = "sql"
	langBash   = "bash"
)

// candidates are the languages offered to the enry classifier.
// Restricting the set keeps classification fast and avoids exotic
// false positives on short snippets.
//
//nolint:gochecknoglobals // Read-only lookup table.
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a lowercase language tag for the given code content,
// or the empty string when no confident detection is possible.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(trimmed); lang != "" {
		return lang
	}

	// Classifier last; only trust confident results.
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// detectByPattern checks for highly indicative language-specific patterns.
func detectByPattern(trimmed []byte) string {
	contentStr := string(trimmed)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")):
		return langGo
	case strings.Contains(contentStr, "func ") && strings.Contains(contentStr, ":="):
		return langGo
	case strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):"),
		strings.Contains(contentStr, "__main__"):
		return langPython
	case bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")), bytes.HasPrefix(trimmed, []byte("<html")):
		return langHTML
	case isJSON(trimmed):
		return langJSON
	case hasSQLKeyword(contentStr):
		return langSQL
	case bytes.HasPrefix(trimmed, []byte("$ ")), bytes.HasPrefix(trimmed, []byte("#!/bin/")):
		return langBash
	case isYAMLMapping(contentStr):
		return langYAML
	}

	return ""
}

// isJSON checks for a braced or bracketed document containing a quoted key.
func isJSON(trimmed []byte) bool {
	if len(trimmed) < 2 {
		return false
	}
	first, last := trimmed[0], trimmed[len(trimmed)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}
	return bytes.Contains(trimmed, []byte(`":`)) || bytes.Equal(trimmed, []byte("{}")) ||
		bytes.Equal(trimmed, []byte("[]"))
}

// hasSQLKeyword checks for a leading SQL statement keyword.
func hasSQLKeyword(content string) bool {
	upper := strings.ToUpper(content)
	for _, kw := range []string{"SELECT ", "INSERT INTO ", "CREATE TABLE ", "UPDATE ", "DELETE FROM "} {
		if strings.HasPrefix(upper, kw) {
			return true
		}
	}
	return false
}

// isYAMLMapping checks whether every non-blank line looks like "key: value".
func isYAMLMapping(content string) bool {
	lines := strings.Split(content, "\n")
	seen := 0
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		colon := strings.Index(stripped, ": ")
		if colon <= 0 && !strings.HasSuffix(stripped, ":") && !strings.HasPrefix(stripped, "- ") {
			return false
		}
		seen++
	}
	return seen > 0
}

// normalize maps enry language names to lowercase fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return langBash
	case "C++":
		return "cpp"
	case "C#":
		return "csharp"
	default:
		return strings.ToLower(lang)
	}
}
