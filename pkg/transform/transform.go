// Package transform implements the mdfix rewrite rules: blank-line spacing
// around headings, lists, and fenced code blocks, bare URL and email
// wrapping, blank-line collapsing, and fence language tagging.
//
// The transformation is a pure function of a file's content. It works on a
// classified line sequence rather than a parse tree. The spacing passes
// track fence state so code block interiors keep their layout; the inline
// substitutions run over the whole text.
package transform

import (
	"strings"

	"github.com/yaklabco/mdfix/pkg/config"
)

// Options control which fixes Apply performs.
type Options struct {
	// HeadingSpacing surrounds ATX headings with blank lines.
	HeadingSpacing bool

	// ListSpacing surrounds list runs with blank lines.
	ListSpacing bool

	// FenceSpacing surrounds fenced code blocks with blank lines.
	FenceSpacing bool

	// WrapURLs wraps bare URLs in angle brackets.
	WrapURLs bool

	// WrapEmails wraps bare email addresses in angle brackets.
	WrapEmails bool

	// CollapseBlanks collapses multiple blank lines to one.
	CollapseBlanks bool

	// TagFences adds a language tag to untagged opening fences.
	TagFences bool

	// FenceLanguage is the tag for untagged fences when detection is
	// off or inconclusive.
	FenceLanguage string

	// DetectLanguage infers fence tags from block content.
	DetectLanguage bool
}

// DefaultOptions returns Options with every fix enabled.
func DefaultOptions() Options {
	return Options{
		HeadingSpacing: true,
		ListSpacing:    true,
		FenceSpacing:   true,
		WrapURLs:       true,
		WrapEmails:     true,
		CollapseBlanks: true,
		TagFences:      true,
		FenceLanguage:  config.DefaultFenceLanguage,
	}
}

// OptionsFromConfig maps a resolved configuration to transform options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}

	lang := cfg.Fence.Language
	if lang == "" {
		lang = config.DefaultFenceLanguage
	}

	return Options{
		HeadingSpacing: cfg.Rules.HeadingSpacingEnabled(),
		ListSpacing:    cfg.Rules.ListSpacingEnabled(),
		FenceSpacing:   cfg.Rules.FenceSpacingEnabled(),
		WrapURLs:       cfg.Rules.WrapURLsEnabled(),
		WrapEmails:     cfg.Rules.WrapEmailsEnabled(),
		CollapseBlanks: cfg.Rules.CollapseBlanksEnabled(),
		TagFences:      cfg.Rules.TagFencesEnabled(),
		FenceLanguage:  lang,
		DetectLanguage: cfg.Fence.Detect,
	}
}

// Apply runs the full fix sequence over content and returns the result.
// The passes run in a fixed order: block spacing, fence spacing, then the
// whole-text substitutions. Apply never mutates its input and is
// idempotent: applying it to its own output is a no-op.
func Apply(content []byte, opts Options) []byte {
	lines := strings.Split(string(content), "\n")

	lines = SpaceBlocks(lines, opts.HeadingSpacing, opts.ListSpacing)
	if opts.FenceSpacing {
		lines = SpaceFences(lines)
	}

	text := strings.Join(lines, "\n")

	if opts.WrapURLs {
		text = WrapBareURLs(text)
	}
	if opts.WrapEmails {
		text = WrapBareEmails(text)
	}
	if opts.CollapseBlanks {
		text = CollapseBlankLines(text)
	}
	if opts.TagFences {
		text = TagFences(text, opts.FenceLanguage, opts.DetectLanguage)
	}

	return []byte(text)
}

// Changed reports whether applying opts to content would modify it.
func Changed(content []byte, opts Options) bool {
	return string(Apply(content, opts)) != string(content)
}
