// Package config defines core configuration types for mdfix.
// These types are pure data structures with no dependency on the config loader.
package config

// OutputFormat specifies the output format for run results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is a known value.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Rules toggles the individual fix rules. A nil pointer means "enabled",
// so config files only need to mention rules they want to switch off.
type Rules struct {
	// HeadingSpacing surrounds ATX headings with blank lines (MD022).
	HeadingSpacing *bool `yaml:"heading_spacing"`

	// ListSpacing surrounds list runs with blank lines (MD032).
	ListSpacing *bool `yaml:"list_spacing"`

	// FenceSpacing surrounds fenced code blocks with blank lines (MD031).
	FenceSpacing *bool `yaml:"fence_spacing"`

	// WrapURLs wraps bare URLs in angle brackets (MD034).
	WrapURLs *bool `yaml:"wrap_urls"`

	// WrapEmails wraps bare email addresses in angle brackets (MD034).
	WrapEmails *bool `yaml:"wrap_emails"`

	// CollapseBlanks collapses runs of blank lines to a single one (MD012).
	CollapseBlanks *bool `yaml:"collapse_blanks"`

	// TagFences adds a language tag to untagged opening fences (MD040).
	TagFences *bool `yaml:"tag_fences"`
}

// enabled interprets a toggle pointer, defaulting to true.
func enabled(b *bool) bool {
	return b == nil || *b
}

// HeadingSpacingEnabled reports whether heading spacing is on.
func (r Rules) HeadingSpacingEnabled() bool { return enabled(r.HeadingSpacing) }

// ListSpacingEnabled reports whether list spacing is on.
func (r Rules) ListSpacingEnabled() bool { return enabled(r.ListSpacing) }

// FenceSpacingEnabled reports whether fence spacing is on.
func (r Rules) FenceSpacingEnabled() bool { return enabled(r.FenceSpacing) }

// WrapURLsEnabled reports whether bare URL wrapping is on.
func (r Rules) WrapURLsEnabled() bool { return enabled(r.WrapURLs) }

// WrapEmailsEnabled reports whether bare email wrapping is on.
func (r Rules) WrapEmailsEnabled() bool { return enabled(r.WrapEmails) }

// CollapseBlanksEnabled reports whether blank-line collapsing is on.
func (r Rules) CollapseBlanksEnabled() bool { return enabled(r.CollapseBlanks) }

// TagFencesEnabled reports whether fence language tagging is on.
func (r Rules) TagFencesEnabled() bool { return enabled(r.TagFences) }

// FenceConfig controls the language tag applied to untagged code fences.
type FenceConfig struct {
	// Language is the tag used when no language can be detected.
	Language string `yaml:"language"`

	// Detect enables content-based language detection for untagged fences.
	Detect bool `yaml:"detect"`
}

// BackupsConfig controls backup behavior when rewriting files.
// Enabled follows the same nil-means-default convention as Rules,
// so a config file can switch backups off with "enabled: false".
type BackupsConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// BackupsEnabled reports whether backups are on, defaulting to true.
func (b BackupsConfig) BackupsEnabled() bool { return enabled(b.Enabled) }

// Config is the root configuration structure for mdfix.
type Config struct {
	// Extensions is the set of file extensions considered Markdown.
	Extensions []string `yaml:"extensions"`

	// Ignore contains glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore"`

	// Rules toggles the individual fix rules.
	Rules Rules `yaml:"rules"`

	// Fence configures language tagging for untagged code fences.
	Fence FenceConfig `yaml:"fence"`

	// Backups configures backup behavior when rewriting files.
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// DryRun shows pending changes as diffs without writing.
	DryRun bool `yaml:"-"`

	// Check writes nothing and signals pending changes via exit code.
	Check bool `yaml:"-"`

	// Verify re-parses fixed content and skips the write on structure loss.
	Verify bool `yaml:"-"`

	// NoBackups disables backup creation for this run.
	NoBackups bool `yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers (0 = auto).
	Jobs int `yaml:"-"`
}

// DefaultFenceLanguage is the tag applied to untagged fences when
// detection is off or inconclusive.
const DefaultFenceLanguage = "bash"

// DefaultIgnore returns the default set of ignore patterns.
// Build-output and dependency directories are excluded by convention.
func DefaultIgnore() []string {
	return []string{"**/target/**", "**/node_modules/**", "**/vendor/**"}
}

// New returns a Config with sensible defaults.
func New() *Config {
	return &Config{
		Ignore: DefaultIgnore(),
		Fence: FenceConfig{
			Language: DefaultFenceLanguage,
		},
		Backups: BackupsConfig{
			Mode: "sidecar",
		},
		Format: FormatText,
	}
}
