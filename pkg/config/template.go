package config

// Template is the starter configuration written by "mdfix init".
// Every rule is listed with its default so users can flip toggles in place.
const Template = `# mdfix configuration
# See: https://github.com/yaklabco/mdfix

# File extensions treated as Markdown.
# extensions: [".md", ".markdown"]

# Glob patterns for files and directories to skip.
ignore:
  - "**/target/**"
  - "**/node_modules/**"
  - "**/vendor/**"

# Fix rules. All rules default to enabled; set to false to switch off.
rules:
  heading_spacing: true   # blank lines around ATX headings (MD022)
  list_spacing: true      # blank lines around lists (MD032)
  fence_spacing: true     # blank lines around code fences (MD031)
  wrap_urls: true         # wrap bare URLs in angle brackets (MD034)
  wrap_emails: true       # wrap bare email addresses (MD034)
  collapse_blanks: true   # collapse multiple blank lines (MD012)
  tag_fences: true        # tag untagged code fences (MD040)

# Language tag for untagged code fences.
fence:
  language: bash
  detect: false           # detect language from fence content

# Backups when rewriting files.
backups:
  enabled: true
  mode: sidecar           # "sidecar" or "none"
`
