package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/mdfix/pkg/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func isolatedOptions(workDir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         workDir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config == nil {
		t.Fatal("Load() returned nil config")
	}

	if result.Config.Fence.Language != config.DefaultFenceLanguage {
		t.Errorf("fence language = %q, want %q", result.Config.Fence.Language, config.DefaultFenceLanguage)
	}
	if !result.Config.Rules.HeadingSpacingEnabled() {
		t.Error("heading spacing should default to enabled")
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("LoadedFrom = %v, want empty", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdfix.yml", `
fence:
  language: python
rules:
  tag_fences: false
ignore:
  - "**/build/**"
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if result.Config.Fence.Language != "python" {
		t.Errorf("fence language = %q, want %q", result.Config.Fence.Language, "python")
	}
	if result.Config.Rules.TagFencesEnabled() {
		t.Error("tag_fences should be disabled by project config")
	}
	if result.Config.Rules.HeadingSpacingEnabled() != true {
		t.Error("unmentioned rules should stay enabled")
	}
	if len(result.Config.Ignore) != 1 || result.Config.Ignore[0] != "**/build/**" {
		t.Errorf("ignore = %v, want project value only", result.Config.Ignore)
	}
	if len(result.LoadedFrom) != 1 {
		t.Fatalf("LoadedFrom = %v, want one entry", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	writeConfig(t, tmpDir, ".mdfix.yml", "fence:\n  language: ruby\n")

	subDir := filepath.Join(tmpDir, "docs", "guides")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}

	result, err := Load(context.Background(), isolatedOptions(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Fence.Language != "ruby" {
		t.Errorf("fence language = %q, want config found at repo root", result.Config.Fence.Language)
	}
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdfix.yml", "fence:\n  language: python\n")
	explicit := writeConfig(t, tmpDir, "other.yml", "fence:\n  language: rust\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = explicit

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Fence.Language != "rust" {
		t.Errorf("fence language = %q, want explicit config to win over project", result.Config.Fence.Language)
	}
	if len(result.LoadedFrom) != 2 {
		t.Errorf("LoadedFrom = %v, want project then explicit", result.LoadedFrom)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdfix.yml", "fence:\n  language: python\n")

	off := false
	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Fence: config.FenceConfig{Language: "go"},
		Rules: config.Rules{WrapURLs: &off},
		Jobs:  4,
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Fence.Language != "go" {
		t.Errorf("fence language = %q, want CLI value", result.Config.Fence.Language)
	}
	if result.Config.Rules.WrapURLsEnabled() {
		t.Error("wrap_urls should be disabled by CLI config")
	}
	if result.Config.Jobs != 4 {
		t.Errorf("jobs = %d, want 4", result.Config.Jobs)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdfix.yml", "fence:\n  language: python\n")

	t.Setenv("MDFIX_FENCE_LANGUAGE", "sh")
	t.Setenv("MDFIX_JOBS", "2")
	t.Setenv("MDFIX_CHECK", "true")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.Fence.Language != "sh" {
		t.Errorf("fence language = %q, want env value", result.Config.Fence.Language)
	}
	if result.Config.Jobs != 2 {
		t.Errorf("jobs = %d, want 2", result.Config.Jobs)
	}
	if !result.Config.Check {
		t.Error("check should be enabled by env")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdfix.yml", "fence: [unclosed\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("Load() expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "project config") {
		t.Errorf("error = %v, want mention of project config", err)
	}
}

func TestLoad_ValidationError(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, ".mdfix.yml", "extensions:\n  - md\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	if err == nil {
		t.Fatal("Load() expected validation error for extension without dot")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %T, want *ValidationError", err)
	}
	if verr.Field != "extensions" {
		t.Errorf("field = %q, want extensions", verr.Field)
	}
}

func TestLoad_MissingExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = filepath.Join(tmpDir, "nope.yml")

	_, err := Load(context.Background(), opts)
	if err == nil {
		t.Fatal("Load() expected error for missing explicit config")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"defaults are valid", func(*config.Config) {}, ""},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"bad format", func(c *config.Config) { c.Format = "xml" }, "format"},
		{"bad backup mode", func(c *config.Config) { c.Backups.Mode = "copy" }, "backups.mode"},
		{"extension without dot", func(c *config.Config) { c.Extensions = []string{"md"} }, "extensions"},
		{"fence language with space", func(c *config.Config) { c.Fence.Language = "plain text" }, "fence.language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			tt.mutate(cfg)

			result := Validate(cfg)
			if tt.wantErr == "" {
				if !result.Valid() {
					t.Errorf("Validate() errors = %v, want none", result.Errors)
				}
				return
			}
			if result.Valid() {
				t.Fatalf("Validate() expected error on field %q", tt.wantErr)
			}
			if result.Errors[0].Field != tt.wantErr {
				t.Errorf("field = %q, want %q", result.Errors[0].Field, tt.wantErr)
			}
		})
	}
}

func TestValidate_DryRunCheckWarning(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.DryRun = true
	cfg.Check = true

	result := Validate(cfg)
	if !result.Valid() {
		t.Fatalf("Validate() errors = %v, want none", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for dry-run combined with check")
	}
}
