package configloader

import "github.com/yaklabco/mdfix/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Rule toggles: override's non-nil pointers win
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	// Start with a shallow copy of base.
	result := *base

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	// Booleans are one-way: a true in override sticks, but a config file
	// cannot unset a mode a higher-precedence source enabled.
	if override.DryRun {
		result.DryRun = override.DryRun
	}
	if override.Check {
		result.Check = override.Check
	}
	if override.Verify {
		result.Verify = override.Verify
	}
	if override.NoBackups {
		result.NoBackups = override.NoBackups
	}

	if override.Fence.Language != "" {
		result.Fence.Language = override.Fence.Language
	}
	if override.Fence.Detect {
		result.Fence.Detect = override.Fence.Detect
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	if override.Backups.Enabled != nil {
		result.Backups.Enabled = override.Backups.Enabled
	}

	result.Rules = mergeRules(base.Rules, override.Rules)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}

	return &result
}

// mergeRules merges rule toggles field by field; non-nil override
// pointers take precedence.
func mergeRules(base, override config.Rules) config.Rules {
	result := base

	if override.HeadingSpacing != nil {
		result.HeadingSpacing = override.HeadingSpacing
	}
	if override.ListSpacing != nil {
		result.ListSpacing = override.ListSpacing
	}
	if override.FenceSpacing != nil {
		result.FenceSpacing = override.FenceSpacing
	}
	if override.WrapURLs != nil {
		result.WrapURLs = override.WrapURLs
	}
	if override.WrapEmails != nil {
		result.WrapEmails = override.WrapEmails
	}
	if override.CollapseBlanks != nil {
		result.CollapseBlanks = override.CollapseBlanks
	}
	if override.TagFences != nil {
		result.TagFences = override.TagFences
	}

	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
