package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/reporter"
	"github.com/yaklabco/mdfix/pkg/runner"
	"github.com/yaklabco/mdfix/pkg/transform"
)

// ErrChangesPending is returned by check mode when files need fixes.
var ErrChangesPending = errors.New("changes pending")

// ErrFilesFailed is returned when one or more files could not be processed.
var ErrFilesFailed = errors.New("some files failed")

type fixFlags struct {
	format         string
	ignore         []string
	disable        []string
	fenceLanguage  string
	detectLanguage bool
	followSymlinks bool
	compact        bool
}

func newFixCommand() *cobra.Command {
	var cfg config.Config
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Fix Markdown formatting issues",
		Long:  fixLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, &cfg, flags)
		},
	}

	addFixFlags(cmd, &cfg, flags)

	return cmd
}

const fixLongDescription = `Fix formatting issues in Markdown files.

By default, fixes all .md and .markdown files in the current directory
and subdirectories. Specify paths to fix specific files or directories.

Examples:
  mdfix fix                      # Fix current directory
  mdfix fix docs/                # Fix docs directory
  mdfix fix README.md            # Fix single file
  mdfix fix --dry-run            # Show fixes as diffs without applying
  mdfix fix --check              # Exit 2 if fixes are needed (for CI)
  mdfix fix --verify             # Re-parse fixed output before writing
  mdfix fix --format json        # Output as JSON`

func runFix(cmd *cobra.Command, args []string, cfg *config.Config, flags *fixFlags) error {
	logger := logging.Default()

	// Map string flags to typed config values.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	cfg.Ignore = flags.ignore
	if cmd.Flags().Changed("fence-language") {
		cfg.Fence.Language = flags.fenceLanguage
	}
	if cmd.Flags().Changed("detect-language") {
		cfg.Fence.Detect = flags.detectLanguage
	}
	applyDisabledRules(cfg, flags.disable)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldDryRun, finalCfg.DryRun,
		logging.FieldCheck, finalCfg.Check,
		logging.FieldVerify, finalCfg.Verify,
		logging.FieldJobs, finalCfg.Jobs,
	)

	pipeline := transform.NewPipeline(transform.OptionsFromConfig(finalCfg))
	fixRunner := runner.New(pipeline)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     finalCfg.Extensions,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting fix run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := fixRunner.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("fix run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, finalCfg.Check) {
	case ExitError:
		return ErrFilesFailed
	case ExitChangesPending:
		return ErrChangesPending
	default:
		return nil
	}
}

// applyDisabledRules turns --disable rule names into config toggles.
func applyDisabledRules(cfg *config.Config, disabled []string) {
	off := false
	for _, name := range disabled {
		switch name {
		case "heading_spacing":
			cfg.Rules.HeadingSpacing = &off
		case "list_spacing":
			cfg.Rules.ListSpacing = &off
		case "fence_spacing":
			cfg.Rules.FenceSpacing = &off
		case "wrap_urls":
			cfg.Rules.WrapURLs = &off
		case "wrap_emails":
			cfg.Rules.WrapEmails = &off
		case "collapse_blanks":
			cfg.Rules.CollapseBlanks = &off
		case "tag_fences":
			cfg.Rules.TagFences = &off
		}
	}
}

func addFixFlags(cmd *cobra.Command, cfg *config.Config, flags *fixFlags) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as diffs without applying them")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "write nothing; exit 2 if any file needs fixes")
	cmd.Flags().BoolVar(&cfg.Verify, "verify", false, "re-parse fixed output and skip the write on structure loss")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "fix rules to disable")
	cmd.Flags().StringVar(&flags.fenceLanguage, "fence-language", "",
		"language tag for untagged code fences")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"detect fence languages from content instead of using the fixed tag")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links during discovery")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
}
