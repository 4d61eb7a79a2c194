package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdfix configuration file",
		Long: `Create a new .mdfix.yml configuration file in the current directory
with sensible defaults. The file can be customized to disable individual
fix rules, change the fence language tag, and adjust ignore patterns.

Examples:
  mdfix init                      Create .mdfix.yml
  mdfix init --output custom.yml  Write to a custom file path
  mdfix init --force              Overwrite an existing file without asking`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .mdfix.yml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mdfix.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("keeping existing file", logging.FieldPath, outputPath)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.WriteFile(absPath, []byte(config.Template), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("customize your configuration by editing the file")
	logger.Info("run 'mdfix fix --dry-run' to preview fixes")

	return nil
}

// confirmOverwrite asks before replacing an existing config file. Without
// a terminal on stdin there is nobody to ask, so the existing file wins.
func confirmOverwrite(path string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("file %q already exists; use --force to overwrite", path)
	}

	fmt.Fprintf(os.Stderr, "File %q already exists. Overwrite? [y/N]: ", path)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("read answer: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
