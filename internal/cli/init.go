package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/footmark/internal/logging"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/fsutil"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/lint/rules"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// defaultConfigName is the file written by init when no output is given.
const defaultConfigName = ".footmark.yml"

type initFlags struct {
	force     bool
	full      bool
	effective bool
	output    string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new footmark configuration file",
		Long: `Create a new .footmark.yml configuration file in the current directory
with the default settings. The file can be customized to enable or disable
rules, change severities, and set the parse and format options.

Examples:
  footmark init                     Create a minimal .footmark.yml
  footmark init --full              Document every rule in the file
  footmark init --effective -o -    Print the settings currently in effect
  footmark init --output -          Print the template to stdout
  footmark init -o docs/.footmark.yml  Write to a custom path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "list every rule with its description and defaults")
	cmd.Flags().BoolVar(&flags.effective, "effective", false,
		"write the merged configuration from all config files and FOOTMARK_* variables")
	cmd.MarkFlagsMutuallyExclusive("full", "effective")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigName, "output file path, or - for stdout")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	content, err := initContent(cmd, flags)
	if err != nil {
		return err
	}

	if flags.output == stdinArg {
		if _, err := cmd.OutOrStdout().Write(content); err != nil {
			return fmt.Errorf("write template: %w", err)
		}
		return nil
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !flags.force:
		return &ExitError{
			Code: ExitInvalidUsage,
			Err:  fmt.Errorf("file %q already exists; use --force to overwrite", flags.output),
		}
	case statErr == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	case !errors.Is(statErr, fs.ErrNotExist):
		return fmt.Errorf("stat %s: %w", flags.output, statErr)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'footmark rules' to see all available rules")

	return nil
}

func initContent(cmd *cobra.Command, flags *initFlags) ([]byte, error) {
	if !flags.effective {
		return config.GenerateTemplate(config.TemplateOptions{
			Full:  flags.full,
			Rules: rules.RuleInfos(lint.DefaultRegistry),
		}), nil
	}

	cfg, _, err := loadConfig(cmd, &config.Config{})
	if err != nil {
		return nil, err
	}
	content, err := cfg.ToYAMLWithHeader("# footmark configuration currently in effect")
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}
	return content, nil
}
