package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/footmark/internal/configloader"
	"github.com/yaklabco/footmark/internal/logging"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/footmark"
)

// Standard input as an argument and as a display path.
const (
	stdinArg  = "-"
	stdinName = "<stdin>"
)

// loadConfig resolves the configuration for a command, with cliCfg holding
// the values set by flags.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, string, error) {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString(flagConfig)
	if err != nil {
		return nil, "", fmt.Errorf("get config flag: %w", err)
	}
	noConfig, err := cmd.Flags().GetBool(flagNoConfig)
	if err != nil {
		return nil, "", fmt.Errorf("get no-config flag: %w", err)
	}
	if cmd.Flags().Changed(flagColor) {
		color, err := cmd.Flags().GetString(flagColor)
		if err != nil {
			return nil, "", fmt.Errorf("get color flag: %w", err)
		}
		cliCfg.Color = color
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreSystemConfig:  noConfig,
		IgnoreUserConfig:    noConfig,
		IgnoreProjectConfig: noConfig,
		CLIConfig:           cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldInlineNotes, cfg.InlineNotes,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, workDir, nil
}

// newProcessor creates the footnote processor described by cfg.
func newProcessor(cfg *config.Config) *footmark.Processor {
	return footmark.New(footmark.WithInlineNotes(cfg.InlineNotes))
}

// readStdin reads all of the command's standard input. It refuses to wait
// on an interactive terminal.
func readStdin(cmd *cobra.Command) ([]byte, error) {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return nil, ErrNoInput
	}

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return content, nil
}

// isStdin reports whether args select standard input.
func isStdin(args []string) bool {
	return len(args) == 1 && args[0] == stdinArg
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// addInlineNotesFlag registers the flag that enables ^[inline notes].
func addInlineNotesFlag(cmd *cobra.Command, cfg *config.Config) {
	cmd.Flags().BoolVar(&cfg.InlineNotes, "inline-notes", false, "recognize inline notes (^[text])")
}
