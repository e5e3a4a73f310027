package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/footmark/internal/logging"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/reporter"
	"github.com/yaklabco/footmark/pkg/runner"
)

type fmtFlags struct {
	format string
	ignore []string
}

func newFmtCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...|-]",
		Short: "Re-serialize Markdown files as canonical footnote Markdown",
		Long: `Parse Markdown files and write them back in canonical footnote form.

By default, lists the files in the current directory and subdirectories whose
formatting would change. With "-", formats standard input to standard output.

Examples:
  footmark fmt                   # List files that would change
  footmark fmt --write           # Rewrite changed files in place
  footmark fmt --check docs/     # Exit 1 when any file would change
  footmark fmt --diff README.md  # Show the changes as a unified diff
  cat notes.md | footmark fmt -  # Format stdin`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, cfg, flags)
		},
	}

	addInlineNotesFlag(cmd, cfg)
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "rewrite changed files in place")
	cmd.Flags().BoolVar(&cfg.Check, "check", false, "exit 1 when any file would change")
	cmd.Flags().BoolVar(&cfg.Diff, "diff", false, "print a unified diff of the changes")
	cmd.Flags().BoolVar(&cfg.Backup, "backup", false, "keep a backup of every rewritten file")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *fmtFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	cliCfg.Ignore = flags.ignore

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	processor := newProcessor(cfg)
	pipeline := lint.NewPipeline(lint.NewEngine(processor, lint.NewRegistry()), processor)

	var result *runner.Result
	if isStdin(args) {
		content, err := readStdin(cmd)
		if err != nil {
			return err
		}

		opts := lint.PipelineOptionsFromConfig(cfg, false, true)
		opts.Write = false
		processed, err := pipeline.ProcessContent(ctx, stdinName, content, cfg, opts)
		if err != nil {
			return fmt.Errorf("format %s: %w", stdinName, err)
		}

		if !cfg.Check && !cfg.Diff {
			output := processed.Formatted
			if processed.Skipped {
				logger.Warn("leaving input unchanged", logging.FieldPath, stdinName, logging.FieldReason, processed.SkipReason)
				output = content
			}
			if _, err := cmd.OutOrStdout().Write(output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			return nil
		}
		result = runner.NewResult(runner.FileOutcome{Path: stdinName, Result: processed})
	} else {
		runOpts := runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
			Config:       cfg,
			Pipeline:     lint.PipelineOptionsFromConfig(cfg, false, true),
		}

		logger.Debug("starting fmt run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
			logging.FieldWrite, runOpts.Pipeline.Write,
		)

		result, err = runner.New(pipeline).Run(ctx, runOpts)
		if err != nil {
			return errors.Join(errors.New("fmt run failed"), err)
		}
	}

	for _, file := range result.Files {
		if file.Result != nil {
			logger.Debug("file processed", logging.FieldPath, file.Path, logging.FieldStatus, file.Result.Summary())
		}
	}

	logger.Debug("fmt run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
	)

	format := reporter.Format(cfg.Format)
	if cfg.Diff {
		format = reporter.FormatDiff
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       cfg.Color,
		ShowSummary: true,
		Formatting:  true,
		Write:       cfg.Write,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if result.HasErrors() {
		return ErrFilesFailed
	}
	if cfg.Check && !cfg.Write && result.HasChanges() {
		return ErrFormatNeeded
	}

	return nil
}
