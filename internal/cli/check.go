package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/footmark/internal/logging"
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	_ "github.com/yaklabco/footmark/pkg/lint/rules" // Register built-in rules
	goldmarkparser "github.com/yaklabco/footmark/pkg/parser/goldmark"
	"github.com/yaklabco/footmark/pkg/reporter"
	"github.com/yaklabco/footmark/pkg/runner"
)

type checkFlags struct {
	format     string
	flavor     string
	ruleFormat string
	ignore     []string
	enable     []string
	disable    []string
	strict     bool
	noContext  bool
	compact    bool
}

func newCheckCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...|-]",
		Short: "Report footnote problems in Markdown files",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, cfg, flags)
		},
	}

	addInlineNotesFlag(cmd, cfg)
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, yaml")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "flavor of the reference parse: commonmark, gfm")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rule IDs or names to enable")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rule IDs or names to disable")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as errors for exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")

	return cmd
}

const checkLongDescription = `Check Markdown files for footnote problems.

By default, checks all Markdown files in the current directory and
subdirectories. Specify paths to check specific files or directories, or
"-" to check standard input.

Rules:
  FN001 forward-reference     call that appears before its definition
  FN002 undefined-reference   call with no definition
  FN003 unused-definition     definition that is never called
  FN004 duplicate-definition  identifier defined more than once

Examples:
  footmark check                     # Check current directory
  footmark check docs/               # Check docs directory
  footmark check --format json       # Output as JSON for CI
  footmark check --disable FN003     # Skip a rule
  footmark check --strict            # Treat warnings as errors`

func runCheck(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("rule-format") {
		cliCfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
	}
	cliCfg.Ignore = flags.ignore
	cliCfg.EnableRules = flags.enable
	cliCfg.DisableRules = flags.disable

	cfg, workDir, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	engine := lint.NewEngine(newProcessor(cfg), lint.DefaultRegistry)
	engine.Reference = goldmarkparser.New(cfg.Flavor)
	pipeline := lint.NewPipeline(engine, nil)

	var result *runner.Result
	if isStdin(args) {
		content, err := readStdin(cmd)
		if err != nil {
			return err
		}
		processed, err := pipeline.ProcessContent(ctx, stdinName, content, cfg, lint.PipelineOptionsFromConfig(cfg, true, false))
		if err != nil {
			return fmt.Errorf("check %s: %w", stdinName, err)
		}
		result = runner.NewResult(runner.FileOutcome{Path: stdinName, Result: processed})
	} else {
		runOpts := runner.Options{
			Paths:        args,
			WorkingDir:   workDir,
			ExcludeGlobs: cfg.Ignore,
			Jobs:         cfg.Jobs,
			Config:       cfg,
			Pipeline:     lint.PipelineOptionsFromConfig(cfg, true, false),
		}

		logger.Debug("starting check run",
			logging.FieldPaths, runOpts.Paths,
			logging.FieldWorkingDir, runOpts.WorkingDir,
			logging.FieldJobs, runOpts.Jobs,
		)

		result, err = runner.New(pipeline).Run(ctx, runOpts)
		if err != nil {
			return errors.Join(errors.New("check run failed"), err)
		}
	}

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		for ruleID, ruleErr := range file.Result.RuleErrors {
			logger.Warn("rule failed", logging.FieldPath, file.Path, logging.FieldRule, ruleID, logging.FieldError, ruleErr)
		}
	}

	logger.Debug("check run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnostics, result.Stats.DiagnosticsTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(cfg.Format),
		Color:       cfg.Color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		GroupByFile: true,
		Compact:     flags.compact,
		RuleFormat:  cfg.RuleFormat,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if code := ExitCodeFromResult(result, flags.strict); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrIssuesFound}
	}
	if result.HasErrors() {
		return ErrFilesFailed
	}

	return nil
}
