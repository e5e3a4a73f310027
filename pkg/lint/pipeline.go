package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/diff"
	"github.com/yaklabco/footmark/pkg/fsutil"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// Errors returned by the pipeline, matchable with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrFormatFailure    = errors.New("format failure")
	ErrWriteFailure     = errors.New("write failure")
)

// Formatter writes a tree back as Markdown.
type Formatter interface {
	Format(root *mdast.Node) ([]byte, error)
}

// PipelineResult is what the pipeline did with one file.
type PipelineResult struct {
	*FileResult

	Path string

	// OriginalInfo is the file as read; nil for in-memory content.
	OriginalInfo *fsutil.FileInfo

	// Formatted is set only when formatting was requested.
	Formatted []byte
	Modified  bool
	Diff      *diff.FileDiff

	// Skipped marks a changed file that was deliberately left alone.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary returns a human-readable summary of the pipeline result.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "formatted (backup created)"
	case pr.Written:
		return "formatted"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions selects the pipeline stages.
type PipelineOptions struct {
	Lint   bool
	Format bool
	Diff   bool
	Write  bool

	// Verify re-parses formatted output and skips the file when its
	// defined footnotes differ from the input's.
	Verify bool

	Backup bool

	// StrictRaceDetection re-hashes the file before writing instead of
	// trusting an unchanged mod time and size.
	StrictRaceDetection bool
}

// DefaultPipelineOptions lints with verification and strict race checks on.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{Lint: true, Verify: true, StrictRaceDetection: true}
}

// Pipeline runs parse, lint, format, verify and write for one file at a
// time. It holds no per-file state and is safe for concurrent use.
type Pipeline struct {
	Engine *Engine
	// Formatter is required when PipelineOptions.Format is set.
	Formatter Formatter
}

// NewPipeline creates a new pipeline.
func NewPipeline(engine *Engine, formatter Formatter) *Pipeline {
	return &Pipeline{Engine: engine, Formatter: formatter}
}

// ProcessFile reads path and runs ProcessContent on it. With Write set, a
// changed file is replaced atomically unless it was edited on disk in the
// meantime, after an optional backup.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, content, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if opts.Write && result.Modified && !result.Skipped {
		if err := commit(ctx, result, opts); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func commit(ctx context.Context, result *PipelineResult, opts PipelineOptions) error {
	info := result.OriginalInfo

	changed, err := fsutil.Changed(ctx, info, opts.StrictRaceDetection)
	switch {
	case err != nil:
		return fmt.Errorf("check modified: %w", err)
	case changed:
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return nil
	}

	if opts.Backup {
		if result.BackupCreated, err = fsutil.CreateBackup(ctx, info.Path); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}
	if err := fsutil.WriteAtomic(ctx, info.Path, result.Formatted, info.Mode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return nil
}

// ProcessContent parses content and runs the requested stages without
// touching the filesystem; Write is ignored.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	snapshot, err := p.Engine.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
	}

	result.FileResult = &FileResult{Snapshot: snapshot}
	if opts.Lint {
		if result.FileResult, err = p.Engine.LintSnapshot(ctx, snapshot, cfg); err != nil {
			return nil, err
		}
	}

	if !opts.Format {
		return result, nil
	}

	if p.Formatter == nil {
		return nil, fmt.Errorf("%w: no formatter configured", ErrFormatFailure)
	}

	formatted, err := p.Formatter.Format(snapshot.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatFailure, err)
	}
	result.Formatted = formatted
	result.Modified = !bytes.Equal(content, formatted)

	if !result.Modified {
		return result, nil
	}

	if opts.Verify {
		reparsed, err := p.Engine.Parser.Parse(ctx, path, formatted)
		if err != nil {
			return nil, fmt.Errorf("%w: re-parse: %w", ErrFormatFailure, err)
		}
		if !slices.Equal(reparsed.Footnotes, snapshot.Footnotes) {
			result.Skipped = true
			result.SkipReason = "formatting would change the defined footnotes"
		}
	}

	if opts.Diff {
		result.Diff = diff.Compute(path, content, formatted)
	}

	return result, nil
}

func categorizeError(err error) error {
	switch {
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// IsPipelineError reports whether err carries one of the pipeline errors.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrFormatFailure, ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// PipelineOptionsFromConfig builds the options for check (lint) or fmt
// (format). The write, diff and backup settings apply only to formatting.
func PipelineOptionsFromConfig(cfg *config.Config, lint, format bool) PipelineOptions {
	opts := DefaultPipelineOptions()
	opts.Lint = lint
	opts.Format = format
	if cfg != nil && format {
		opts.Write = cfg.Write
		opts.Diff = cfg.Diff
		opts.Backup = cfg.Backup
	}
	return opts
}
