package lint_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/footmark"
	"github.com/yaklabco/footmark/pkg/fsutil"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// formatterFunc adapts a function to lint.Formatter.
type formatterFunc func(root *mdast.Node) ([]byte, error)

func (f formatterFunc) Format(root *mdast.Node) ([]byte, error) { return f(root) }

func newFootmarkPipeline(registry *lint.Registry) *lint.Pipeline {
	processor := footmark.New()
	return lint.NewPipeline(lint.NewEngine(processor, registry), processor)
}

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestNewPipeline(t *testing.T) {
	t.Parallel()

	processor := footmark.New()
	engine := lint.NewEngine(processor, lint.NewRegistry())

	pipeline := lint.NewPipeline(engine, processor)

	if pipeline.Engine != engine {
		t.Error("Engine not set correctly")
	}
	if pipeline.Formatter == nil {
		t.Error("Formatter not set")
	}
}

func TestPipeline_ProcessFile_LintOnly(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "[^1]: note\n\nSee [^1].")

	result, err := newFootmarkPipeline(lint.NewRegistry()).
		ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Path != path {
		t.Errorf("Path = %q, want %q", result.Path, path)
	}
	if result.OriginalInfo == nil {
		t.Error("OriginalInfo should be set")
	}
	if result.Formatted != nil || result.Modified || result.Written {
		t.Error("lint-only runs should not format or write")
	}
	if result.Summary() != "ok" {
		t.Errorf("Summary() = %q, want ok", result.Summary())
	}
}

func TestPipeline_ProcessFile_WithDiagnostics(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "text\n")

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("FN002", "undefined-reference", "", ""),
		diags:    []lint.Diagnostic{{Message: "Footnote [^x] is not defined", StartLine: 1, StartColumn: 1}},
	})

	result, err := newFootmarkPipeline(registry).
		ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.IssueCount() != 1 {
		t.Errorf("IssueCount() = %d, want 1", result.IssueCount())
	}
	if result.Summary() != "issues found" {
		t.Errorf("Summary() = %q, want %q", result.Summary(), "issues found")
	}
}

func TestPipeline_ProcessFile_FormatCheck(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "[^1]: note\n\nSee [^1].")

	opts := lint.PipelineOptionsFromConfig(config.NewConfig(), false, true)
	opts.Diff = true

	result, err := newFootmarkPipeline(lint.NewRegistry()).
		ProcessFile(context.Background(), path, config.NewConfig(), opts)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Modified {
		t.Fatal("missing final newline should be reported as a change")
	}
	if string(result.Formatted) != "[^1]: note\n\nSee [^1].\n" {
		t.Errorf("Formatted = %q", result.Formatted)
	}
	if result.Diff == nil || !result.Diff.HasChanges() {
		t.Error("Diff should be computed")
	}
	if result.Written {
		t.Error("file should not be written without Write")
	}
	if result.Summary() != "changes pending" {
		t.Errorf("Summary() = %q, want %q", result.Summary(), "changes pending")
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "[^1]: note\n\nSee [^1]." {
		t.Error("file changed on disk")
	}
}

func TestPipeline_ProcessFile_Write(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "[^1]: note\n\nSee [^1].")

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Backup = true
	opts := lint.PipelineOptionsFromConfig(cfg, false, true)

	result, err := newFootmarkPipeline(lint.NewRegistry()).ProcessFile(context.Background(), path, cfg, opts)
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Written || !result.BackupCreated {
		t.Errorf("Written = %v, BackupCreated = %v; want both", result.Written, result.BackupCreated)
	}
	if result.Summary() != "formatted (backup created)" {
		t.Errorf("Summary() = %q", result.Summary())
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "[^1]: note\n\nSee [^1].\n" {
		t.Errorf("written = %q", got)
	}

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "[^1]: note\n\nSee [^1]." {
		t.Errorf("backup = %q", backup)
	}
}

func TestPipeline_ProcessFile_UnchangedNotWritten(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "[^1]: note\n\nSee [^1].\n")

	cfg := config.NewConfig()
	cfg.Write = true

	result, err := newFootmarkPipeline(lint.NewRegistry()).
		ProcessFile(context.Background(), path, cfg, lint.PipelineOptionsFromConfig(cfg, false, true))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if result.Modified || result.Written {
		t.Errorf("Modified = %v, Written = %v; want neither", result.Modified, result.Written)
	}
}

func TestPipeline_ProcessFile_VerifySkips(t *testing.T) {
	t.Parallel()

	path := writeMarkdown(t, "[^1]: note\n\nSee [^1].\n")

	processor := footmark.New()
	dropAll := formatterFunc(func(*mdast.Node) ([]byte, error) {
		return []byte("See.\n"), nil
	})
	pipeline := lint.NewPipeline(lint.NewEngine(processor, lint.NewRegistry()), dropAll)

	cfg := config.NewConfig()
	cfg.Write = true

	result, err := pipeline.ProcessFile(context.Background(), path, cfg, lint.PipelineOptionsFromConfig(cfg, false, true))
	if err != nil {
		t.Fatalf("ProcessFile() error = %v", err)
	}

	if !result.Skipped || result.Written {
		t.Errorf("Skipped = %v, Written = %v; want skipped and not written", result.Skipped, result.Written)
	}
	if result.Summary() != "skipped: formatting would change the defined footnotes" {
		t.Errorf("Summary() = %q", result.Summary())
	}
}

func TestPipeline_ProcessFile_FileNotFound(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.md")

	_, err := newFootmarkPipeline(lint.NewRegistry()).
		ProcessFile(context.Background(), path, config.NewConfig(), lint.DefaultPipelineOptions())

	if !errors.Is(err, lint.ErrFileNotFound) {
		t.Errorf("error = %v, want ErrFileNotFound", err)
	}
	if !lint.IsPipelineError(err) {
		t.Error("IsPipelineError should recognize ErrFileNotFound")
	}
}

func TestPipeline_ProcessContent_Errors(t *testing.T) {
	t.Parallel()

	t.Run("parse failure", func(t *testing.T) {
		t.Parallel()

		parser := &mockParser{
			parseFunc: func(context.Context, string, []byte) (*mdast.FileSnapshot, error) {
				return nil, errors.New("bad")
			},
		}
		pipeline := lint.NewPipeline(lint.NewEngine(parser, lint.NewRegistry()), nil)

		_, err := pipeline.ProcessContent(context.Background(), "a.md", nil, nil, lint.DefaultPipelineOptions())
		if !errors.Is(err, lint.ErrParseFailure) {
			t.Errorf("error = %v, want ErrParseFailure", err)
		}
	})

	t.Run("missing formatter", func(t *testing.T) {
		t.Parallel()

		pipeline := lint.NewPipeline(lint.NewEngine(footmark.New(), lint.NewRegistry()), nil)
		opts := lint.PipelineOptionsFromConfig(nil, false, true)

		_, err := pipeline.ProcessContent(context.Background(), "a.md", []byte("x"), nil, opts)
		if !errors.Is(err, lint.ErrFormatFailure) {
			t.Errorf("error = %v, want ErrFormatFailure", err)
		}
	})

	t.Run("formatter failure", func(t *testing.T) {
		t.Parallel()

		failing := formatterFunc(func(*mdast.Node) ([]byte, error) {
			return nil, errors.New("unknown node")
		})
		pipeline := lint.NewPipeline(lint.NewEngine(footmark.New(), lint.NewRegistry()), failing)
		opts := lint.PipelineOptionsFromConfig(nil, false, true)

		_, err := pipeline.ProcessContent(context.Background(), "a.md", []byte("x"), nil, opts)
		if !errors.Is(err, lint.ErrFormatFailure) {
			t.Errorf("error = %v, want ErrFormatFailure", err)
		}
	})
}

func TestPipelineResult_Summary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result lint.PipelineResult
		want   string
	}{
		{"ok", lint.PipelineResult{}, "ok"},
		{"skipped", lint.PipelineResult{Skipped: true, SkipReason: "file modified during processing"}, "skipped: file modified during processing"},
		{"written", lint.PipelineResult{Written: true, Modified: true}, "formatted"},
		{"pending", lint.PipelineResult{Modified: true}, "changes pending"},
		{"issues", lint.PipelineResult{FileResult: &lint.FileResult{Diagnostics: []lint.Diagnostic{{}}}}, "issues found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.result.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPipelineOptions(t *testing.T) {
	t.Parallel()

	opts := lint.DefaultPipelineOptions()

	if !opts.Lint || opts.Format || opts.Write || opts.Backup {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if !opts.Verify || !opts.StrictRaceDetection {
		t.Error("verification and strict race detection should default on")
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Diff = true
	cfg.Backup = true

	check := lint.PipelineOptionsFromConfig(cfg, true, false)
	if !check.Lint || check.Format || check.Write || check.Diff || check.Backup {
		t.Errorf("check options = %+v", check)
	}

	format := lint.PipelineOptionsFromConfig(cfg, false, true)
	if format.Lint || !format.Format || !format.Write || !format.Diff || !format.Backup {
		t.Errorf("fmt options = %+v", format)
	}
}
