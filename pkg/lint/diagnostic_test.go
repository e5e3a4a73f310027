package lint_test

import (
	"testing"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
)

func TestNewDiagnostic(t *testing.T) {
	t.Parallel()

	file := mdast.NewFileSnapshot("notes.md", []byte("one\ntwo [^x]\n"))
	node := mdast.NewFootnoteReference("x", "x")
	mdast.SetRange(node, 8, 12)
	mdast.SetFile(node, file)

	diag := lint.NewDiagnostic("FN002", node, "Footnote [^x] is not defined").Build()

	if diag.RuleID != "FN002" || diag.FilePath != "notes.md" {
		t.Errorf("diag = %+v", diag)
	}

	if diag.StartLine != 2 || diag.StartColumn != 5 || diag.EndLine != 2 || diag.EndColumn != 9 {
		t.Errorf("position = %d:%d-%d:%d, want 2:5-2:9",
			diag.StartLine, diag.StartColumn, diag.EndLine, diag.EndColumn)
	}
}

func TestNewDiagnostic_NilNode(t *testing.T) {
	t.Parallel()

	diag := lint.NewDiagnostic("FN002", nil, "message").Build()

	if diag.FilePath != "" || diag.StartLine != 0 {
		t.Errorf("nil node should leave location empty, got %+v", diag)
	}
}

func TestDiagnosticBuilder_Chain(t *testing.T) {
	t.Parallel()

	pos := mdast.SourcePosition{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 6}
	diag := lint.NewDiagnosticAt("FN003", "a.md", pos, "unused").
		WithSeverity(config.SeverityInfo).
		WithSuggestion("Reference the footnote or remove its definition").
		Build()

	if diag.Severity != config.SeverityInfo {
		t.Errorf("Severity = %q, want info", diag.Severity)
	}

	if diag.Suggestion == "" {
		t.Error("Suggestion should be set")
	}

	if diag.SourcePosition() != pos {
		t.Errorf("SourcePosition() = %+v, want %+v", diag.SourcePosition(), pos)
	}
}
