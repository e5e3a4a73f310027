package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/footmark"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// mockParser implements lint.Parser for testing.
type mockParser struct {
	parseFunc func(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

func (p *mockParser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if p.parseFunc != nil {
		return p.parseFunc(ctx, path, content)
	}
	snapshot := mdast.NewFileSnapshot(path, content)
	snapshot.Root = mdast.NewDocument()
	return snapshot, nil
}

// diagnosticRule is a test rule that returns fixed diagnostics.
type diagnosticRule struct {
	lint.BaseRule
	diags []lint.Diagnostic
	err   error
}

func (r *diagnosticRule) Apply(_ *lint.RuleContext) ([]lint.Diagnostic, error) {
	return r.diags, r.err
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	parser := &mockParser{}
	registry := lint.NewRegistry()

	engine := lint.NewEngine(parser, registry)

	assert.Same(t, parser, engine.Parser)
	assert.Same(t, registry, engine.Registry)
	assert.Nil(t, engine.Reference)
}

func TestEngine_LintFile_SortsAndStamps(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("FN002", "undefined-reference", "", config.SeverityWarning),
		diags: []lint.Diagnostic{
			{Message: "second", StartLine: 3, StartColumn: 1},
			{Message: "first", StartLine: 1, StartColumn: 4},
		},
	})
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("FN001", "forward-reference", "", config.SeverityWarning),
		diags: []lint.Diagnostic{
			{Message: "same spot", StartLine: 1, StartColumn: 4},
		},
	})

	engine := lint.NewEngine(&mockParser{}, registry)

	result, err := engine.LintFile(context.Background(), "a.md", []byte("x"), config.NewConfig())
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 3)

	assert.Equal(t, "FN001", result.Diagnostics[0].RuleID)
	assert.Equal(t, "first", result.Diagnostics[1].Message)
	assert.Equal(t, "second", result.Diagnostics[2].Message)

	for _, diag := range result.Diagnostics {
		assert.Equal(t, "a.md", diag.FilePath)
		assert.Equal(t, config.SeverityWarning, diag.Severity)
		assert.NotEmpty(t, diag.RuleName)
	}

	assert.True(t, result.HasIssues())
	assert.Equal(t, 3, result.IssueCount())
}

func TestEngine_LintFile_RuleIDStamped(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("FN003", "unused-definition", "", config.SeverityInfo),
		diags:    []lint.Diagnostic{{RuleID: "FN003", Message: "m", StartLine: 1}},
	})

	errorSeverity := string(config.SeverityError)
	cfg := config.NewConfig()
	cfg.Rules["FN003"] = config.RuleConfig{Severity: &errorSeverity}

	result, err := lint.NewEngine(&mockParser{}, registry).LintFile(context.Background(), "a.md", nil, cfg)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)

	assert.Equal(t, config.SeverityError, result.Diagnostics[0].Severity)
	assert.Equal(t, "unused-definition", result.Diagnostics[0].RuleName)
}

func TestEngine_LintFile_RuleError(t *testing.T) {
	t.Parallel()

	ruleErr := errors.New("boom")
	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{
		BaseRule: lint.NewBaseRule("FN001", "forward-reference", "", ""),
		err:      ruleErr,
	})

	result, err := lint.NewEngine(&mockParser{}, registry).LintFile(context.Background(), "a.md", nil, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Diagnostics)
	assert.ErrorIs(t, result.RuleErrors["FN001"], ruleErr)
}

func TestEngine_LintFile_ParseError(t *testing.T) {
	t.Parallel()

	parseErr := errors.New("bad input")
	parser := &mockParser{
		parseFunc: func(context.Context, string, []byte) (*mdast.FileSnapshot, error) {
			return nil, parseErr
		},
	}

	_, err := lint.NewEngine(parser, lint.NewRegistry()).LintFile(context.Background(), "a.md", nil, nil)
	require.ErrorIs(t, err, parseErr)
	assert.Contains(t, err.Error(), "parse error")
}

func TestEngine_LintFile_Cancelled(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	registry.Register(&diagnosticRule{BaseRule: lint.NewBaseRule("FN001", "forward-reference", "", "")})

	ctx, cancel := context.WithCancel(context.Background())
	snapshot, err := (&mockParser{}).Parse(ctx, "a.md", nil)
	require.NoError(t, err)
	cancel()

	_, err = lint.NewEngine(&mockParser{}, registry).LintSnapshot(ctx, snapshot, nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_LintSnapshot_SharedFacts(t *testing.T) {
	t.Parallel()

	var seen []*lint.FootnoteIndex
	registry := lint.NewRegistry()
	for _, id := range []string{"FN001", "FN002"} {
		registry.Register(&indexRule{
			BaseRule: lint.NewBaseRule(id, id, "", ""),
			seen:     &seen,
		})
	}

	snapshot, err := footmark.New().Parse(context.Background(), "a.md", []byte("x[^1]\n"))
	require.NoError(t, err)

	_, err = lint.NewEngine(footmark.New(), registry).LintSnapshot(context.Background(), snapshot, nil)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1], "rules of one file share the footnote index")
}

// indexRule records the footnote index it was given.
type indexRule struct {
	lint.BaseRule
	seen *[]*lint.FootnoteIndex
}

func (r *indexRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	*r.seen = append(*r.seen, ctx.Footnotes())
	return nil, nil
}
