package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/footmark"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/lint/rules"
	"github.com/yaklabco/footmark/pkg/parser/goldmark"
)

// applyRule parses markdown and runs a single rule, optionally with the
// goldmark reference parse installed.
func applyRule(t *testing.T, rule lint.Rule, markdown string, withReference bool) []lint.Diagnostic {
	t.Helper()

	ctx := context.Background()
	file, err := footmark.New().Parse(ctx, "test.md", []byte(markdown))
	require.NoError(t, err)

	ruleCtx := lint.NewRuleContext(ctx, file, config.NewConfig())
	if withReference {
		ruleCtx.SetReferenceParser(goldmark.New(config.FlavorGFM))
	}

	diags, err := rule.Apply(ruleCtx)
	require.NoError(t, err)

	return diags
}

func TestForwardReferenceRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewForwardReferenceRule()

	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"call after definition", "[^1]: note\n\nb[^1]\n", 0},
		{"call before definition", "a[^1]b\n\n[^1]: note\n", 1},
		{"undefined call", "x[^nope]\n", 0},
		{"escaped call", "x\\[^1]\n\n[^1]: note\n", 0},
		{"two forward calls", "[^a] and [^b]\n\n[^a]: A\n\n[^b]: B\n", 2},
		{"folded label", "see [^Note]\n\n[^note]: n\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := applyRule(t, rule, tt.markdown, false)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestForwardReferenceRule_Position(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewForwardReferenceRule(), "a[^1]b\n\n[^1]: note\n", false)
	require.Len(t, diags, 1)

	diag := diags[0]
	assert.Equal(t, "FN001", diag.RuleID)
	assert.Equal(t, "test.md", diag.FilePath)
	assert.Equal(t, 1, diag.StartLine)
	assert.Equal(t, 2, diag.StartColumn)
	assert.Equal(t, 1, diag.EndLine)
	assert.Equal(t, 6, diag.EndColumn)
	assert.Equal(t, "Footnote [^1] is referenced before it is defined", diag.Message)
	assert.Equal(t, "Move the definition on line 3 above this reference", diag.Suggestion)
}

func TestForwardReferenceRule_Rendered(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewForwardReferenceRule(), "a[^1]b\n\n[^1]: note\n", true)
	require.Len(t, diags, 1)

	assert.Contains(t, diags[0].Message, "renderers link it")
}

func TestUndefinedReferenceRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewUndefinedReferenceRule()

	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"defined before", "[^1]: note\n\nb[^1]\n", 0},
		{"defined after", "a[^1]\n\n[^1]: note\n", 0},
		{"undefined", "x[^nope]\n", 1},
		{"escaped", "x\\[^nope]\n", 0},
		{"empty label", "x[^ ]\n", 0},
		{"twice", "[^x] [^x]\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := applyRule(t, rule, tt.markdown, false)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestUndefinedReferenceRule_Message(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewUndefinedReferenceRule(), "x[^nope]\n", false)
	require.Len(t, diags, 1)

	assert.Equal(t, "Footnote [^nope] is not defined", diags[0].Message)
	assert.Equal(t, "Add a definition: [^nope]: ...", diags[0].Suggestion)
	assert.Equal(t, 2, diags[0].StartColumn)
}

func TestUnusedDefinitionRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewUnusedDefinitionRule()

	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{"referenced", "[^1]: note\n\nb[^1]\n", 0},
		{"called before", "a[^1]\n\n[^1]: note\n", 0},
		{"unused", "[^1]: note\n\ntext\n", 1},
		{"duplicate reported once", "[^1]: a\n\n[^1]: b\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := applyRule(t, rule, tt.markdown, false)
			assert.Len(t, diags, tt.want)
		})
	}
}

func TestUnusedDefinitionRule_Position(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewUnusedDefinitionRule(), "[^1]: note\n\ntext\n", false)
	require.Len(t, diags, 1)

	diag := diags[0]
	assert.Equal(t, 1, diag.StartLine)
	assert.Equal(t, 1, diag.StartColumn)
	assert.Equal(t, 6, diag.EndColumn)
	assert.Equal(t, "Footnote [^1] is defined but never referenced", diag.Message)
}

func TestDuplicateDefinitionRule(t *testing.T) {
	t.Parallel()

	rule := rules.NewDuplicateDefinitionRule()

	t.Run("single definition", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, applyRule(t, rule, "[^1]: a\n\nc[^1]\n", false))
	})

	t.Run("repeated definition", func(t *testing.T) {
		t.Parallel()

		diags := applyRule(t, rule, "[^1]: a\n\n[^1]: b\n\nc[^1]\n", false)
		require.Len(t, diags, 1)

		assert.Equal(t, 3, diags[0].StartLine)
		assert.Equal(t, 1, diags[0].StartColumn)
		assert.Equal(t, "Footnote [^1] is already defined on line 1", diags[0].Message)
	})

	t.Run("three definitions", func(t *testing.T) {
		t.Parallel()

		diags := applyRule(t, rule, "[^x]: a\n\n[^X]: b\n\n[^x]: c\n", false)
		assert.Len(t, diags, 2)
	})
}

func TestRules_NilRoot(t *testing.T) {
	t.Parallel()

	ruleCtx := lint.NewRuleContext(context.Background(), nil, config.NewConfig())

	for _, rule := range []lint.Rule{
		rules.NewForwardReferenceRule(),
		rules.NewUndefinedReferenceRule(),
		rules.NewUnusedDefinitionRule(),
		rules.NewDuplicateDefinitionRule(),
	} {
		diags, err := rule.Apply(ruleCtx)
		require.NoError(t, err)
		assert.Empty(t, diags, rule.ID())
	}
}

func TestRules_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	file, err := footmark.New().Parse(ctx, "test.md", []byte("x[^nope]\n"))
	require.NoError(t, err)
	cancel()

	_, err = rules.NewUndefinedReferenceRule().Apply(lint.NewRuleContext(ctx, file, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
