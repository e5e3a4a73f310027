package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/footmark/pkg/footmark"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
)

func parseFootnotes(t *testing.T, markdown string) *lint.FootnoteIndex {
	t.Helper()

	snapshot, err := footmark.New().Parse(context.Background(), "test.md", []byte(markdown))
	require.NoError(t, err)

	return lint.CollectFootnotes(snapshot.Root)
}

func TestCollectFootnotes(t *testing.T) {
	t.Parallel()

	idx := parseFootnotes(t, "[^b]: B\n\n[^a]: A\n\nsee [^a] and [^b] and [^a]\n")

	assert.Equal(t, []string{"b", "a"}, idx.Identifiers)
	assert.True(t, idx.Defined("a"))
	assert.False(t, idx.Defined("c"))
	assert.Len(t, idx.References["a"], 2)
	assert.Len(t, idx.References["b"], 1)
	assert.Empty(t, idx.TextCalls)

	def := idx.FirstDefinition("a")
	require.NotNil(t, def)
	assert.Equal(t, mdast.NodeFootnoteDefinition, def.Kind)
	assert.Nil(t, idx.FirstDefinition("c"))
}

func TestCollectFootnotes_TextCalls(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     []lint.TextCall
	}{
		{
			name:     "forward call",
			markdown: "a[^1]b\n\n[^1]: note\n",
			want: []lint.TextCall{
				{Identifier: "1", Label: "1", Range: mdast.SourceRange{StartOffset: 1, EndOffset: 5}},
			},
		},
		{
			name:     "undefined call with folded label",
			markdown: "x [^Big  Note]\n",
			want: []lint.TextCall{
				{Identifier: "big note", Label: "Big  Note", Range: mdast.SourceRange{StartOffset: 2, EndOffset: 14}},
			},
		},
		{
			name:     "escaped opening bracket",
			markdown: "\\[^1]\n",
			want:     nil,
		},
		{
			name:     "escaped bracket inside label",
			markdown: "x[^a\\]b]\n",
			want: []lint.TextCall{
				{Identifier: "a\\]b", Label: "a\\]b", Range: mdast.SourceRange{StartOffset: 1, EndOffset: 8}},
			},
		},
		{
			name:     "blank label",
			markdown: "x[^  ]\n",
			want:     nil,
		},
		{
			name:     "second line",
			markdown: "one\ntwo[^z]\n",
			want: []lint.TextCall{
				{Identifier: "z", Label: "z", Range: mdast.SourceRange{StartOffset: 7, EndOffset: 11}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			idx := parseFootnotes(t, tt.markdown)
			assert.Equal(t, tt.want, idx.TextCalls)
		})
	}
}

func TestCollectFootnotes_Duplicates(t *testing.T) {
	t.Parallel()

	idx := parseFootnotes(t, "[^x]: one\n\n[^X]: two\n")

	assert.Equal(t, []string{"x"}, idx.Identifiers)
	require.Len(t, idx.Definitions["x"], 2)
	assert.Same(t, idx.Definitions["x"][0], idx.FirstDefinition("x"))
}

func TestCollectFootnotes_NilRoot(t *testing.T) {
	t.Parallel()

	idx := lint.CollectFootnotes(nil)

	assert.NotNil(t, idx.Definitions)
	assert.NotNil(t, idx.References)
	assert.Empty(t, idx.Identifiers)
}
