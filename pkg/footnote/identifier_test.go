package footnote_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/footmark/pkg/footnote"
)

func TestNormalizeIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"a", "A"},
		{" A\nb ", "A B"},
		{"a\t\t b", "A B"},
		{"a\r\nb", "A B"},
		{"ß", "SS"},
		{"SS", "SS"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, footnote.NormalizeIdentifier(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "note one", footnote.Identifier("Note  One"))
	assert.Equal(t, "a b", footnote.Identifier(" A\nb "))
	assert.Equal(t, footnote.Identifier("a b"), footnote.Identifier(" A\nb "))
	assert.Equal(t, "ss", footnote.Identifier("ß"))
}
