package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/footmark/internal/ui/pretty"
)

func TestNewStyles_NoColorIsPlain(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	for name, style := range map[string]interface{ Render(...string) string }{
		"Error":        styles.Error,
		"FilePath":     styles.FilePath,
		"Caret":        styles.Caret,
		"DiffAdd":      styles.DiffAdd,
		"Success":      styles.Success,
		"TreeFootnote": styles.TreeFootnote,
		"TableHeader":  styles.TableHeader,
	} {
		assert.Equal(t, "[^1]", style.Render("[^1]"), name)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer

	tests := []struct {
		mode string
		want bool
	}{
		{"always", true},
		{"never", false},
		{"auto", false},
		{"", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pretty.IsColorEnabled(tt.mode, &buf), "mode %q with a buffer", tt.mode)
	}
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always wins over NO_COLOR")
}
