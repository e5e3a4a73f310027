// Package pretty renders footmark output for terminals with lipgloss.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles groups the lipgloss styles used across the text output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TreeBranch   lipgloss.Style
	TreeKind     lipgloss.Style
	TreeFootnote lipgloss.Style
	TreeValue    lipgloss.Style
	TreePosition lipgloss.Style
	TableHeader  lipgloss.Style
	TableBorder  lipgloss.Style

	Dim lipgloss.Style
}

// ANSI 256 palette indexes.
const (
	colorSilver  = "7"
	colorGray    = "8"
	colorRed     = "9"
	colorGreen   = "10"
	colorYellow  = "11"
	colorBlue    = "12"
	colorMagenta = "13"
	colorCyan    = "14"
)

type styleSpec struct {
	fg     string
	bold   bool
	italic bool
}

// NewStyles returns the styles for one output stream. With color disabled
// every style renders text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	mk := func(spec styleSpec) lipgloss.Style {
		s := lipgloss.NewStyle()
		if !colorEnabled {
			return s
		}
		if spec.fg != "" {
			s = s.Foreground(lipgloss.Color(spec.fg))
		}
		return s.Bold(spec.bold).Italic(spec.italic)
	}

	return &Styles{
		Error:   mk(styleSpec{fg: colorRed, bold: true}),
		Warning: mk(styleSpec{fg: colorYellow, bold: true}),
		Info:    mk(styleSpec{fg: colorBlue, bold: true}),

		FilePath:   mk(styleSpec{bold: true}),
		RuleID:     mk(styleSpec{fg: colorGray}),
		Message:    mk(styleSpec{}),
		Suggestion: mk(styleSpec{fg: colorGreen, italic: true}),
		SourceLine: mk(styleSpec{fg: colorSilver}),
		Caret:      mk(styleSpec{fg: colorRed}),

		DiffHeader:  mk(styleSpec{bold: true}),
		DiffHunk:    mk(styleSpec{fg: colorCyan}),
		DiffAdd:     mk(styleSpec{fg: colorGreen}),
		DiffRemove:  mk(styleSpec{fg: colorRed}),
		DiffContext: mk(styleSpec{fg: colorGray}),

		SummaryTitle: mk(styleSpec{bold: true}),
		SummaryValue: mk(styleSpec{}),
		Success:      mk(styleSpec{fg: colorGreen, bold: true}),
		Failure:      mk(styleSpec{fg: colorRed, bold: true}),

		TreeBranch:   mk(styleSpec{fg: colorGray}),
		TreeKind:     mk(styleSpec{bold: true}),
		TreeFootnote: mk(styleSpec{fg: colorMagenta, bold: true}),
		TreeValue:    mk(styleSpec{fg: colorGreen}),
		TreePosition: mk(styleSpec{fg: colorGray}),
		TableHeader:  mk(styleSpec{fg: colorSilver, bold: true}),
		TableBorder:  mk(styleSpec{fg: colorGray}),

		Dim: mk(styleSpec{fg: colorGray}),
	}
}

// IsColorEnabled resolves a --color mode ("auto", "always" or "never")
// for writer. Auto enables color only for terminals and honors NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
