package pretty

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
)

// contextIndent prefixes source lines and their underline.
const contextIndent = "      "

// tabWidth is the width lipgloss expands tabs to when rendering.
const tabWidth = 4

// FormatDiagnostic renders one diagnostic as
//
//	path:line:col  severity  message  (rule)
//
// followed by the underlined source line when sourceLine is not empty and a
// suggestion line when the diagnostic carries one.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, sourceLine string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	fmt.Fprintf(&b, "  %s:%d:%d  %s  %s  %s\n",
		s.FilePath.Render(diag.FilePath),
		diag.StartLine,
		diag.StartColumn,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)+")"),
	)

	if sourceLine != "" {
		end := diag.StartColumn
		if diag.EndLine == diag.StartLine && diag.EndColumn > diag.StartColumn {
			end = diag.EndColumn
		}
		b.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn, end))
	}

	if diag.Suggestion != "" {
		b.WriteString(contextIndent + s.Dim.Render("hint:") + " " + s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return b.String()
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders a source line and underlines the 1-based
// byte columns [start, end). A zero start omits the underline.
func (s *Styles) FormatSourceContext(line string, start, end int) string {
	out := contextIndent + s.SourceLine.Render(line) + "\n"
	if start <= 0 {
		return out
	}

	startByte := min(start-1, len(line))
	var pad strings.Builder
	for _, r := range line[:startByte] {
		if r == '\t' {
			pad.WriteString(strings.Repeat(" ", tabWidth))
		} else {
			pad.WriteByte(' ')
		}
	}

	width := 1
	if end > start {
		endByte := min(end-1, len(line))
		width = max(1, utf8.RuneCountInString(line[startByte:endByte]))
	}

	return out + contextIndent + pad.String() + s.Caret.Render(strings.Repeat("^", width)) + "\n"
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}
