package lint

import (
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// Diagnostic is one finding reported by a rule. Lines and columns are
// 1-based; columns count bytes and the end column is exclusive.
type Diagnostic struct {
	RuleID   string
	RuleName string
	Message  string
	Severity config.Severity
	FilePath string

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	// Suggestion tells the reader how to resolve the finding.
	Suggestion string
}

// SourcePosition returns the span the diagnostic covers.
func (d *Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// DiagnosticBuilder assembles a Diagnostic with chained setters.
type DiagnosticBuilder struct {
	diag Diagnostic
}

// NewDiagnostic starts a diagnostic covering node. A nil node, or one not
// attached to a file, leaves the location empty.
func NewDiagnostic(ruleID string, node *mdast.Node, message string) *DiagnosticBuilder {
	if node == nil {
		return NewDiagnosticAt(ruleID, "", mdast.SourcePosition{}, message)
	}

	var path string
	if node.File != nil {
		path = node.File.Path
	}
	return NewDiagnosticAt(ruleID, path, node.SourcePosition(), message)
}

// NewDiagnosticAt starts a diagnostic at an explicit position.
func NewDiagnosticAt(ruleID, filePath string, pos mdast.SourcePosition, message string) *DiagnosticBuilder {
	b := &DiagnosticBuilder{diag: Diagnostic{
		RuleID:   ruleID,
		Message:  message,
		FilePath: filePath,
	}}
	b.diag.StartLine, b.diag.StartColumn = pos.StartLine, pos.StartColumn
	b.diag.EndLine, b.diag.EndColumn = pos.EndLine, pos.EndColumn
	return b
}

// WithSeverity sets the severity. The engine replaces it with the rule's
// configured severity.
func (b *DiagnosticBuilder) WithSeverity(s config.Severity) *DiagnosticBuilder {
	b.diag.Severity = s
	return b
}

// WithSuggestion sets the resolution hint.
func (b *DiagnosticBuilder) WithSuggestion(s string) *DiagnosticBuilder {
	b.diag.Suggestion = s
	return b
}

// Build returns the diagnostic.
func (b *DiagnosticBuilder) Build() Diagnostic {
	return b.diag
}
