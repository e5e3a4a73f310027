package rules

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// ForwardReferenceRule reports calls written before their definition (FN001).
//
// A call only resolves when its definition precedes it, so such calls stay
// plain text in the tree. Renderers that collect definitions first still link
// them, which makes the mismatch easy to miss.
type ForwardReferenceRule struct {
	lint.BaseRule
}

// NewForwardReferenceRule creates a new forward reference rule.
func NewForwardReferenceRule() *ForwardReferenceRule {
	return &ForwardReferenceRule{
		BaseRule: lint.NewBaseRule(
			"FN001",
			"forward-reference",
			"Footnote calls should come after the definition they refer to",
			config.SeverityWarning,
		),
	}
}

// Apply reports every unresolved call whose label is defined later.
func (r *ForwardReferenceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	idx := ctx.Footnotes()

	var diags []lint.Diagnostic
	for _, call := range idx.TextCalls {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		def := idx.FirstDefinition(call.Identifier)
		if def == nil {
			continue
		}

		msg := fmt.Sprintf("Footnote [^%s] is referenced before it is defined", call.Label)
		if ctx.Rendered(call.Range.StartOffset) {
			msg += "; renderers link it but it stays text here"
		}

		defLine, _ := ctx.File.LineAt(def.Range.StartOffset)
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, ctx.Position(call.Range), msg).
			WithSuggestion(fmt.Sprintf("Move the definition on line %d above this reference", defLine)).
			Build())
	}

	return diags, nil
}

// UndefinedReferenceRule reports calls with no definition at all (FN002).
type UndefinedReferenceRule struct {
	lint.BaseRule
}

// NewUndefinedReferenceRule creates a new undefined reference rule.
func NewUndefinedReferenceRule() *UndefinedReferenceRule {
	return &UndefinedReferenceRule{
		BaseRule: lint.NewBaseRule(
			"FN002",
			"undefined-reference",
			"Footnote calls should have a matching definition",
			config.SeverityWarning,
		),
	}
}

// Apply reports unresolved calls whose label is never defined.
func (r *UndefinedReferenceRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	idx := ctx.Footnotes()

	var diags []lint.Diagnostic
	for _, call := range idx.TextCalls {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if idx.Defined(call.Identifier) {
			continue
		}

		msg := fmt.Sprintf("Footnote [^%s] is not defined", call.Label)
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, ctx.Position(call.Range), msg).
			WithSuggestion(fmt.Sprintf("Add a definition: [^%s]: ...", call.Label)).
			Build())
	}

	return diags, nil
}

// UnusedDefinitionRule reports definitions nothing refers to (FN003).
type UnusedDefinitionRule struct {
	lint.BaseRule
}

// NewUnusedDefinitionRule creates a new unused definition rule.
func NewUnusedDefinitionRule() *UnusedDefinitionRule {
	return &UnusedDefinitionRule{
		BaseRule: lint.NewBaseRule(
			"FN003",
			"unused-definition",
			"Footnote definitions should be referenced",
			config.SeverityInfo,
		),
	}
}

// Apply reports the first definition of every identifier that has neither a
// resolved reference nor a forward call. Forward calls are FN001's concern.
func (r *UnusedDefinitionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	idx := ctx.Footnotes()

	called := make(map[string]bool, len(idx.TextCalls))
	for _, call := range idx.TextCalls {
		called[call.Identifier] = true
	}

	var diags []lint.Diagnostic
	for _, id := range idx.Identifiers {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if len(idx.References[id]) > 0 || called[id] {
			continue
		}

		def := idx.FirstDefinition(id)
		msg := fmt.Sprintf("Footnote [^%s] is defined but never referenced", def.Label())
		diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, ctx.Position(labelRange(def)), msg).
			WithSuggestion("Reference the footnote or remove its definition").
			Build())
	}

	return diags, nil
}

// DuplicateDefinitionRule reports definitions that repeat an identifier
// (FN004). Only the first definition is used.
type DuplicateDefinitionRule struct {
	lint.BaseRule
}

// NewDuplicateDefinitionRule creates a new duplicate definition rule.
func NewDuplicateDefinitionRule() *DuplicateDefinitionRule {
	return &DuplicateDefinitionRule{
		BaseRule: lint.NewBaseRule(
			"FN004",
			"duplicate-definition",
			"Footnote identifiers should be defined once",
			config.SeverityWarning,
		),
	}
}

// Apply reports the second and later definitions of each identifier.
func (r *DuplicateDefinitionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	idx := ctx.Footnotes()

	var diags []lint.Diagnostic
	for _, id := range idx.Identifiers {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		defs := idx.Definitions[id]
		if len(defs) < 2 {
			continue
		}

		firstLine, _ := ctx.File.LineAt(defs[0].Range.StartOffset)
		for _, def := range defs[1:] {
			msg := fmt.Sprintf("Footnote [^%s] is already defined on line %d", def.Label(), firstLine)
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, ctx.Position(labelRange(def)), msg).
				WithSuggestion("Rename or remove this definition; only the first one is used").
				Build())
		}
	}

	return diags, nil
}

// labelRange narrows a definition to its "[^label]:" marker.
func labelRange(def *mdast.Node) mdast.SourceRange {
	r := def.Range
	if end := bytes.Index(def.Text(), []byte("]:")); end >= 0 {
		r.EndOffset = r.StartOffset + end + 2
	}
	return r
}
