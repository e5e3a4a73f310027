package lint

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// FileResult holds a parsed file and the diagnostics found in it, sorted by
// position.
type FileResult struct {
	Snapshot    *mdast.FileSnapshot
	Diagnostics []Diagnostic

	// RuleErrors maps the ID of each rule that failed to its error. A
	// failing rule does not stop the others.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostic was found.
func (fr *FileResult) HasIssues() bool { return len(fr.Diagnostics) > 0 }

// IssueCount returns the number of diagnostics.
func (fr *FileResult) IssueCount() int { return len(fr.Diagnostics) }

// Engine parses files and runs the enabled rules over them.
type Engine struct {
	Parser Parser
	// Reference, when set, is the renderer-compatible parser that rules
	// compare the footnote parse against.
	Reference Parser
	Registry  *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile parses content and lints the result.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return e.LintSnapshot(ctx, snapshot, cfg)
}

// LintSnapshot runs the rules cfg enables against snapshot. Each diagnostic
// takes the severity configured for its rule.
func (e *Engine) LintSnapshot(ctx context.Context, snapshot *mdast.FileSnapshot, cfg *config.Config) (*FileResult, error) {
	result := &FileResult{Snapshot: snapshot, RuleErrors: make(map[string]error)}

	ruleCtx := NewRuleContext(ctx, snapshot, cfg)
	ruleCtx.Registry = e.Registry
	if e.Reference != nil {
		ruleCtx.SetReferenceParser(e.Reference)
	}

	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}
		for i := range diags {
			stamp(&diags[i], rr, snapshot.Path)
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	slices.SortStableFunc(result.Diagnostics, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.StartLine, b.StartLine),
			cmp.Compare(a.StartColumn, b.StartColumn),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
	return result, nil
}

// stamp fills the rule and file fields a rule left empty and applies the
// configured severity.
func stamp(d *Diagnostic, rr ResolvedRule, path string) {
	d.Severity = rr.Severity
	d.RuleID = cmp.Or(d.RuleID, rr.Rule.ID())
	d.RuleName = cmp.Or(d.RuleName, rr.Rule.Name())
	d.FilePath = cmp.Or(d.FilePath, path)
}
