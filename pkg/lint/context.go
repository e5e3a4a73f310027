package lint

import (
	"context"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// RuleContext provides all context needed by a rule to inspect a file.
//
// RuleContext stores context.Context as a field (Ctx) because it is a
// short-lived parameter object created per file. Facts derived from the file
// are computed lazily and shared by every rule run against it.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the parsed FileSnapshot.
	File *mdast.FileSnapshot

	// Root is the AST root node (convenience alias for File.Root).
	Root *mdast.Node

	// Config is the resolved configuration.
	Config *config.Config

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	shared *fileFacts
}

type fileFacts struct {
	index     *FootnoteIndex
	reference Parser
	rendered  map[int]bool
	parsed    bool
}

// NewRuleContext creates a RuleContext for the given file and configuration.
func NewRuleContext(ctx context.Context, file *mdast.FileSnapshot, cfg *config.Config) *RuleContext {
	var root *mdast.Node
	if file != nil {
		root = file.Root
	}

	return &RuleContext{
		Ctx:    ctx,
		File:   file,
		Root:   root,
		Config: cfg,
		shared: &fileFacts{},
	}
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Footnotes returns the footnote index of the file, building it lazily.
func (rc *RuleContext) Footnotes() *FootnoteIndex {
	if rc.shared.index == nil {
		rc.shared.index = CollectFootnotes(rc.Root)
	}
	return rc.shared.index
}

// SetReferenceParser installs the parser used by Rendered.
func (rc *RuleContext) SetReferenceParser(p Parser) {
	rc.shared.reference = p
	rc.shared.parsed = false
	rc.shared.rendered = nil
}

// Rendered reports whether the reference parse turned the call starting at
// offset into a footnote link. Without a reference parser, or when it fails,
// nothing is rendered.
func (rc *RuleContext) Rendered(offset int) bool {
	if !rc.shared.parsed {
		rc.shared.parsed = true
		rc.shared.rendered = rc.renderedCalls()
	}
	return rc.shared.rendered[offset]
}

func (rc *RuleContext) renderedCalls() map[int]bool {
	if rc.shared.reference == nil || rc.File == nil {
		return nil
	}

	snapshot, err := rc.shared.reference.Parse(rc.Ctx, rc.File.Path, rc.File.Content)
	if err != nil {
		return nil
	}

	rendered := make(map[int]bool)
	for _, ref := range mdast.FindByKind(snapshot.Root, mdast.NodeFootnoteReference) {
		if ref.Range.IsValid() {
			rendered[ref.Range.StartOffset] = true
		}
	}
	return rendered
}

// Position converts a byte range of the file to a line/column range.
func (rc *RuleContext) Position(r mdast.SourceRange) mdast.SourcePosition {
	if rc.File == nil || !r.IsValid() {
		return mdast.SourcePosition{}
	}

	startLine, startCol := rc.File.LineAt(r.StartOffset)
	endLine, endCol := rc.File.LineAt(r.EndOffset)

	return mdast.SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}
