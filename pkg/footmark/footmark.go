// Package footmark parses footnote Markdown into an mdast tree and writes
// trees back as Markdown.
//
// Parsing runs the tokenizer with the footnote constructs, resolves the
// event stream and compiles it into a tree:
//
//	p := footmark.New(footmark.WithInlineNotes(true))
//	snapshot, err := p.Parse(ctx, "notes.md", content)
//	out, err := p.Format(snapshot.Root)
package footmark

import (
	"context"
	"fmt"

	"github.com/yaklabco/footmark/pkg/compiler"
	"github.com/yaklabco/footmark/pkg/footnote"
	"github.com/yaklabco/footmark/pkg/markdown"
	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/syntax"
)

// Processor parses and formats footnote Markdown. It is safe for concurrent
// use: every call builds its own parse state.
type Processor struct {
	inlineNotes bool
	syntax      syntax.Extension
	compiler    *compiler.Compiler
	serializer  *markdown.Serializer
}

// Option configures a Processor.
type Option func(*Processor)

// WithInlineNotes enables ^[...] inline notes.
func WithInlineNotes(enabled bool) Option {
	return func(p *Processor) {
		p.inlineNotes = enabled
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}

	p.syntax = footnote.Syntax(footnote.Options{InlineNotes: p.inlineNotes})
	p.compiler = compiler.New(footnote.Tree())
	p.serializer = markdown.New(footnote.Markdown())

	return p
}

// InlineNotes reports whether inline notes are enabled.
func (p *Processor) InlineNotes() bool {
	return p.inlineNotes
}

// Parse converts raw Markdown bytes into a FileSnapshot.
//
// The content is copied; the caller may reuse it. Every node of the
// returned tree points back at the snapshot.
func (p *Processor) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	doc := syntax.Parse(snapshot.Content, p.syntax)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root, err := p.compiler.Compile(doc)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", displayPath(path), err)
	}

	snapshot.Root = root
	snapshot.Footnotes = doc.State.Footnotes()
	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// Format writes root as Markdown.
func (p *Processor) Format(root *mdast.Node) ([]byte, error) {
	out, err := p.serializer.Serialize(root)
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return []byte(out), nil
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}

func displayPath(path string) string {
	if path == "" {
		return "<stdin>"
	}
	return path
}
