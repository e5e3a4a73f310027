// Package goldmark provides the reference parse used to cross-check
// footnotes against a renderer. It reads Markdown with goldmark and its
// footnote extension and maps the result onto an mdast tree.
package goldmark

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// Parser implements lint.Parser using goldmark.
type Parser struct {
	flavor config.Flavor
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Invalid flavors default to CommonMark. Footnotes are always enabled.
func New(flavor config.Flavor) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() config.Flavor {
	return p.flavor
}

// Parse converts raw Markdown bytes into a FileSnapshot.
//
// Goldmark reads every block before any inline content, so calls resolve
// against definitions anywhere in the document. Definitions that nothing
// references are dropped by goldmark and do not appear in the tree.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))

	reader := text.NewReader(snapshot.Content)
	gmDoc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(snapshot.Content)
	snapshot.Root = m.mapDocument(gmDoc)
	snapshot.Footnotes = m.defined
	mdast.SetFile(snapshot.Root, snapshot)

	return snapshot, nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor config.Flavor) config.Flavor {
	if flavor.IsValid() {
		return flavor
	}
	return config.FlavorCommonMark
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor config.Flavor) goldmark.Markdown {
	extensions := []goldmark.Extender{extension.Footnote}

	switch flavor {
	case config.FlavorGFM:
		extensions = append(extensions, extension.GFM)
	case config.FlavorCommonMark:
		// Footnotes only.
	}

	return goldmark.New(goldmark.WithExtensions(extensions...))
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
