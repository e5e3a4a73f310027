package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/footmark/pkg/footnote"
	"github.com/yaklabco/footmark/pkg/mdast"
)

var callOpen = []byte("[^")

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte

	// refs maps goldmark footnote indexes to their labels.
	refs map[int][]byte

	// defined lists the identifiers of mapped definitions in order.
	defined []string

	// cursor is the offset after which the next footnote call is searched.
	cursor int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{
		content: content,
		refs:    make(map[int][]byte),
	}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	m.collectRefs(gmDoc)

	doc := mdast.NewDocument()
	mdast.SetRange(doc, 0, len(m.content))
	m.mapChildren(gmDoc, doc)
	return doc
}

// collectRefs records the label of every footnote goldmark numbered.
func (m *mapper) collectRefs(gmDoc ast.Node) {
	_ = ast.Walk(gmDoc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fn, ok := n.(*east.Footnote); ok {
			m.refs[fn.Index] = fn.Ref
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		switch gmn := child.(type) {
		case *ast.Text:
			m.appendText(parent, gmn)
		case *east.FootnoteList:
			// Definitions are gathered at the end by goldmark; keep them
			// as top-level blocks.
			m.mapChildren(gmn, parent)
		default:
			if mdNode := m.mapNode(child); mdNode != nil {
				mdast.AppendChild(parent, mdNode)
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		node = m.mapParagraph(gmNode)

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	case *ast.String:
		node = mdast.NewText(string(gmn.Value))

	case *east.FootnoteLink:
		node = m.mapFootnoteLink(gmn)

	case *east.Footnote:
		node = m.mapFootnote(gmn)

	case *east.FootnoteBacklink:
		// Rendering artifact with no source.
		return nil

	default:
		// Fallback for node types without a footnote meaning.
		node = mdast.NewNode(mdast.NodeRaw)
		if start, end := blockRange(gmNode); start >= 0 {
			mdast.SetRange(node, start, end)
		}
		m.mapChildren(gmNode, node)
	}

	return node
}

// mapParagraph converts a paragraph or tight list text block.
func (m *mapper) mapParagraph(gmNode ast.Node) *mdast.Node {
	node := mdast.NewNode(mdast.NodeParagraph)

	if start, end := blockRange(gmNode); start >= 0 {
		mdast.SetRange(node, start, end)
		m.cursor = start
	}

	m.mapChildren(gmNode, node)
	return node
}

// mapHTMLBlock converts a goldmark HTMLBlock, keeping its raw lines.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	var value bytes.Buffer

	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		value.Write(seg.Value(m.content))
	}
	if block.HasClosure() {
		value.Write(block.ClosureLine.Value(m.content))
	}

	node := mdast.NewHTML(value.String())
	if start, end := blockRange(block); start >= 0 {
		mdast.SetRange(node, start, end)
	}
	return node
}

// appendText maps a goldmark Text node. Soft breaks become a newline in the
// text; hard breaks add a Break node.
func (m *mapper) appendText(parent *mdast.Node, textNode *ast.Text) {
	seg := textNode.Segment
	m.cursor = seg.Stop

	value := string(seg.Value(m.content))
	if textNode.SoftLineBreak() {
		value += "\n"
	}

	if value != "" {
		node := mdast.NewText(value)
		mdast.SetRange(node, seg.Start, seg.Stop)
		mdast.AppendChild(parent, node)
	}

	if textNode.HardLineBreak() {
		mdast.AppendChild(parent, mdast.NewNode(mdast.NodeBreak))
	}
}

// mapFootnoteLink converts a resolved call. Goldmark keeps no segment for
// it, so the call is found in the source after the preceding text.
func (m *mapper) mapFootnoteLink(link *east.FootnoteLink) *mdast.Node {
	label := string(m.refs[link.Index])
	node := mdast.NewFootnoteReference(footnote.Identifier(label), label)

	if start, end := m.findCall(); start >= 0 {
		mdast.SetRange(node, start, end)
		m.cursor = end
	}

	return node
}

// findCall locates the next "[^label]" at or after the cursor.
func (m *mapper) findCall() (int, int) {
	if m.cursor < 0 || m.cursor > len(m.content) {
		return -1, -1
	}

	open := bytes.Index(m.content[m.cursor:], callOpen)
	if open < 0 {
		return -1, -1
	}
	start := m.cursor + open

	for i := start + len(callOpen); i < len(m.content); i++ {
		switch m.content[i] {
		case '\\':
			i++
		case ']':
			return start, i + 1
		}
	}
	return -1, -1
}

// mapFootnote converts a goldmark footnote definition.
func (m *mapper) mapFootnote(fn *east.Footnote) *mdast.Node {
	label := string(fn.Ref)
	id := footnote.Identifier(label)
	m.defined = append(m.defined, id)

	node := mdast.NewFootnoteDefinition(id, label)
	if start, end := blockRange(fn); start >= 0 {
		mdast.SetRange(node, start, end)
	}

	m.mapChildren(fn, node)
	return node
}

// blockRange returns the byte range covered by a block's lines, looking
// into child blocks when the block has none of its own.
func blockRange(gmNode ast.Node) (int, int) {
	if gmNode.Type() != ast.TypeBlock {
		return -1, -1
	}

	if lines := gmNode.Lines(); lines.Len() > 0 {
		return lines.At(0).Start, lines.At(lines.Len() - 1).Stop
	}

	start, end := -1, -1
	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		cs, ce := blockRange(child)
		if cs < 0 {
			continue
		}
		if start < 0 || cs < start {
			start = cs
		}
		if ce > end {
			end = ce
		}
	}
	return start, end
}
