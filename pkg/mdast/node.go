package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeFootnoteDefinition
	NodeHTML

	// Inline-level nodes.
	NodeText
	NodeBreak
	NodeFootnoteReference
	NodeFootnote

	// NodeFragment collects text while a label is buffered. It never
	// appears in a finished tree.
	NodeFragment

	// Fallback for unrecognized content.
	NodeRaw
)

var nodeKindNames = [...]string{
	NodeDocument:           "Document",
	NodeParagraph:          "Paragraph",
	NodeFootnoteDefinition: "FootnoteDefinition",
	NodeHTML:               "HTML",
	NodeText:               "Text",
	NodeBreak:              "Break",
	NodeFootnoteReference:  "FootnoteReference",
	NodeFootnote:           "Footnote",
	NodeFragment:           "Fragment",
	NodeRaw:                "Raw",
}

// String returns the kind name.
func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the byte range the node was parsed from.
	// Both offsets are -1 for synthetic nodes.
	Range SourceRange

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Inline holds attributes for text-carrying nodes.
	Inline *InlineAttrs

	// Footnote holds the association of footnote references and definitions.
	Footnote *FootnoteAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeFootnoteDefinition, NodeHTML:
		return true
	default:
		return false
	}
}

// IsInline returns true if this is an inline-level node.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeBreak, NodeFootnoteReference, NodeFootnote:
		return true
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}

// Value returns the literal value of text and HTML nodes.
func (n *Node) Value() string {
	if n.Inline == nil {
		return ""
	}
	return n.Inline.Text
}

// Identifier returns the normalized footnote identifier, if any.
func (n *Node) Identifier() string {
	if n.Footnote == nil {
		return ""
	}
	return n.Footnote.Identifier
}

// Label returns the footnote label as written, if any.
func (n *Node) Label() string {
	if n.Footnote == nil {
		return ""
	}
	return n.Footnote.Label
}
