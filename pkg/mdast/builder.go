package mdast

// NewNode creates a detached node of the given kind with no source range.
func NewNode(kind NodeKind) *Node {
	return &Node{
		Kind:  kind,
		Range: NoRange,
	}
}

// NewDocument creates a new document root node.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// NewText creates a text node holding value.
func NewText(value string) *Node {
	node := NewNode(NodeText)
	node.Inline = NewInlineAttrs().WithText(value)
	return node
}

// NewHTML creates a raw HTML node holding value.
func NewHTML(value string) *Node {
	node := NewNode(NodeHTML)
	node.Inline = NewInlineAttrs().WithText(value)
	return node
}

// NewFootnoteReference creates a footnote reference node.
func NewFootnoteReference(identifier, label string) *Node {
	node := NewNode(NodeFootnoteReference)
	node.Footnote = NewFootnoteAttrs().WithIdentifier(identifier).WithLabel(label)
	return node
}

// NewFootnoteDefinition creates a footnote definition node.
func NewFootnoteDefinition(identifier, label string) *Node {
	node := NewNode(NodeFootnoteDefinition)
	node.Footnote = NewFootnoteAttrs().WithIdentifier(identifier).WithLabel(label)
	return node
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}

	child.Parent = parent
	child.Prev = parent.LastChild
	child.Next = nil

	if parent.LastChild != nil {
		parent.LastChild.Next = child
	} else {
		parent.FirstChild = child
	}

	parent.LastChild = child
}

// RemoveChild detaches child from parent. It does nothing when child
// belongs to another parent.
func RemoveChild(parent, child *Node) {
	if parent == nil || child == nil || child.Parent != parent {
		return
	}

	if child.Prev != nil {
		child.Prev.Next = child.Next
	} else {
		parent.FirstChild = child.Next
	}

	if child.Next != nil {
		child.Next.Prev = child.Prev
	} else {
		parent.LastChild = child.Prev
	}

	child.Parent = nil
	child.Prev = nil
	child.Next = nil
}

// SetRange sets the source byte range for a node.
func SetRange(n *Node, start, end int) {
	if n == nil {
		return
	}
	n.Range = SourceRange{StartOffset: start, EndOffset: end}
}

// SetFile sets the file reference for a node and all its descendants.
func SetFile(node *Node, file *FileSnapshot) {
	if node == nil {
		return
	}

	for n := range All(node) {
		n.File = file
	}
}
