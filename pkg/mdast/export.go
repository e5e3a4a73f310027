package mdast

// ExportedNode is a serializable view of a node and its subtree.
type ExportedNode struct {
	Type       string          `json:"type" yaml:"type"`
	Identifier string          `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Label      string          `json:"label,omitempty" yaml:"label,omitempty"`
	Value      string          `json:"value,omitempty" yaml:"value,omitempty"`
	Position   *ExportPosition `json:"position,omitempty" yaml:"position,omitempty"`
	Children   []*ExportedNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// ExportPosition locates an exported node in its source.
type ExportPosition struct {
	Start ExportPoint `json:"start" yaml:"start"`
	End   ExportPoint `json:"end" yaml:"end"`
}

// ExportPoint is a 1-based line and column plus a 0-based byte offset.
type ExportPoint struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
	Offset int `json:"offset" yaml:"offset"`
}

// Export converts the subtree rooted at n into its serializable form.
// Positions are included only for nodes parsed from a file.
func Export(n *Node) *ExportedNode {
	if n == nil {
		return nil
	}

	out := &ExportedNode{
		Type:       n.Kind.String(),
		Identifier: n.Identifier(),
		Label:      n.Label(),
		Value:      n.Value(),
	}

	if pos := n.SourcePosition(); pos.IsValid() {
		out.Position = &ExportPosition{
			Start: ExportPoint{Line: pos.StartLine, Column: pos.StartColumn, Offset: n.Range.StartOffset},
			End:   ExportPoint{Line: pos.EndLine, Column: pos.EndColumn, Offset: n.Range.EndOffset},
		}
	}

	for child := n.FirstChild; child != nil; child = child.Next {
		out.Children = append(out.Children, Export(child))
	}

	return out
}
