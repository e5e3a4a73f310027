package pretty

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/yaklabco/footmark/pkg/mdast"
)

// maxTreeValue bounds how much of a text value is shown per node.
const maxTreeValue = 60

// FormatTree renders the subtree rooted at root as an indented tree.
func (s *Styles) FormatTree(root *mdast.Node) string {
	if root == nil {
		return ""
	}
	return s.buildTree(root).String() + "\n"
}

func (s *Styles) buildTree(n *mdast.Node) *tree.Tree {
	t := tree.Root(s.treeLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(s.TreeBranch)

	for child := n.FirstChild; child != nil; child = child.Next {
		if child.HasChildren() {
			t.Child(s.buildTree(child))
		} else {
			t.Child(s.treeLabel(child))
		}
	}

	return t
}

func (s *Styles) treeLabel(n *mdast.Node) string {
	var label string
	switch n.Kind {
	case mdast.NodeFootnoteReference, mdast.NodeFootnoteDefinition:
		label = s.TreeFootnote.Render(n.Kind.String()) +
			fmt.Sprintf(" [^%s]", n.Label())
		if n.Identifier() != n.Label() {
			label += s.Dim.Render(" id=" + strconv.Quote(n.Identifier()))
		}
	case mdast.NodeFootnote:
		label = s.TreeFootnote.Render(n.Kind.String())
	default:
		label = s.TreeKind.Render(n.Kind.String())
	}

	if n.Kind == mdast.NodeText || n.Kind == mdast.NodeHTML {
		label += " " + s.TreeValue.Render(strconv.Quote(truncate(n.Value(), maxTreeValue)))
	}

	if pos := n.SourcePosition(); pos.IsValid() {
		label += " " + s.TreePosition.Render(fmt.Sprintf("%d:%d-%d:%d",
			pos.StartLine, pos.StartColumn, pos.EndLine, pos.EndColumn))
	}

	return label
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
