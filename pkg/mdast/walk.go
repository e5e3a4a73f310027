package mdast

import (
	"iter"
	"strings"
)

// WalkFunc is called for each node visited by Walk. A non-nil error stops
// the walk.
type WalkFunc func(n *Node) error

// Walk visits root and its descendants in document order (pre-order) and
// returns the first error walkFunc reports.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}
	if err := walkFunc(root); err != nil {
		return err
	}
	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}
	return nil
}

// All yields root and its descendants in document order.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		all(root, yield)
	}
}

func all(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !all(child, yield) {
			return false
		}
	}
	return true
}

// OfKind yields the nodes under root, root included, that have one of the
// given kinds.
func OfKind(root *Node, kinds ...NodeKind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range All(root) {
			for _, k := range kinds {
				if n.Kind == k {
					if !yield(n) {
						return
					}
					break
				}
			}
		}
	}
}

// FindByKind collects the nodes of one kind in document order.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var found []*Node
	for n := range OfKind(root, kind) {
		found = append(found, n)
	}
	return found
}

// PlainText concatenates the values of the text nodes under n.
func PlainText(n *Node) string {
	var b strings.Builder
	for text := range OfKind(n, NodeText) {
		b.WriteString(text.Value())
	}
	return b.String()
}
