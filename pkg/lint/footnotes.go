package lint

import (
	"regexp"

	"github.com/yaklabco/footmark/pkg/footnote"
	"github.com/yaklabco/footmark/pkg/mdast"
)

// textCallPattern finds [^label] in paragraph source that the parser left as
// text. Escaped brackets are part of the label.
var textCallPattern = regexp.MustCompile(`\[\^((?:\\.|[^\\\[\]])+)\]`)

// TextCall is a [^label] the parser did not turn into a reference.
type TextCall struct {
	// Identifier is the normalized label.
	Identifier string

	// Label is the raw label between "[^" and "]".
	Label string

	// Range covers the call including brackets.
	Range mdast.SourceRange
}

// FootnoteIndex collects the footnote constructs of a parsed file.
type FootnoteIndex struct {
	// Definitions maps identifiers to their definitions in document order.
	Definitions map[string][]*mdast.Node

	// Identifiers lists defined identifiers by first definition.
	Identifiers []string

	// References maps identifiers to the resolved references.
	References map[string][]*mdast.Node

	// TextCalls lists unresolved calls in document order.
	TextCalls []TextCall
}

// CollectFootnotes walks root and indexes its footnote definitions,
// references and unresolved calls.
func CollectFootnotes(root *mdast.Node) *FootnoteIndex {
	idx := &FootnoteIndex{
		Definitions: make(map[string][]*mdast.Node),
		References:  make(map[string][]*mdast.Node),
	}
	if root == nil {
		return idx
	}

	_ = mdast.Walk(root, func(n *mdast.Node) error {
		switch n.Kind {
		case mdast.NodeFootnoteDefinition:
			id := n.Identifier()
			if _, seen := idx.Definitions[id]; !seen {
				idx.Identifiers = append(idx.Identifiers, id)
			}
			idx.Definitions[id] = append(idx.Definitions[id], n)
		case mdast.NodeFootnoteReference:
			id := n.Identifier()
			idx.References[id] = append(idx.References[id], n)
		case mdast.NodeText:
			idx.TextCalls = append(idx.TextCalls, textCalls(n)...)
		}
		return nil
	})

	return idx
}

// Defined reports whether id has at least one definition.
func (idx *FootnoteIndex) Defined(id string) bool {
	return len(idx.Definitions[id]) > 0
}

// FirstDefinition returns the definition that wins for id, or nil.
func (idx *FootnoteIndex) FirstDefinition(id string) *mdast.Node {
	defs := idx.Definitions[id]
	if len(defs) == 0 {
		return nil
	}
	return defs[0]
}

func textCalls(n *mdast.Node) []TextCall {
	src := n.Text()
	if len(src) == 0 {
		return nil
	}

	var calls []TextCall
	for _, m := range textCallPattern.FindAllSubmatchIndex(src, -1) {
		// The backslash of an escape opening the node lies before its range.
		if escaped(n.File.Content, n.Range.StartOffset+m[0]) {
			continue
		}

		label := string(src[m[2]:m[3]])
		id := footnote.Identifier(label)
		if id == "" || len(label) > footnote.MaxLabelSize {
			continue
		}

		calls = append(calls, TextCall{
			Identifier: id,
			Label:      label,
			Range: mdast.SourceRange{
				StartOffset: n.Range.StartOffset + m[0],
				EndOffset:   n.Range.StartOffset + m[1],
			},
		})
	}
	return calls
}

// escaped reports whether src[at] is preceded by an odd run of backslashes.
func escaped(src []byte, at int) bool {
	count := 0
	for i := at - 1; i >= 0 && src[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}
