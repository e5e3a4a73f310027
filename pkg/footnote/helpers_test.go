package footnote_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/footmark/pkg/compiler"
	"github.com/yaklabco/footmark/pkg/footnote"
	"github.com/yaklabco/footmark/pkg/markdown"
	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/syntax"
)

func parse(input string, inlineNotes bool) *syntax.Document {
	return syntax.Parse([]byte(input), footnote.Syntax(footnote.Options{InlineNotes: inlineNotes}))
}

func compile(t *testing.T, input string, inlineNotes bool) *mdast.Node {
	t.Helper()

	root, err := compiler.New(footnote.Tree()).Compile(parse(input, inlineNotes))
	require.NoError(t, err)
	return root
}

func serialize(t *testing.T, root *mdast.Node, exts ...markdown.Extension) string {
	t.Helper()

	out, err := markdown.New(append([]markdown.Extension{footnote.Markdown()}, exts...)...).Serialize(root)
	require.NoError(t, err)
	return out
}

func describe(doc *syntax.Document) []string {
	out := make([]string, 0, len(doc.Events))
	for _, event := range doc.Events {
		out = append(out, event.Phase.String()+" "+string(event.Token.Kind))
	}
	return out
}

func sliceOf(doc *syntax.Document, kind syntax.TokenKind) []string {
	var out []string
	for _, event := range doc.Events {
		if event.Phase == syntax.Enter && event.Token.Kind == kind {
			out = append(out, doc.Source.Serialize(event.Token))
		}
	}
	return out
}

// dump renders a tree compactly: Kind, its value or [identifier|label], and
// its children in braces.
func dump(n *mdast.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *mdast.Node) {
	b.WriteString(n.Kind.String())

	switch n.Kind {
	case mdast.NodeText, mdast.NodeHTML:
		fmt.Fprintf(b, "%q", n.Value())
	case mdast.NodeFootnoteReference, mdast.NodeFootnoteDefinition:
		fmt.Fprintf(b, "[%s|%s]", n.Identifier(), n.Label())
	}

	if !n.HasChildren() {
		return
	}

	b.WriteString("{")
	for child := n.FirstChild; child != nil; child = child.Next {
		if child != n.FirstChild {
			b.WriteString(",")
		}
		writeNode(b, child)
	}
	b.WriteString("}")
}
