package markdown

import (
	"strings"

	"github.com/yaklabco/footmark/pkg/mdast"
)

func hostExtension() Extension {
	return Extension{
		Handlers: map[mdast.NodeKind]Handler{
			mdast.NodeDocument:  HandlerFunc(root),
			mdast.NodeParagraph: HandlerFunc(paragraph),
			mdast.NodeText:      HandlerFunc(text),
			mdast.NodeBreak:     HandlerFunc(hardBreak),
			mdast.NodeHTML:      WithFirstChar(html, "<"),
			mdast.NodeRaw:       HandlerFunc(raw),
		},
		Unsafe: defaultUnsafe,
	}
}

func root(n, _ *mdast.Node, s *State, info Info) (string, error) {
	for child := n.FirstChild; child != nil; child = child.Next {
		if child.IsInline() {
			return s.ContainerPhrasing(n, info)
		}
	}
	return s.ContainerFlow(n, info)
}

func paragraph(n, _ *mdast.Node, s *State, info Info) (string, error) {
	exit := s.Enter("paragraph")
	defer exit()
	subexit := s.Enter("phrasing")
	defer subexit()

	return s.ContainerPhrasing(n, info)
}

func text(n, _ *mdast.Node, s *State, info Info) (string, error) {
	return s.Safe(n.Value(), SafeConfig{Before: info.Before, After: info.After}), nil
}

func hardBreak(_, _ *mdast.Node, s *State, info Info) (string, error) {
	if s.UnsafeInScope('\n') {
		if strings.ContainsAny(info.Before, " \t") {
			return "", nil
		}
		return " ", nil
	}
	return "\\\n", nil
}

func html(n, _ *mdast.Node, _ *State, _ Info) (string, error) {
	return n.Value(), nil
}

// raw writes nodes another parser produced verbatim from their source.
func raw(n, _ *mdast.Node, _ *State, _ Info) (string, error) {
	if source := n.Text(); source != nil {
		return strings.TrimRight(string(source), "\r\n"), nil
	}
	return n.Value(), nil
}
