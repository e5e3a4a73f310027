package footnote

import (
	"github.com/yaklabco/footmark/pkg/markdown"
	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/syntax"
)

// Markdown returns the serializer extension for the three footnote nodes.
func Markdown() markdown.Extension {
	return markdown.Extension{
		Handlers: map[mdast.NodeKind]markdown.Handler{
			mdast.NodeFootnoteReference:  markdown.WithFirstChar(serializeReference, "["),
			mdast.NodeFootnote:           markdown.WithFirstChar(serializeNote, "^"),
			mdast.NodeFootnoteDefinition: markdown.HandlerFunc(serializeDefinition),
		},
		Unsafe: []markdown.Unsafe{
			{Character: '[', InConstruct: []string{"phrasing", "label", "reference"}},
		},
	}
}

func serializeReference(n, _ *mdast.Node, s *markdown.State, info markdown.Info) (string, error) {
	tracker := markdown.NewTracker(info)
	value := tracker.Move("[^")

	exit := s.Enter("footnoteReference")
	subexit := s.Enter("reference")
	value += tracker.Move(s.Safe(association(n), markdown.SafeConfig{Before: value, After: "]"}))
	subexit()
	exit()

	value += tracker.Move("]")
	return value, nil
}

func serializeNote(n, _ *mdast.Node, s *markdown.State, info markdown.Info) (string, error) {
	tracker := markdown.NewTracker(info)
	value := tracker.Move("^[")

	exit := s.Enter("footnote")
	subexit := s.Enter("label")
	body, err := s.ContainerPhrasing(n, tracker.Info(value, "]"))
	subexit()
	exit()
	if err != nil {
		return "", err
	}

	value += tracker.Move(body)
	value += tracker.Move("]")
	return value, nil
}

func serializeDefinition(n, _ *mdast.Node, s *markdown.State, info markdown.Info) (string, error) {
	tracker := markdown.NewTracker(info)
	value := tracker.Move("[^")

	exit := s.Enter("footnoteDefinition")
	defer exit()

	subexit := s.Enter("label")
	value += tracker.Move(s.Safe(association(n), markdown.SafeConfig{Before: value, After: "]"}))
	subexit()

	if !n.HasChildren() {
		return value + tracker.Move("]:"), nil
	}

	value += tracker.Move("]: ")
	tracker.Shift(indentSize)

	body, err := s.ContainerFlow(n, tracker.Current())
	if err != nil {
		return "", err
	}

	value += tracker.Move(markdown.IndentLines(body, indentBody))

	return value, nil
}

// indentBody indents every line but the first. Blank lines stay empty.
func indentBody(line string, index int, blank bool) string {
	if index == 0 || blank {
		return line
	}
	return "    " + line
}

// association is the label to write for n: its label when it has one,
// otherwise the decoded identifier.
func association(n *mdast.Node) string {
	if label := n.Label(); label != "" || n.Identifier() == "" {
		return label
	}
	return syntax.DecodeString(n.Identifier())
}
