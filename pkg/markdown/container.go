package markdown

import (
	"regexp"
	"strings"

	"github.com/yaklabco/footmark/pkg/mdast"
)

var (
	lineEnding         = regexp.MustCompile(`\r?\n|\r`)
	trailingLineEnding = regexp.MustCompile(`(?:\r?\n|\r)$`)
)

// ContainerPhrasing serializes the inline children of parent. Each child is
// told the first character of its next sibling so escapes at the seam are
// decided with the real neighbour.
func (s *State) ContainerPhrasing(parent *mdast.Node, info Info) (string, error) {
	children := parent.Children()
	results := make([]string, 0, len(children))
	before := info.Before
	tracker := NewTracker(info)

	s.IndexStack = append(s.IndexStack, -1)
	defer func() { s.IndexStack = s.IndexStack[:len(s.IndexStack)-1] }()

	for idx, child := range children {
		s.IndexStack[len(s.IndexStack)-1] = idx

		after := info.After
		if idx+1 < len(children) {
			next := children[idx+1]
			after = ""
			if handler, ok := s.serializer.handlers[next.Kind]; ok {
				first, err := handler.FirstChar(next, parent, s, tracker.Info("", ""))
				if err != nil {
					return "", err
				}
				after = firstChar(first)
			}
		}

		// HTML right after a line ending would start an HTML block.
		if len(results) > 0 && (before == "\r" || before == "\n") && child.Kind == mdast.NodeHTML {
			results[len(results)-1] = trailingLineEnding.ReplaceAllString(results[len(results)-1], " ")
			before = " "
			tracker = NewTracker(info)
			tracker.Move(strings.Join(results, ""))
		}

		value, err := s.Handle(child, parent, tracker.Info(before, after))
		if err != nil {
			return "", err
		}

		results = append(results, value)
		tracker.Move(value)
		before = lastChar(value)
	}

	return strings.Join(results, ""), nil
}

// ContainerFlow serializes the block children of parent, separated by the
// result of the joins.
func (s *State) ContainerFlow(parent *mdast.Node, info Info) (string, error) {
	children := parent.Children()
	tracker := NewTracker(info)

	var result strings.Builder

	s.IndexStack = append(s.IndexStack, -1)
	defer func() { s.IndexStack = s.IndexStack[:len(s.IndexStack)-1] }()

	for idx, child := range children {
		s.IndexStack[len(s.IndexStack)-1] = idx

		value, err := s.Handle(child, parent, tracker.Info("\n", "\n"))
		if err != nil {
			return "", err
		}
		result.WriteString(tracker.Move(value))

		if idx < len(children)-1 {
			result.WriteString(tracker.Move(s.between(child, children[idx+1], parent)))
		}
	}

	return result.String(), nil
}

// IndentLines calls fn for every line of value and joins the results with
// the original line endings. blank is true for empty lines.
func IndentLines(value string, fn func(line string, index int, blank bool) string) string {
	var result strings.Builder

	start := 0
	index := 0
	for _, match := range lineEnding.FindAllStringIndex(value, -1) {
		line := value[start:match[0]]
		result.WriteString(fn(line, index, line == ""))
		result.WriteString(value[match[0]:match[1]])
		start = match[1]
		index++
	}

	line := value[start:]
	result.WriteString(fn(line, index, line == ""))

	return result.String()
}
