// Package markdown serializes an mdast tree back to markdown text.
//
// Each node kind has a Handler. Handlers escape their text through
// State.Safe, which consults the unsafe patterns of every extension against
// the stack of constructs currently being written, and join their children
// with ContainerPhrasing or ContainerFlow.
package markdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/footmark/pkg/mdast"
)

// ErrUnknownNode is returned for a node kind without a handler.
var ErrUnknownNode = errors.New("cannot serialize node")

// Handler serializes one node kind.
type Handler interface {
	// Render returns the markdown for n.
	Render(n, parent *mdast.Node, s *State, info Info) (string, error)

	// FirstChar returns the first character Render would produce, without
	// side effects. Phrasing containers use it to look ahead.
	FirstChar(n, parent *mdast.Node, s *State, info Info) (string, error)
}

// HandlerFunc adapts a function to Handler. Its FirstChar renders the node
// and keeps the first character.
type HandlerFunc func(n, parent *mdast.Node, s *State, info Info) (string, error)

// Render calls f.
func (f HandlerFunc) Render(n, parent *mdast.Node, s *State, info Info) (string, error) {
	return f(n, parent, s, info)
}

// FirstChar renders the node and returns its first character.
func (f HandlerFunc) FirstChar(n, parent *mdast.Node, s *State, info Info) (string, error) {
	value, err := f(n, parent, s, info)
	if err != nil {
		return "", err
	}
	return firstChar(value), nil
}

// WithFirstChar returns a Handler whose FirstChar is always first.
func WithFirstChar(render HandlerFunc, first string) Handler {
	return fixedFirst{render: render, first: first}
}

type fixedFirst struct {
	render HandlerFunc
	first  string
}

func (h fixedFirst) Render(n, parent *mdast.Node, s *State, info Info) (string, error) {
	return h.render(n, parent, s, info)
}

func (h fixedFirst) FirstChar(*mdast.Node, *mdast.Node, *State, Info) (string, error) {
	return h.first, nil
}

// Join decides how two adjacent flow nodes are separated. ok is false when
// the join has no opinion. A negative count keeps the two apart with an
// empty HTML comment; otherwise count blank lines are written between them.
type Join func(left, right, parent *mdast.Node, s *State) (count int, ok bool)

// Extension contributes handlers, unsafe patterns and joins.
type Extension struct {
	Handlers map[mdast.NodeKind]Handler
	Unsafe   []Unsafe
	Join     []Join
}

// Serializer writes trees as markdown. It is safe for concurrent use.
type Serializer struct {
	handlers map[mdast.NodeKind]Handler
	unsafe   []compiledUnsafe
	join     []Join
}

// New returns a serializer for the host nodes plus exts.
func New(exts ...Extension) *Serializer {
	s := &Serializer{handlers: make(map[mdast.NodeKind]Handler)}

	for _, ext := range append([]Extension{hostExtension()}, exts...) {
		for kind, handler := range ext.Handlers {
			s.handlers[kind] = handler
		}
		for _, pattern := range ext.Unsafe {
			s.unsafe = append(s.unsafe, compileUnsafe(pattern))
		}
		s.join = append(s.join, ext.Join...)
	}

	return s
}

// Serialize returns the markdown for root, ending in a line ending.
func (s *Serializer) Serialize(root *mdast.Node) (string, error) {
	state := &State{serializer: s}

	value, err := state.Handle(root, nil, Info{
		Before: "\n",
		After:  "\n",
		Now:    Point{Line: 1, Column: 1},
	})
	if err != nil {
		return "", err
	}

	if value != "" && !strings.HasSuffix(value, "\n") && !strings.HasSuffix(value, "\r") {
		value += "\n"
	}

	return value, nil
}

// State is the state of one serialization.
type State struct {
	// Stack holds the names of the constructs being written.
	Stack []string

	// IndexStack holds the position of each container's current child.
	IndexStack []int

	serializer *Serializer
}

// Enter pushes a construct name and returns the func that pops it.
func (s *State) Enter(name string) func() {
	s.Stack = append(s.Stack, name)
	return func() {
		s.Stack = s.Stack[:len(s.Stack)-1]
	}
}

// Handle serializes n with its handler.
func (s *State) Handle(n, parent *mdast.Node, info Info) (string, error) {
	handler, ok := s.serializer.handlers[n.Kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown kind %s", ErrUnknownNode, n.Kind)
	}
	return handler.Render(n, parent, s, info)
}

// UnsafeInScope reports whether an unsafe pattern for char applies in the
// current construct stack.
func (s *State) UnsafeInScope(char rune) bool {
	for i := range s.serializer.unsafe {
		pattern := &s.serializer.unsafe[i]
		if pattern.Character == char && pattern.inScope(s.Stack) {
			return true
		}
	}
	return false
}

// between returns the separator of two flow siblings.
func (s *State) between(left, right, parent *mdast.Node) string {
	for i := len(s.serializer.join) - 1; i >= 0; i-- {
		count, ok := s.serializer.join[i](left, right, parent, s)
		if !ok {
			continue
		}
		if count < 0 {
			return "\n\n<!---->\n\n"
		}
		return strings.Repeat("\n", 1+count)
	}

	return "\n\n"
}

func firstChar(value string) string {
	for _, char := range value {
		return string(char)
	}
	return ""
}

func lastChar(value string) string {
	if value == "" {
		return ""
	}
	runes := []rune(value)
	return string(runes[len(runes)-1])
}
