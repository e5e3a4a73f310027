package syntax

// SpaceRun consumes a run of horizontal whitespace into one token of kind.
// A limit of zero means unbounded. It matches on the first code it does not
// take, without consuming it, so it can be embedded in a larger machine.
type SpaceRun struct {
	fx     Effects
	kind   TokenKind
	limit  int
	size   int
	closed bool
}

// NewSpaceRun returns a whitespace consumer writing to fx.
func NewSpaceRun(fx Effects, kind TokenKind, limit int) *SpaceRun {
	return &SpaceRun{fx: fx, kind: kind, limit: limit}
}

// Feed implements Machine.
func (s *SpaceRun) Feed(code Code) Transition {
	if !s.closed && IsMarkdownSpace(code) && (s.limit == 0 || s.size < s.limit) {
		if s.size == 0 {
			s.fx.Enter(s.kind)
		}
		s.fx.Consume(code)
		s.size++
		return Continue
	}

	if s.size > 0 && !s.closed {
		s.fx.Exit(s.kind)
	}
	s.closed = true

	return Match
}

// Size returns how many codes were consumed.
func (s *SpaceRun) Size() int {
	return s.size
}

// BlankLine matches a line that holds nothing but optional whitespace. The
// line ending itself is not consumed.
var BlankLine = &Construct{
	Name: "blankLine",
	Tokenize: func(_ Context, fx Effects) Machine {
		return &blankLine{space: NewSpaceRun(fx, KindLinePrefix, 0)}
	},
}

type blankLine struct {
	space *SpaceRun
}

func (b *blankLine) Feed(code Code) Transition {
	if b.space.Feed(code) == Continue {
		return Continue
	}

	if code == EOF || IsLineEnding(code) {
		return Match
	}

	return Fail
}
