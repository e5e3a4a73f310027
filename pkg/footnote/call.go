package footnote

import "github.com/yaklabco/footmark/pkg/syntax"

// Call recognizes [^label] when label names a footnote defined earlier in
// the document.
var Call = &syntax.Construct{
	Name: "footnoteCall",
	Tokenize: func(ctx syntax.Context, fx syntax.Effects) syntax.Machine {
		return &callMachine{ctx: ctx, fx: fx}
	},
}

type callState uint8

const (
	callOpen callState = iota
	callCaret
	callLabel
	callEscape
)

type callMachine struct {
	ctx   syntax.Context
	fx    syntax.Effects
	state callState
	call  *syntax.Token
	size  int
	data  bool
}

func (m *callMachine) Feed(code syntax.Code) syntax.Transition {
	switch m.state {
	case callOpen:
		m.call = m.fx.Enter(KindFootnoteCall)
		m.fx.Enter(KindFootnoteCallLabelMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteCallLabelMarker)
		m.state = callCaret
		return syntax.Continue

	case callCaret:
		if code != '^' {
			return syntax.Fail
		}
		m.fx.Enter(KindFootnoteCallMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteCallMarker)
		m.fx.Enter(KindFootnoteCallString)
		m.fx.Enter(syntax.KindChunkString)
		m.state = callLabel
		return syntax.Continue

	case callEscape:
		m.state = callLabel
		if code == '[' || code == '\\' || code == ']' {
			if !m.grow() {
				return syntax.Fail
			}
			m.fx.Consume(code)
			return syntax.Continue
		}
		return m.Feed(code)

	case callLabel:
		return m.label(code)
	}

	return syntax.Fail
}

func (m *callMachine) label(code syntax.Code) syntax.Transition {
	if code == syntax.EOF || code == '[' {
		return syntax.Fail
	}

	if code == ']' {
		if !m.data {
			return syntax.Fail
		}

		m.fx.Exit(syntax.KindChunkString)
		label := m.fx.Exit(KindFootnoteCallString)

		identifier := NormalizeIdentifier(m.ctx.SliceSerialize(label))
		if !m.ctx.State().FootnoteDefinedBefore(identifier, m.call.Start.Offset) {
			return syntax.Fail
		}

		m.fx.Enter(KindFootnoteCallLabelMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteCallLabelMarker)
		m.fx.Exit(KindFootnoteCall)
		return syntax.Match
	}

	if !m.grow() {
		return syntax.Fail
	}

	m.fx.Consume(code)
	if !syntax.IsLineEndingOrSpace(code) {
		m.data = true
	}
	if code == '\\' {
		m.state = callEscape
	}

	return syntax.Continue
}

func (m *callMachine) grow() bool {
	m.size++
	return m.size <= MaxLabelSize
}
