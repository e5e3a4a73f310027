package footnote

import "github.com/yaklabco/footmark/pkg/syntax"

// Definition recognizes the [^label]: opening of a footnote definition. The
// definition is a container: following lines stay inside it while they are
// blank or indented by four columns.
var Definition = &syntax.Construct{
	Name: "footnoteDefinition",
	Tokenize: func(ctx syntax.Context, fx syntax.Effects) syntax.Machine {
		return &definitionMachine{ctx: ctx, fx: fx}
	},
	Continuation: &syntax.Construct{
		Name: "footnoteDefinitionContinuation",
		Tokenize: func(ctx syntax.Context, fx syntax.Effects) syntax.Machine {
			return &continuationMachine{ctx: ctx, fx: fx}
		},
	},
	Exit: func(fx syntax.Effects) {
		fx.Exit(KindFootnoteDefinition)
	},
}

// definitionState is kept on the container while the definition is open.
type definitionState struct {
	// initialBlankLine is set when nothing followed the colon.
	initialBlankLine bool

	// furtherBlankLines is set when a blank line followed such an opening.
	furtherBlankLines bool
}

type definitionStep uint8

const (
	definitionOpen definitionStep = iota
	definitionCaret
	definitionAtBreak
	definitionLabel
	definitionEscape
	definitionColon
	definitionAfter
)

type definitionMachine struct {
	ctx        syntax.Context
	fx         syntax.Effects
	step       definitionStep
	definition *syntax.Token
	identifier string
	size       int
	data       bool
}

func (m *definitionMachine) Feed(code syntax.Code) syntax.Transition {
	switch m.step {
	case definitionOpen:
		m.definition = m.fx.Enter(KindFootnoteDefinition)
		m.fx.Enter(KindFootnoteDefinitionLabel)
		m.fx.Enter(KindFootnoteDefinitionLabelMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteDefinitionLabelMarker)
		m.step = definitionCaret
		return syntax.Continue

	case definitionCaret:
		if code != '^' {
			return syntax.Fail
		}
		m.fx.Enter(KindFootnoteDefinitionMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteDefinitionMarker)
		m.fx.Enter(KindFootnoteDefinitionLabelString)
		m.step = definitionAtBreak
		return syntax.Continue

	case definitionAtBreak:
		return m.atBreak(code)

	case definitionLabel:
		return m.label(code)

	case definitionEscape:
		m.step = definitionLabel
		if code == '[' || code == '\\' || code == ']' {
			if !m.grow() {
				return syntax.Fail
			}
			m.fx.Consume(code)
			return syntax.Continue
		}
		return m.label(code)

	case definitionColon:
		if code != ':' {
			return syntax.Fail
		}
		m.fx.Enter(KindDefinitionMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindDefinitionMarker)
		m.step = definitionAfter
		return syntax.Continue

	case definitionAfter:
		return m.after(code)
	}

	return syntax.Fail
}

func (m *definitionMachine) atBreak(code syntax.Code) syntax.Transition {
	if code == syntax.EOF || code == '[' {
		return syntax.Fail
	}

	if code == ']' {
		if !m.data {
			return syntax.Fail
		}

		label := m.fx.Exit(KindFootnoteDefinitionLabelString)
		m.identifier = NormalizeIdentifier(m.ctx.SliceSerialize(label))

		m.fx.Enter(KindFootnoteDefinitionLabelMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteDefinitionLabelMarker)
		m.fx.Exit(KindFootnoteDefinitionLabel)
		m.step = definitionColon
		return syntax.Continue
	}

	if syntax.IsLineEnding(code) {
		if !m.grow() {
			return syntax.Fail
		}
		m.fx.Enter(syntax.KindLineEnding)
		m.fx.Consume(code)
		m.fx.Exit(syntax.KindLineEnding)
		return syntax.Continue
	}

	m.fx.Enter(syntax.KindChunkString)
	m.step = definitionLabel
	return m.label(code)
}

func (m *definitionMachine) label(code syntax.Code) syntax.Transition {
	if code == syntax.EOF || syntax.IsLineEnding(code) || code == '[' || code == ']' {
		m.fx.Exit(syntax.KindChunkString)
		m.step = definitionAtBreak
		return m.atBreak(code)
	}

	if !m.grow() {
		return syntax.Fail
	}

	if !syntax.IsLineEndingOrSpace(code) {
		m.data = true
	}
	m.fx.Consume(code)
	if code == '\\' {
		m.step = definitionEscape
	}

	return syntax.Continue
}

func (m *definitionMachine) after(code syntax.Code) syntax.Transition {
	state := &definitionState{}
	m.ctx.ContainerState().Data = state

	switch {
	case m.ctx.Check(syntax.BlankLine):
		state.initialBlankLine = true
	case syntax.IsMarkdownSpace(code):
		m.fx.Enter(KindFootnoteDefinitionWhitespace)
		m.fx.Consume(code)
		m.fx.Exit(KindFootnoteDefinitionWhitespace)
	}

	m.ctx.State().DefineFootnote(m.identifier, m.definition.Start.Offset)
	return syntax.Match
}

func (m *definitionMachine) grow() bool {
	m.size++
	return m.size <= MaxLabelSize
}

type continuationStep uint8

const (
	continuationStart continuationStep = iota
	continuationIndent
)

type continuationMachine struct {
	ctx    syntax.Context
	fx     syntax.Effects
	step   continuationStep
	indent *syntax.SpaceRun
}

func (m *continuationMachine) Feed(code syntax.Code) syntax.Transition {
	if m.step == continuationIndent {
		if m.indent.Feed(code) == syntax.Continue {
			return syntax.Continue
		}
		if m.indent.Size() == indentSize {
			return syntax.Match
		}
		return syntax.Fail
	}

	state, _ := m.ctx.ContainerState().Data.(*definitionState)
	if state == nil {
		state = &definitionState{}
		m.ctx.ContainerState().Data = state
	}

	if m.ctx.Check(syntax.BlankLine) {
		if state.initialBlankLine {
			state.furtherBlankLines = true
		}
		return syntax.Match
	}

	if state.furtherBlankLines || !syntax.IsMarkdownSpace(code) {
		return syntax.Fail
	}

	state.initialBlankLine = false
	state.furtherBlankLines = false

	m.indent = syntax.NewSpaceRun(m.fx, KindFootnoteDefinitionIndent, indentSize)
	m.step = continuationIndent
	return m.Feed(code)
}
