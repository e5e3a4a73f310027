package syntax

// HardBreakEscape matches a backslash right before a line ending.
var HardBreakEscape = &Construct{
	Name: "hardBreakEscape",
	Tokenize: func(_ Context, fx Effects) Machine {
		return &hardBreakEscape{fx: fx}
	},
}

type hardBreakEscape struct {
	fx      Effects
	started bool
}

func (m *hardBreakEscape) Feed(code Code) Transition {
	if !m.started {
		m.started = true
		m.fx.Enter(KindHardBreakEscape)
		m.fx.Consume(code)
		return Continue
	}

	if !IsLineEnding(code) {
		return Fail
	}

	m.fx.Exit(KindHardBreakEscape)
	return Match
}

// CharacterEscape matches a backslash followed by ASCII punctuation.
var CharacterEscape = &Construct{
	Name: "characterEscape",
	Tokenize: func(_ Context, fx Effects) Machine {
		return &characterEscape{fx: fx}
	},
}

type characterEscape struct {
	fx      Effects
	started bool
}

func (m *characterEscape) Feed(code Code) Transition {
	if !m.started {
		m.started = true
		m.fx.Enter(KindCharacterEscape)
		m.fx.Enter(KindEscapeMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindEscapeMarker)
		return Continue
	}

	if !IsASCIIPunctuation(code) {
		return Fail
	}

	m.fx.Enter(KindCharacterEscapeValue)
	m.fx.Consume(code)
	m.fx.Exit(KindCharacterEscapeValue)
	m.fx.Exit(KindCharacterEscape)
	return Match
}
