package syntax

import "github.com/yuin/goldmark/util"

// Maximum value lengths of character references.
const (
	maxNamedReference   = 31
	maxDecimalReference = 7
	maxHexReference     = 6
)

// CharacterReference matches &name;, &#digits; and &#xhex;. Named references
// must exist in the HTML5 entity table.
var CharacterReference = &Construct{
	Name: "characterReference",
	Tokenize: func(ctx Context, fx Effects) Machine {
		return &characterReference{ctx: ctx, fx: fx}
	},
}

type referenceState uint8

const (
	referenceStart referenceState = iota
	referenceOpen
	referenceNumeric
	referenceValue
)

type characterReference struct {
	ctx   Context
	fx    Effects
	state referenceState
	test  func(Code) bool
	max   int
	size  int
	named bool
}

func (m *characterReference) Feed(code Code) Transition {
	switch m.state {
	case referenceStart:
		m.fx.Enter(KindCharacterReference)
		m.fx.Enter(KindCharacterReferenceMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindCharacterReferenceMarker)
		m.state = referenceOpen
		return Continue

	case referenceOpen:
		if code == '#' {
			m.fx.Enter(KindCharacterReferenceMarkerNumeric)
			m.fx.Consume(code)
			m.fx.Exit(KindCharacterReferenceMarkerNumeric)
			m.state = referenceNumeric
			return Continue
		}
		m.named = true
		m.value(IsASCIIAlphanumeric, maxNamedReference)
		return Continue

	case referenceNumeric:
		if code == 'x' || code == 'X' {
			m.fx.Enter(KindCharacterReferenceMarkerHex)
			m.fx.Consume(code)
			m.fx.Exit(KindCharacterReferenceMarkerHex)
			m.value(IsASCIIHexDigit, maxHexReference)
			return Continue
		}
		m.value(IsASCIIDigit, maxDecimalReference)
		return Continue

	case referenceValue:
		if code == ';' && m.size > 0 {
			tok := m.fx.Exit(KindCharacterReferenceValue)
			if m.named {
				if _, ok := util.LookUpHTML5EntityByName(m.ctx.SliceSerialize(tok)); !ok {
					return Fail
				}
			}
			m.fx.Enter(KindCharacterReferenceMarker)
			m.fx.Consume(code)
			m.fx.Exit(KindCharacterReferenceMarker)
			m.fx.Exit(KindCharacterReference)
			return Match
		}

		if m.test(code) && m.size < m.max {
			m.size++
			m.fx.Consume(code)
			return Continue
		}
	}

	return Fail
}

func (m *characterReference) value(test func(Code) bool, limit int) {
	m.fx.Enter(KindCharacterReferenceValue)
	m.test = test
	m.max = limit
	m.state = referenceValue
}
