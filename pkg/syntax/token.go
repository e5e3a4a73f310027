package syntax

// TokenKind names what a token represents.
type TokenKind string

// Token kinds produced by the host tokenizer.
const (
	KindData                            TokenKind = "data"
	KindWhitespace                      TokenKind = "whitespace"
	KindLineEnding                      TokenKind = "lineEnding"
	KindLinePrefix                      TokenKind = "linePrefix"
	KindParagraph                       TokenKind = "paragraph"
	KindChunkString                     TokenKind = "chunkString"
	KindHardBreakEscape                 TokenKind = "hardBreakEscape"
	KindHardBreakTrailing               TokenKind = "hardBreakTrailing"
	KindCharacterEscape                 TokenKind = "characterEscape"
	KindEscapeMarker                    TokenKind = "escapeMarker"
	KindCharacterEscapeValue            TokenKind = "characterEscapeValue"
	KindCharacterReference              TokenKind = "characterReference"
	KindCharacterReferenceMarker        TokenKind = "characterReferenceMarker"
	KindCharacterReferenceMarkerNumeric TokenKind = "characterReferenceMarkerNumeric"
	KindCharacterReferenceMarkerHex     TokenKind = "characterReferenceMarkerHexadecimal"
	KindCharacterReferenceValue         TokenKind = "characterReferenceValue"
)

// Token is a named, half-open range of the source.
type Token struct {
	Kind  TokenKind
	Start Point
	End   Point

	// span is set for tokens produced while tokenizing paragraph text.
	span *span
}

// Derive returns a new token of kind over [start, end) that serializes the
// same way as t.
func (t *Token) Derive(kind TokenKind, start, end Point) *Token {
	return &Token{Kind: kind, Start: start, End: end, span: t.span}
}

// Phase tells whether an event opens or closes its token.
type Phase uint8

const (
	Enter Phase = iota
	Exit
)

// String returns "enter" or "exit".
func (p Phase) String() string {
	if p == Enter {
		return "enter"
	}
	return "exit"
}

// Event is one entry of the flat event stream. Nesting is implied by
// enter/exit pairing of the same token.
type Event struct {
	Phase Phase
	Token *Token
}

// span is the ordered list of code indices that make up a paragraph's text.
type span struct {
	indices []int
}
