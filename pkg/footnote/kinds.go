// Package footnote implements footnote syntax: calls ([^id]), definitions
// ([^id]: ...) with indented continuation, and optional inline notes (^[...]).
// It provides the tokenizer constructs, the tree builder handlers and the
// serializer handlers for the three footnote node kinds.
package footnote

import "github.com/yaklabco/footmark/pkg/syntax"

// Token kinds.
const (
	KindFootnoteCall                  syntax.TokenKind = "footnoteCall"
	KindFootnoteCallLabelMarker       syntax.TokenKind = "footnoteCallLabelMarker"
	KindFootnoteCallMarker            syntax.TokenKind = "footnoteCallMarker"
	KindFootnoteCallString            syntax.TokenKind = "footnoteCallString"
	KindFootnoteDefinition            syntax.TokenKind = "footnoteDefinition"
	KindFootnoteDefinitionLabel       syntax.TokenKind = "footnoteDefinitionLabel"
	KindFootnoteDefinitionLabelMarker syntax.TokenKind = "footnoteDefinitionLabelMarker"
	KindFootnoteDefinitionMarker      syntax.TokenKind = "footnoteDefinitionMarker"
	KindFootnoteDefinitionLabelString syntax.TokenKind = "footnoteDefinitionLabelString"
	KindFootnoteDefinitionWhitespace  syntax.TokenKind = "footnoteDefinitionWhitespace"
	KindFootnoteDefinitionIndent      syntax.TokenKind = "footnoteDefinitionIndent"
	KindDefinitionMarker              syntax.TokenKind = "definitionMarker"
	KindInlineNote                    syntax.TokenKind = "inlineNote"
	KindInlineNoteStart               syntax.TokenKind = "inlineNoteStart"
	KindInlineNoteStartMarker         syntax.TokenKind = "inlineNoteStartMarker"
	KindInlineNoteMarker              syntax.TokenKind = "inlineNoteMarker"
	KindInlineNoteEnd                 syntax.TokenKind = "inlineNoteEnd"
	KindInlineNoteText                syntax.TokenKind = "inlineNoteText"
)

// MaxLabelSize is the largest number of units a label may hold.
const MaxLabelSize = 1000

// indentSize is the indentation a continuation line needs.
const indentSize = 4
