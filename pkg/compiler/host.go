package compiler

import (
	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/syntax"
)

func hostExtension() Extension {
	return Extension{
		Enter: map[syntax.TokenKind]Handler{
			syntax.KindParagraph:         enterParagraph,
			syntax.KindHardBreakEscape:   enterHardBreak,
			syntax.KindHardBreakTrailing: enterHardBreak,
		},
		Exit: map[syntax.TokenKind]Handler{
			syntax.KindParagraph:                       exitNode,
			syntax.KindData:                            exitData,
			syntax.KindChunkString:                     exitChunkString,
			syntax.KindCharacterEscapeValue:            exitData,
			syntax.KindCharacterReferenceMarkerNumeric: exitReferenceMarker,
			syntax.KindCharacterReferenceMarkerHex:     exitReferenceMarker,
			syntax.KindCharacterReferenceValue:         exitReferenceValue,
			syntax.KindLineEnding:                      exitLineEnding,
			syntax.KindHardBreakEscape:                 exitHardBreak,
			syntax.KindHardBreakTrailing:               exitHardBreak,
		},
		CanContainEols: []mdast.NodeKind{mdast.NodeParagraph, mdast.NodeFragment},
	}
}

func enterParagraph(ctx *Context, tok *syntax.Token) error {
	ctx.Enter(mdast.NewNode(mdast.NodeParagraph), tok)
	return nil
}

func exitNode(ctx *Context, tok *syntax.Token) error {
	_, err := ctx.Exit(tok)
	return err
}

func exitData(ctx *Context, tok *syntax.Token) error {
	ctx.AppendText(ctx.Slice(tok), tok)
	return nil
}

func exitChunkString(ctx *Context, tok *syntax.Token) error {
	ctx.AppendText(syntax.DecodeString(ctx.Slice(tok)), tok)
	return nil
}

func exitReferenceMarker(ctx *Context, tok *syntax.Token) error {
	ctx.ReferenceKind = tok.Kind
	return nil
}

func exitReferenceValue(ctx *Context, tok *syntax.Token) error {
	value := ctx.Slice(tok)

	var decoded string
	switch ctx.ReferenceKind {
	case syntax.KindCharacterReferenceMarkerNumeric:
		decoded = syntax.DecodeNumericReference(value, 10)
	case syntax.KindCharacterReferenceMarkerHex:
		decoded = syntax.DecodeNumericReference(value, 16)
	default:
		decoded, _ = syntax.DecodeNamedReference(value)
	}
	ctx.ReferenceKind = ""

	ctx.AppendText(decoded, tok)
	return nil
}

func exitLineEnding(ctx *Context, tok *syntax.Token) error {
	if ctx.AtHardBreak {
		ctx.AtHardBreak = false
		return nil
	}

	if ctx.CanContainEols() {
		ctx.AppendText(ctx.Slice(tok), tok)
	}
	return nil
}

func enterHardBreak(ctx *Context, tok *syntax.Token) error {
	node := mdast.NewNode(mdast.NodeBreak)
	ctx.Enter(node, tok)
	return nil
}

func exitHardBreak(ctx *Context, tok *syntax.Token) error {
	if _, err := ctx.Exit(tok); err != nil {
		return err
	}
	ctx.AtHardBreak = true
	return nil
}
