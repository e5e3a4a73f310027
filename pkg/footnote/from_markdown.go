package footnote

import (
	"github.com/yaklabco/footmark/pkg/compiler"
	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/syntax"
)

// Tree returns the tree builder extension that turns footnote events into
// footnoteDefinition, footnoteReference and footnote nodes.
func Tree() compiler.Extension {
	return compiler.Extension{
		Enter: map[syntax.TokenKind]compiler.Handler{
			KindFootnoteDefinition:            enterDefinition,
			KindFootnoteDefinitionLabelString: enterLabel,
			KindFootnoteCall:                  enterCall,
			KindFootnoteCallString:            enterLabel,
			KindInlineNote:                    enterNote,
		},
		Exit: map[syntax.TokenKind]compiler.Handler{
			KindFootnoteDefinition:            exitNode,
			KindFootnoteDefinitionLabelString: exitLabel,
			KindFootnoteCall:                  exitNode,
			KindFootnoteCallString:            exitLabel,
			KindInlineNote:                    exitNode,
		},
		CanContainEols: []mdast.NodeKind{mdast.NodeFootnote},
	}
}

func enterDefinition(ctx *compiler.Context, tok *syntax.Token) error {
	ctx.Enter(mdast.NewFootnoteDefinition("", ""), tok)
	return nil
}

func enterCall(ctx *compiler.Context, tok *syntax.Token) error {
	ctx.Enter(mdast.NewFootnoteReference("", ""), tok)
	return nil
}

func enterNote(ctx *compiler.Context, tok *syntax.Token) error {
	ctx.Enter(mdast.NewNode(mdast.NodeFootnote), tok)
	return nil
}

func enterLabel(ctx *compiler.Context, _ *syntax.Token) error {
	ctx.Buffer()
	return nil
}

func exitLabel(ctx *compiler.Context, tok *syntax.Token) error {
	label, err := ctx.Resume()
	if err != nil {
		return err
	}

	node := ctx.Current()
	node.Footnote.Label = label
	node.Footnote.Identifier = Identifier(ctx.Slice(tok))
	return nil
}

func exitNode(ctx *compiler.Context, tok *syntax.Token) error {
	_, err := ctx.Exit(tok)
	return err
}
