// Package compiler builds an mdast tree from a resolved event stream.
//
// Handlers are keyed by token kind and run when a token is entered or
// exited. They share a Context that keeps an explicit stack of open nodes,
// so nesting never depends on the Go call stack.
package compiler

import (
	"errors"
	"fmt"

	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/syntax"
)

// ErrUnbalanced reports an event stream whose enter and exit events do not
// pair up.
var ErrUnbalanced = errors.New("unbalanced events")

// Handler reacts to one event.
type Handler func(ctx *Context, tok *syntax.Token) error

// Extension adds handlers. Handlers for a kind replace earlier ones.
type Extension struct {
	Enter map[syntax.TokenKind]Handler
	Exit  map[syntax.TokenKind]Handler

	// CanContainEols lists node kinds that keep line endings as text.
	CanContainEols []mdast.NodeKind
}

// Compiler turns events into trees. It is safe for concurrent use.
type Compiler struct {
	enter map[syntax.TokenKind]Handler
	exit  map[syntax.TokenKind]Handler
	eols  map[mdast.NodeKind]bool
}

// New returns a compiler with the host handlers plus exts.
func New(exts ...Extension) *Compiler {
	c := &Compiler{
		enter: make(map[syntax.TokenKind]Handler),
		exit:  make(map[syntax.TokenKind]Handler),
		eols:  make(map[mdast.NodeKind]bool),
	}

	for _, ext := range append([]Extension{hostExtension()}, exts...) {
		for kind, handler := range ext.Enter {
			c.enter[kind] = handler
		}
		for kind, handler := range ext.Exit {
			c.exit[kind] = handler
		}
		for _, kind := range ext.CanContainEols {
			c.eols[kind] = true
		}
	}

	return c
}

// Compile builds the tree for doc. The returned root is a NodeDocument
// spanning the whole source.
func (c *Compiler) Compile(doc *syntax.Document) (*mdast.Node, error) {
	root := mdast.NewDocument()
	mdast.SetRange(root, 0, len(doc.Source.Content))

	ctx := &Context{
		compiler: c,
		source:   doc.Source,
		stack:    []*mdast.Node{root},
	}

	for _, event := range doc.Events {
		handlers := c.enter
		if event.Phase == syntax.Exit {
			handlers = c.exit
		}

		handler, ok := handlers[event.Token.Kind]
		if !ok {
			continue
		}

		if err := handler(ctx, event.Token); err != nil {
			return nil, err
		}
	}

	if n := len(ctx.tokens); n > 0 {
		return nil, fmt.Errorf("%w: %q is still open at end of document", ErrUnbalanced, ctx.tokens[n-1].Kind)
	}

	return root, nil
}

// Context is the state of one compilation.
type Context struct {
	compiler *Compiler
	source   *syntax.Source
	stack    []*mdast.Node
	tokens   []*syntax.Token

	// AtHardBreak is set after a hard break so the line ending that
	// follows is not kept as text.
	AtHardBreak bool

	// ReferenceKind remembers whether the character reference being read
	// is numeric or hexadecimal.
	ReferenceKind syntax.TokenKind
}

// Current returns the innermost open node.
func (ctx *Context) Current() *mdast.Node {
	return ctx.stack[len(ctx.stack)-1]
}

// Enter appends node to the current node and opens it for tok.
func (ctx *Context) Enter(node *mdast.Node, tok *syntax.Token) {
	mdast.SetRange(node, tok.Start.Offset, tok.End.Offset)
	mdast.AppendChild(ctx.Current(), node)
	ctx.stack = append(ctx.stack, node)
	ctx.tokens = append(ctx.tokens, tok)
}

// Exit closes the node opened for tok.
func (ctx *Context) Exit(tok *syntax.Token) (*mdast.Node, error) {
	if len(ctx.tokens) == 0 {
		return nil, fmt.Errorf("%w: cannot close %q: no node is open", ErrUnbalanced, tok.Kind)
	}

	open := ctx.tokens[len(ctx.tokens)-1]
	if open != tok {
		return nil, fmt.Errorf("%w: cannot close %q: %q is open", ErrUnbalanced, tok.Kind, open.Kind)
	}

	node := ctx.Current()
	if node.Kind == mdast.NodeFragment {
		return nil, fmt.Errorf("%w: cannot close %q inside a buffer", ErrUnbalanced, tok.Kind)
	}

	ctx.tokens = ctx.tokens[:len(ctx.tokens)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	node.Range.EndOffset = tok.End.Offset

	return node, nil
}

// Buffer starts collecting text instead of adding it to the tree.
func (ctx *Context) Buffer() {
	ctx.stack = append(ctx.stack, mdast.NewNode(mdast.NodeFragment))
}

// Resume stops the innermost Buffer and returns what it collected.
func (ctx *Context) Resume() (string, error) {
	fragment := ctx.Current()
	if fragment.Kind != mdast.NodeFragment {
		return "", fmt.Errorf("%w: resume without buffer", ErrUnbalanced)
	}

	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return mdast.PlainText(fragment), nil
}

// Slice returns the source text of tok.
func (ctx *Context) Slice(tok *syntax.Token) string {
	return ctx.source.Serialize(tok)
}

// AppendText adds value to the current node, extending a trailing text node
// when there is one.
func (ctx *Context) AppendText(value string, tok *syntax.Token) {
	parent := ctx.Current()

	if tail := parent.LastChild; tail != nil && tail.Kind == mdast.NodeText {
		tail.Inline.Text += value
		tail.Range.EndOffset = tok.End.Offset
		return
	}

	text := mdast.NewText(value)
	mdast.SetRange(text, tok.Start.Offset, tok.End.Offset)
	mdast.AppendChild(parent, text)
}

// CanContainEols reports whether the current node keeps line endings.
func (ctx *Context) CanContainEols() bool {
	return ctx.compiler.eols[ctx.Current().Kind]
}
