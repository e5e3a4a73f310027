package syntax

import "fmt"

// Document is the result of tokenizing one input.
type Document struct {
	Source *Source
	Events []Event
	State  *ParseState
}

// Parse tokenizes content with the given extensions. Each call gets its own
// ParseState.
func Parse(content []byte, exts ...Extension) *Document {
	p := &parser{
		src:                Preprocess(content),
		state:              NewParseState(),
		documentConstructs: make(map[Code][]*Construct),
		textConstructs:     make(map[Code][]*Construct),
	}

	for _, ext := range exts {
		for code, constructs := range ext.Document {
			p.documentConstructs[code] = append(p.documentConstructs[code], constructs...)
		}
		for code, constructs := range ext.Text {
			p.textConstructs[code] = append(p.textConstructs[code], constructs...)
		}
	}

	return &Document{
		Source: p.src,
		Events: p.document(),
		State:  p.state,
	}
}

type parser struct {
	src                *Source
	state              *ParseState
	documentConstructs map[Code][]*Construct
	textConstructs     map[Code][]*Construct

	containers []*container
	para       *paragraph
}

// container is an open document construct.
type container struct {
	construct *Construct
	state     *ContainerState
	token     *Token
}

// paragraph collects the code indices of an open paragraph.
type paragraph struct {
	indices []int

	// lineEnding is the index of the line ending after the last line, or -1.
	lineEnding int
}

func (p *parser) document() []Event {
	r := &runner{
		src:   p.src,
		in:    sourceStream{src: p.src},
		state: p.state,
	}

	for r.pos < r.in.Len() {
		p.line(r)
	}

	p.closeParagraph(r)
	p.closeContainers(r, 0)

	return r.events
}

// line processes one line starting at r.pos and leaves r.pos at the start of
// the next line.
func (p *parser) line(r *runner) {
	mark := len(r.events)
	matched := 0

	for matched < len(p.containers) {
		open := p.containers[matched]
		r.container = open.state
		if !r.attempt(open.construct.Continuation) {
			break
		}
		matched++
	}

	prefix := take(r, mark)
	opened := false

	for p.openContainer(r, matched, &prefix) {
		matched = len(p.containers)
		opened = true
	}

	if !opened && matched < len(p.containers) {
		if p.para == nil || p.blank(r.pos) {
			p.closeParagraph(r)
			p.closeContainers(r, matched)
		}
		// Otherwise this is a lazy paragraph continuation line.
	}

	if p.blank(r.pos) {
		p.closeParagraph(r)
		r.events = append(r.events, prefix...)
		p.skipLine(r)
		return
	}

	if p.para == nil {
		r.events = append(r.events, prefix...)
		p.para = &paragraph{lineEnding: -1}
	} else if p.para.lineEnding >= 0 {
		p.para.indices = append(p.para.indices, p.para.lineEnding)
	}

	for IsMarkdownSpace(r.in.Code(r.pos)) {
		r.pos++
	}

	for code := r.in.Code(r.pos); code != EOF && !IsLineEnding(code); code = r.in.Code(r.pos) {
		p.para.indices = append(p.para.indices, r.pos)
		r.pos++
	}

	p.para.lineEnding = -1
	if IsLineEnding(r.in.Code(r.pos)) {
		p.para.lineEnding = r.pos
		r.pos++
	}
}

// openContainer tries to start a new container at r.pos. On success it closes
// the paragraph and the containers past matched, then appends the pending
// prefix events and the new container's events.
func (p *parser) openContainer(r *runner, matched int, prefix *[]Event) bool {
	mark := len(r.events)
	depth := len(r.open)

	for _, c := range p.documentConstructs[r.in.Code(r.pos)] {
		state := &ContainerState{}
		r.container = state

		if !r.attempt(c) {
			continue
		}

		if len(r.open) != depth+1 {
			panic(fmt.Sprintf("syntax: container %q must leave exactly one token open", c.Name))
		}

		token := r.open[depth]
		r.open = r.open[:depth]
		events := take(r, mark)

		p.closeParagraph(r)
		p.closeContainers(r, matched)

		r.events = append(r.events, *prefix...)
		r.events = append(r.events, events...)
		*prefix = nil

		p.containers = append(p.containers, &container{construct: c, state: state, token: token})
		return true
	}

	return false
}

func (p *parser) closeParagraph(r *runner) {
	para := p.para
	if para == nil {
		return
	}
	p.para = nil

	indices := para.indices
	for len(indices) > 0 && IsMarkdownSpace(p.src.Codes[indices[len(indices)-1]]) {
		indices = indices[:len(indices)-1]
	}
	if len(indices) == 0 {
		return
	}

	tok := &Token{
		Kind:  KindParagraph,
		Start: p.src.Points[indices[0]],
		End:   p.src.Points[indices[len(indices)-1]+1],
	}

	r.events = append(r.events, Event{Phase: Enter, Token: tok})
	r.events = append(r.events, p.text(indices)...)
	r.events = append(r.events, Event{Phase: Exit, Token: tok})
}

// closeContainers exits every open container past keep, innermost first.
func (p *parser) closeContainers(r *runner, keep int) {
	for len(p.containers) > keep {
		last := len(p.containers) - 1
		open := p.containers[last]
		p.containers = p.containers[:last]

		end := open.token.Start
		if n := len(r.events); n > 0 {
			tail := r.events[n-1]
			if tail.Phase == Exit && tail.Token.End.Index > end.Index {
				end = tail.Token.End
			}
		}

		closer := &containerExit{events: &r.events, token: open.token, at: end}
		if open.construct.Exit != nil {
			open.construct.Exit(closer)
		} else {
			closer.Exit(open.token.Kind)
		}

		if !closer.done {
			panic(fmt.Sprintf("syntax: container %q was not closed", open.construct.Name))
		}
	}
}

func (p *parser) blank(pos int) bool {
	for IsMarkdownSpace(p.code(pos)) {
		pos++
	}
	code := p.code(pos)
	return code == EOF || IsLineEnding(code)
}

func (p *parser) skipLine(r *runner) {
	for code := r.in.Code(r.pos); code != EOF; code = r.in.Code(r.pos) {
		r.pos++
		if IsLineEnding(code) {
			return
		}
	}
}

func (p *parser) code(pos int) Code {
	if pos >= len(p.src.Codes) {
		return EOF
	}
	return p.src.Codes[pos]
}

// take removes and returns the events after mark.
func take(r *runner, mark int) []Event {
	events := append([]Event(nil), r.events[mark:]...)
	r.events = r.events[:mark]
	return events
}

// containerExit is the Effects handed to a container's Exit.
type containerExit struct {
	events *[]Event
	token  *Token
	at     Point
	done   bool
}

func (c *containerExit) Enter(kind TokenKind) *Token {
	panic(fmt.Sprintf("syntax: cannot enter %q while closing a container", kind))
}

func (c *containerExit) Exit(kind TokenKind) *Token {
	if c.done || kind != c.token.Kind {
		panic(fmt.Sprintf("syntax: cannot exit %q: %q is open", kind, c.token.Kind))
	}

	c.token.End = c.at
	*c.events = append(*c.events, Event{Phase: Exit, Token: c.token})
	c.done = true

	return c.token
}

func (c *containerExit) Consume(code Code) {
	panic(fmt.Sprintf("syntax: cannot consume %d while closing a container", code))
}
