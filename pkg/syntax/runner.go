package syntax

import "fmt"

// maxStall bounds how often a machine may continue without consuming.
const maxStall = 64

// stream is a sequence of codes a runner walks.
type stream interface {
	Len() int
	Code(pos int) Code
	Point(pos int) Point
	After(pos int) Point
}

// sourceStream walks every code of a source.
type sourceStream struct {
	src *Source
}

func (s sourceStream) Len() int { return len(s.src.Codes) }

func (s sourceStream) Code(pos int) Code {
	if pos >= len(s.src.Codes) {
		return EOF
	}
	return s.src.Codes[pos]
}

func (s sourceStream) Point(pos int) Point { return s.src.Points[min(pos, len(s.src.Codes))] }

func (s sourceStream) After(pos int) Point { return s.src.Points[pos+1] }

// spanStream walks the codes of a paragraph.
type spanStream struct {
	src  *Source
	span *span
}

func (s spanStream) Len() int { return len(s.span.indices) }

func (s spanStream) Code(pos int) Code {
	if pos >= len(s.span.indices) {
		return EOF
	}
	return s.src.Codes[s.span.indices[pos]]
}

func (s spanStream) Point(pos int) Point {
	if pos >= len(s.span.indices) {
		return s.After(len(s.span.indices) - 1)
	}
	return s.src.Points[s.span.indices[pos]]
}

func (s spanStream) After(pos int) Point { return s.src.Points[s.span.indices[pos]+1] }

// runner drives machines over a stream. It is the Effects and the Context
// handed to every machine it runs.
type runner struct {
	src        *Source
	in         stream
	span       *span
	state      *ParseState
	insideSpan []Resolver

	pos       int
	events    []Event
	open      []*Token
	container *ContainerState
}

type checkpoint struct {
	pos    int
	events int
	open   []*Token
}

func (r *runner) save() checkpoint {
	return checkpoint{
		pos:    r.pos,
		events: len(r.events),
		open:   append([]*Token(nil), r.open...),
	}
}

func (r *runner) restore(snap checkpoint) {
	r.pos = snap.pos
	r.events = r.events[:snap.events]
	r.open = snap.open
}

// attempt runs c at the current point and keeps its effects only if it
// matches.
func (r *runner) attempt(c *Construct) bool {
	snap := r.save()
	if r.run(c.Tokenize(r, r)) {
		return true
	}
	r.restore(snap)
	return false
}

func (r *runner) run(m Machine) bool {
	stalled := 0

	for {
		before := r.pos

		switch m.Feed(r.in.Code(r.pos)) {
		case Match:
			return true
		case Fail:
			return false
		case Continue:
		}

		if r.pos != before {
			stalled = 0
			continue
		}

		stalled++
		if stalled > maxStall {
			panic(fmt.Sprintf("syntax: machine %T makes no progress at %d", m, r.pos))
		}
	}
}

// Enter implements Effects.
func (r *runner) Enter(kind TokenKind) *Token {
	tok := &Token{Kind: kind, Start: r.in.Point(r.pos), span: r.span}
	r.open = append(r.open, tok)
	r.events = append(r.events, Event{Phase: Enter, Token: tok})
	return tok
}

// Exit implements Effects.
func (r *runner) Exit(kind TokenKind) *Token {
	if len(r.open) == 0 {
		panic(fmt.Sprintf("syntax: cannot exit %q: no token is open", kind))
	}

	tok := r.open[len(r.open)-1]
	if tok.Kind != kind {
		panic(fmt.Sprintf("syntax: cannot exit %q: %q is open", kind, tok.Kind))
	}

	r.open = r.open[:len(r.open)-1]
	tok.End = tok.Start
	if r.pos > 0 {
		if end := r.in.After(r.pos - 1); end.Index > tok.Start.Index {
			tok.End = end
		}
	}

	r.events = append(r.events, Event{Phase: Exit, Token: tok})
	return tok
}

// Consume implements Effects.
func (r *runner) Consume(code Code) {
	if current := r.in.Code(r.pos); code == EOF || code != current {
		panic(fmt.Sprintf("syntax: cannot consume %d: expected %d", code, current))
	}
	r.pos++
}

// Events implements Context.
func (r *runner) Events() []Event { return r.events }

// SliceSerialize implements Context.
func (r *runner) SliceSerialize(tok *Token) string { return r.src.Serialize(tok) }

// State implements Context.
func (r *runner) State() *ParseState { return r.state }

// ContainerState implements Context.
func (r *runner) ContainerState() *ContainerState { return r.container }

// Now implements Context.
func (r *runner) Now() Point { return r.in.Point(r.pos) }

// Check implements Context.
func (r *runner) Check(c *Construct) bool {
	snap := r.save()
	ok := r.run(c.Tokenize(r, r))
	r.restore(snap)
	return ok
}

// ResolveInsideSpan implements Context.
func (r *runner) ResolveInsideSpan(events []Event) []Event {
	for _, resolve := range r.insideSpan {
		events = resolve(events, r)
	}
	return events
}
