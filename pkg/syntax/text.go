package syntax

import "slices"

// builtinText holds the text constructs every parse recognizes. Extension
// constructs for the same code are tried first.
var builtinText = map[Code][]*Construct{
	'\\': {HardBreakEscape, CharacterEscape},
	'&':  {CharacterReference},
}

// text tokenizes the codes of one paragraph.
func (p *parser) text(indices []int) []Event {
	sp := &span{indices: indices}
	r := &runner{
		src:        p.src,
		in:         spanStream{src: p.src, span: sp},
		span:       sp,
		state:      p.state,
		insideSpan: []Resolver{MergeData},
	}

	var resolveAll []*Construct

	for r.pos < r.in.Len() {
		code := r.in.Code(r.pos)

		if c := p.attemptText(r, code); c != nil {
			if c.ResolveAll != nil && !slices.Contains(resolveAll, c) {
				resolveAll = append(resolveAll, c)
			}
			continue
		}

		switch {
		case IsLineEnding(code):
			r.Enter(KindLineEnding)
			r.Consume(code)
			r.Exit(KindLineEnding)
		case IsMarkdownSpace(code):
			trailingWhitespace(r)
		default:
			r.Enter(KindData)
			r.Consume(code)
			r.Exit(KindData)
		}
	}

	events := r.events
	for _, c := range resolveAll {
		events = c.ResolveAll(events, r)
	}

	return MergeData(events, r)
}

func (p *parser) attemptText(r *runner, code Code) *Construct {
	for _, constructs := range [][]*Construct{p.textConstructs[code], builtinText[code]} {
		for _, c := range constructs {
			if !r.attempt(c) {
				continue
			}
			if c.ResolveTo != nil {
				r.events = c.ResolveTo(r.events, r)
			}
			return c
		}
	}
	return nil
}

// trailingWhitespace handles a whitespace run in paragraph text. Before a
// line ending, two or more trailing spaces form a hard break and anything
// less is dropped; elsewhere the run is data.
func trailingWhitespace(r *runner) {
	end, spaces := r.pos, 0
	for IsMarkdownSpace(r.in.Code(end)) {
		if r.in.Code(end) == ' ' {
			spaces++
		} else {
			spaces = 0
		}
		end++
	}

	next := r.in.Code(end)
	if !IsLineEnding(next) && next != EOF {
		for r.pos < end {
			r.Enter(KindData)
			r.Consume(r.in.Code(r.pos))
			r.Exit(KindData)
		}
		return
	}

	kind := KindWhitespace
	if spaces >= 2 && IsLineEnding(next) {
		kind = KindHardBreakTrailing
	}

	r.Enter(kind)
	for r.pos < end {
		r.Consume(r.in.Code(r.pos))
	}
	r.Exit(kind)
}

// MergeData joins runs of adjacent data tokens into one token.
func MergeData(events []Event, _ Context) []Event {
	merged := make([]Event, 0, len(events))

	for i := 0; i < len(events); i++ {
		event := events[i]
		if !isDataPair(events, i) {
			merged = append(merged, event)
			continue
		}

		next := i + 2
		for isDataPair(events, next) {
			event.Token.End = events[next].Token.End
			next += 2
		}

		merged = append(merged, event, events[i+1])
		i = next - 1
	}

	return merged
}

func isDataPair(events []Event, i int) bool {
	return i+1 < len(events) &&
		events[i].Phase == Enter &&
		events[i].Token.Kind == KindData &&
		events[i+1].Token == events[i].Token
}
