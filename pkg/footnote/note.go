package footnote

import "github.com/yaklabco/footmark/pkg/syntax"

// NoteStart recognizes the ^[ that opens an inline note. Starts that never
// find an end are turned back into text.
var NoteStart = &syntax.Construct{
	Name: "inlineNoteStart",
	Tokenize: func(_ syntax.Context, fx syntax.Effects) syntax.Machine {
		return &noteStartMachine{fx: fx}
	},
	ResolveAll: resolveOrphanNoteStarts,
}

// NoteEnd recognizes the ] that closes an inline note. It only matches when
// an unresolved start precedes it.
var NoteEnd = &syntax.Construct{
	Name: "inlineNoteEnd",
	Tokenize: func(ctx syntax.Context, fx syntax.Effects) syntax.Machine {
		return &noteEndMachine{ctx: ctx, fx: fx}
	},
	ResolveTo: resolveNoteEnd,
}

type noteStartMachine struct {
	fx      syntax.Effects
	started bool
}

func (m *noteStartMachine) Feed(code syntax.Code) syntax.Transition {
	if !m.started {
		m.started = true
		m.fx.Enter(KindInlineNoteStart)
		m.fx.Enter(KindInlineNoteMarker)
		m.fx.Consume(code)
		m.fx.Exit(KindInlineNoteMarker)
		return syntax.Continue
	}

	if code != '[' {
		return syntax.Fail
	}

	m.fx.Enter(KindInlineNoteStartMarker)
	m.fx.Consume(code)
	m.fx.Exit(KindInlineNoteStartMarker)
	m.fx.Exit(KindInlineNoteStart)

	return syntax.Match
}

type noteEndMachine struct {
	ctx syntax.Context
	fx  syntax.Effects
}

func (m *noteEndMachine) Feed(code syntax.Code) syntax.Transition {
	if openNoteStart(m.ctx.Events(), len(m.ctx.Events())) < 0 {
		return syntax.Fail
	}

	m.fx.Enter(KindInlineNoteEnd)
	m.fx.Enter(KindInlineNoteMarker)
	m.fx.Consume(code)
	m.fx.Exit(KindInlineNoteMarker)
	m.fx.Exit(KindInlineNoteEnd)

	return syntax.Match
}

// openNoteStart returns the index of the last unresolved note start before
// limit, or -1.
func openNoteStart(events []syntax.Event, limit int) int {
	for i := limit - 1; i >= 0; i-- {
		if events[i].Phase == syntax.Enter && events[i].Token.Kind == KindInlineNoteStart {
			return i
		}
	}
	return -1
}

// resolveNoteEnd replaces the run from the matching start to the end that
// just matched with one nested inlineNote group:
//
//	enter inlineNote
//	  ^ and [ markers
//	  enter inlineNoteText ... exit inlineNoteText
//	  ] marker
//	exit inlineNote
func resolveNoteEnd(events []syntax.Event, ctx syntax.Context) []syntax.Event {
	last := len(events) - 1
	open := openNoteStart(events, last-3)
	if open < 0 {
		return events
	}

	start := events[open].Token
	note := start.Derive(KindInlineNote, start.Start, events[last].Token.End)
	text := start.Derive(KindInlineNoteText, events[open+4].Token.End, events[last-2].Token.Start)

	inside := append([]syntax.Event(nil), events[open+6:last-3]...)
	inside = ctx.ResolveInsideSpan(inside)

	group := make([]syntax.Event, 0, len(inside)+10)
	group = append(group,
		syntax.Event{Phase: syntax.Enter, Token: note},
		events[open+1], events[open+2], events[open+3], events[open+4],
		syntax.Event{Phase: syntax.Enter, Token: text},
	)
	group = append(group, inside...)
	group = append(group,
		syntax.Event{Phase: syntax.Exit, Token: text},
		events[last-2], events[last-1],
		syntax.Event{Phase: syntax.Exit, Token: note},
	)

	return append(events[:open], group...)
}

// resolveOrphanNoteStarts turns every note start left unresolved into data
// and drops its two markers.
func resolveOrphanNoteStarts(events []syntax.Event, _ syntax.Context) []syntax.Event {
	kept := events[:0]

	for i := 0; i < len(events); i++ {
		event := events[i]
		kept = append(kept, event)

		if event.Phase == syntax.Enter && event.Token.Kind == KindInlineNoteStart {
			event.Token.Kind = syntax.KindData
			i += 4
		}
	}

	return kept
}
