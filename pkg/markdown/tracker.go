package markdown

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Point is a 1-based line and column in the output.
type Point struct {
	Line   int
	Column int
}

// Info describes where a node is being serialized.
type Info struct {
	// Before is the output right before the node, usually one character.
	Before string

	// After is the output right after the node, usually one character.
	After string

	// Now is the position the node starts at.
	Now Point

	// LineShift is the indentation added to every line after the first.
	LineShift int
}

// Tracker follows the output position while a handler builds its value.
type Tracker struct {
	line      int
	column    int
	lineShift int
}

// NewTracker starts tracking at info. A zero line or column means 1.
// Negative values are a programming error.
func NewTracker(info Info) *Tracker {
	if info.Now.Line < 0 || info.Now.Column < 0 || info.LineShift < 0 {
		panic(fmt.Sprintf("markdown: negative position %d:%d (shift %d)",
			info.Now.Line, info.Now.Column, info.LineShift))
	}

	t := &Tracker{line: info.Now.Line, column: info.Now.Column, lineShift: info.LineShift}
	if t.line == 0 {
		t.line = 1
	}
	if t.column == 0 {
		t.column = 1
	}
	return t
}

// Move advances past value and returns it unchanged. Columns count runes.
func (t *Tracker) Move(value string) string {
	breaks := 0
	tail := value

	for {
		idx := strings.IndexAny(tail, "\r\n")
		if idx < 0 {
			break
		}
		size := 1
		if tail[idx] == '\r' && idx+1 < len(tail) && tail[idx+1] == '\n' {
			size = 2
		}
		tail = tail[idx+size:]
		breaks++
	}

	t.line += breaks
	if breaks == 0 {
		t.column += utf8.RuneCountInString(tail)
	} else {
		t.column = 1 + utf8.RuneCountInString(tail) + t.lineShift
	}

	return value
}

// Shift adds n to the indentation of later lines.
func (t *Tracker) Shift(n int) {
	t.lineShift += n
}

// Current returns the position as an Info with empty surroundings.
func (t *Tracker) Current() Info {
	return Info{
		Now:       Point{Line: t.line, Column: t.column},
		LineShift: t.lineShift,
	}
}

// Info returns the position with the given surroundings.
func (t *Tracker) Info(before, after string) Info {
	info := t.Current()
	info.Before = before
	info.After = after
	return info
}
