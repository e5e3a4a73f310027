package syntax

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Point is a place in the source.
type Point struct {
	// Line is 1-based.
	Line int

	// Column is 1-based and counts expanded tab stops.
	Column int

	// Offset is the byte offset into the content.
	Offset int

	// Index is the index into Source.Codes.
	Index int
}

// Source is content split into codes.
type Source struct {
	// Content is the raw input.
	Content []byte

	// Codes holds one entry per character, line ending or virtual space.
	Codes []Code

	// Points holds the start of every code plus a final end point,
	// so len(Points) == len(Codes)+1.
	Points []Point
}

// Preprocess converts content into codes. CRLF, LF and CR become a single
// LineEnding; a tab is kept and followed by VirtualSpace codes up to the next
// tab stop; NUL becomes U+FFFD.
func Preprocess(content []byte) *Source {
	src := &Source{
		Content: content,
		Codes:   make([]Code, 0, len(content)),
		Points:  make([]Point, 0, len(content)+1),
	}

	line, column := 1, 1

	for offset := 0; offset < len(content); {
		char, size := utf8.DecodeRune(content[offset:])

		switch char {
		case '\r':
			src.add(LineEnding, line, column, offset)
			offset++
			if offset < len(content) && content[offset] == '\n' {
				offset++
			}
			line++
			column = 1

		case '\n':
			src.add(LineEnding, line, column, offset)
			offset++
			line++
			column = 1

		case '\t':
			src.add('\t', line, column, offset)
			offset++
			next := (column-1)/TabSize*TabSize + TabSize + 1
			column++
			for column < next {
				src.add(VirtualSpace, line, column, offset)
				column++
			}

		default:
			if char == 0 {
				char = utf8.RuneError
			}
			src.add(Code(char), line, column, offset)
			offset += size
			column++
		}
	}

	src.Points = append(src.Points, Point{
		Line:   line,
		Column: column,
		Offset: len(content),
		Index:  len(src.Codes),
	})

	return src
}

func (s *Source) add(code Code, line, column, offset int) {
	s.Points = append(s.Points, Point{
		Line:   line,
		Column: column,
		Offset: offset,
		Index:  len(s.Codes),
	})
	s.Codes = append(s.Codes, code)
}

// End returns the point after the last code.
func (s *Source) End() Point {
	return s.Points[len(s.Points)-1]
}

// Serialize returns the source text a token covers. Tokens produced inside a
// paragraph skip the container prefixes and indentation stripped from its
// lines.
func (s *Source) Serialize(tok *Token) string {
	if tok.span == nil {
		return string(s.Content[tok.Start.Offset:tok.End.Offset])
	}

	indices := tok.span.indices

	var b strings.Builder
	for i := sort.SearchInts(indices, tok.Start.Index); i < len(indices) && indices[i] < tok.End.Index; i++ {
		code := indices[i]
		b.Write(s.Content[s.Points[code].Offset:s.Points[code+1].Offset])
	}

	return b.String()
}
