package syntax

// ParseState is mutable state scoped to one parse. A fresh value is created
// for every document and dropped with it.
type ParseState struct {
	// footnotes maps a normalized footnote identifier to the byte offset of
	// the first definition that registered it.
	footnotes map[string]int
	order     []string
}

// NewParseState returns empty per-parse state.
func NewParseState() *ParseState {
	return &ParseState{}
}

// DefineFootnote records a footnote identifier defined at offset. Repeated
// definitions keep the first offset.
func (s *ParseState) DefineFootnote(identifier string, offset int) {
	if s.footnotes == nil {
		s.footnotes = make(map[string]int)
	}

	if _, ok := s.footnotes[identifier]; ok {
		return
	}

	s.footnotes[identifier] = offset
	s.order = append(s.order, identifier)
}

// FootnoteDefinedBefore reports whether identifier has a definition that
// starts before offset.
func (s *ParseState) FootnoteDefinedBefore(identifier string, offset int) bool {
	defined, ok := s.footnotes[identifier]
	return ok && defined < offset
}

// Footnotes returns the defined identifiers in document order.
func (s *ParseState) Footnotes() []string {
	return append([]string(nil), s.order...)
}
