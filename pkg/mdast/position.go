package mdast

// SourceRange is a half-open byte range [StartOffset, EndOffset) into a
// file's content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// NoRange marks a node that was built rather than parsed.
var NoRange = SourceRange{StartOffset: -1, EndOffset: -1}

// Len returns the number of bytes in r.
func (r SourceRange) Len() int { return r.EndOffset - r.StartOffset }

// IsValid reports whether r points into a source.
func (r SourceRange) IsValid() bool { return r.StartOffset >= 0 && r.EndOffset >= r.StartOffset }

// Contains reports whether offset falls inside r.
func (r SourceRange) Contains(offset int) bool {
	return r.StartOffset <= offset && offset < r.EndOffset
}

// Position is a 1-based line and byte column.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether p has positive coordinates.
func (p Position) IsValid() bool { return p.Line > 0 && p.Column > 0 }

// SourcePosition is a SourceRange resolved to lines and columns. The end
// column points just past the last byte.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

func (sp SourcePosition) Start() Position { return Position{Line: sp.StartLine, Column: sp.StartColumn} }

func (sp SourcePosition) End() Position { return Position{Line: sp.EndLine, Column: sp.EndColumn} }

// IsValid reports whether both ends are valid positions.
func (sp SourcePosition) IsValid() bool { return sp.Start().IsValid() && sp.End().IsValid() }

// SourcePosition resolves n's range against its file. Nodes without a file
// or range yield the zero SourcePosition.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || !n.Range.IsValid() {
		return SourcePosition{}
	}
	var sp SourcePosition
	sp.StartLine, sp.StartColumn = n.File.LineAt(n.Range.StartOffset)
	sp.EndLine, sp.EndColumn = n.File.LineAt(n.Range.EndOffset)
	return sp
}

// Text returns the source bytes n was parsed from, or nil.
func (n *Node) Text() []byte {
	if n.File == nil || !n.Range.IsValid() || n.Range.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[n.Range.StartOffset:n.Range.EndOffset]
}
