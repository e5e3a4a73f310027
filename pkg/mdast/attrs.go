package mdast

// InlineAttrs holds attributes for text and HTML nodes.
type InlineAttrs struct {
	// Text holds the literal value.
	Text string
}

// FootnoteAttrs holds attributes for footnote references and definitions.
// Inline footnotes carry none.
type FootnoteAttrs struct {
	// Identifier is the whitespace-collapsed, case-folded label used for
	// matching references to definitions.
	Identifier string

	// Label is the label text with escapes and references decoded.
	Label string
}

// NewInlineAttrs creates a new InlineAttrs with default values.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// NewFootnoteAttrs creates a new FootnoteAttrs with default values.
func NewFootnoteAttrs() *FootnoteAttrs {
	return &FootnoteAttrs{}
}

// WithText sets the text content and returns the InlineAttrs for chaining.
func (a *InlineAttrs) WithText(text string) *InlineAttrs {
	a.Text = text
	return a
}

// WithIdentifier sets the identifier and returns the FootnoteAttrs for chaining.
func (a *FootnoteAttrs) WithIdentifier(identifier string) *FootnoteAttrs {
	a.Identifier = identifier
	return a
}

// WithLabel sets the label and returns the FootnoteAttrs for chaining.
func (a *FootnoteAttrs) WithLabel(label string) *FootnoteAttrs {
	a.Label = label
	return a
}
