package syntax

import "github.com/yuin/goldmark/util"

// Code is one unit of preprocessed input: a Unicode code point or one of the
// synthetic values below. Line endings and tab expansion are normalized before
// any construct sees the input.
type Code int32

// Synthetic codes.
const (
	// EOF marks the end of the input.
	EOF Code = -1

	// VirtualSpace pads a tab out to the next tab stop.
	VirtualSpace Code = -2

	// LineEnding stands for CRLF, LF or CR.
	LineEnding Code = -3
)

// TabSize is the distance between tab stops.
const TabSize = 4

// IsLineEnding reports whether code is a line ending.
func IsLineEnding(code Code) bool {
	return code == LineEnding
}

// IsMarkdownSpace reports whether code is horizontal whitespace: a space, a
// tab or the virtual space a tab expands into.
func IsMarkdownSpace(code Code) bool {
	return code == ' ' || code == '\t' || code == VirtualSpace
}

// IsLineEndingOrSpace reports whether code is a line ending or horizontal
// whitespace.
func IsLineEndingOrSpace(code Code) bool {
	return IsLineEnding(code) || IsMarkdownSpace(code)
}

// IsASCIIPunctuation reports whether code is one of !"#$%&'()*+,-./:;<=>?@[\]^_`{|}~.
func IsASCIIPunctuation(code Code) bool {
	return code >= 0 && code < 0x80 && util.IsPunct(byte(code))
}

// IsASCIIAlphanumeric reports whether code is [0-9A-Za-z].
func IsASCIIAlphanumeric(code Code) bool {
	return code >= 0 && code < 0x80 && util.IsAlphaNumeric(byte(code))
}

// IsASCIIDigit reports whether code is [0-9].
func IsASCIIDigit(code Code) bool {
	return code >= 0 && code < 0x80 && util.IsNumeric(byte(code))
}

// IsASCIIHexDigit reports whether code is [0-9A-Fa-f].
func IsASCIIHexDigit(code Code) bool {
	return code >= 0 && code < 0x80 && util.IsHexDecimal(byte(code))
}
