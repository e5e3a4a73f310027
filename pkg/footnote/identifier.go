package footnote

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeIdentifier turns a raw label into its matching key: runs of
// whitespace collapse to one space, the ends are trimmed, and the result is
// lower-cased and then upper-cased. Full case mapping is used, so "ß" and
// "SS" meet.
func NormalizeIdentifier(value string) string {
	collapsed := strings.Join(strings.FieldsFunc(value, isLabelSpace), " ")

	lower := cases.Lower(language.Und).String(collapsed)
	return cases.Upper(language.Und).String(lower)
}

// Identifier returns the identifier stored on nodes for a raw label.
func Identifier(label string) string {
	return cases.Lower(language.Und).String(NormalizeIdentifier(label))
}

func isLabelSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
