package syntax

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/util"
)

var escapeOrReference = regexp.MustCompile(
	"(?i)\\\\[!-/:-@\\[-`{-~]|&(?:#(?:[0-9]{1,7}|x[0-9a-f]{1,6})|[0-9a-z]{1,31});",
)

// DecodeString resolves character escapes and character references in value.
// Unknown named references are left as they are.
func DecodeString(value string) string {
	if !strings.ContainsAny(value, `\&`) {
		return value
	}

	return escapeOrReference.ReplaceAllStringFunc(value, func(match string) string {
		if match[0] == '\\' {
			return match[1:]
		}

		inner := match[1 : len(match)-1]
		if inner[0] != '#' {
			if decoded, ok := DecodeNamedReference(inner); ok {
				return decoded
			}
			return match
		}

		if inner[1] == 'x' || inner[1] == 'X' {
			return DecodeNumericReference(inner[2:], 16)
		}
		return DecodeNumericReference(inner[1:], 10)
	})
}

// DecodeNumericReference decodes the digits of a numeric character reference.
// Values that are not valid characters decode to U+FFFD.
func DecodeNumericReference(digits string, base int) string {
	value, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		return string(util.ToValidRune(0))
	}
	return string(util.ToValidRune(rune(value)))
}

// DecodeNamedReference decodes the name of a named character reference.
func DecodeNamedReference(name string) (string, bool) {
	entity, ok := util.LookUpHTML5EntityByName(name)
	if !ok {
		return "", false
	}
	return string(entity.Characters), true
}
