package markdown

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/footmark/pkg/syntax"
)

// Unsafe describes where a character must be escaped.
type Unsafe struct {
	// Character is the character to escape.
	Character rune

	// Before and After are regular expressions the surrounding output must
	// match. Empty means anything.
	Before string
	After  string

	// AtBreak limits the pattern to the start of a line, after optional
	// spaces and tabs.
	AtBreak bool

	// InConstruct and NotInConstruct restrict the pattern to construct
	// stacks that hold, or do not hold, one of the names.
	InConstruct    []string
	NotInConstruct []string
}

// SafeConfig is the context Safe escapes a value in.
type SafeConfig struct {
	Before string
	After  string

	// Encode lists characters that get a character reference instead of a
	// backslash.
	Encode string
}

type compiledUnsafe struct {
	Unsafe

	pattern *regexp.Regexp
	grouped bool
}

func compileUnsafe(u Unsafe) compiledUnsafe {
	var before string
	if u.AtBreak {
		before = `[\r\n][\t ]*`
	}
	if u.Before != "" {
		before += "(?:" + u.Before + ")"
	}

	var expr strings.Builder
	if before != "" {
		expr.WriteString("(" + before + ")")
	}
	expr.WriteString(regexp.QuoteMeta(string(u.Character)))
	if u.After != "" {
		expr.WriteString("(?:" + u.After + ")")
	}

	return compiledUnsafe{
		Unsafe:  u,
		pattern: regexp.MustCompile(expr.String()),
		grouped: before != "",
	}
}

func (u *compiledUnsafe) inScope(stack []string) bool {
	return listInScope(stack, u.InConstruct, true) && !listInScope(stack, u.NotInConstruct, false)
}

func listInScope(stack, list []string, none bool) bool {
	if len(list) == 0 {
		return none
	}
	for _, name := range list {
		if slices.Contains(stack, name) {
			return true
		}
	}
	return false
}

type matchInfo struct {
	before bool
	after  bool
}

// Safe escapes value so it reads back as the same text in the current
// construct stack. Before and After are only looked at, never returned.
func (s *State) Safe(value string, cfg SafeConfig) string {
	whole := cfg.Before + value + cfg.After

	var positions []int
	infos := make(map[int]*matchInfo)

	for i := range s.serializer.unsafe {
		pattern := &s.serializer.unsafe[i]
		if !pattern.inScope(s.Stack) {
			continue
		}

		for _, match := range pattern.pattern.FindAllStringSubmatchIndex(whole, -1) {
			before := pattern.Before != "" || pattern.AtBreak
			after := pattern.After != ""

			position := match[0]
			if pattern.grouped {
				position = match[3]
			}

			if info, ok := infos[position]; ok {
				info.before = info.before && before
				info.after = info.after && after
				continue
			}
			positions = append(positions, position)
			infos[position] = &matchInfo{before: before, after: after}
		}
	}

	slices.Sort(positions)

	start := len(cfg.Before)
	end := len(whole) - len(cfg.After)

	var result strings.Builder
	for idx, position := range positions {
		if position < start || position >= end {
			continue
		}

		// Skip when the neighbour that made this one unsafe is escaped
		// unconditionally anyway.
		info := infos[position]
		if idx+1 < len(positions) && position+1 < end && positions[idx+1] == position+1 &&
			info.after && !infos[position+1].before && !infos[position+1].after {
			continue
		}
		if idx > 0 && positions[idx-1] == position-1 &&
			info.before && !infos[position-1].before && !infos[position-1].after {
			continue
		}

		if start != position {
			result.WriteString(escapeBackslashes(whole[start:position], `\`))
		}
		start = position

		char, size := utf8.DecodeRuneInString(whole[position:])
		if char < utf8.RuneSelf && syntax.IsASCIIPunctuation(syntax.Code(char)) &&
			!strings.ContainsRune(cfg.Encode, char) {
			result.WriteByte('\\')
			continue
		}

		result.WriteString(EncodeCharacterReference(char))
		start += size
	}

	result.WriteString(escapeBackslashes(whole[start:end], cfg.After))
	return result.String()
}

// escapeBackslashes doubles every backslash in value that the following
// output would otherwise turn into an escape.
func escapeBackslashes(value, after string) string {
	whole := value + after

	var result strings.Builder
	start := 0
	for idx := 0; idx < len(value); idx++ {
		if value[idx] != '\\' || idx+1 >= len(whole) {
			continue
		}
		if !syntax.IsASCIIPunctuation(syntax.Code(whole[idx+1])) {
			continue
		}
		result.WriteString(value[start:idx])
		result.WriteByte('\\')
		start = idx
	}
	result.WriteString(value[start:])

	return result.String()
}

// EncodeCharacterReference returns the hexadecimal character reference
// for char.
func EncodeCharacterReference(char rune) string {
	return fmt.Sprintf("&#x%X;", char)
}
