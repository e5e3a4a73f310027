// Package diff renders line-based unified diffs between a file and its
// formatted replacement.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around each change.
const contextLines = 3

// Kind classifies a line of a hunk.
type Kind int

const (
	// Context is an unchanged line.
	Context Kind = iota

	// Add is a line only present in the new content.
	Add

	// Remove is a line only present in the old content.
	Remove
)

// Line is a single line of a hunk. Text keeps its line terminator, if any.
type Line struct {
	Kind Kind
	Text string
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	// OldStart and NewStart are 1-based line numbers. An empty side points
	// at the line before the hunk, as in `diff -u`.
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileDiff is the unified diff of one file.
type FileDiff struct {
	Path    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Compute diffs before against after. It returns nil when they are equal.
func Compute(path string, before, after []byte) *FileDiff {
	if string(before) == string(after) {
		return nil
	}

	ops := script(splitLines(before), splitLines(after))

	d := &FileDiff{Path: path, Hunks: group(ops)}
	for _, o := range ops {
		switch o.kind {
		case Add:
			d.Added++
		case Remove:
			d.Removed++
		}
	}

	return d
}

// HasChanges reports whether the diff contains any hunk.
func (d *FileDiff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String returns the diff in unified format with a/ and b/ headers.
func (d *FileDiff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)

	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%s +%s @@\n", span(h.OldStart, h.OldCount), span(h.NewStart, h.NewCount))

		for _, line := range h.Lines {
			b.WriteByte(prefix(line.Kind))
			b.WriteString(line.Text)
			if !strings.HasSuffix(line.Text, "\n") {
				b.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}

	return b.String()
}

func span(start, count int) string {
	if count == 1 {
		return fmt.Sprint(start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

func prefix(k Kind) byte {
	switch k {
	case Add:
		return '+'
	case Remove:
		return '-'
	default:
		return ' '
	}
}

// splitLines splits content after every "\n". The last line lacks a
// terminator when the content does not end with one.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.SplitAfter(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// op is one step of the edit script. oldAt and newAt are the 0-based line
// indexes before the step.
type op struct {
	kind  Kind
	text  string
	oldAt int
	newAt int
}

// script computes a shortest edit script from the longest common
// subsequence of lines.
func script(a, b []string) []op {
	n, m := len(a), len(b)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]op, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, op{kind: Context, text: a[i], oldAt: i, newAt: j})
			i++
			j++
		case j == m || (i < n && lcs[i+1][j] >= lcs[i][j+1]):
			ops = append(ops, op{kind: Remove, text: a[i], oldAt: i, newAt: j})
			i++
		default:
			ops = append(ops, op{kind: Add, text: b[j], oldAt: i, newAt: j})
			j++
		}
	}

	return ops
}

// group cuts the script into hunks. Changes separated by at most twice the
// context share a hunk.
func group(ops []op) []Hunk {
	var hunks []Hunk

	for i := 0; i < len(ops); {
		for i < len(ops) && ops[i].kind == Context {
			i++
		}
		if i == len(ops) {
			break
		}

		start := max(i-contextLines, 0)
		end := i
		for end < len(ops) {
			if ops[end].kind != Context {
				end++
				continue
			}
			run := end
			for run < len(ops) && ops[run].kind == Context {
				run++
			}
			if run == len(ops) || run-end > 2*contextLines {
				break
			}
			end = run
		}

		stop := min(end+contextLines, len(ops))
		hunks = append(hunks, hunk(ops[start:stop]))
		i = stop
	}

	return hunks
}

func hunk(ops []op) Hunk {
	h := Hunk{
		OldStart: ops[0].oldAt + 1,
		NewStart: ops[0].newAt + 1,
		Lines:    make([]Line, 0, len(ops)),
	}

	for _, o := range ops {
		h.Lines = append(h.Lines, Line{Kind: o.kind, Text: o.text})
		if o.kind != Add {
			h.OldCount++
		}
		if o.kind != Remove {
			h.NewCount++
		}
	}

	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}

	return h
}
