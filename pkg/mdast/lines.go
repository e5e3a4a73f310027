package mdast

import (
	"bytes"
	"slices"
)

// BuildLines splits content into line records. LF, CRLF and a lone CR each
// end a line. The result always has one more entry than there are line
// endings, except for empty content.
func BuildLines(content []byte) []LineInfo {
	lines := []LineInfo{}
	if len(content) == 0 {
		return lines
	}

	start := 0
	for start <= len(content) {
		idx := bytes.IndexAny(content[start:], "\r\n")
		if idx < 0 {
			lines = append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
			break
		}

		nl := start + idx
		end := nl + 1
		if content[nl] == '\r' && end < len(content) && content[end] == '\n' {
			end++
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: nl, EndOffset: end})
		start = end
	}

	return lines
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt maps a byte offset to a 1-based line and byte column. Offsets at
// or past the end of the content land on the last line. A negative offset
// yields (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := len(f.Lines) - 1
	if offset < len(f.Content) {
		// First line whose end lies past offset.
		idx, _ = slices.BinarySearchFunc(f.Lines, offset, func(li LineInfo, target int) int {
			if li.EndOffset <= target {
				return -1
			}
			return 1
		})
		idx = min(idx, len(f.Lines)-1)
	}

	line := f.Lines[idx]
	if offset < line.StartOffset {
		return 0, 0
	}
	return idx + 1, offset - line.StartOffset + 1
}

// LineContent returns a 1-based line without its line ending, or nil when
// the line does not exist.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	li := f.Lines[line-1]
	return f.Content[li.StartOffset:li.NewlineStart]
}
