// Package langdetect decides which files footmark treats as Markdown.
// Classification is delegated to go-enry, which carries linguist's
// extension and filename tables.
package langdetect

import (
	"path/filepath"
	"slices"

	"github.com/go-enry/go-enry/v2"
)

// Markdown is the linguist language name footmark processes.
const Markdown = "Markdown"

// IsMarkdown reports whether path names a Markdown file by its
// extension or well-known filename. Ambiguous extensions such as ".md"
// qualify when Markdown is among the candidates.
func IsMarkdown(path string) bool {
	base := filepath.Base(path)

	if lang, safe := enry.GetLanguageByFilename(base); safe {
		return lang == Markdown
	}

	return slices.Contains(enry.GetLanguagesByExtension(base, nil, nil), Markdown)
}

// Language returns the linguist language for a file, using content to
// break ties between candidates. It returns "" when enry cannot decide.
func Language(path string, content []byte) string {
	return enry.GetLanguage(filepath.Base(path), content)
}

// Skippable reports whether a slash- or OS-separated relative path is
// vendored or hidden.
func Skippable(path string) bool {
	slashed := filepath.ToSlash(path)
	return enry.IsVendor(slashed) || enry.IsDotFile(slashed)
}
