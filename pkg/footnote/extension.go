package footnote

import "github.com/yaklabco/footmark/pkg/syntax"

// Options configures the footnote extension.
type Options struct {
	// InlineNotes enables ^[...] inline notes.
	InlineNotes bool
}

// Syntax returns the tokenizer extension: definitions at document level,
// calls in text, and, when enabled, inline note starts and ends.
func Syntax(opts Options) syntax.Extension {
	ext := syntax.Extension{
		Document: map[syntax.Code][]*syntax.Construct{
			'[': {Definition},
		},
		Text: map[syntax.Code][]*syntax.Construct{
			'[': {Call},
		},
	}

	if opts.InlineNotes {
		ext.Text['^'] = []*syntax.Construct{NoteStart}
		ext.Text[']'] = []*syntax.Construct{NoteEnd}
	}

	return ext
}
