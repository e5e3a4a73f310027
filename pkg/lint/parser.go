package lint

import (
	"context"

	"github.com/yaklabco/footmark/pkg/mdast"
)

// Parser parses Markdown content into a FileSnapshot.
//
// The footmark processor is the primary implementation; the goldmark
// reference parser implements it too.
//
// Implementations must:
//   - be safe for concurrent use by multiple goroutines,
//   - not mutate content,
//   - return a snapshot whose nodes all point back at it.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
