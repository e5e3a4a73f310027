// Package lint runs footnote rules over parsed documents and reports what
// they find.
package lint

import "github.com/yaklabco/footmark/pkg/config"

// Rule is a single footnote check.
type Rule interface {
	// ID is the stable identifier, e.g. "FN001".
	ID() string

	// Name is the kebab-case name, e.g. "forward-reference".
	Name() string

	Description() string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// Apply returns the rule's findings. The error is reserved for failures
	// of the rule itself, such as cancellation.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
