// Package rules provides the built-in footnote rules for footmark.
//
//   - FN001: forward-reference - Calls should come after their definition
//   - FN002: undefined-reference - Calls should have a matching definition
//   - FN003: unused-definition - Definitions should be referenced
//   - FN004: duplicate-definition - Identifiers should be defined once
package rules

import (
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewForwardReferenceRule())    // FN001
	registry.Register(NewUndefinedReferenceRule())  // FN002
	registry.Register(NewUnusedDefinitionRule())    // FN003
	registry.Register(NewDuplicateDefinitionRule()) // FN004
}

// RuleInfos describes the rules of registry for config templates.
func RuleInfos(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Enabled:     rule.DefaultEnabled(),
			Severity:    rule.DefaultSeverity(),
		})
	}
	return infos
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
