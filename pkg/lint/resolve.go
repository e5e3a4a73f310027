package lint

import "github.com/yaklabco/footmark/pkg/config"

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules with their resolved configuration.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var resolved []ResolvedRule

	for _, rule := range registry.Rules() {
		rr := resolveRule(rule, cfg)
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved
}

func resolveRule(rule Rule, cfg *config.Config) ResolvedRule {
	if cfg == nil {
		return ResolvedRule{
			Rule:     rule,
			Enabled:  rule.DefaultEnabled(),
			Severity: rule.DefaultSeverity(),
		}
	}

	return ResolvedRule{
		Rule:     rule,
		Enabled:  cfg.RuleEnabled(rule.ID(), rule.DefaultEnabled()),
		Severity: cfg.RuleSeverity(rule.ID(), rule.DefaultSeverity()),
	}
}
