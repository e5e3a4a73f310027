package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
)

// ValidationError describes one invalid configuration value.
type ValidationError struct {
	Field    string // dotted path, e.g. "rules.FN001.severity"
	Value    any
	Message  string
	FilePath string
	Line     int
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if e.FilePath != "" {
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Field != "" {
		b.WriteString(e.Field)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// ValidationResult collects the findings of Validate. Errors stop loading;
// warnings do not.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages returns every finding prefixed with "error: " or "warning: ".
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks cfg for invalid values. Rule keys are looked up in
// registry unless it is nil.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	enums := []struct {
		field   string
		value   string
		ok      bool
		allowed string
	}{
		{"flavor", string(cfg.Flavor), cfg.Flavor.IsValid(), "commonmark, gfm"},
		{"format", string(cfg.Format), cfg.Format.IsValid(), "text, json, yaml"},
		{"rule_format", string(cfg.RuleFormat), cfg.RuleFormat.IsValid(), "name, id, combined"},
		{"color", cfg.Color, slices.Contains([]string{"auto", "always", "never"}, cfg.Color), "auto, always, never"},
	}
	for _, e := range enums {
		if e.value != "" && !e.ok {
			result.fail(e.field, e.value, "invalid %s %q; must be one of: %s",
				strings.ReplaceAll(e.field, "_", " "), e.value, e.allowed)
		}
	}

	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}

	validateRules(cfg, registry, result)
	return result
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	for _, id := range slices.Sorted(maps.Keys(cfg.Rules)) {
		if registry != nil {
			if _, ok := registry.Get(id); !ok {
				result.warn("rules."+id, id, "unknown rule %q; it will be ignored", id)
			}
		}
		if sev := cfg.Rules[id].Severity; sev != nil && !config.Severity(*sev).IsValid() {
			result.fail("rules."+id+".severity", *sev, "invalid severity %q; must be one of: error, warning, info", *sev)
		}
	}

	if registry == nil {
		return
	}
	for _, key := range slices.Concat(cfg.EnableRules, cfg.DisableRules) {
		if _, ok := registry.Get(key); !ok {
			result.fail("rules", key, "unknown rule %q", key)
		}
	}
}

// ValidateWithFile runs Validate and attributes every finding to filePath.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}
