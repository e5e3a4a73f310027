package configloader

import (
	"github.com/yaklabco/footmark/pkg/config"
)

// merge layers override on top of base and returns a new config. Zero
// values in override leave base untouched, so a boolean can be switched on
// by a higher layer but never back off. Non-nil slices replace; rule maps
// merge per field.
func merge(base, override *config.Config) *config.Config {
	switch {
	case base == nil:
		return override
	case override == nil:
		return base
	}

	out := base.Clone()
	setIf(&out.Flavor, override.Flavor)
	setIf(&out.Format, override.Format)
	setIf(&out.RuleFormat, override.RuleFormat)
	setIf(&out.Color, override.Color)
	setIf(&out.Jobs, override.Jobs)
	setIf(&out.InlineNotes, override.InlineNotes)
	setIf(&out.Write, override.Write)
	setIf(&out.Check, override.Check)
	setIf(&out.Diff, override.Diff)
	setIf(&out.Backup, override.Backup)

	for _, pair := range []struct{ dst, src *[]string }{
		{&out.Ignore, &override.Ignore},
		{&out.EnableRules, &override.EnableRules},
		{&out.DisableRules, &override.DisableRules},
	} {
		if *pair.src != nil {
			*pair.dst = *pair.src
		}
	}

	out.Rules = mergeRules(out.Rules, override.Rules)
	return out
}

func setIf[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}

// mergeRules applies override's set fields per rule. base may be modified
// and returned.
func mergeRules(base, override map[string]config.RuleConfig) map[string]config.RuleConfig {
	if base == nil && override == nil {
		return nil
	}

	out := base
	if out == nil {
		out = make(map[string]config.RuleConfig, len(override))
	}
	for key, rc := range override {
		merged := out[key]
		if rc.Enabled != nil {
			merged.Enabled = rc.Enabled
		}
		if rc.Severity != nil {
			merged.Severity = rc.Severity
		}
		out[key] = merged
	}
	return out
}

// MergeAll folds configs left to right, later ones winning.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}
	out := configs[0]
	for _, cfg := range configs[1:] {
		out = merge(out, cfg)
	}
	return out
}
