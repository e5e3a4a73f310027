package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/footmark/pkg/config"
)

func TestFormatRuleID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   config.RuleFormat
		ruleID   string
		ruleName string
		want     string
	}{
		{"name format", config.RuleFormatName, "FN002", "undefined-reference", "undefined-reference"},
		{"id format", config.RuleFormatID, "FN002", "undefined-reference", "FN002"},
		{"combined format", config.RuleFormatCombined, "FN002", "undefined-reference", "FN002/undefined-reference"},
		{"name format empty name", config.RuleFormatName, "FN002", "", "FN002"},
		{"default to name", config.RuleFormat(""), "FN002", "undefined-reference", "undefined-reference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, config.FormatRuleID(tt.format, tt.ruleID, tt.ruleName))
		})
	}
}

func TestEnumValidity(t *testing.T) {
	t.Parallel()

	assert.True(t, config.FlavorGFM.IsValid())
	assert.True(t, config.FlavorCommonMark.IsValid())
	assert.False(t, config.Flavor("markdown").IsValid())

	assert.True(t, config.FormatYAML.IsValid())
	assert.False(t, config.OutputFormat("sarif").IsValid())

	assert.True(t, config.RuleFormatCombined.IsValid())
	assert.False(t, config.RuleFormat("both").IsValid())

	assert.True(t, config.SeverityInfo.IsValid())
	assert.False(t, config.Severity("fatal").IsValid())
}
