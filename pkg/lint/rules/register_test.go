package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/lint/rules"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	assert.Equal(t, []string{"FN001", "FN002", "FN003", "FN004"}, registry.IDs())

	tests := []struct {
		id       string
		name     string
		severity config.Severity
	}{
		{"FN001", "forward-reference", config.SeverityWarning},
		{"FN002", "undefined-reference", config.SeverityWarning},
		{"FN003", "unused-definition", config.SeverityInfo},
		{"FN004", "duplicate-definition", config.SeverityWarning},
	}

	for _, tt := range tests {
		rule, ok := registry.GetByID(tt.id)
		require.True(t, ok, "%s should be registered", tt.id)
		assert.Equal(t, tt.name, rule.Name())
		assert.Equal(t, tt.severity, rule.DefaultSeverity())
		assert.True(t, rule.DefaultEnabled())

		id, _, ok := registry.Resolve(tt.name)
		require.True(t, ok)
		assert.Equal(t, tt.id, id)
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	_, ok := lint.DefaultRegistry.GetByID("FN002")
	assert.True(t, ok, "init should register the built-in rules")
}

func TestRuleInfos(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	infos := rules.RuleInfos(registry)
	require.Len(t, infos, 4)

	assert.Equal(t, "FN001", infos[0].ID)
	assert.Equal(t, "forward-reference", infos[0].Name)
	assert.NotEmpty(t, infos[0].Description)
	assert.Equal(t, config.SeverityInfo, infos[2].Severity)

	template := string(config.GenerateTemplate(config.TemplateOptions{Full: true, Rules: infos}))
	assert.Contains(t, template, "  # FN003: unused-definition\n")
	assert.Contains(t, template, "    severity: info\n")
}
