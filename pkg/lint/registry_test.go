package lint

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/footmark/pkg/config"
)

type mockRule struct {
	id   string
	name string
}

func (m *mockRule) ID() string                               { return m.id }
func (m *mockRule) Name() string                             { return m.name }
func (m *mockRule) Description() string                      { return "mock" }
func (m *mockRule) DefaultEnabled() bool                     { return true }
func (m *mockRule) DefaultSeverity() config.Severity         { return config.SeverityWarning }
func (m *mockRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&mockRule{id: "FN003", name: "unused-definition"})

	got, ok := reg.GetByID("FN003")
	require.True(t, ok)
	assert.Equal(t, "unused-definition", got.Name())

	_, ok = reg.GetByID("unused-definition")
	assert.False(t, ok, "GetByID does not match names")

	got, ok = reg.Get("unused-definition")
	require.True(t, ok)
	assert.Equal(t, "FN003", got.ID())

	_, ok = reg.Get("FN999")
	assert.False(t, ok)
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&mockRule{id: "FN001", name: "old"})
	reg.Register(&mockRule{id: "FN001", name: "forward-reference"})

	got, ok := reg.GetByID("FN001")
	require.True(t, ok)
	assert.Equal(t, "forward-reference", got.Name())
	assert.Len(t, reg.Rules(), 1)

	_, ok = reg.Get("old")
	assert.False(t, ok, "the replaced rule's name is dropped")
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.Register(&mockRule{id: "FN004", name: "duplicate-definition"})

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"FN004", "FN004", true},
		{"duplicate-definition", "FN004", true},
		{"fn004", "FN004", true},
		{"Duplicate-Definition", "", false},
		{"FN999", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			id, rule, ok := reg.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, ok, rule != nil)
		})
	}
}

func TestRegistry_Sorted(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	for _, id := range []string{"FN003", "FN001", "FN004", "FN002"} {
		reg.Register(&mockRule{id: id, name: "rule-" + id})
	}

	assert.Equal(t, []string{"FN001", "FN002", "FN003", "FN004"}, reg.IDs())

	rules := reg.Rules()
	rules[0] = nil
	assert.NotNil(t, reg.Rules()[0], "Rules returns a copy")
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			id := fmt.Sprintf("FN%03d", i)
			reg.Register(&mockRule{id: id, name: "rule-" + id})
			_, _, _ = reg.Resolve(id)
			_ = reg.IDs()
		})
	}
	wg.Wait()

	assert.Len(t, reg.IDs(), 20)
}
