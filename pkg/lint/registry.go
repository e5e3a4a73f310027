package lint

import (
	"slices"
	"strings"
	"sync"
)

// Registry holds rules keyed by ID and by name. It is safe for concurrent
// use.
type Registry struct {
	mu     sync.RWMutex
	rules  []Rule // sorted by ID
	byName map[string]Rule
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Rule)}
}

func compareIDs(a Rule, id string) int {
	return strings.Compare(a.ID(), id)
}

// Register adds a rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, found := slices.BinarySearchFunc(r.rules, rule.ID(), compareIDs)
	if found {
		delete(r.byName, r.rules[i].Name())
		r.rules[i] = rule
	} else {
		r.rules = slices.Insert(r.rules, i, rule)
	}
	r.byName[rule.Name()] = rule
}

// GetByID looks a rule up by its exact ID.
func (r *Registry) GetByID(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID(id)
}

func (r *Registry) byID(id string) (Rule, bool) {
	if i, found := slices.BinarySearchFunc(r.rules, id, compareIDs); found {
		return r.rules[i], true
	}
	return nil, false
}

// Get looks a rule up by exact ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID(key); ok {
		return rule, true
	}
	rule, ok := r.byName[key]
	return rule, ok
}

// Resolve returns the canonical ID and rule for key. Names must match
// exactly; IDs also match case-insensitively, so "fn001" resolves to FN001.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	rule, ok := r.Get(key)
	if !ok {
		rule, ok = r.GetByID(strings.ToUpper(key))
	}
	if !ok {
		return "", nil, false
	}
	return rule.ID(), rule, true
}

// Rules returns the registered rules sorted by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rules)
}

// IDs returns the registered rule IDs in sorted order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.ID()
	}
	return ids
}

// DefaultRegistry holds the built-in footnote rules, which register
// themselves from package rules.
//
//nolint:gochecknoglobals // rules register into it from init
var DefaultRegistry = NewRegistry()
