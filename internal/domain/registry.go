package domain

import "fmt"

// Registry holds the rule set for a run. It is append-only during
// construction and read-only afterwards.
type Registry struct {
	rules []Rule
	index map[string]int
}

// NewRegistry builds a registry from the given rules, failing on the
// first invalid or duplicate rule.
func NewRegistry(rules ...Rule) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(rules))}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a rule. It returns a DuplicateRuleError if the id is
// already present.
func (r *Registry) Register(rule Rule) error {
	if rule.ID == "" {
		return fmt.Errorf("rule id must not be empty")
	}
	if rule.Match == nil {
		return fmt.Errorf("rule %q has no predicate", rule.ID)
	}
	if _, exists := r.index[rule.ID]; exists {
		return &DuplicateRuleError{ID: rule.ID}
	}
	r.rules = append(r.rules, rule)
	r.index[rule.ID] = len(r.rules) - 1
	return nil
}

// Len returns the number of registered rules.
func (r *Registry) Len() int { return len(r.rules) }

// Rules returns all rules in registration order.
func (r *Registry) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Get returns a rule by id.
func (r *Registry) Get(id string) (Rule, bool) {
	idx, ok := r.index[id]
	if !ok {
		return Rule{}, false
	}
	return r.rules[idx], true
}

// RulesFor returns the rules applicable to filePath, in registration
// order. The order is insignificant to final report output but is kept
// deterministic.
func (r *Registry) RulesFor(filePath string) []Rule {
	var out []Rule
	for _, rule := range r.rules {
		if rule.AppliesTo(filePath) {
			out = append(out, rule)
		}
	}
	return out
}
