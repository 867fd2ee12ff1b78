package validation

import "fmt"

// Registry maps rule names to rules. Names are case-sensitive; registering
// an existing name replaces it.
//
// Registry does no locking: register everything at setup time, before
// concurrent Validate calls start.
type Registry struct {
	rules map[string]Rule
}

// NewRegistry creates a registry holding rules, keyed by their Name().
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{rules: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		r.MustRegister(rule.Name(), rule)
	}
	return r
}

// Register adds rule under name.
func (r *Registry) Register(name string, rule Rule) error {
	if name == "" {
		return ErrEmptyRuleName
	}
	if rule == nil {
		return fmt.Errorf("%w: %q", ErrNilRule, name)
	}
	r.rules[name] = rule
	return nil
}

// MustRegister is Register for setup code; it panics on error.
func (r *Registry) MustRegister(name string, rule Rule) *Registry {
	if err := r.Register(name, rule); err != nil {
		panic(err)
	}
	return r
}

// Get returns the rule registered under name, or nil.
func (r *Registry) Get(name string) Rule {
	return r.rules[name]
}

// Has reports whether Get(name) is non-nil.
func (r *Registry) Has(name string) bool {
	return r.rules[name] != nil
}

// All returns a copy of the name → rule mapping.
func (r *Registry) All() map[string]Rule {
	out := make(map[string]Rule, len(r.rules))
	for name, rule := range r.rules {
		out[name] = rule
	}
	return out
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	return sortedKeys(r.rules)
}
