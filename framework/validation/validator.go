package validation

import (
	"fmt"
	"time"
)

// Validator ties a Registry, a Strategy, an optional Context and ad hoc
// extensions together. It mirrors Laravel's Validator::make().
//
//	v := validation.NewWithDefaults()
//	res, err := v.Validate(
//	    map[string]any{"email": "alice@example.com", "age": 25},
//	    validation.Rules{"email": "required|email", "age": "between:18,65"},
//	    nil,
//	)
//	if err != nil {
//	    // misconfigured rules: unknown rule name, bad parameters
//	}
//	if res.Fails() {
//	    // res.Errors() → {"field": ["msg1", "msg2"]}
//	}
type Validator struct {
	registry   *Registry
	strategy   Strategy
	context    Context
	extensions map[string]Rule
	events     *Dispatcher
}

// Option configures a Validator.
type Option func(*Validator)

// WithStrategy replaces the default stop-on-first-error strategy.
func WithStrategy(s Strategy) Option {
	return func(v *Validator) {
		if s != nil {
			v.strategy = s
		}
	}
}

// WithContext sets the context merged into every Validate call.
func WithContext(c Context) Option {
	return func(v *Validator) { v.context = c }
}

// WithEvents sets the dispatcher that receives validation events.
func WithEvents(d *Dispatcher) Option {
	return func(v *Validator) { v.events = d }
}

// New creates a Validator over registry. Nothing is registered implicitly;
// use NewWithDefaults for the built-in rules, nullable included.
func New(registry *Registry, opts ...Option) *Validator {
	if registry == nil {
		registry = NewRegistry()
	}
	v := &Validator{
		registry:   registry,
		extensions: make(map[string]Rule),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.strategy == nil {
		v.strategy = NewStopOnFirstError(registry)
	}
	return v
}

// NewWithDefaults creates a Validator over DefaultRegistry().
func NewWithDefaults(opts ...Option) *Validator {
	return New(DefaultRegistry(), opts...)
}

// ── Validation ───────────────────────────────────────────────────────────────

// Validate checks data against rules. Context rules and messages are merged
// first (caller keys win) and context attributes fill keys missing from data.
//
// The error return is reserved for configuration problems: an unregistered
// rule (under FailOnUnknown) or rule parameters the rule rejects. Failing
// data is reported through the Result, never through the error.
func (v *Validator) Validate(data map[string]any, rules Rules, messages Messages) (*Result, error) {
	compiled := v.Compile(rules)
	return v.run(v.context.mergeData(data), compiled, v.context.mergeMessages(messages))
}

// ValidateString applies one rule string to every top-level key of data.
// With empty data the rules run once against DefaultField, so
// ValidateString(nil, "required", nil) fails. Context rules are not merged.
func (v *Validator) ValidateString(data map[string]any, rules string, messages Messages) (*Result, error) {
	return v.run(v.context.mergeData(data), CompileString(rules), v.context.mergeMessages(messages))
}

// ValidateCompiled runs already-compiled rules. Context rules are not merged.
func (v *Validator) ValidateCompiled(data map[string]any, compiled *CompiledRules, messages Messages) (*Result, error) {
	return v.run(v.context.mergeData(data), compiled, v.context.mergeMessages(messages))
}

// Compile merges context rules under rules and compiles the result.
func (v *Validator) Compile(rules Rules) *CompiledRules {
	return Compile(v.context.mergeRules(rules))
}

func (v *Validator) run(data map[string]any, compiled *CompiledRules, messages Messages) (*Result, error) {
	ctxName, strategy := v.context.Name(), strategyName(v.strategy)
	v.dispatch(&Event{
		Name:     EventStarted,
		Context:  ctxName,
		Strategy: strategy,
		Data:     data,
		Rules:    compiled,
	})

	start := time.Now()
	res, err := v.strategy.Validate(data, compiled, messages, v.extensions)

	name := EventPassed
	if err != nil || res.Fails() {
		name = EventFailed
	}
	v.dispatch(&Event{
		Name:     name,
		Context:  ctxName,
		Strategy: strategy,
		Data:     data,
		Rules:    compiled,
		Result:   res,
		Err:      err,
		Duration: time.Since(start),
	})

	if err != nil {
		return nil, err
	}
	return res, nil
}

func (v *Validator) dispatch(ev *Event) {
	if v.events != nil {
		v.events.Dispatch(ev)
	}
}

// ── Rules ────────────────────────────────────────────────────────────────────

// AddRule registers rule in the shared registry under name.
func (v *Validator) AddRule(name string, rule Rule) error {
	return v.registry.Register(name, rule)
}

// Extend adds a validator-local rule backed by fn. Extensions shadow
// registry rules of the same name.
//
//	v.Extend("even", func(value any, _ []string, _ map[string]any) bool {
//	    n, ok := value.(int)
//	    return ok && n%2 == 0
//	})
func (v *Validator) Extend(name string, fn RuleFunc) error {
	if name == "" {
		return ErrEmptyRuleName
	}
	if fn == nil {
		return fmt.Errorf("%w: %q", ErrNilRule, name)
	}
	v.extensions[name] = NewFuncRule(name, fn)
	return nil
}

// ExtendRule adds a validator-local Rule under rule.Name().
func (v *Validator) ExtendRule(rule Rule) error {
	if rule == nil {
		return ErrNilRule
	}
	if rule.Name() == "" {
		return ErrEmptyRuleName
	}
	v.extensions[rule.Name()] = rule
	return nil
}

// SetStrategy replaces the strategy.
func (v *Validator) SetStrategy(s Strategy) *Validator {
	if s != nil {
		v.strategy = s
	}
	return v
}

// SetContext replaces the context.
func (v *Validator) SetContext(c Context) *Validator {
	v.context = c
	return v
}

// Context returns the current context.
func (v *Validator) Context() Context { return v.context }

// Strategy returns the current strategy.
func (v *Validator) Strategy() Strategy { return v.strategy }

// Registry returns the shared registry.
func (v *Validator) Registry() *Registry { return v.registry }

// Rule returns the registered rule called name, or nil.
func (v *Validator) Rule(name string) Rule { return v.registry.Get(name) }

// HasRule reports whether name is registered.
func (v *Validator) HasRule(name string) bool { return v.registry.Has(name) }

// AvailableRules returns all registered rules.
func (v *Validator) AvailableRules() map[string]Rule { return v.registry.All() }

func strategyName(s Strategy) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}
