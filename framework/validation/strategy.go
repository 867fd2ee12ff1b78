package validation

import (
	"fmt"
	"log/slog"
	"slices"
)

// Messages holds custom message templates keyed by "field.rule", "field" or
// "rule". Lookup order is field.rule, field, rule, the rule's own template,
// then a generic fallback.
type Messages map[string]string

// GenericMessage is used when neither a custom nor a rule message exists.
const GenericMessage = "The :attribute field validation failed."

// Strategy executes compiled rules against data.
type Strategy interface {
	Validate(data map[string]any, rules *CompiledRules, messages Messages, extensions map[string]Rule) (*Result, error)
}

// UnknownRulePolicy decides what happens when a compiled rule name resolves
// to neither an extension nor a registered rule.
type UnknownRulePolicy int

const (
	// FailOnUnknown aborts Validate with a *RuleNotFoundError.
	FailOnUnknown UnknownRulePolicy = iota
	// SkipUnknown ignores the rule for that field and carries on.
	SkipUnknown
)

func (p UnknownRulePolicy) String() string {
	if p == SkipUnknown {
		return "skip"
	}
	return "fail"
}

// ParseUnknownRulePolicy maps "fail" / "skip" to a policy.
func ParseUnknownRulePolicy(s string) (UnknownRulePolicy, error) {
	switch s {
	case "", "fail":
		return FailOnUnknown, nil
	case "skip":
		return SkipUnknown, nil
	default:
		return FailOnUnknown, fmt.Errorf("validation: unknown rule policy %q (want fail or skip)", s)
	}
}

// ── Engine ───────────────────────────────────────────────────────────────────

// Engine is the Strategy shared by both short-circuit policies. Each field
// goes PENDING → (nullable short-circuit) → EVALUATING rules in order →
// PASSED | FAILED. With stopOnFirst the field's remaining rules are skipped
// after its first failure; other fields are still evaluated.
type Engine struct {
	name        string
	registry    *Registry
	formatter   MessageFormatter
	unknown     UnknownRulePolicy
	logger      *slog.Logger
	stopOnFirst bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithFormatter replaces the DefaultFormatter.
func WithFormatter(f MessageFormatter) EngineOption {
	return func(e *Engine) {
		if f != nil {
			e.formatter = f
		}
	}
}

// WithUnknownRulePolicy selects FailOnUnknown (default) or SkipUnknown.
func WithUnknownRulePolicy(p UnknownRulePolicy) EngineOption {
	return func(e *Engine) { e.unknown = p }
}

// WithLogger sets the logger used for skipped-rule diagnostics.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewStopOnFirstError returns the default strategy: each field stops at its
// first failing rule.
func NewStopOnFirstError(registry *Registry, opts ...EngineOption) *Engine {
	return newEngine("stop_on_first_error", registry, true, opts)
}

// NewValidateAll returns a strategy that runs every rule of every field and
// collects all failures.
func NewValidateAll(registry *Registry, opts ...EngineOption) *Engine {
	return newEngine("validate_all", registry, false, opts)
}

// NewStrategy builds a strategy by name: "stop_on_first_error" (or "") and
// "validate_all".
func NewStrategy(name string, registry *Registry, opts ...EngineOption) (*Engine, error) {
	switch name {
	case "", "stop_on_first_error", "bail":
		return NewStopOnFirstError(registry, opts...), nil
	case "validate_all", "all":
		return NewValidateAll(registry, opts...), nil
	default:
		return nil, fmt.Errorf("validation: unknown strategy %q", name)
	}
}

func newEngine(name string, registry *Registry, stopOnFirst bool, opts []EngineOption) *Engine {
	if registry == nil {
		registry = NewRegistry()
	}
	e := &Engine{
		name:        name,
		registry:    registry,
		formatter:   DefaultFormatter{},
		logger:      slog.New(slog.DiscardHandler),
		stopOnFirst: stopOnFirst,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name returns the strategy name.
func (e *Engine) Name() string { return e.name }

// Registry returns the registry the engine resolves rules from.
func (e *Engine) Registry() *Registry { return e.registry }

// target is one field to evaluate and its rules.
type target struct {
	field string
	rules []RuleSpec
}

// Validate implements Strategy.
func (e *Engine) Validate(data map[string]any, rules *CompiledRules, messages Messages, extensions map[string]Rule) (*Result, error) {
	if data == nil {
		data = map[string]any{}
	}
	result := NewResult()

	for _, t := range e.targets(data, rules) {
		value := ValueForField(t.field, data)

		if value == nil && isNullable(t.rules) {
			result.MarkValidated(t.field)
			result.AddValidData(t.field, nil)
			continue
		}

		msgs, err := e.validateField(t.field, value, t.rules, data, messages, extensions)
		if err != nil {
			return nil, err
		}

		if len(msgs) > 0 {
			for _, msg := range msgs {
				result.AddError(t.field, msg)
			}
			continue
		}

		result.MarkValidated(t.field)
		if hasField(t.field, data) {
			result.AddValidData(t.field, value)
		}
	}
	return result, nil
}

// targets lists fields in compile order. DefaultField rules apply to every
// top-level data key without explicit rules (sorted); with no data keys at
// all they are evaluated once against DefaultField itself.
func (e *Engine) targets(data map[string]any, rules *CompiledRules) []target {
	if rules == nil {
		return nil
	}

	var out []target
	explicit := make(map[string]struct{})
	for _, field := range rules.Fields() {
		if field == DefaultField || !rules.HasRule(field) {
			continue
		}
		explicit[field] = struct{}{}
		out = append(out, target{field: field, rules: rules.Rule(field)})
	}

	if !rules.HasRule(DefaultField) {
		return out
	}
	defaults := rules.Rule(DefaultField)
	if len(data) == 0 {
		return append(out, target{field: DefaultField, rules: defaults})
	}
	for _, key := range sortedKeys(data) {
		if _, ok := explicit[key]; !ok {
			out = append(out, target{field: key, rules: defaults})
		}
	}
	return out
}

// validateField evaluates rules in order and returns the formatted failures.
func (e *Engine) validateField(field string, value any, rules []RuleSpec, data map[string]any, messages Messages, extensions map[string]Rule) ([]string, error) {
	var failures []string

	for _, spec := range rules {
		rule := e.resolve(spec.Name, extensions)
		if rule == nil {
			if e.unknown == SkipUnknown {
				e.logger.Debug("skipping unregistered rule",
					slog.String("field", field),
					slog.String("rule", spec.Name))
				continue
			}
			return nil, &RuleNotFoundError{Rule: spec.Name, Field: field}
		}

		ok, err := rule.Validate(value, spec.Parameters, data)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: %w", field, err)
		}
		if ok {
			continue
		}

		failures = append(failures, e.message(field, spec, rule, messages))
		if e.stopOnFirst {
			break
		}
	}
	return failures, nil
}

// resolve checks per-call extensions before the registry.
func (e *Engine) resolve(name string, extensions map[string]Rule) Rule {
	if rule, ok := extensions[name]; ok && rule != nil {
		return rule
	}
	return e.registry.Get(name)
}

// message picks the template (field.rule > field > rule > default > generic)
// and formats it.
func (e *Engine) message(field string, spec RuleSpec, rule Rule, messages Messages) string {
	template, ok := messages[field+"."+spec.Name]
	if !ok {
		template, ok = messages[field]
	}
	if !ok {
		template, ok = messages[spec.Name]
	}
	if !ok {
		template = rule.Message()
	}
	if template == "" {
		template = GenericMessage
	}

	var named map[string]any
	if np, ok := rule.(NamedParameters); ok {
		named = np.NamedParameters(spec.Parameters)
	}
	return e.formatter.Format(template, field, spec.Parameters, named)
}

// isNullable reports whether any of the field's rules is "nullable".
func isNullable(rules []RuleSpec) bool {
	return slices.ContainsFunc(rules, func(s RuleSpec) bool { return s.Name == RuleNullable })
}
