package validation

// Rule is a named validation predicate with a default message template.
//
// Validate returns false for data that fails the rule. A non-nil error means
// the rule itself was misconfigured by the caller (wrap ErrInvalidParameter)
// and aborts the whole Validate call.
type Rule interface {
	Name() string
	Message() string
	Validate(value any, params []string, data map[string]any) (bool, error)
}

// NamedParameters is implemented by rules that expose named placeholders,
// e.g. between exposes :min and :max next to :param0 and :param1.
type NamedParameters interface {
	NamedParameters(params []string) map[string]any
}

// RuleFunc is the signature of ad hoc rules registered through Extend.
type RuleFunc func(value any, params []string, data map[string]any) bool

// FuncRule adapts a RuleFunc to the Rule interface.
type FuncRule struct {
	name    string
	message string
	fn      RuleFunc
}

// DefaultFuncMessage is the template used by FuncRule unless overridden.
const DefaultFuncMessage = "The :attribute field failed the :rule check."

// NewFuncRule wraps fn as a Rule called name.
//
//	v.ExtendRule(validation.NewFuncRule("even", func(value any, _ []string, _ map[string]any) bool {
//	    n, ok := value.(int)
//	    return ok && n%2 == 0
//	}))
func NewFuncRule(name string, fn RuleFunc) *FuncRule {
	return &FuncRule{name: name, message: DefaultFuncMessage, fn: fn}
}

func (r *FuncRule) Name() string    { return r.name }
func (r *FuncRule) Message() string { return r.message }

func (r *FuncRule) Validate(value any, params []string, data map[string]any) (bool, error) {
	return r.fn(value, params, data), nil
}

// NamedParameters exposes the rule name as :rule for DefaultFuncMessage.
func (r *FuncRule) NamedParameters(_ []string) map[string]any {
	return map[string]any{"rule": r.name}
}

// ── Message override ─────────────────────────────────────────────────────────

type messageOverride struct {
	Rule
	message string
}

func (m messageOverride) Message() string { return m.message }

func (m messageOverride) NamedParameters(params []string) map[string]any {
	if np, ok := m.Rule.(NamedParameters); ok {
		return np.NamedParameters(params)
	}
	return nil
}

// WithMessage returns rule with its default message replaced.
//
//	registry.MustRegister("required", validation.WithMessage(validation.Required(), "Please fill in :attribute."))
func WithMessage(rule Rule, message string) Rule {
	return messageOverride{Rule: rule, message: message}
}

// ── Base rule ────────────────────────────────────────────────────────────────

// basicRule backs the built-in rules: a name, a template and a predicate that
// may reject its parameters.
type basicRule struct {
	name    string
	message string
	check   func(value any, params []string, data map[string]any) (bool, error)
	named   func(params []string) map[string]any
}

func (r *basicRule) Name() string    { return r.name }
func (r *basicRule) Message() string { return r.message }

func (r *basicRule) Validate(value any, params []string, data map[string]any) (bool, error) {
	return r.check(value, params, data)
}

func (r *basicRule) NamedParameters(params []string) map[string]any {
	if r.named == nil {
		return nil
	}
	return r.named(params)
}

// predicate lifts a parameterless predicate into a basicRule check.
func predicate(fn func(value any) bool) func(any, []string, map[string]any) (bool, error) {
	return func(value any, _ []string, _ map[string]any) (bool, error) {
		return fn(value), nil
	}
}
