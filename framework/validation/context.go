package validation

// Context is an immutable, named bundle of default rules, messages and
// attributes. The With* methods return a new Context and leave the receiver
// untouched.
//
//	signup := validation.NewContext("signup").
//	    WithRule("email", "required|email").
//	    WithMessage("required", "We need your :attribute.").
//	    WithAttribute("country", "NL")
type Context struct {
	name       string
	rules      Rules
	messages   Messages
	attributes map[string]any
}

// NewContext creates an empty context called name.
func NewContext(name string) Context {
	return Context{name: name}
}

// NewContextWith creates a context from existing rules, messages and attributes.
// The maps are copied.
func NewContextWith(name string, rules Rules, messages Messages, attributes map[string]any) Context {
	return Context{
		name:       name,
		rules:      copyMap(rules),
		messages:   copyMap(messages),
		attributes: copyMap(attributes),
	}
}

// Name returns the context name.
func (c Context) Name() string { return c.name }

// Rules returns a copy of the default rules.
func (c Context) Rules() Rules { return copyMap(c.rules) }

// Messages returns a copy of the default messages.
func (c Context) Messages() Messages { return copyMap(c.messages) }

// Attributes returns a copy of the default attributes.
func (c Context) Attributes() map[string]any { return copyMap(c.attributes) }

// Attribute returns the named attribute or fallback.
func (c Context) Attribute(name string, fallback any) any {
	if v, ok := c.attributes[name]; ok {
		return v
	}
	return fallback
}

// WithRule returns a copy with field's declaration set.
func (c Context) WithRule(field string, rule any) Context {
	next := c.clone()
	next.rules[field] = rule
	return next
}

// WithMessage returns a copy with the message for key ("rule", "field" or
// "field.rule") set.
func (c Context) WithMessage(key, message string) Context {
	next := c.clone()
	next.messages[key] = message
	return next
}

// WithAttribute returns a copy with the attribute set.
func (c Context) WithAttribute(name string, value any) Context {
	next := c.clone()
	next.attributes[name] = value
	return next
}

// IsZero reports whether c is the zero Context.
func (c Context) IsZero() bool {
	return c.name == "" && len(c.rules) == 0 && len(c.messages) == 0 && len(c.attributes) == 0
}

func (c Context) clone() Context {
	next := Context{
		name:       c.name,
		rules:      copyMap(c.rules),
		messages:   copyMap(c.messages),
		attributes: copyMap(c.attributes),
	}
	if next.rules == nil {
		next.rules = Rules{}
	}
	if next.messages == nil {
		next.messages = Messages{}
	}
	if next.attributes == nil {
		next.attributes = map[string]any{}
	}
	return next
}

// ── Merging ──────────────────────────────────────────────────────────────────

// mergeRules lays caller rules over context rules.
func (c Context) mergeRules(rules Rules) Rules {
	if len(c.rules) == 0 {
		return rules
	}
	out := copyMap(c.rules)
	for field, decl := range rules {
		out[field] = decl
	}
	return out
}

// mergeMessages lays caller messages over context messages.
func (c Context) mergeMessages(messages Messages) Messages {
	if len(c.messages) == 0 {
		return messages
	}
	out := copyMap(c.messages)
	for key, msg := range messages {
		out[key] = msg
	}
	return out
}

// mergeData fills keys missing from data with context attributes. data itself
// is not modified.
func (c Context) mergeData(data map[string]any) map[string]any {
	if len(c.attributes) == 0 {
		return data
	}
	out := copyMap(data)
	if out == nil {
		out = make(map[string]any, len(c.attributes))
	}
	for key, v := range c.attributes {
		if _, ok := out[key]; !ok {
			out[key] = v
		}
	}
	return out
}

func copyMap[M ~map[string]V, V any](m M) M {
	if m == nil {
		return nil
	}
	out := make(M, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
