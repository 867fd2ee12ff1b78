package validation

import (
	"fmt"
	"strings"
)

// Rules maps a field name (dot-notation allowed) to its raw declaration:
//
//	validation.Rules{
//	    "email":        "required|email",
//	    "age":          []string{"required", "between:18,65"},
//	    "address.city": validation.Specs{{Name: "required"}},
//	}
type Rules map[string]any

// CompiledRules is the canonical instruction list of one Validate call.
// Raw declarations are kept for diagnostics only; the engine reads Compiled.
type CompiledRules struct {
	raw      map[string]any
	compiled map[string][]RuleSpec
	fields   []string
}

// NewCompiledRules builds a CompiledRules from raw declarations. When
// precompiled is non-empty it is used as-is and raw is kept for audit only.
func NewCompiledRules(raw Rules, precompiled map[string][]RuleSpec) *CompiledRules {
	c := &CompiledRules{
		raw:      make(map[string]any, len(raw)),
		compiled: make(map[string][]RuleSpec),
	}

	if len(precompiled) > 0 {
		for field, v := range raw {
			c.raw[field] = v
		}
		for _, field := range sortedKeys(precompiled) {
			c.compiled[field] = append([]RuleSpec(nil), precompiled[field]...)
			c.fields = append(c.fields, field)
		}
		return c
	}

	for _, field := range sortedKeys(raw) {
		c.AddRule(field, raw[field])
	}
	return c
}

// Compile normalizes a field → declaration map. Fields are compiled in
// ascending key order so repeated compiles are structurally equal.
func Compile(rules Rules) *CompiledRules {
	return NewCompiledRules(rules, nil)
}

// CompileString compiles a bare rule string under DefaultField.
func CompileString(rules string) *CompiledRules {
	return Compile(Rules{DefaultField: rules})
}

// AddRule appends a declaration to a field. Repeated calls accumulate in
// call order.
func (c *CompiledRules) AddRule(field string, rule any) *CompiledRules {
	if _, seen := c.compiled[field]; !seen {
		c.fields = append(c.fields, field)
		c.compiled[field] = nil
	}

	switch prev := c.raw[field].(type) {
	case nil:
		c.raw[field] = rule
	case List:
		c.raw[field] = append(append(List(nil), prev...), rule)
	default:
		c.raw[field] = List{prev, rule}
	}

	c.compiled[field] = append(c.compiled[field], compileDeclaration(Declare(rule))...)
	return c
}

// HasRule reports whether field has at least one compiled rule.
func (c *CompiledRules) HasRule(field string) bool {
	return len(c.compiled[field]) > 0
}

// Rule returns the compiled rules of a field, or nil.
func (c *CompiledRules) Rule(field string) []RuleSpec {
	return c.compiled[field]
}

// Raw returns the raw declarations.
func (c *CompiledRules) Raw() map[string]any { return c.raw }

// Compiled returns the field → RuleSpec mapping.
func (c *CompiledRules) Compiled() map[string][]RuleSpec { return c.compiled }

// Fields returns the compiled field names in compile order.
func (c *CompiledRules) Fields() []string { return c.fields }

// ── Normalization ────────────────────────────────────────────────────────────

// compileDeclaration is the single normalization point for every shape.
func compileDeclaration(d Declaration) []RuleSpec {
	switch decl := d.(type) {
	case Pipe:
		return ParseRuleString(string(decl))
	case Specs:
		return append([]RuleSpec(nil), decl...)
	case List:
		var out []RuleSpec
		for _, elem := range decl {
			out = append(out, compileElement(elem)...)
		}
		return out
	case Object:
		return []RuleSpec{objectSpec(decl.Value)}
	default:
		return []RuleSpec{{Name: UnknownRule, Raw: d}}
	}
}

// compileElement normalizes one element of a List.
func compileElement(elem any) []RuleSpec {
	switch e := elem.(type) {
	case Object:
		return []RuleSpec{objectSpec(e.Value)}
	case Declaration, string, []string, []any, RuleSpec, *RuleSpec, []RuleSpec:
		return compileDeclaration(Declare(e))
	case map[string]any:
		if spec, ok := specFromRecord(e); ok {
			return []RuleSpec{spec}
		}
		return []RuleSpec{objectSpec(e)}
	default:
		return []RuleSpec{objectSpec(e)}
	}
}

// objectSpec names an arbitrary value by its String() or Name(), falling back
// to UnknownRule with the value kept for diagnostics.
func objectSpec(v any) RuleSpec {
	var name string
	switch o := v.(type) {
	case fmt.Stringer:
		name = o.String()
	case namer:
		name = o.Name()
	}
	if name == "" {
		return RuleSpec{Name: UnknownRule, Raw: v}
	}
	return RuleSpec{Name: name}
}

// ── Rule-string grammar ──────────────────────────────────────────────────────

// ParseRuleString splits "required|between:5,10" into RuleSpecs. Empty
// segments are skipped. A segment splits on its first colon only, so
// "regex:^\d{2}:\d{2}$" keeps the whole pattern as one parameter.
func ParseRuleString(rules string) []RuleSpec {
	var out []RuleSpec
	for _, segment := range strings.Split(rules, "|") {
		if segment == "" {
			continue
		}

		name, params, hasParams := strings.Cut(segment, ":")
		spec := RuleSpec{Name: name}
		if hasParams {
			spec.Parameters = ParseParameters(params)
		}
		out = append(out, spec)
	}
	return out
}

// ParseParameters splits a parameter list on commas outside double quotes.
// A backslash-escaped quote is kept as a literal quote and does not toggle
// quoting. The final parameter is flushed without a trailing comma.
//
//	`a,b,c`          → ["a", "b", "c"]
//	`"a,b",c`        → ["a,b", "c"]
//	`say \"hi\",x`   → [`say "hi"`, "x"]
func ParseParameters(s string) []string {
	var (
		params   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch == '\\' && i+1 < len(s) && s[i+1] == '"':
			current.WriteByte('"')
			i++
		case ch == '"':
			inQuotes = !inQuotes
		case ch == ',' && !inQuotes:
			params = append(params, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	return append(params, current.String())
}
