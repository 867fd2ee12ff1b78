package validation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultField keys the rules of a bare rule string with no field map.
	DefaultField = "_default"

	// UnknownRule names entries that could not be normalized into a RuleSpec.
	UnknownRule = "unknown"
)

// RuleSpec is one rule applied to one field: a name plus ordered parameters.
//
//	"between:5,10" → RuleSpec{Name: "between", Parameters: []string{"5", "10"}}
type RuleSpec struct {
	Name       string   `json:"name" yaml:"name"`
	Parameters []string `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Raw holds the original declaration of an UnknownRule entry.
	Raw any `json:"-" yaml:"-"`
}

// Unknown reports whether the spec is the fallback for a declaration that
// could not be normalized.
func (s RuleSpec) Unknown() bool { return s.Name == UnknownRule }

// String renders the spec back into rule-string form.
func (s RuleSpec) String() string {
	if len(s.Parameters) == 0 {
		return s.Name
	}
	return s.Name + ":" + strings.Join(s.Parameters, ",")
}

// ── Declarations ─────────────────────────────────────────────────────────────

// Declaration is the closed set of accepted rule declaration shapes.
// Use Declare to lift arbitrary Go values into it.
type Declaration interface {
	declaration()
}

// Pipe is the string form: "required|between:5,10|in:foo,bar".
type Pipe string

// Specs is the already-structured form, taken as-is.
type Specs []RuleSpec

// List is a heterogeneous sequence; each element is normalized on its own
// and nested sequences are flattened.
type List []any

// Object is any other value. It compiles to its String()/Name() when it has
// one and to an UnknownRule entry otherwise.
type Object struct {
	Value any
}

func (Pipe) declaration()   {}
func (Specs) declaration()  {}
func (List) declaration()   {}
func (Object) declaration() {}

// namer is satisfied by Rule values placed directly in a declaration.
type namer interface {
	Name() string
}

// Declare maps a raw declaration value onto the Declaration union.
//
//	Declare("required|email")                       → Pipe
//	Declare([]string{"required", "min:3"})          → List
//	Declare(RuleSpec{Name: "in", Parameters: ...})  → Specs
//	Declare(map[string]any{"name": "min", ...})     → Specs (decoded JSON/YAML record)
func Declare(v any) Declaration {
	switch d := v.(type) {
	case nil:
		return Specs(nil)
	case Declaration:
		return d
	case string:
		return Pipe(d)
	case []string:
		list := make(List, len(d))
		for i, s := range d {
			list[i] = s
		}
		return list
	case RuleSpec:
		return Specs{d}
	case *RuleSpec:
		if d == nil {
			return Specs(nil)
		}
		return Specs{*d}
	case []RuleSpec:
		return Specs(d)
	case []any:
		return List(d)
	case map[string]any:
		if spec, ok := specFromRecord(d); ok {
			return Specs{spec}
		}
		return Object{Value: d}
	default:
		return Object{Value: v}
	}
}

// specFromRecord reads a {"name": ..., "parameters": [...]} record, the shape
// produced when rule specs are decoded from JSON or YAML.
func specFromRecord(m map[string]any) (RuleSpec, bool) {
	name, ok := m["name"].(string)
	if !ok || name == "" {
		return RuleSpec{}, false
	}

	spec := RuleSpec{Name: name}
	switch params := m["parameters"].(type) {
	case nil:
	case []string:
		spec.Parameters = append([]string(nil), params...)
	case []any:
		spec.Parameters = make([]string, 0, len(params))
		for _, p := range params {
			spec.Parameters = append(spec.Parameters, Stringify(p))
		}
	case string:
		spec.Parameters = ParseParameters(params)
	default:
		return RuleSpec{}, false
	}
	return spec, true
}

// Stringify renders a parameter or attribute value for messages: booleans as
// "1"/"", numbers in decimal form, nil as "".
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "1"
		}
		return ""
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", x)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", x)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
