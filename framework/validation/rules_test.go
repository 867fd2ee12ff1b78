package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-validation/framework/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// pass asserts the validator passes for the given data/rules.
func pass(t *testing.T, label string, data map[string]any, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		res, err := validation.NewWithDefaults().Validate(data, rules, nil)
		require.NoError(t, err)
		assert.True(t, res.Passes(), "errors: %+v", res.Errors())
	})
}

// fail asserts the validator fails with an error on the given field.
func fail(t *testing.T, label, field string, data map[string]any, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		res, err := validation.NewWithDefaults().Validate(data, rules, nil)
		require.NoError(t, err)
		assert.True(t, res.Fails(), "expected FAIL on field %q", field)
		assert.NotEmpty(t, res.First(field), "errors: %+v", res.Errors())
	})
}

// misconfigured asserts the rules are rejected as a configuration error.
func misconfigured(t *testing.T, label string, data map[string]any, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		_, err := validation.NewWithDefaults().Validate(data, rules, nil)
		assert.ErrorIs(t, err, validation.ErrInvalidParameter)
	})
}

// ── presence ─────────────────────────────────────────────────────────────────

func TestRule_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}

	pass(t, "non-empty value", map[string]any{"name": "Alice"}, r)
	pass(t, "zero is filled", map[string]any{"name": 0}, r)
	pass(t, "false is filled", map[string]any{"name": false}, r)
	fail(t, "empty string", "name", map[string]any{"name": ""}, r)
	fail(t, "whitespace only", "name", map[string]any{"name": "   "}, r)
	fail(t, "nil", "name", map[string]any{"name": nil}, r)
	fail(t, "empty slice", "name", map[string]any{"name": []any{}}, r)
	fail(t, "empty map", "name", map[string]any{"name": map[string]any{}}, r)
	fail(t, "missing key", "name", map[string]any{}, r)
}

func TestRule_RequiredMessage(t *testing.T) {
	res, err := validation.NewWithDefaults().Validate(map[string]any{"name": ""}, validation.Rules{"name": "required"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "The name field is required.", res.First("name"))
}

// ── types ────────────────────────────────────────────────────────────────────

func TestRule_Types(t *testing.T) {
	pass(t, "string", map[string]any{"f": "x"}, validation.Rules{"f": "string"})
	fail(t, "string rejects int", "f", map[string]any{"f": 1}, validation.Rules{"f": "string"})

	pass(t, "integer", map[string]any{"f": 1}, validation.Rules{"f": "integer"})
	pass(t, "integer json.Number", map[string]any{"f": json.Number("3")}, validation.Rules{"f": "integer"})
	fail(t, "integer rejects float", "f", map[string]any{"f": 1.5}, validation.Rules{"f": "integer"})
	fail(t, "integer rejects string", "f", map[string]any{"f": "1"}, validation.Rules{"f": "integer"})

	pass(t, "numeric string", map[string]any{"f": "1.5"}, validation.Rules{"f": "numeric"})
	pass(t, "numeric int", map[string]any{"f": 2}, validation.Rules{"f": "numeric"})
	fail(t, "numeric rejects words", "f", map[string]any{"f": "abc"}, validation.Rules{"f": "numeric"})

	pass(t, "float", map[string]any{"f": 1.5}, validation.Rules{"f": "float"})
	pass(t, "float json.Number", map[string]any{"f": json.Number("1.5")}, validation.Rules{"f": "float"})
	fail(t, "float rejects int", "f", map[string]any{"f": 1}, validation.Rules{"f": "float"})

	pass(t, "boolean", map[string]any{"f": true}, validation.Rules{"f": "boolean"})
	fail(t, "boolean rejects string", "f", map[string]any{"f": "true"}, validation.Rules{"f": "boolean"})

	pass(t, "array", map[string]any{"f": []any{}}, validation.Rules{"f": "array"})
	fail(t, "array rejects string", "f", map[string]any{"f": "x"}, validation.Rules{"f": "array"})

	pass(t, "object map", map[string]any{"f": map[string]any{}}, validation.Rules{"f": "object"})
	pass(t, "object struct", map[string]any{"f": struct{ A int }{1}}, validation.Rules{"f": "object"})
	fail(t, "object rejects string", "f", map[string]any{"f": "x"}, validation.Rules{"f": "object"})
}

func TestRule_ObjectDeclaration(t *testing.T) {
	// A rule wrapped in an Object declaration compiles to its name.
	decl := validation.Object{Value: validation.ObjectRule()}
	assert.Equal(t, validation.RuleObject, validation.ObjectRule().Name())

	pass(t, "object declaration", map[string]any{"f": map[string]any{"a": 1}}, validation.Rules{"f": decl})
	fail(t, "object declaration rejects list", "f", map[string]any{"f": []any{1}}, validation.Rules{"f": decl})
}

func TestRule_NumericRejectsNonDecimal(t *testing.T) {
	r := validation.Rules{"f": "numeric"}

	pass(t, "exponent", map[string]any{"f": "1e3"}, r)
	pass(t, "signed", map[string]any{"f": "-0.5"}, r)
	pass(t, "leading dot", map[string]any{"f": ".5"}, r)
	pass(t, "padded", map[string]any{"f": " 42 "}, r)

	for _, s := range []string{"NaN", "Inf", "+Inf", "-infinity", "0x1p4", "0x10", "1_000", "1e", ""} {
		fail(t, "numeric "+s, "f", map[string]any{"f": s}, r)
	}
	fail(t, "float json.Number NaN", "f", map[string]any{"f": json.Number("NaN")}, validation.Rules{"f": "float"})
}

// ── size ─────────────────────────────────────────────────────────────────────

func TestRule_Size(t *testing.T) {
	pass(t, "min string", map[string]any{"f": "abc"}, validation.Rules{"f": "min:3"})
	pass(t, "min counts runes", map[string]any{"f": "héé"}, validation.Rules{"f": "min:3"})
	fail(t, "min short string", "f", map[string]any{"f": "ab"}, validation.Rules{"f": "min:3"})
	fail(t, "min slice", "f", map[string]any{"f": []any{1, 2}}, validation.Rules{"f": "min:3"})
	pass(t, "min number", map[string]any{"f": 5}, validation.Rules{"f": "min:3"})

	fail(t, "max string", "f", map[string]any{"f": "abcd"}, validation.Rules{"f": "max:3"})
	pass(t, "max number", map[string]any{"f": 3}, validation.Rules{"f": "max:3"})

	pass(t, "size string", map[string]any{"f": "abc"}, validation.Rules{"f": "size:3"})
	pass(t, "size slice", map[string]any{"f": []any{1, 2}}, validation.Rules{"f": "size:2"})
	fail(t, "size mismatch", "f", map[string]any{"f": "ab"}, validation.Rules{"f": "size:3"})

	pass(t, "between string", map[string]any{"f": "hello"}, validation.Rules{"f": "between:3,10"})
	fail(t, "between below", "f", map[string]any{"f": 17}, validation.Rules{"f": "between:18,65"})
	fail(t, "between above", "f", map[string]any{"f": 66}, validation.Rules{"f": "between:18,65"})
	fail(t, "between nil", "f", map[string]any{"f": nil}, validation.Rules{"f": "between:18,65"})

	misconfigured(t, "min without bound", map[string]any{"f": 1}, validation.Rules{"f": "min"})
	misconfigured(t, "between single bound", map[string]any{"f": 1}, validation.Rules{"f": "between:5"})
	misconfigured(t, "between reversed", map[string]any{"f": 1}, validation.Rules{"f": "between:10,5"})
	misconfigured(t, "between not numeric", map[string]any{"f": 1}, validation.Rules{"f": "between:a,b"})
	misconfigured(t, "between NaN bound", map[string]any{"f": 3}, validation.Rules{"f": "between:NaN,5"})
	misconfigured(t, "min Inf bound", map[string]any{"f": 3}, validation.Rules{"f": "min:Inf"})
	misconfigured(t, "max hex bound", map[string]any{"f": 3}, validation.Rules{"f": "max:0x10"})
}

func TestRule_MinMessage(t *testing.T) {
	res, err := validation.NewWithDefaults().Validate(map[string]any{"name": "a"}, validation.Rules{"name": "min:2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "The name must be at least 2.", res.First("name"))
}

// ── strings ──────────────────────────────────────────────────────────────────

func TestRule_Email(t *testing.T) {
	r := validation.Rules{"email": "email"}

	pass(t, "valid email", map[string]any{"email": "user@example.com"}, r)
	pass(t, "valid email with subdomain", map[string]any{"email": "user@mail.example.co.uk"}, r)
	fail(t, "no @ sign", "email", map[string]any{"email": "notanemail"}, r)
	fail(t, "no domain", "email", map[string]any{"email": "user@"}, r)
	fail(t, "display name", "email", map[string]any{"email": "Bob <bob@example.com>"}, r)
	fail(t, "not a string", "email", map[string]any{"email": 42}, r)
}

func TestRule_URL(t *testing.T) {
	r := validation.Rules{"site": "url"}

	pass(t, "https", map[string]any{"site": "https://example.com/path"}, r)
	pass(t, "http", map[string]any{"site": "http://example.com"}, r)
	fail(t, "ftp scheme", "site", map[string]any{"site": "ftp://example.com"}, r)
	fail(t, "no scheme", "site", map[string]any{"site": "example.com"}, r)
}

func TestRule_Alpha(t *testing.T) {
	pass(t, "alpha", map[string]any{"f": "Alice"}, validation.Rules{"f": "alpha"})
	fail(t, "alpha digit", "f", map[string]any{"f": "Al1ce"}, validation.Rules{"f": "alpha"})
	pass(t, "alpha_num", map[string]any{"f": "abc123"}, validation.Rules{"f": "alpha_num"})
	fail(t, "alpha_num dash", "f", map[string]any{"f": "abc-1"}, validation.Rules{"f": "alpha_num"})
	pass(t, "alpha_dash", map[string]any{"f": "abc-1_x"}, validation.Rules{"f": "alpha_dash"})
	fail(t, "alpha_dash space", "f", map[string]any{"f": "a b"}, validation.Rules{"f": "alpha_dash"})
}

func TestRule_Regex(t *testing.T) {
	pass(t, "match", map[string]any{"f": "123"}, validation.Rules{"f": `regex:/^\d{3}$/`})
	pass(t, "bare pattern", map[string]any{"f": "12:30"}, validation.Rules{"f": `regex:^\d{2}:\d{2}$`})
	fail(t, "no match", "f", map[string]any{"f": "12a"}, validation.Rules{"f": `regex:/^\d{3}$/`})
	misconfigured(t, "bad pattern", map[string]any{"f": "x"}, validation.Rules{"f": "regex:["})
}

func TestRule_UUID(t *testing.T) {
	const v4 = "550e8400-e29b-41d4-a716-446655440000"

	pass(t, "uuid", map[string]any{"id": v4}, validation.Rules{"id": "uuid"})
	pass(t, "uuid version", map[string]any{"id": v4}, validation.Rules{"id": "uuid:4"})
	fail(t, "uuid wrong version", "id", map[string]any{"id": v4}, validation.Rules{"id": "uuid:1"})
	fail(t, "not a uuid", "id", map[string]any{"id": "nope"}, validation.Rules{"id": "uuid"})
}

func TestRule_Affixes(t *testing.T) {
	pass(t, "starts_with", map[string]any{"f": "barista"}, validation.Rules{"f": "starts_with:foo,bar"})
	fail(t, "starts_with miss", "f", map[string]any{"f": "coffee"}, validation.Rules{"f": "starts_with:foo,bar"})
	pass(t, "ends_with", map[string]any{"f": "a.com"}, validation.Rules{"f": "ends_with:.com"})
	fail(t, "ends_with miss", "f", map[string]any{"f": "a.org"}, validation.Rules{"f": "ends_with:.com"})

	res, err := validation.NewWithDefaults().Validate(map[string]any{"f": "x"}, validation.Rules{"f": "starts_with:a,b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "The f must start with one of the following: a, b.", res.First("f"))
}

// ── choice ───────────────────────────────────────────────────────────────────

func TestRule_In(t *testing.T) {
	pass(t, "in", map[string]any{"f": "a"}, validation.Rules{"f": "in:a,b"})
	pass(t, "in quoted", map[string]any{"f": "a,b"}, validation.Rules{"f": `in:"a,b",c`})
	pass(t, "in number", map[string]any{"f": 1}, validation.Rules{"f": "in:1,2"})
	fail(t, "in miss", "f", map[string]any{"f": "c"}, validation.Rules{"f": "in:a,b"})
	fail(t, "in composite", "f", map[string]any{"f": []any{"a"}}, validation.Rules{"f": "in:a,b"})

	pass(t, "not_in", map[string]any{"f": "c"}, validation.Rules{"f": "not_in:a,b"})
	fail(t, "not_in hit", "f", map[string]any{"f": "a"}, validation.Rules{"f": "not_in:a,b"})
}

// ── comparison ───────────────────────────────────────────────────────────────

func TestRule_Compare(t *testing.T) {
	pass(t, "gt", map[string]any{"f": 11}, validation.Rules{"f": "gt:10"})
	fail(t, "gt equal", "f", map[string]any{"f": 10}, validation.Rules{"f": "gt:10"})
	pass(t, "gt numeric string", map[string]any{"f": "12"}, validation.Rules{"f": "gt:10"})
	pass(t, "gte", map[string]any{"f": 10}, validation.Rules{"f": "gte:10"})
	pass(t, "lt", map[string]any{"f": 4}, validation.Rules{"f": "lt:5"})
	fail(t, "lte", "f", map[string]any{"f": 6}, validation.Rules{"f": "lte:5"})
	pass(t, "gt other field", map[string]any{"max": 5, "min": 3}, validation.Rules{"max": "gt:min"})
	fail(t, "gt other field missing", "max", map[string]any{"max": 5}, validation.Rules{"max": "gt:min"})
	misconfigured(t, "gt without parameter", map[string]any{"f": 1}, validation.Rules{"f": "gt"})

	// "Inf" is a three-rune string, not infinity.
	fail(t, "gt Inf string", "f", map[string]any{"f": "Inf"}, validation.Rules{"f": "gt:1000000"})
	pass(t, "lt Inf string", map[string]any{"f": "Inf"}, validation.Rules{"f": "lt:4"})
}

func TestRule_SameDifferent(t *testing.T) {
	data := map[string]any{"password": "secret", "password_confirmation": "secret", "old": "hunter2"}

	pass(t, "same", data, validation.Rules{"password_confirmation": "same:password"})
	fail(t, "same mismatch", "old", data, validation.Rules{"old": "same:password"})
	pass(t, "different", data, validation.Rules{"old": "different:password"})
	fail(t, "different match", "password", data, validation.Rules{"password": "different:password_confirmation"})
	misconfigured(t, "same without field", data, validation.Rules{"old": "same"})

	res, err := validation.NewWithDefaults().Validate(data, validation.Rules{"old": "same:password"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "The old and password must match.", res.First("old"))
}

func TestDefaultRegistry_HasEveryBuiltin(t *testing.T) {
	reg := validation.DefaultRegistry()
	for _, name := range []string{
		"required", "nullable", "string", "integer", "numeric", "float", "boolean", "array", "object",
		"min", "max", "size", "between", "email", "url", "alpha", "alpha_num", "alpha_dash",
		"regex", "uuid", "starts_with", "ends_with", "in", "not_in", "gt", "gte", "lt", "lte",
		"same", "different",
	} {
		assert.True(t, reg.Has(name), name)
	}
	assert.Len(t, reg.Names(), len(validation.DefaultRules()))
}
