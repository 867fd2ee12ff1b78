package validation

import (
	"reflect"
	"strings"
)

// Built-in rule names.
const (
	RuleRequired   = "required"
	RuleNullable   = "nullable"
	RuleString     = "string"
	RuleInteger    = "integer"
	RuleNumeric    = "numeric"
	RuleFloat      = "float"
	RuleBoolean    = "boolean"
	RuleArray      = "array"
	RuleObject     = "object"
	RuleMin        = "min"
	RuleMax        = "max"
	RuleSize       = "size"
	RuleBetween    = "between"
	RuleEmail      = "email"
	RuleURL        = "url"
	RuleAlpha      = "alpha"
	RuleAlphaNum   = "alpha_num"
	RuleAlphaDash  = "alpha_dash"
	RuleRegex      = "regex"
	RuleUUID       = "uuid"
	RuleStartsWith = "starts_with"
	RuleEndsWith   = "ends_with"
	RuleIn         = "in"
	RuleNotIn      = "not_in"
	RuleGT         = "gt"
	RuleGTE        = "gte"
	RuleLT         = "lt"
	RuleLTE        = "lte"
	RuleSame       = "same"
	RuleDifferent  = "different"
)

// Required fails for nil, blank strings and empty slices or maps.
func Required() Rule {
	return &basicRule{
		name:    RuleRequired,
		message: "The :attribute field is required.",
		check:   predicate(isFilled),
	}
}

// Nullable always passes. Its effect lives in the engine: a nil value on a
// field carrying nullable skips every other rule of that field.
func Nullable() Rule {
	return &basicRule{
		name:    RuleNullable,
		message: "The :attribute field may be null.",
		check:   predicate(func(any) bool { return true }),
	}
}

func isFilled(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
