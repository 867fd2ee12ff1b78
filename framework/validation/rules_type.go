package validation

import (
	"encoding/json"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// decimalRe matches plain decimal numbers with an optional exponent. Hex
// floats, underscores, NaN and Inf are not numeric.
var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// String passes for Go strings.
func String() Rule {
	return &basicRule{
		name:    RuleString,
		message: "The :attribute must be a string.",
		check:   predicate(func(v any) bool { _, ok := v.(string); return ok }),
	}
}

// Integer passes for Go integer kinds and json.Number values holding an integer.
func Integer() Rule {
	return &basicRule{
		name:    RuleInteger,
		message: "The :attribute must be an integer.",
		check:   predicate(isInteger),
	}
}

// Numeric passes for numbers, json.Number and numeric strings.
func Numeric() Rule {
	return &basicRule{
		name:    RuleNumeric,
		message: "The :attribute must be a number.",
		check: predicate(func(v any) bool {
			_, ok := toFloat(v, true)
			return ok
		}),
	}
}

// Float passes for float kinds and non-integral json.Number values.
func Float() Rule {
	return &basicRule{
		name:    RuleFloat,
		message: "The :attribute must be a float.",
		check: predicate(func(v any) bool {
			switch x := v.(type) {
			case float32, float64:
				return true
			case json.Number:
				if _, err := x.Int64(); err == nil {
					return false
				}
				_, ok := parseDecimal(string(x))
				return ok
			}
			return false
		}),
	}
}

// Boolean passes for Go bools only.
func Boolean() Rule {
	return &basicRule{
		name:    RuleBoolean,
		message: "The :attribute must be a boolean.",
		check:   predicate(func(v any) bool { _, ok := v.(bool); return ok }),
	}
}

// Array passes for slices and arrays.
func Array() Rule {
	return &basicRule{
		name:    RuleArray,
		message: "The :attribute must be an array.",
		check: predicate(func(v any) bool {
			if v == nil {
				return false
			}
			k := reflect.TypeOf(v).Kind()
			return k == reflect.Slice || k == reflect.Array
		}),
	}
}

// ObjectRule passes for maps, structs and pointers to structs.
func ObjectRule() Rule {
	return &basicRule{
		name:    RuleObject,
		message: "The :attribute must be an object.",
		check: predicate(func(v any) bool {
			if v == nil {
				return false
			}
			t := reflect.TypeOf(v)
			if t.Kind() == reflect.Pointer {
				t = t.Elem()
			}
			return t.Kind() == reflect.Map || t.Kind() == reflect.Struct
		}),
	}
}

// ── Conversions ──────────────────────────────────────────────────────────────

func isInteger(v any) bool {
	switch x := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case json.Number:
		_, err := x.Int64()
		return err == nil
	}
	return false
}

// toFloat converts numbers to float64. Numeric strings are accepted only
// when allowStrings is set.
func toFloat(v any, allowStrings bool) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case float32:
		return finite(float64(x))
	case float64:
		return finite(x)
	case json.Number:
		return parseDecimal(string(x))
	case string:
		if !allowStrings {
			return 0, false
		}
		return parseDecimal(strings.TrimSpace(x))
	}
	return 0, false
}

// parseDecimal parses s when it is a finite decimal number.
func parseDecimal(s string) (float64, bool) {
	if !decimalRe.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

// parseNumber reads a numeric rule parameter.
func parseNumber(rule string, params []string, i int) (float64, error) {
	if i >= len(params) || strings.TrimSpace(params[i]) == "" {
		return 0, invalidParameter(rule, "parameter %d is required", i)
	}
	f, ok := parseDecimal(strings.TrimSpace(params[i]))
	if !ok {
		return 0, invalidParameter(rule, "parameter %d must be numeric, got %q", i, params[i])
	}
	return f, nil
}
