package validation

import (
	"reflect"
	"strings"
)

// GT passes when the value is greater than :param0. The parameter is either a
// number or the name of another field whose size is compared.
func GT() Rule {
	return compareRule(RuleGT, "The :attribute must be greater than :value.", func(a, b float64) bool { return a > b })
}

// GTE passes when the value is greater than or equal to :param0.
func GTE() Rule {
	return compareRule(RuleGTE, "The :attribute must be greater than or equal to :value.", func(a, b float64) bool { return a >= b })
}

// LT passes when the value is less than :param0.
func LT() Rule {
	return compareRule(RuleLT, "The :attribute must be less than :value.", func(a, b float64) bool { return a < b })
}

// LTE passes when the value is less than or equal to :param0.
func LTE() Rule {
	return compareRule(RuleLTE, "The :attribute must be less than or equal to :value.", func(a, b float64) bool { return a <= b })
}

func compareRule(name, message string, cmp func(a, b float64) bool) Rule {
	return &basicRule{
		name:    name,
		message: message,
		check: func(value any, params []string, data map[string]any) (bool, error) {
			if len(params) == 0 || strings.TrimSpace(params[0]) == "" {
				return false, invalidParameter(name, "a number or field name is required")
			}

			bound, isNumber := parseDecimal(strings.TrimSpace(params[0]))
			if !isNumber {
				other, ok := sizeOf(ValueForField(params[0], data))
				if !ok {
					return false, nil
				}
				bound = other
			}

			size, ok := compareSize(value)
			if !ok {
				return false, nil
			}
			return cmp(size, bound), nil
		},
		named: namedParams("value"),
	}
}

// compareSize is sizeOf, except that numeric strings compare by value.
func compareSize(value any) (float64, bool) {
	if s, ok := value.(string); ok {
		if f, ok := toFloat(s, true); ok {
			return f, true
		}
	}
	return sizeOf(value)
}

// Same passes when the value deep-equals the field named by :param0.
func Same() Rule {
	return &basicRule{
		name:    RuleSame,
		message: "The :attribute and :other must match.",
		check: func(value any, params []string, data map[string]any) (bool, error) {
			if len(params) == 0 || params[0] == "" {
				return false, invalidParameter(RuleSame, "other field is required")
			}
			return reflect.DeepEqual(value, ValueForField(params[0], data)), nil
		},
		named: namedParams("other"),
	}
}

// Different passes when the value differs from the field named by :param0.
func Different() Rule {
	return &basicRule{
		name:    RuleDifferent,
		message: "The :attribute and :other must be different.",
		check: func(value any, params []string, data map[string]any) (bool, error) {
			if len(params) == 0 || params[0] == "" {
				return false, invalidParameter(RuleDifferent, "other field is required")
			}
			return !reflect.DeepEqual(value, ValueForField(params[0], data)), nil
		},
		named: namedParams("other"),
	}
}
