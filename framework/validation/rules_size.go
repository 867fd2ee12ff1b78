package validation

import (
	"math"
	"reflect"
	"unicode/utf8"
)

const sizeEpsilon = 1e-9

// Min fails when the size of the value is below :min.
//
// Size is the rune count of a string, the length of a slice or map, and the
// value itself for numbers.
func Min() Rule {
	return &basicRule{
		name:    RuleMin,
		message: "The :attribute must be at least :min.",
		check:   sizeCheck(RuleMin, func(size, n float64) bool { return size >= n }),
		named:   namedParams("min"),
	}
}

// Max fails when the size of the value is above :max.
func Max() Rule {
	return &basicRule{
		name:    RuleMax,
		message: "The :attribute may not be greater than :max.",
		check:   sizeCheck(RuleMax, func(size, n float64) bool { return size <= n }),
		named:   namedParams("max"),
	}
}

// Size fails unless the size of the value equals :size.
func Size() Rule {
	return &basicRule{
		name:    RuleSize,
		message: "The :attribute must be :size.",
		check:   sizeCheck(RuleSize, func(size, n float64) bool { return math.Abs(size-n) < sizeEpsilon }),
		named:   namedParams("size"),
	}
}

// Between passes when :min <= size <= :max. A missing bound or min > max is a
// configuration error.
func Between() Rule {
	return &basicRule{
		name:    RuleBetween,
		message: "The :attribute must be between :min and :max.",
		check: func(value any, params []string, _ map[string]any) (bool, error) {
			lo, err := parseNumber(RuleBetween, params, 0)
			if err != nil {
				return false, err
			}
			hi, err := parseNumber(RuleBetween, params, 1)
			if err != nil {
				return false, err
			}
			if lo > hi {
				return false, invalidParameter(RuleBetween, "min %v is greater than max %v", lo, hi)
			}

			size, ok := sizeOf(value)
			if !ok {
				return false, nil
			}
			return size >= lo && size <= hi, nil
		},
		named: namedParams("min", "max"),
	}
}

func sizeCheck(rule string, cmp func(size, n float64) bool) func(any, []string, map[string]any) (bool, error) {
	return func(value any, params []string, _ map[string]any) (bool, error) {
		n, err := parseNumber(rule, params, 0)
		if err != nil {
			return false, err
		}
		size, ok := sizeOf(value)
		if !ok {
			return false, nil
		}
		return cmp(size, n), nil
	}
}

// sizeOf measures value for the size rules. Values without a size, nil
// included, report false.
func sizeOf(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		return float64(utf8.RuneCountInString(s)), true
	}
	if f, ok := toFloat(value, false); ok {
		return f, true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len()), true
	}
	return 0, false
}

// namedParams maps positional parameters onto names for message templates.
func namedParams(names ...string) func([]string) map[string]any {
	return func(params []string) map[string]any {
		out := make(map[string]any, len(names))
		for i, name := range names {
			if i < len(params) {
				out[name] = params[i]
			}
		}
		return out
	}
}
