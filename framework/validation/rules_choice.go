package validation

import "slices"

// In passes when the value, stringified, equals one of the parameters.
func In() Rule {
	return &basicRule{
		name:    RuleIn,
		message: "The selected :attribute is invalid.",
		check: func(value any, params []string, _ map[string]any) (bool, error) {
			if len(params) == 0 {
				return false, invalidParameter(RuleIn, "at least one value is required")
			}
			s, ok := scalarString(value)
			return ok && slices.Contains(params, s), nil
		},
		named: joinedValues,
	}
}

// NotIn passes when the value is not one of the parameters. Nil passes.
func NotIn() Rule {
	return &basicRule{
		name:    RuleNotIn,
		message: "The selected :attribute is invalid.",
		check: func(value any, params []string, _ map[string]any) (bool, error) {
			if value == nil {
				return true, nil
			}
			s, ok := scalarString(value)
			return ok && !slices.Contains(params, s), nil
		},
		named: joinedValues,
	}
}

// scalarString stringifies strings, numbers and bools. Composite values
// report false.
func scalarString(value any) (string, bool) {
	switch value.(type) {
	case nil:
		return "", false
	case string, bool:
		return Stringify(value), true
	}
	if _, ok := toFloat(value, false); ok {
		return Stringify(value), true
	}
	return "", false
}
