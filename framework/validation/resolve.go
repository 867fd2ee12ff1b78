package validation

import "strings"

// ValueForField resolves a field from data. Dot-notation walks nested maps:
// "address.city" reads data["address"]["city"]. A missing segment yields nil.
func ValueForField(field string, data map[string]any) any {
	if !strings.Contains(field, ".") {
		return data[field]
	}

	var current any = data
	for _, segment := range strings.Split(field, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}
	return current
}

// hasField reports whether field is a direct key of data or resolves to a
// non-nil value through dot-notation.
func hasField(field string, data map[string]any) bool {
	if _, ok := data[field]; ok {
		return true
	}
	return ValueForField(field, data) != nil
}

// asMap accepts the two map shapes produced by JSON and YAML decoding.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
