// Package validation provides Laravel-style field validation for map data.
//
// # Overview
//
// Rules are declared per field, compiled once into RuleSpecs and executed by
// a Strategy against a Registry of named rules. Failing data ends up in a
// Result; misconfiguration (unknown rule names, bad parameters) is returned
// as an error.
//
// # Basic Usage
//
//	v := validation.NewWithDefaults()
//	res, err := v.Validate(map[string]any{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "name":  "required|min:2|max:100",
//	    "email": "required|email",
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	if res.Fails() {
//	    // JSON: {"errors": {"field": ["message1", "message2"]}, "valid": {...}}
//	}
//
// # Declarations
//
// A field's rules may be a pipe string ("required|between:18,65"), a list of
// strings, a list of RuleSpec values, or records {"name": ..., "parameters": ...}.
// Parameters split on commas outside double quotes:
//
//	in:"a,b",c   → ["a,b", "c"]
//
// Anything that cannot be named compiles to the "unknown" rule.
//
// # Available Rules
//
// Presence:
//   - required: not nil, not blank, not an empty slice or map
//   - nullable: a nil value skips the field's other rules
//
// Types:
//   - string, integer, numeric, float, boolean, array, object
//
// Size (rune count for strings, length for slices and maps, value for numbers):
//   - min:n, max:n, size:n, between:min,max
//
// Strings:
//   - email, url, alpha, alpha_num, alpha_dash
//   - regex:pattern, uuid[:version], starts_with:a,b, ends_with:a,b
//
// Choice:
//   - in:a,b,c, not_in:a,b,c
//
// Comparison (a number or another field):
//   - gt, gte, lt, lte, same:other, different:other
//
// # Messages
//
// Custom messages are looked up as "field.rule", then "field", then "rule".
// Templates may use :attribute, :param0..:paramN and rule-specific names
// such as :min and :max.
package validation
