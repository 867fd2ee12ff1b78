package validation

import (
	"net/mail"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	alphaRe     = regexp.MustCompile(`^[\pL\pM]+$`)
	alphaNumRe  = regexp.MustCompile(`^[\pL\pM\pN]+$`)
	alphaDashRe = regexp.MustCompile(`^[\pL\pM\pN_-]+$`)
)

// Email passes for a bare RFC 5322 address such as "a@b.com".
func Email() Rule {
	return &basicRule{
		name:    RuleEmail,
		message: "The :attribute must be a valid email address.",
		check: stringPredicate(func(s string) bool {
			addr, err := mail.ParseAddress(s)
			return err == nil && addr.Address == s
		}),
	}
}

// URL passes for absolute http or https URLs with a host.
func URL() Rule {
	return &basicRule{
		name:    RuleURL,
		message: "The :attribute format is invalid.",
		check: stringPredicate(func(s string) bool {
			u, err := url.Parse(s)
			if err != nil || u.Host == "" {
				return false
			}
			return u.Scheme == "http" || u.Scheme == "https"
		}),
	}
}

// Alpha passes for letters only.
func Alpha() Rule {
	return &basicRule{
		name:    RuleAlpha,
		message: "The :attribute may only contain letters.",
		check:   stringPredicate(alphaRe.MatchString),
	}
}

// AlphaNum passes for letters and digits.
func AlphaNum() Rule {
	return &basicRule{
		name:    RuleAlphaNum,
		message: "The :attribute may only contain letters and numbers.",
		check:   stringPredicate(alphaNumRe.MatchString),
	}
}

// AlphaDash passes for letters, digits, dashes and underscores.
func AlphaDash() Rule {
	return &basicRule{
		name:    RuleAlphaDash,
		message: "The :attribute may only contain letters, numbers, dashes and underscores.",
		check:   stringPredicate(alphaDashRe.MatchString),
	}
}

// Regex matches the value against the pattern in :param0. Slashes around the
// pattern, as in "regex:/^\d+$/", are stripped.
func Regex() Rule {
	return &basicRule{
		name:    RuleRegex,
		message: "The :attribute format is invalid.",
		check: func(value any, params []string, _ map[string]any) (bool, error) {
			if len(params) == 0 || params[0] == "" {
				return false, invalidParameter(RuleRegex, "pattern is required")
			}
			pattern := params[0]
			if len(pattern) >= 2 && strings.HasPrefix(pattern, "/") && strings.HasSuffix(pattern, "/") {
				pattern = pattern[1 : len(pattern)-1]
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false, invalidParameter(RuleRegex, "bad pattern %q: %v", params[0], err)
			}
			s, ok := value.(string)
			return ok && re.MatchString(s), nil
		},
	}
}

// UUID passes for canonical UUID strings. An optional :param0 pins the
// version, e.g. "uuid:4".
func UUID() Rule {
	return &basicRule{
		name:    RuleUUID,
		message: "The :attribute must be a valid UUID.",
		check: func(value any, params []string, _ map[string]any) (bool, error) {
			var version float64
			if len(params) > 0 && params[0] != "" {
				v, err := parseNumber(RuleUUID, params, 0)
				if err != nil {
					return false, err
				}
				version = v
			}

			s, ok := value.(string)
			if !ok || len(s) != 36 {
				return false, nil
			}
			id, err := uuid.Parse(s)
			if err != nil {
				return false, nil
			}
			return version == 0 || float64(id.Version()) == version, nil
		},
	}
}

// StartsWith passes when the value starts with one of the parameters.
func StartsWith() Rule {
	return &basicRule{
		name:    RuleStartsWith,
		message: "The :attribute must start with one of the following: :values.",
		check:   affixCheck(RuleStartsWith, strings.HasPrefix),
		named:   joinedValues,
	}
}

// EndsWith passes when the value ends with one of the parameters.
func EndsWith() Rule {
	return &basicRule{
		name:    RuleEndsWith,
		message: "The :attribute must end with one of the following: :values.",
		check:   affixCheck(RuleEndsWith, strings.HasSuffix),
		named:   joinedValues,
	}
}

func affixCheck(rule string, match func(s, affix string) bool) func(any, []string, map[string]any) (bool, error) {
	return func(value any, params []string, _ map[string]any) (bool, error) {
		if len(params) == 0 {
			return false, invalidParameter(rule, "at least one value is required")
		}
		s, ok := value.(string)
		if !ok {
			return false, nil
		}
		for _, p := range params {
			if match(s, p) {
				return true, nil
			}
		}
		return false, nil
	}
}

func stringPredicate(fn func(string) bool) func(any, []string, map[string]any) (bool, error) {
	return predicate(func(value any) bool {
		s, ok := value.(string)
		return ok && fn(s)
	})
}

func joinedValues(params []string) map[string]any {
	return map[string]any{"values": strings.Join(params, ", ")}
}
