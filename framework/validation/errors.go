package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors. Configuration-class errors abort a Validate call; rule
// failures never surface as errors, they land in the Result.
var (
	// ErrEmptyRuleName is returned when registering a rule under "".
	ErrEmptyRuleName = errors.New("validation: rule name cannot be empty")

	// ErrNilRule is returned when registering a nil rule or nil callable.
	ErrNilRule = errors.New("validation: rule cannot be nil")

	// ErrRuleNotFound is returned when a compiled rule names a rule that is
	// neither an extension nor registered.
	ErrRuleNotFound = errors.New("validation: rule is not registered")

	// ErrInvalidParameter is returned by rules whose parameters were
	// misconfigured by the caller (e.g. between with a single bound).
	ErrInvalidParameter = errors.New("validation: invalid rule parameter")

	// ErrValidationFailed is wrapped by FailedError so callers can use errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)

// RuleNotFoundError identifies the rule and field that could not be resolved.
type RuleNotFoundError struct {
	Rule  string
	Field string
}

func (e *RuleNotFoundError) Error() string {
	return fmt.Sprintf("validation: rule %q (field %q) is not registered", e.Rule, e.Field)
}

func (e *RuleNotFoundError) Unwrap() error { return ErrRuleNotFound }

// invalidParameter builds an ErrInvalidParameter-wrapping error for a rule.
func invalidParameter(rule, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidParameter, rule, fmt.Sprintf(format, args...))
}

// FailedError is the error form of a failed Result, handy for handlers that
// only propagate errors.
type FailedError struct {
	Errors map[string][]string
}

func (e *FailedError) Error() string {
	if len(e.Errors) == 0 {
		return ErrValidationFailed.Error()
	}

	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e.Errors[f], ", ")))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e *FailedError) Unwrap() error { return ErrValidationFailed }

// IsValidationError reports whether err carries a failed validation Result.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}

// ExtractErrors returns the field errors carried by err, or nil.
func ExtractErrors(err error) map[string][]string {
	var fe *FailedError
	if errors.As(err, &fe) {
		return fe.Errors
	}
	return nil
}
