package validation

import "encoding/json"

// Result is the outcome of one Validate call. It mirrors Laravel's
// MessageBag plus the validated() data:
//
//	{"errors": {"email": ["The email must be a valid email address"]}, "valid": {"age": 25}}
//
// The engine fills it in; callers treat a returned Result as read-only.
type Result struct {
	errors          map[string][]string
	validData       map[string]any
	validatedFields []string
	seen            map[string]struct{}
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{
		errors:    make(map[string][]string),
		validData: make(map[string]any),
		seen:      make(map[string]struct{}),
	}
}

// ── Mutators (engine side) ───────────────────────────────────────────────────

// AddError appends message to field and marks the field validated.
func (r *Result) AddError(field, message string) *Result {
	r.errors[field] = append(r.errors[field], message)
	r.markValidated(field)
	return r
}

// AddValidData records value as the validated value of field.
func (r *Result) AddValidData(field string, value any) *Result {
	r.validData[field] = value
	return r
}

// MarkValidated records field as validated without touching errors or data.
func (r *Result) MarkValidated(field string) *Result {
	r.markValidated(field)
	return r
}

func (r *Result) markValidated(field string) {
	if _, ok := r.seen[field]; ok {
		return
	}
	r.seen[field] = struct{}{}
	r.validatedFields = append(r.validatedFields, field)
}

// ── Status ───────────────────────────────────────────────────────────────────

// Passes reports whether no field has errors.
func (r *Result) Passes() bool { return len(r.errors) == 0 }

// Fails reports whether any field has errors.
func (r *Result) Fails() bool { return len(r.errors) > 0 }

// Err returns nil when the result passes, otherwise a *FailedError.
func (r *Result) Err() error {
	if r.Passes() {
		return nil
	}
	return &FailedError{Errors: r.Errors()}
}

// ── Accessors ────────────────────────────────────────────────────────────────

// Errors returns a copy of all messages per field, in the order they were added.
func (r *Result) Errors() map[string][]string {
	out := make(map[string][]string, len(r.errors))
	for field, msgs := range r.errors {
		out[field] = append([]string(nil), msgs...)
	}
	return out
}

// First returns the first message for field, or "".
func (r *Result) First(field string) string {
	if msgs := r.errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// FirstErrors returns the first message of every failing field.
func (r *Result) FirstErrors() map[string]string {
	out := make(map[string]string, len(r.errors))
	for field, msgs := range r.errors {
		if len(msgs) > 0 {
			out[field] = msgs[0]
		}
	}
	return out
}

// HasError reports whether field has at least one message.
func (r *Result) HasError(field string) bool {
	return len(r.errors[field]) > 0
}

// FieldErrors returns every message for field.
func (r *Result) FieldErrors(field string) []string {
	return append([]string(nil), r.errors[field]...)
}

// ErrorCount returns the number of messages across all fields.
func (r *Result) ErrorCount() int {
	n := 0
	for _, msgs := range r.errors {
		n += len(msgs)
	}
	return n
}

// ValidData returns a copy of the values of fields that passed.
func (r *Result) ValidData() map[string]any {
	out := make(map[string]any, len(r.validData))
	for k, v := range r.validData {
		out[k] = v
	}
	return out
}

// ValidatedFields returns validated field names in first-seen order.
func (r *Result) ValidatedFields() []string {
	return append([]string(nil), r.validatedFields...)
}

// MarshalJSON renders the Laravel error-bag shape.
func (r *Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Errors map[string][]string `json:"errors"`
		Valid  map[string]any      `json:"valid"`
	}{
		Errors: r.errors,
		Valid:  r.validData,
	})
}
