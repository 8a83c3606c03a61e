package formkit

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// ValidationError represents field validation errors.
// It's based on url.Values to leverage built-in string slice handling.
type ValidationError url.Values

// MessageFunc renders the message for an invalid field.
type MessageFunc func(name string, st form.State) string

// Error implements the error interface.
// Returns a human-readable error message summarizing validation failures.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "Validation failed"
	}

	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var parts []string
	for _, field := range fields {
		if messages := e[field]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", field, messages[0]))
		}
	}

	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

// NewValidationError creates a new validation error.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// FromResult collects the message of every invalid field in res.
// Co-named fields share one state, so each name gets at most one message.
func FromResult(res form.Result) ValidationError {
	return FromResultFunc(res, nil)
}

// FromResultFunc is FromResult with custom message rendering. A nil fn uses
// the stored error text.
func FromResultFunc(res form.Result, fn MessageFunc) ValidationError {
	e := NewValidationError()
	for _, g := range res.State.Groups() {
		for _, f := range g.Fields {
			st := f.State()
			if st.Validity != form.Invalid {
				continue
			}
			msg := st.Error
			if fn != nil {
				msg = fn(g.Name, st)
			}
			e.Add(g.Name, msg)
			break
		}
	}
	return e
}

// Add adds an error message for a field.
func (e ValidationError) Add(field, message string) {
	url.Values(e).Add(field, message)
}

// Get returns the first error message for a field.
func (e ValidationError) Get(field string) string {
	return url.Values(e).Get(field)
}

// Has checks if a field has any errors.
func (e ValidationError) Has(field string) bool {
	return len(e[field]) > 0
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
