package rules

import (
	"errors"
	"maps"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Common message codes.
const (
	CodeValueError  = "value_error"
	CodeInvalidType = "invalid_type"
)

// Violation is the error returned by a failing Definition.
type Violation struct {
	Rule              string
	Code              string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (v *Violation) Error() string { return v.Message }

// AsViolation extracts a *Violation from err.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// CheckFunc returns "" for a valid value, otherwise a message code.
type CheckFunc func(value any, vctx *form.ValidationContext) string

// Definition is a form.Rule built from a check function and a message table.
type Definition struct {
	Name  string
	Check CheckFunc
	// Messages maps codes to messages; a missing code is used as its own message.
	Messages map[string]string
	// Params are copied into the violation's translation values.
	Params map[string]any
	// List marks rules that expect a list value.
	List bool
}

// Validate implements form.Rule.
func (d Definition) Validate(value any, vctx *form.ValidationContext) error {
	if ve, ok := form.AsValueError(value); ok {
		return d.violation(CodeValueError, ve.Error(), vctx)
	}
	if d.Check == nil {
		return nil
	}
	if code := d.Check(value, vctx); code != "" {
		return d.violation(code, "", vctx)
	}
	return nil
}

func (d Definition) violation(code, fallback string, vctx *form.ValidationContext) *Violation {
	msg := d.Messages[code]
	if msg == "" {
		msg = fallback
	}
	if msg == "" {
		msg = code
	}

	values := make(map[string]any, len(d.Params)+1)
	maps.Copy(values, d.Params)
	if f := vctx.Field(); f != nil {
		values["field"] = f.Name()
	}

	return &Violation{
		Rule:              d.Name,
		Code:              code,
		Message:           msg,
		TranslationKey:    "validation." + code,
		TranslationValues: values,
	}
}
