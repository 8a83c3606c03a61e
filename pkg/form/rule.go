package form

// Rule validates the resolved value of a field group. A nil error means the
// value is valid; otherwise err.Error() becomes the field's error message.
type Rule interface {
	Validate(value any, vctx *ValidationContext) error
}

// RuleFunc adapts a function to the Rule interface.
type RuleFunc func(value any, vctx *ValidationContext) error

func (f RuleFunc) Validate(value any, vctx *ValidationContext) error {
	return f(value, vctx)
}

// ValidationContext is handed to a Rule together with the value.
type ValidationContext struct {
	data  *Data
	field *Field
}

// NewValidationContext is used by rule implementations and their tests.
func NewValidationContext(data *Data, field *Field) *ValidationContext {
	return &ValidationContext{data: data, field: field}
}

// Data is the snapshot the pass runs on.
func (v *ValidationContext) Data() *Data {
	if v == nil {
		return nil
	}
	return v.data
}

// Field is the field being validated; nil outside a pass.
func (v *ValidationContext) Field() *Field {
	if v == nil {
		return nil
	}
	return v.field
}

// Lookup returns the value of another field group, for cross-field rules.
func (v *ValidationContext) Lookup(name string) (any, bool) {
	return v.Data().Value(name)
}
