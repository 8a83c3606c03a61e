package form

import "github.com/google/uuid"

// FieldID is the stable handle returned by Context.Register.
type FieldID uuid.UUID

func (id FieldID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether id is the zero handle.
func (id FieldID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// Validity is the tri-state outcome of validating a field.
type Validity uint8

const (
	// Unknown means no rules apply or validation was skipped.
	Unknown Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is the validation state the Context tracks for a field.
type State struct {
	Validated bool     `json:"validated"`
	Validity  Validity `json:"-"`
	// Error holds the last failure message; empty when there is none.
	Error string `json:"error,omitempty"`
	// Cause is the error returned by the rule, for errors.As inspection.
	Cause error `json:"-"`
}

// Field is the binding between a registered component and its validation state.
type Field struct {
	id        FieldID
	component Component
	name      string
	rules     Rule
	checkable Checkable
	lister    Lister
	state     State
}

func newField(c Component) *Field {
	f := &Field{
		id:        FieldID(uuid.New()),
		component: c,
		name:      c.Name(),
	}
	if ch, ok := c.(Checkable); ok {
		f.checkable = ch
	}
	if l, ok := c.(Lister); ok {
		f.lister = l
	}
	if rp, ok := c.(RuleProvider); ok {
		f.rules = rp.Rules()
	}
	return f
}

func (f *Field) ID() FieldID          { return f.id }
func (f *Field) Name() string         { return f.name }
func (f *Field) Component() Component { return f.component }
func (f *Field) State() State         { return f.state }
func (f *Field) Rules() Rule          { return f.rules }

// checkState treats plain components as checked.
func (f *Field) checkState() CheckState {
	if f.checkable == nil {
		return Checked
	}
	return f.checkable.CheckState()
}

func (f *Field) isList() bool {
	return f.lister != nil && f.lister.IsList()
}
