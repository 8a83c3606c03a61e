package form

// Component is a field source bound to a Context.
// Components are compared with ==, so they must be comparable (usually pointers).
type Component interface {
	// Name is the logical field name, read once at registration.
	Name() string
	// Value returns the current value. A non-nil error never aborts a pass;
	// it is stored as a *ValueError in place of the value.
	Value() (any, error)
}

// CheckState is the checked state reported by a Checkable component.
type CheckState uint8

const (
	// CheckUnknown means the component does not know; list groups treat it as checked.
	CheckUnknown CheckState = iota
	Checked
	Unchecked
)

func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Unchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// Checkable is implemented by checkbox and radio style components.
type Checkable interface {
	CheckState() CheckState
}

// Lister is implemented by components that are members of a multi-value field.
type Lister interface {
	IsList() bool
}

// RuleProvider is implemented by components that declare their own rules.
type RuleProvider interface {
	Rules() Rule
}
