package form

import (
	"errors"
	"fmt"
)

// Value error kinds.
const (
	KindException = "exception"
	KindPanic     = "panic"
)

// ValueError is stored in place of a field value when the component failed to
// produce one. Components may return their own *ValueError to choose the kind.
type ValueError struct {
	Kind  string
	Cause error
}

// NewValueError returns a ValueError of the given kind.
func NewValueError(kind string, cause error) *ValueError {
	return &ValueError{Kind: kind, Cause: cause}
}

func (e *ValueError) Error() string {
	if e.Cause == nil {
		return "field value error: " + e.Kind
	}
	return fmt.Sprintf("field value error (%s): %v", e.Kind, e.Cause)
}

func (e *ValueError) Unwrap() error { return e.Cause }

// AsValueError reports whether an aggregated value is a retrieval failure.
func AsValueError(v any) (*ValueError, bool) {
	ve, ok := v.(*ValueError)
	return ve, ok && ve != nil
}

// readValue reads a component value; it never panics and never returns both.
func readValue(c Component) (v any, verr *ValueError) {
	defer func() {
		if p := recover(); p != nil {
			v = nil
			verr = &ValueError{Kind: KindPanic, Cause: fmt.Errorf("%v", p)}
		}
	}()

	val, err := c.Value()
	if err == nil {
		return val, nil
	}

	var ve *ValueError
	if errors.As(err, &ve) && ve != nil {
		return nil, ve
	}
	return nil, &ValueError{Kind: KindException, Cause: err}
}
