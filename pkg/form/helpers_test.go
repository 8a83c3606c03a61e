package form_test

import (
	"errors"

	"github.com/dmitrymomot/formkit/pkg/form"
)

type textInput struct {
	name  string
	value any
	err   error
}

func (i *textInput) Name() string        { return i.name }
func (i *textInput) Value() (any, error) { return i.value, i.err }

type checkbox struct {
	name  string
	value any
	state form.CheckState
	list  bool
}

func (c *checkbox) Name() string                { return c.name }
func (c *checkbox) Value() (any, error)         { return c.value, nil }
func (c *checkbox) CheckState() form.CheckState { return c.state }
func (c *checkbox) IsList() bool                { return c.list }

type panicky struct{ name string }

func (p *panicky) Name() string        { return p.name }
func (p *panicky) Value() (any, error) { panic("broken widget") }

type ruledInput struct {
	textInput
	rule form.Rule
}

func (r *ruledInput) Rules() form.Rule { return r.rule }

var errBad = errors.New("bad")

// failWith returns a rule failing with msg when value equals bad.
func failWith(bad any, msg string) form.Rule {
	return form.RuleFunc(func(value any, _ *form.ValidationContext) error {
		if value == bad {
			return errors.New(msg)
		}
		return nil
	})
}

func notEmpty() form.Rule {
	return form.RuleFunc(func(value any, _ *form.ValidationContext) error {
		if s, _ := value.(string); s == "" {
			return errors.New("required")
		}
		return nil
	})
}
