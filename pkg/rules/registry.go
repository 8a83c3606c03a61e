package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Factory builds a rule from the parameters given in a config.
type Factory func(params ...any) (form.Rule, error)

// Registry maps rule names to factories. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewBuiltinRegistry returns a registry holding every built-in rule.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for name, f := range builtins() {
		r.factories[name] = f
	}
	return r
}

// Default is the registry used by the package-level helpers.
var Default = NewBuiltinRegistry()

// Register adds or replaces the factory for name.
func (r *Registry) Register(name string, f Factory) error {
	name = strings.TrimSpace(name)
	if name == "" || f == nil {
		return ErrInvalidRule
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
	return nil
}

// RegisterDefinition registers a parameterless rule built by fn. The
// definition's Name defaults to name.
func (r *Registry) RegisterDefinition(name string, fn func() Definition) error {
	if fn == nil {
		return ErrInvalidRule
	}
	return r.Register(name, func(params ...any) (form.Rule, error) {
		if len(params) > 0 {
			return nil, fmt.Errorf("%w: %s takes no parameters", ErrInvalidParams, name)
		}
		d := fn()
		if d.Name == "" {
			d.Name = name
		}
		return d, nil
	})
}

// Build creates the rule registered under name.
func (r *Registry) Build(name string, params ...any) (form.Rule, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return f(params...)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a factory to the Default registry.
func Register(name string, f Factory) error { return Default.Register(name, f) }

// MustRegisterDefinition adds a parameterless rule to the Default registry and
// panics on error.
func MustRegisterDefinition(name string, fn func() Definition) {
	if err := Default.RegisterDefinition(name, fn); err != nil {
		panic(err)
	}
}

// Build creates a rule from the Default registry.
func Build(name string, params ...any) (form.Rule, error) { return Default.Build(name, params...) }

func builtins() map[string]Factory {
	noParams := func(name string, fn func() Definition) Factory {
		return func(params ...any) (form.Rule, error) {
			if len(params) > 0 {
				return nil, fmt.Errorf("%w: %s takes no parameters", ErrInvalidParams, name)
			}
			return fn(), nil
		}
	}
	withInt := func(name string, fn func(int) Definition) Factory {
		return func(params ...any) (form.Rule, error) {
			n, err := intParam(name, params)
			if err != nil {
				return nil, err
			}
			return fn(n), nil
		}
	}
	withFloat := func(name string, fn func(float64) Definition) Factory {
		return func(params ...any) (form.Rule, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("%w: %s takes one number", ErrInvalidParams, name)
			}
			f, ok := toFloat(params[0])
			if !ok {
				return nil, fmt.Errorf("%w: %s: %v is not a number", ErrInvalidParams, name, params[0])
			}
			return fn(f), nil
		}
	}

	return map[string]Factory{
		"required":   noParams("required", Required),
		"email":      noParams("email", Email),
		"url":        noParams("url", URL),
		"uuid":       noParams("uuid", UUID),
		"checked":    noParams("checked", Checked),
		"min_length": withInt("min_length", MinLength),
		"max_length": withInt("max_length", MaxLength),
		"length":     withInt("length", Length),
		"min_items":  withInt("min_items", MinItems),
		"max_items":  withInt("max_items", MaxItems),
		"min":        withFloat("min", Min),
		"max":        withFloat("max", Max),
		"pattern": func(params ...any) (form.Rule, error) {
			expr, err := stringParam("pattern", params)
			if err != nil {
				return nil, err
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("%w: pattern: %v", ErrInvalidParams, err)
			}
			return Pattern(re), nil
		},
		"equals_field": func(params ...any) (form.Rule, error) {
			other, err := stringParam("equals_field", params)
			if err != nil {
				return nil, err
			}
			return EqualsField(other), nil
		},
		"one_of": func(params ...any) (form.Rule, error) {
			options := make([]string, 0, len(params))
			for _, p := range flatten(params) {
				options = append(options, fmt.Sprint(p))
			}
			if len(options) == 0 {
				return nil, fmt.Errorf("%w: one_of needs at least one option", ErrInvalidParams)
			}
			return OneOf(options...), nil
		},
	}
}

func intParam(name string, params []any) (int, error) {
	if len(params) != 1 {
		return 0, fmt.Errorf("%w: %s takes one integer", ErrInvalidParams, name)
	}
	switch v := params[0].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w: %s: %v is not an integer", ErrInvalidParams, name, params[0])
}

func stringParam(name string, params []any) (string, error) {
	if len(params) != 1 {
		return "", fmt.Errorf("%w: %s takes one string", ErrInvalidParams, name)
	}
	s, ok := params[0].(string)
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s: %v is not a string", ErrInvalidParams, name, params[0])
	}
	return s, nil
}

// flatten expands nested []any parameters, as produced by YAML lists.
func flatten(params []any) []any {
	out := make([]any, 0, len(params))
	for _, p := range params {
		if list, ok := p.([]any); ok {
			out = append(out, flatten(list)...)
			continue
		}
		out = append(out, p)
	}
	return out
}
