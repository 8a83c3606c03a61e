package rules

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formkit/pkg/form"
)

type configFile struct {
	Fields map[string]any `yaml:"fields"`
}

type formsFile struct {
	Forms map[string]configFile `yaml:"forms"`
}

// LoadConfig reads a YAML document with a top-level "fields" tree and builds
// a form.Config using reg (Default when nil).
func LoadConfig(r io.Reader, reg *Registry) (*form.Config, error) {
	var doc configFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return BuildConfig(doc.Fields, reg)
}

// LoadForms reads a YAML document of the form
//
//	forms:
//	  signup:
//	    fields: {...}
//
// and returns one form.Config per form name.
func LoadForms(r io.Reader, reg *Registry) (map[string]*form.Config, error) {
	var doc formsFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	out := make(map[string]*form.Config, len(doc.Forms))
	for name, f := range doc.Forms {
		cfg, err := BuildConfig(f.Fields, reg)
		if err != nil {
			return nil, fmt.Errorf("form %q: %w", name, err)
		}
		out[name] = cfg
	}
	return out, nil
}

// BuildConfig turns a decoded YAML fields tree into a form.Config.
func BuildConfig(tree map[string]any, reg *Registry) (*form.Config, error) {
	if reg == nil {
		reg = Default
	}
	raw, err := buildTree(tree, "", reg)
	if err != nil {
		return nil, err
	}
	cfg, err := form.NewConfig(raw)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

func buildTree(tree map[string]any, path string, reg *Registry) (map[string]any, error) {
	out := make(map[string]any, len(tree))
	for key, val := range tree {
		p := key
		if path != "" {
			p = path + "." + key
		}

		if key == form.RulesKey {
			if _, nested := val.(map[string]any); !nested || isSpecMap(val, reg) {
				rule, err := buildSpec(val, p, reg)
				if err != nil {
					return nil, err
				}
				out[key] = rule
				continue
			}
		}

		switch v := val.(type) {
		case nil:
		case map[string]any:
			child, err := buildTree(v, p, reg)
			if err != nil {
				return nil, err
			}
			out[key] = child
		default:
			rule, err := buildSpec(v, p, reg)
			if err != nil {
				return nil, err
			}
			out[key] = rule
		}
	}
	return out, nil
}

// isSpecMap reports whether v is a single-key map naming a registered rule.
func isSpecMap(v any, reg *Registry) bool {
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return false
	}
	for name := range m {
		return name == OptionalKey || reg.Has(name)
	}
	return false
}

// OptionalKey wraps a spec so it only runs for non-empty values:
// {optional: [url, {max_length: 200}]}.
const OptionalKey = "optional"

// buildSpec builds a rule from "name", {name: params} or a list of those.
func buildSpec(spec any, path string, reg *Registry) (form.Rule, error) {
	switch s := spec.(type) {
	case string:
		rule, err := reg.Build(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
		}
		return rule, nil

	case map[string]any:
		if len(s) != 1 {
			names := make([]string, 0, len(s))
			for k := range s {
				names = append(names, k)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("%w: %s: rule spec must have exactly one key, got %v", ErrInvalidConfig, path, names)
		}
		for name, params := range s {
			if name == OptionalKey {
				inner, err := buildSpec(params, path, reg)
				if err != nil {
					return nil, err
				}
				return Optional(inner), nil
			}
			var args []any
			switch p := params.(type) {
			case nil:
			case []any:
				args = p
			default:
				args = []any{p}
			}
			rule, err := reg.Build(name, args...)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
			}
			return rule, nil
		}

	case []any:
		list := make([]form.Rule, 0, len(s))
		for i, item := range s {
			rule, err := buildSpec(item, fmt.Sprintf("%s[%d]", path, i), reg)
			if err != nil {
				return nil, err
			}
			list = append(list, rule)
		}
		if len(list) == 1 {
			return list[0], nil
		}
		return All(list...), nil
	}

	return nil, fmt.Errorf("%w: %s: unsupported rule spec of type %T", ErrInvalidConfig, path, spec)
}
