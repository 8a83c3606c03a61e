package form

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// RulesKey marks the rules of a node in a raw config tree.
const RulesKey = "rules"

var indexPattern = regexp.MustCompile(`\[[^\]]*\]`)

// Config is an immutable tree of rules keyed by field path segment.
type Config struct {
	root *configNode
}

type configNode struct {
	rules    Rule
	children map[string]*configNode
}

// NewConfig normalizes a raw config tree. Each value is one of:
//
//   - a Rule, the rules of that path;
//   - a map[string]any, a nested tree whose optional "rules" entry holds the
//     rules of the node itself;
//   - a *Config, grafted as a subtree;
//   - nil, ignored.
//
// raw is not modified.
func NewConfig(raw map[string]any) (*Config, error) {
	root, err := normalize(raw, "")
	if err != nil {
		return nil, err
	}
	return &Config{root: root}, nil
}

// MustConfig is NewConfig that panics on error.
func MustConfig(raw map[string]any) *Config {
	cfg, err := NewConfig(raw)
	if err != nil {
		panic(err)
	}
	return cfg
}

func normalize(raw map[string]any, path string) (*configNode, error) {
	n := &configNode{children: make(map[string]*configNode, len(raw))}
	for key, val := range raw {
		p := key
		if path != "" {
			p = path + "." + key
		}

		if key == RulesKey {
			if r, ok := val.(Rule); ok {
				n.rules = r
				continue
			}
		}

		switch v := val.(type) {
		case nil:
		case Rule:
			n.children[key] = &configNode{rules: v}
		case map[string]any:
			child, err := normalize(v, p)
			if err != nil {
				return nil, err
			}
			n.children[key] = child
		case *Config:
			if v != nil && v.root != nil {
				n.children[key] = v.root
			}
		default:
			return nil, fmt.Errorf("%w: %s: unsupported value of type %T", ErrInvalidConfig, p, val)
		}
	}
	return n, nil
}

// StripIndexes removes every bracket group from a field name: "a[0].b" => "a.b".
func StripIndexes(name string) string {
	return indexPattern.ReplaceAllString(name, "")
}

// Lookup returns the rules stored at the node for name, ignoring bracket
// indexes, or nil.
func (c *Config) Lookup(name string) Rule {
	if c == nil || c.root == nil {
		return nil
	}
	node := c.root
	for _, seg := range strings.Split(StripIndexes(name), ".") {
		node = node.children[seg]
		if node == nil {
			return nil
		}
	}
	return node.rules
}

// Paths returns the sorted dotted paths of every node holding rules.
func (c *Config) Paths() []string {
	if c == nil || c.root == nil {
		return nil
	}
	var out []string
	var walk func(n *configNode, prefix string)
	walk = func(n *configNode, prefix string) {
		if n.rules != nil && prefix != "" {
			out = append(out, prefix)
		}
		for key, child := range n.children {
			p := key
			if prefix != "" {
				p = prefix + "." + key
			}
			walk(child, p)
		}
	}
	walk(c.root, "")
	sort.Strings(out)
	return out
}
