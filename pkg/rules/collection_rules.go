package rules

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
)

const msgNotList = "must be a list"

// MinItems requires a list with at least min elements.
func MinItems(min int) Definition {
	return itemsRule("min_items", "min", min, fmt.Sprintf("must have at least %d items", min),
		func(n int) bool { return n >= min })
}

// MaxItems allows a list with at most max elements.
func MaxItems(max int) Definition {
	return itemsRule("max_items", "max", max, fmt.Sprintf("must have at most %d items", max),
		func(n int) bool { return n <= max })
}

func itemsRule(code, param string, limit int, msg string, ok func(int) bool) Definition {
	return Definition{
		Name: code,
		Check: func(value any, _ *form.ValidationContext) string {
			list, isList := toList(value)
			if !isList {
				return CodeInvalidType
			}
			if !ok(len(list)) {
				return code
			}
			return ""
		},
		Messages: map[string]string{code: msg, CodeInvalidType: msgNotList},
		Params:   map[string]any{param: limit},
		List:     true,
	}
}

// Checked requires a checkbox group with at least one checked member, or a
// single value of true.
func Checked() Definition {
	return Definition{
		Name: "checked",
		Check: func(value any, _ *form.ValidationContext) string {
			if isEmpty(value) {
				return "checked"
			}
			if s, ok := value.(string); ok && (s == "false" || s == "off" || s == "0") {
				return "checked"
			}
			return ""
		},
		Messages: map[string]string{"checked": "must be checked"},
	}
}

// OneOf requires the value, or every element of a list value, to be one of
// options. Non-string values are compared by their fmt representation.
func OneOf(options ...string) Definition {
	allowed := slices.Clone(options)
	return Definition{
		Name: "one_of",
		Check: func(value any, _ *form.ValidationContext) string {
			if value == nil {
				return ""
			}
			values := []any{value}
			if list, ok := value.([]any); ok {
				values = list
			}
			for _, v := range values {
				if !slices.Contains(allowed, fmt.Sprint(v)) {
					return "one_of"
				}
			}
			return ""
		},
		Messages: map[string]string{"one_of": "must be one of: " + strings.Join(allowed, ", ")},
		Params:   map[string]any{"options": strings.Join(allowed, ", ")},
	}
}

// EqualsField requires the value to equal the value of the field named other.
func EqualsField(other string) Definition {
	return Definition{
		Name: "equals_field",
		Check: func(value any, vctx *form.ValidationContext) string {
			want, _ := vctx.Lookup(other)
			if !reflect.DeepEqual(value, want) {
				return "equals_field"
			}
			return ""
		},
		Messages: map[string]string{"equals_field": "must match " + other},
		Params:   map[string]any{"other": other},
	}
}
