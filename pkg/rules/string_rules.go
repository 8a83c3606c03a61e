package rules

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/dmitrymomot/formkit/pkg/form"
)

const msgNotString = "must be a string"

// Required fails for nil, blank strings, false and empty collections.
func Required() Definition {
	return Definition{
		Name: "required",
		Check: func(value any, _ *form.ValidationContext) string {
			if isEmpty(value) {
				return "required"
			}
			return ""
		},
		Messages: map[string]string{"required": "field is required"},
	}
}

// MinLength requires at least min characters (runes).
func MinLength(min int) Definition {
	return lengthRule("min_length", "min", min,
		fmt.Sprintf("must be at least %d characters long", min),
		func(n int) bool { return n >= min })
}

// MaxLength allows at most max characters (runes).
func MaxLength(max int) Definition {
	return lengthRule("max_length", "max", max,
		fmt.Sprintf("must be at most %d characters long", max),
		func(n int) bool { return n <= max })
}

// Length requires exactly exact characters (runes).
func Length(exact int) Definition {
	return lengthRule("length", "length", exact,
		fmt.Sprintf("must be exactly %d characters long", exact),
		func(n int) bool { return n == exact })
}

func lengthRule(code, param string, limit int, msg string, ok func(int) bool) Definition {
	return Definition{
		Name: code,
		Check: func(value any, _ *form.ValidationContext) string {
			s, isString := toString(value)
			if !isString {
				return CodeInvalidType
			}
			if !ok(utf8.RuneCountInString(s)) {
				return code
			}
			return ""
		},
		Messages: map[string]string{code: msg, CodeInvalidType: msgNotString},
		Params:   map[string]any{param: limit},
	}
}

// Pattern requires the string to match re.
func Pattern(re *regexp.Regexp) Definition {
	return Definition{
		Name: "pattern",
		Check: func(value any, _ *form.ValidationContext) string {
			s, ok := toString(value)
			if !ok {
				return CodeInvalidType
			}
			if !re.MatchString(s) {
				return "pattern"
			}
			return ""
		},
		Messages: map[string]string{
			"pattern":       "has an invalid format",
			CodeInvalidType: msgNotString,
		},
		Params: map[string]any{"pattern": re.String()},
	}
}
