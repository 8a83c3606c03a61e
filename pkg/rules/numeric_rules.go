package rules

import (
	"fmt"
	"strconv"

	"github.com/dmitrymomot/formkit/pkg/form"
)

const msgNotNumber = "must be a number"

// Min requires a number (or numeric string) greater than or equal to min.
func Min(min float64) Definition {
	return boundRule("min", min, fmt.Sprintf("must be at least %s", formatFloat(min)),
		func(n float64) bool { return n >= min })
}

// Max requires a number (or numeric string) less than or equal to max.
func Max(max float64) Definition {
	return boundRule("max", max, fmt.Sprintf("must be at most %s", formatFloat(max)),
		func(n float64) bool { return n <= max })
}

func boundRule(code string, limit float64, msg string, ok func(float64) bool) Definition {
	return Definition{
		Name: code,
		Check: func(value any, _ *form.ValidationContext) string {
			n, isNumber := toFloat(value)
			if !isNumber {
				return "numeric"
			}
			if !ok(n) {
				return code
			}
			return ""
		},
		Messages: map[string]string{code: msg, "numeric": msgNotNumber},
		Params:   map[string]any{code: limit},
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
