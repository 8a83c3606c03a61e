// Package rules provides form.Rule implementations, a named rule registry and
// a YAML loader for form configs.
//
// A Definition pairs a Check function with a message table. Check returns an
// empty string when the value is valid, otherwise a message code; the failure
// is reported as a *Violation carrying the code, the resolved message and a
// translation key ("validation.<code>") so callers can localize it:
//
//	err := rules.MinLength(3).Validate("ab", nil)
//	if v, ok := rules.AsViolation(err); ok {
//	    fmt.Println(v.Code, v.Message) // min_length must be at least 3 characters long
//	}
//
// Custom rules are registered by name and then referenced from YAML:
//
//	rules.MustRegisterDefinition("username", func() rules.Definition {
//	    return rules.Definition{
//	        Check: func(value any, _ *form.ValidationContext) string {
//	            s, _ := value.(string)
//	            if len(s) < 5 {
//	                return "length"
//	            }
//	            return ""
//	        },
//	        Messages: map[string]string{"length": "Username should be at least 5 characters"},
//	    }
//	})
//
// # Config files
//
//	fields:
//	  username: [required, username]
//	  email: email
//	  address:
//	    rules: required
//	    zip: [{pattern: "^[0-9]{5}$"}]
//
// A string or a list of rule specs is the rule set of that path; a map with a
// "rules" key is a node with its own rules and children; any other map is a
// nested tree. A spec with parameters is a single-key map ({min_length: 3})
// and is only accepted inside a list or under "rules". {optional: spec} skips
// the wrapped spec for empty values.
//
// Every built-in rule reports a *form.ValueError value as the "value_error"
// code.
package rules
