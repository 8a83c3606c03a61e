package rules

import "github.com/dmitrymomot/formkit/pkg/form"

// All runs rules in order and returns the first failure. Nil rules are skipped.
func All(rules ...form.Rule) form.Rule {
	return allRule(rules)
}

type allRule []form.Rule

func (a allRule) Validate(value any, vctx *form.ValidationContext) error {
	for _, r := range a {
		if r == nil {
			continue
		}
		if err := r.Validate(value, vctx); err != nil {
			return err
		}
	}
	return nil
}

// Optional skips rule when the value is empty (see Required).
func Optional(rule form.Rule) form.Rule {
	return optionalRule{rule: rule}
}

type optionalRule struct{ rule form.Rule }

func (o optionalRule) Validate(value any, vctx *form.ValidationContext) error {
	if isEmpty(value) || o.rule == nil {
		return nil
	}
	return o.rule.Validate(value, vctx)
}

// ExpectsList reports whether rule, or any rule it composes, validates a list
// value (min_items, max_items). Binders use it to treat a field as a list even
// when a single value was submitted.
func ExpectsList(rule form.Rule) bool {
	switch r := rule.(type) {
	case Definition:
		return r.List
	case allRule:
		for _, inner := range r {
			if ExpectsList(inner) {
				return true
			}
		}
	case optionalRule:
		return ExpectsList(r.rule)
	}
	return false
}
