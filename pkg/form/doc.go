// Package form implements a per-form validation context that field components
// register with.
//
// A Context owns every registered Field, resolves the Rule that applies to each
// of them, aggregates field values into a flat, ordered Data snapshot and a
// nested map, and notifies listeners after every validation pass.
//
// # Components
//
// Anything implementing Component can be registered. Optional capabilities are
// detected once, at registration time:
//
//   - Checkable reports whether a checkbox/radio style component is checked.
//   - Lister marks a component as one member of a multi-value (list) field.
//   - RuleProvider supplies rules for this field only, overriding the Config.
//
// Several components may share the same name. List groups aggregate every
// checked member into a []any, radio-style groups take the checked member's
// value and single fields are read directly.
//
// # Validation
//
// A field that has never been validated is skipped unless the pass is forced.
// This gives "validate on submit or blur first, then live on every change"
// semantics:
//
//	fctx := form.New(form.WithConfig(cfg))
//	id := fctx.Register(input)
//	defer fctx.Unregister(id)
//
//	res := fctx.Validate(true) // submit
//	if !res.Valid {
//	    // inspect res.State or the per-field State
//	}
//
// # Names
//
// Field names are dotted paths where each segment may carry a bracket index:
// "user.emails[0].address". Refine turns the flat names into nested maps and
// slices. There is no escaping for literal dots or brackets.
//
// A Context is not safe for concurrent use.
package form
