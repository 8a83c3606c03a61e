// Package formkit validates forms declaratively.
//
// Field components register with a per-form Context (package pkg/form),
// declare their own rules or inherit them from a configuration tree, and the
// Context tracks per-field validity, aggregates values into nested data and
// notifies listeners after every validation pass.
//
// The module is organised as small packages:
//
//   - pkg/form: the Context, field registry, data aggregation and validation passes
//   - pkg/rules: built-in rules, the named rule registry and the YAML config loader
//   - pkg/i18n: message catalogs and Accept-Language matching
//   - binder: registers HTTP form submissions as components
//
// This package turns a validation result into a ValidationError:
//
//	fc := form.New(form.WithConfig(cfg))
//	if _, err := binder.Bind(fc, r); err != nil {
//		return err
//	}
//	if verr := formkit.FromResult(fc.Validate(true)); !verr.IsEmpty() {
//		return verr
//	}
package formkit
