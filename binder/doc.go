// Package binder registers the values of an HTTP form submission as
// components of a form.Context.
//
// Every submitted key becomes one Input. A key that repeats, or that ends in
// "[]", becomes a list group with one Input per value, so the Context
// aggregates it into a []any. Uploaded files are bound as *FileUpload values.
//
// Example:
//
//	fc := form.New(form.WithConfig(cfg))
//	if _, err := binder.Bind(fc, r, binder.WithExpected("email", "password")); err != nil {
//		http.Error(w, err.Error(), http.StatusBadRequest)
//		return
//	}
//	res := fc.Validate(true)
package binder
