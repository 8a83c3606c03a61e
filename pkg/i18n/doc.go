// Package i18n translates validation messages.
//
// A Catalog holds nested message trees per language, loaded from YAML:
//
//	en:
//	  validation:
//	    required: "%{field} is required"
//	de:
//	  validation:
//	    required: "%{field} ist erforderlich"
//
// Keys are dot-separated paths into the tree ("validation.required") and
// placeholders use the %{name} form. Match picks the best loaded language
// for an Accept-Language header using golang.org/x/text/language, and
// Middleware stores that choice in the request context.
package i18n
