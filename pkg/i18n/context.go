package i18n

import (
	"context"
	"net/http"
	"strings"
)

type langKey struct{}

// WithLanguage stores lang in ctx.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LanguageFromContext returns the language stored in ctx, or "".
func LanguageFromContext(ctx context.Context) string {
	lang, _ := ctx.Value(langKey{}).(string)
	return lang
}

// Middleware stores the request language in the context. An explicit "lang"
// query parameter wins over the Accept-Language header.
func Middleware(c *Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Accept-Language")
			if q := strings.TrimSpace(r.URL.Query().Get("lang")); q != "" {
				header = q
			}
			ctx := WithLanguage(r.Context(), c.Match(header))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
