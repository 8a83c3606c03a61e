package main

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit"
	"github.com/dmitrymomot/formkit/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/i18n"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

// validator serves validation of named form definitions.
type validator struct {
	forms     map[string]*form.Config
	catalog   *i18n.Catalog
	log       *slog.Logger
	maxMemory int64
}

func newRouter(v *validator) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(v.catalog))

	r.Get("/health", httpserver.HealthCheckHandler(v.log, v.ready))
	r.Get("/forms", v.listForms)
	r.Post("/forms/{form}/validate", v.validate)
	return r
}

func (v *validator) ready(context.Context) error {
	if len(v.forms) == 0 {
		return errors.New("no forms loaded")
	}
	return nil
}

func (v *validator) listForms(w http.ResponseWriter, r *http.Request) {
	names := make([]string, 0, len(v.forms))
	for name := range v.forms {
		names = append(names, name)
	}
	slices.Sort(names)
	writeJSON(w, http.StatusOK, response{Data: names})
}

func (v *validator) validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "form")
	cfg, ok := v.forms[name]
	if !ok {
		writeError(w, errNotFound, "unknown form "+name)
		return
	}

	ctx := r.Context()
	log := v.log.With(logger.Form(name))
	start := time.Now()

	fc := form.New(form.WithName(name), form.WithConfig(cfg), form.WithLogger(log), form.WithLogContext(ctx))
	if _, err := binder.Bind(fc, r, binder.WithExpected(expectedNames(cfg)...), binder.WithMaxMemory(v.maxMemory)); err != nil {
		log.DebugContext(ctx, "form binding failed", logger.Error(err))
		if errors.Is(err, binder.ErrUnsupportedMediaType) || errors.Is(err, binder.ErrMissingContentType) {
			writeError(w, errUnsupportedMediaType, err.Error())
			return
		}
		writeError(w, errBadRequest, err.Error())
		return
	}

	res := fc.Validate(true)
	lang := i18n.LanguageFromContext(ctx)
	log.InfoContext(ctx, "form validated",
		slog.Bool("valid", res.Valid),
		slog.Int("fields", fc.Len()),
		logger.Duration(time.Since(start)),
	)

	if res.Valid {
		writeJSON(w, http.StatusOK, response{Code: "valid", Data: res.Data})
		return
	}
	verr := formkit.FromResultFunc(res, v.messages(lang))
	writeValidationError(w, verr, res.Data)
}

// messages translates rule violations into lang; other failures keep their
// own text.
func (v *validator) messages(lang string) formkit.MessageFunc {
	return func(name string, st form.State) string {
		violation, ok := rules.AsViolation(st.Cause)
		if !ok {
			return st.Error
		}
		values := make(map[string]any, len(violation.TranslationValues)+1)
		maps.Copy(values, violation.TranslationValues)
		values["field"] = name
		return v.catalog.Localize(lang, violation.TranslationKey, violation.Message, values)
	}
}

// expectedNames returns every configured path a submission is expected to
// carry. Paths validated as lists get the "[]" suffix so single values bind
// as one-element lists.
func expectedNames(cfg *form.Config) []string {
	paths := cfg.Paths()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if rules.ExpectsList(cfg.Lookup(p)) {
			p += "[]"
		}
		out = append(out, p)
	}
	return out
}

// requestID adds chi's request id to records logged with a request context.
func requestID(ctx context.Context) (slog.Attr, bool) {
	if id := middleware.GetReqID(ctx); id != "" {
		return logger.RequestID(id), true
	}
	return slog.Attr{}, false
}

// requestLang adds the negotiated message language.
func requestLang(ctx context.Context) (slog.Attr, bool) {
	if lang := i18n.LanguageFromContext(ctx); lang != "" {
		return logger.Lang(lang), true
	}
	return slog.Attr{}, false
}
