package form_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

func TestValidateField(t *testing.T) {
	t.Parallel()

	t.Run("no rules is unknown", func(t *testing.T) {
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{"other": notEmpty()})))
		id := fctx.Register(&textInput{name: "free"})
		f := fctx.Field(id)

		assert.Equal(t, form.Unknown, fctx.ValidateField(f, fctx.FieldsData(), true))
		assert.Equal(t, form.Unknown, fctx.ValidateField(f, fctx.FieldsData(), false))
		assert.Equal(t, form.State{}, f.State())
	})

	t.Run("nil field is unknown", func(t *testing.T) {
		fctx := form.New()
		assert.Equal(t, form.Unknown, fctx.ValidateField(nil, fctx.FieldsData(), true))
	})

	t.Run("unvalidated field is skipped without force", func(t *testing.T) {
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{"name": notEmpty()})))
		id := fctx.Register(&textInput{name: "name", value: ""})
		f := fctx.Field(id)

		assert.Equal(t, form.Unknown, fctx.ValidateField(f, fctx.FieldsData(), false))
		assert.False(t, f.State().Validated)

		assert.Equal(t, form.Invalid, fctx.ValidateField(f, fctx.FieldsData(), true))
		assert.True(t, f.State().Validated)
		assert.Equal(t, "required", f.State().Error)
	})

	t.Run("validated field runs live", func(t *testing.T) {
		in := &textInput{name: "name", value: ""}
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{"name": notEmpty()})))
		id := fctx.Register(in)
		f := fctx.Field(id)

		require.Equal(t, form.Invalid, fctx.ValidateField(f, fctx.FieldsData(), true))

		in.value = "Ann"
		assert.Equal(t, form.Valid, fctx.ValidateField(f, fctx.FieldsData(), false))
		assert.Equal(t, form.Valid, f.State().Validity)
		assert.Empty(t, f.State().Error)
	})

	t.Run("failure marks every co-named field", func(t *testing.T) {
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{
			"size": failWith("s", "bad"),
		})))
		fctx.Register(&checkbox{name: "size", value: "s", state: form.Checked})
		fctx.Register(&checkbox{name: "size", value: "m", state: form.Unchecked})

		res := fctx.Validate(true)
		assert.False(t, res.Valid)
		for _, f := range res.State.Get("size").Fields {
			assert.True(t, f.State().Validated)
			assert.Equal(t, form.Invalid, f.State().Validity)
			assert.Equal(t, "bad", f.State().Error)
		}
	})

	t.Run("own rules override config", func(t *testing.T) {
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{"code": notEmpty()})))
		in := &ruledInput{
			textInput: textInput{name: "code", value: "x"},
			rule:      failWith("x", "no x"),
		}
		id := fctx.Register(in)

		assert.Equal(t, form.Invalid, fctx.ValidateField(fctx.Field(id), fctx.FieldsData(), true))
		assert.Equal(t, "no x", fctx.Field(id).State().Error)
	})

	t.Run("config rules apply to indexed names", func(t *testing.T) {
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{
			"rows": map[string]any{"title": notEmpty()},
		})))
		id := fctx.Register(&textInput{name: "rows[3].title", value: ""})
		assert.Equal(t, form.Invalid, fctx.ValidateField(fctx.Field(id), fctx.FieldsData(), true))
	})

	t.Run("rule sees the whole snapshot", func(t *testing.T) {
		confirm := form.RuleFunc(func(value any, vctx *form.ValidationContext) error {
			other, _ := vctx.Lookup("password")
			if value != other {
				return errors.New("passwords differ")
			}
			assert.Equal(t, "password_confirm", vctx.Field().Name())
			assert.NotNil(t, vctx.Data())
			return nil
		})
		fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{"password_confirm": confirm})))
		fctx.Register(&textInput{name: "password", value: "s3cret"})
		in := &textInput{name: "password_confirm", value: "s3cret!"}
		fctx.Register(in)

		assert.False(t, fctx.Validate(true).Valid)
		in.value = "s3cret"
		assert.True(t, fctx.Validate(false).Valid)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	newForm := func() (*form.Context, *textInput, *textInput) {
		cfg := form.MustConfig(map[string]any{
			"user": map[string]any{
				"name":  notEmpty(),
				"email": notEmpty(),
			},
		})
		name := &textInput{name: "user.name"}
		email := &textInput{name: "user.email"}
		fctx := form.New(form.WithConfig(cfg), form.WithName("signup"))
		fctx.Register(name)
		fctx.Register(email)
		fctx.Register(&textInput{name: "note", value: "free text"})
		return fctx, name, email
	}

	t.Run("first pass without force marks nothing invalid", func(t *testing.T) {
		fctx, _, _ := newForm()
		res := fctx.Validate(false)
		assert.True(t, res.Valid)
		for _, f := range fctx.Fields() {
			assert.False(t, f.State().Validated)
			assert.NotEqual(t, form.Invalid, f.State().Validity)
		}
	})

	t.Run("forced pass runs every rule", func(t *testing.T) {
		fctx, name, _ := newForm()
		res := fctx.Validate(true)
		assert.False(t, res.Valid)

		st, _ := fctx.FieldState(name)
		assert.True(t, st.Validated)
		assert.Equal(t, "required", st.Error)

		note, _ := fctx.FieldStateByName("note")
		assert.False(t, note.Validated, "fields without rules are untouched")
	})

	t.Run("fields without rules count as valid", func(t *testing.T) {
		fctx, name, email := newForm()
		name.value, email.value = "Ann", "ann@example.com"
		assert.True(t, fctx.Validate(true).Valid)
	})

	t.Run("result carries state and nested data", func(t *testing.T) {
		fctx, name, _ := newForm()
		name.value = "Ann"
		res := fctx.Validate(true)

		assert.Equal(t, []string{"user.name", "user.email", "note"}, res.State.Names())
		assert.Equal(t, map[string]any{
			"user": map[string]any{"name": "Ann", "email": nil},
			"note": "free text",
		}, res.Data)
	})

	t.Run("validate name targets one field", func(t *testing.T) {
		fctx, name, email := newForm()
		res := fctx.ValidateName("user.name", true)
		assert.False(t, res.Valid)

		st, _ := fctx.FieldState(email)
		assert.False(t, st.Validated)
		assert.Equal(t, 3, res.State.Len(), "data is built for the whole form")

		name.value = "Ann"
		assert.True(t, fctx.ValidateTarget(name, false).Valid)
	})

	t.Run("unknown target is valid", func(t *testing.T) {
		fctx, _, _ := newForm()
		assert.True(t, fctx.ValidateName("missing", true).Valid)
	})
}

type recorder struct{ results []form.Result }

func (r *recorder) FormDidValidate(res form.Result) { r.results = append(r.results, res) }

func TestListeners(t *testing.T) {
	t.Parallel()

	fctx := form.New(form.WithConfig(form.MustConfig(map[string]any{"a": notEmpty()})))
	fctx.Register(&textInput{name: "a", value: "x"})

	rec := &recorder{}
	id := fctx.AddListener(rec)

	var calls int
	fnID := fctx.AddListener(form.ListenerFunc(func(form.Result) { calls++ }))

	fctx.Validate(false)
	fctx.Validate(false)
	require.Len(t, rec.results, 2, "listeners are notified even when nothing changed")
	assert.Equal(t, 2, calls)
	assert.True(t, rec.results[0].Valid)

	assert.True(t, fctx.RemoveListener(fnID))
	assert.False(t, fctx.RemoveListener(fnID))
	fctx.ValidateName("a", true)
	assert.Len(t, rec.results, 3)
	assert.Equal(t, 2, calls)

	assert.True(t, fctx.RemoveListener(id))
	fctx.Validate(true)
	assert.Len(t, rec.results, 3)
}

func TestListenerRegistersDuringPass(t *testing.T) {
	t.Parallel()

	fctx := form.New()
	fctx.Register(&textInput{name: "a"})
	fctx.AddListener(form.ListenerFunc(func(form.Result) {
		fctx.Register(&textInput{name: "late"})
		fctx.AddListener(form.ListenerFunc(func(form.Result) {}))
	}))

	res := fctx.Validate(true)
	assert.Equal(t, 1, res.State.Len())
	assert.Equal(t, 2, fctx.Len())
}

func TestValidateLogs(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fctx := form.New(form.WithLogger(log), form.WithName("signup"), form.WithLogger(nil))
	fctx.Register(&textInput{name: "age", err: errBad})
	fctx.Validate(true)

	out := buf.String()
	assert.Contains(t, out, "field value retrieval failed")
	assert.Contains(t, out, "field=age")
	assert.Contains(t, out, "form=signup")
	assert.Contains(t, out, "form validated")
	assert.Equal(t, "signup", fctx.Name())
}

type traceKey struct{}

func TestValidateLogsWithContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(slog.LevelDebug),
		logger.WithContextValue("trace", traceKey{}),
	)
	ctx := context.WithValue(context.Background(), traceKey{}, "t-1")

	fctx := form.New(form.WithLogger(log), form.WithLogContext(ctx), form.WithLogContext(nil))
	fctx.Register(&textInput{name: "age", err: errBad})
	fctx.Validate(true)

	out := buf.String()
	assert.Contains(t, out, "field value retrieval failed")
	assert.Equal(t, 2, strings.Count(out, `"trace":"t-1"`))
}
