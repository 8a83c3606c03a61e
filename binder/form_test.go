package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/rules"
)

func formRequest(values url.Values, contentType string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(values.Encode()))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req
}

func TestBind(t *testing.T) {
	t.Parallel()

	t.Run("single values", func(t *testing.T) {
		req := formRequest(url.Values{
			"name":        {"John"},
			"user.email":  {"john@example.com"},
			"items[0].id": {"7"},
		}, "application/x-www-form-urlencoded")

		fc := form.New()
		ids, err := binder.Bind(fc, req)
		require.NoError(t, err)
		assert.Len(t, ids, 3)
		assert.Equal(t, 3, fc.Len())

		assert.Equal(t, map[string]any{
			"name":  "John",
			"user":  map[string]any{"email": "john@example.com"},
			"items": []any{map[string]any{"id": "7"}},
		}, fc.Data())
	})

	t.Run("repeated keys become lists", func(t *testing.T) {
		req := formRequest(url.Values{
			"tags":    {"go", "web"},
			"roles[]": {"admin"},
		}, "application/x-www-form-urlencoded; charset=utf-8")

		fc := form.New()
		_, err := binder.Bind(fc, req)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{
			"tags":  []any{"go", "web"},
			"roles": []any{"admin"},
		}, fc.Data())
	})

	t.Run("query string is ignored", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test?lang=de", strings.NewReader("name=x"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		fc := form.New()
		_, err := binder.Bind(fc, req)
		require.NoError(t, err)
		assert.Nil(t, fc.FieldByName("lang"))
	})

	t.Run("expected names are padded", func(t *testing.T) {
		req := formRequest(url.Values{"name": {"John"}}, "application/x-www-form-urlencoded")

		fc := form.New()
		ids, err := binder.Bind(fc, req, binder.WithExpected("name", "email", "tags[]"))
		require.NoError(t, err)
		assert.Len(t, ids, 3)

		f := fc.FieldByName("email")
		require.NotNil(t, f)
		in, ok := f.Component().(*binder.Input)
		require.True(t, ok)
		assert.True(t, in.Missing())

		assert.Equal(t, map[string]any{
			"name":  "John",
			"email": "",
			"tags":  []any{},
		}, fc.Data())
	})

	t.Run("indexed names satisfy expected paths", func(t *testing.T) {
		req := formRequest(url.Values{"items[0].id": {"1"}}, "application/x-www-form-urlencoded")

		fc := form.New()
		ids, err := binder.Bind(fc, req, binder.WithExpected("items.id"))
		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})

	t.Run("expected list binds a single value as a list", func(t *testing.T) {
		req := formRequest(url.Values{"interests": {"go"}}, "application/x-www-form-urlencoded")

		fc := form.New()
		_, err := binder.Bind(fc, req, binder.WithExpected("interests[]"))
		require.NoError(t, err)

		f := fc.FieldByName("interests")
		require.NotNil(t, f)
		in := f.Component().(*binder.Input)
		assert.True(t, in.IsList())
		assert.False(t, in.Missing())
		assert.Equal(t, map[string]any{"interests": []any{"go"}}, fc.Data())
	})

	t.Run("nested names satisfy their parent", func(t *testing.T) {
		req := formRequest(url.Values{"address.city": {"Berlin"}}, "application/x-www-form-urlencoded")

		fc := form.New()
		ids, err := binder.Bind(fc, req, binder.WithExpected("address", "address.city", "address.zip"))
		require.NoError(t, err)
		assert.Len(t, ids, 2)
		assert.Nil(t, fc.FieldByName("address"))
		assert.NotNil(t, fc.FieldByName("address.zip"))
	})

	t.Run("missing expected field fails required", func(t *testing.T) {
		cfg := form.MustConfig(map[string]any{"email": rules.Required()})
		req := formRequest(url.Values{}, "application/x-www-form-urlencoded")

		fc := form.New(form.WithConfig(cfg))
		_, err := binder.Bind(fc, req, binder.WithExpected("email"))
		require.NoError(t, err)

		res := fc.Validate(true)
		assert.False(t, res.Valid)
		st, ok := fc.FieldStateByName("email")
		require.True(t, ok)
		assert.Equal(t, form.Invalid, st.Validity)
	})
}

func TestBindErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		want        error
	}{
		{"missing content type", "", binder.ErrMissingContentType},
		{"json", "application/json", binder.ErrUnsupportedMediaType},
		{"malformed content type", "multipart/", binder.ErrUnsupportedMediaType},
		{"multipart without boundary", "multipart/form-data", binder.ErrInvalidForm},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			fc := form.New()
			ids, err := binder.Bind(fc, formRequest(url.Values{"a": {"b"}}, tt.contentType))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, ids)
			assert.Zero(t, fc.Len())
		})
	}
}

func TestBindMultipart(t *testing.T) {
	t.Parallel()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("title", "Report"))
	require.NoError(t, w.WriteField("labels", "a"))
	require.NoError(t, w.WriteField("labels", "b"))
	fw, err := w.CreateFormFile("attachment", "report.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())

	fc := form.New()
	_, err = binder.Bind(fc, req, binder.WithMaxMemory(1<<20))
	require.NoError(t, err)

	data := fc.Data()
	assert.Equal(t, "Report", data["title"])
	assert.Equal(t, []any{"a", "b"}, data["labels"])

	upload, ok := data["attachment"].(*binder.FileUpload)
	require.True(t, ok)
	assert.Equal(t, "report.txt", upload.Filename)
	assert.Equal(t, int64(5), upload.Size)
	assert.Equal(t, "application/octet-stream", upload.ContentType())

	f, err := upload.Open()
	require.NoError(t, err)
	defer f.Close()
	buf := make([]byte, 5)
	_, err = f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf))
}

func TestInput(t *testing.T) {
	t.Parallel()

	in := binder.NewInput("name", "x")
	v, err := in.Value()
	require.NoError(t, err)
	assert.Equal(t, "x", v)
	assert.False(t, in.IsList())
	assert.Equal(t, form.CheckUnknown, in.CheckState())

	list := binder.NewListInput("tags", "go")
	assert.True(t, list.IsList())
	assert.False(t, list.Missing())
}
