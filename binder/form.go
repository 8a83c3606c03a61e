package binder

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// DefaultMaxMemory is the default maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20 // 10 MB

const listSuffix = "[]"

type options struct {
	expected  []string
	maxMemory int64
}

// Option configures Bind.
type Option func(*options)

// WithExpected registers an empty input for every name absent from the
// request, so rules such as required still run for it. A name ending in "[]"
// is padded as an empty list, and a submitted key with that name is bound as a
// list even when it carries a single value. Submitted names match with and
// without their bracket indexes, so "items.id" is satisfied by "items[0].id";
// a submitted "address.city" also satisfies "address".
func WithExpected(names ...string) Option {
	return func(o *options) {
		o.expected = append(o.expected, names...)
	}
}

// WithMaxMemory sets the memory limit for multipart parsing.
func WithMaxMemory(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMemory = n
		}
	}
}

// Bind parses the request body and registers its values on fc.
// It accepts application/x-www-form-urlencoded and multipart/form-data.
// Keys are bound in sorted order; the query string is ignored.
func Bind(fc *form.Context, r *http.Request, opts ...Option) ([]form.FieldID, error) {
	o := options{maxMemory: DefaultMaxMemory}
	for _, opt := range opts {
		opt(&o)
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return nil, fmt.Errorf("%w: expected application/x-www-form-urlencoded or multipart/form-data", ErrMissingContentType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedMediaType, err)
	}

	lists := listNames(o.expected)

	var inputs []*Input
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		inputs = valueInputs(r.PostForm, lists)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(o.maxMemory); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		inputs = valueInputs(r.PostForm, lists)
		if r.MultipartForm != nil {
			inputs = append(inputs, fileInputs(r.MultipartForm.File, lists)...)
		}
	default:
		return nil, fmt.Errorf("%w: got %s, expected application/x-www-form-urlencoded or multipart/form-data", ErrUnsupportedMediaType, mediaType)
	}

	inputs = append(inputs, padding(inputs, o.expected)...)

	ids := make([]form.FieldID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, fc.Register(in))
	}
	return ids, nil
}

func valueInputs(values map[string][]string, lists map[string]bool) []*Input {
	var inputs []*Input
	for _, key := range sortedKeys(values) {
		vals := values[key]
		name, list := splitKey(key, len(vals))
		list = list || lists[name]
		for _, v := range vals {
			inputs = append(inputs, &Input{name: name, value: v, list: list})
		}
	}
	return inputs
}

func fileInputs(files map[string][]*multipart.FileHeader, lists map[string]bool) []*Input {
	var inputs []*Input
	for _, key := range sortedKeys(files) {
		headers := files[key]
		name, list := splitKey(key, len(headers))
		list = list || lists[name]
		for _, h := range headers {
			inputs = append(inputs, &Input{name: name, value: newFileUpload(h), list: list})
		}
	}
	return inputs
}

func padding(inputs []*Input, expected []string) []*Input {
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		seen[in.name] = true
		stripped := form.StripIndexes(in.name)
		for {
			seen[stripped] = true
			i := strings.LastIndexByte(stripped, '.')
			if i < 0 {
				break
			}
			stripped = stripped[:i]
		}
	}
	var pad []*Input
	for _, key := range expected {
		name, list := splitKey(key, 1)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		in := &Input{name: name, list: list, missing: true}
		if !list {
			in.value = ""
		}
		pad = append(pad, in)
	}
	return pad
}

func listNames(expected []string) map[string]bool {
	lists := make(map[string]bool)
	for _, key := range expected {
		if name, list := splitKey(key, 1); list {
			lists[name] = true
		}
	}
	return lists
}

func splitKey(key string, n int) (string, bool) {
	if name, ok := strings.CutSuffix(key, listSuffix); ok {
		return name, true
	}
	return key, n > 1
}

func sortedKeys[T any](m map[string][]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
