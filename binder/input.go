package binder

import (
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Input is a single submitted value bound to a form.Context.
type Input struct {
	name    string
	value   any
	list    bool
	missing bool
}

// NewInput returns a single-value input.
func NewInput(name string, value any) *Input {
	return &Input{name: name, value: value}
}

// NewListInput returns one member of a multi-value field.
func NewListInput(name string, value any) *Input {
	return &Input{name: name, value: value, list: true}
}

func (i *Input) Name() string        { return i.name }
func (i *Input) Value() (any, error) { return i.value, nil }
func (i *Input) IsList() bool        { return i.list }

// CheckState reports Unchecked for placeholders of missing list fields so the
// group resolves to an empty list.
func (i *Input) CheckState() form.CheckState {
	if i.missing && i.list {
		return form.Unchecked
	}
	return form.CheckUnknown
}

// Missing reports whether the input was padded in by WithExpected.
func (i *Input) Missing() bool { return i.missing }

// FileUpload describes an uploaded file. The content is opened on demand.
type FileUpload struct {
	// Filename is the original filename provided by the client
	Filename string

	// Size is the size of the file in bytes
	Size int64

	// Header contains the MIME header fields for this file part
	Header textproto.MIMEHeader

	fh *multipart.FileHeader
}

func newFileUpload(fh *multipart.FileHeader) *FileUpload {
	return &FileUpload{Filename: fh.Filename, Size: fh.Size, Header: fh.Header, fh: fh}
}

// ContentType returns the MIME type of the uploaded file.
// It first checks the Content-Type header, then falls back to
// detecting the type from the file extension.
func (f *FileUpload) ContentType() string {
	if ct := f.Header.Get("Content-Type"); ct != "" {
		mediaType, _, _ := mime.ParseMediaType(ct)
		return mediaType
	}
	return mime.TypeByExtension(filepath.Ext(f.Filename))
}

// Open opens the uploaded content.
func (f *FileUpload) Open() (multipart.File, error) {
	return f.fh.Open()
}
