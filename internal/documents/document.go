package documents

import (
	"fmt"
	"image"

	"github.com/Iron-Ham/tabshell/internal/arena"
	"github.com/Iron-Ham/tabshell/internal/loader"
)

// DocumentKey identifies a document in a Registry. Keys from different
// registries are unrelated.
type DocumentKey struct {
	arena.Key
}

// Compare orders document keys by slot index, then generation.
func (k DocumentKey) Compare(other DocumentKey) int {
	return k.Key.Compare(other.Key)
}

// ParseDocumentKey parses the form produced by DocumentKey.String.
func ParseDocumentKey(s string) (DocumentKey, error) {
	k, err := arena.ParseKey(s)
	if err != nil {
		return DocumentKey{}, err
	}
	return DocumentKey{k}, nil
}

// Kind is the content type of a document.
type Kind int

const (
	KindText Kind = iota + 1
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Extension returns the file extension, including the dot, used for new
// documents of this kind.
func (k Kind) Extension() string {
	switch k {
	case KindText:
		return ".txt"
	case KindImage:
		return ".bmp"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindText, KindImage:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("documents: invalid kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "text":
		*k = KindText
	case "image":
		*k = KindImage
	default:
		return fmt.Errorf("documents: unknown kind %q", text)
	}
	return nil
}

// Document is a TextDocument or an ImageDocument. The set is closed; use a
// type switch to reach the variant.
type Document interface {
	// Path is the file the document was opened from or will be saved to.
	Path() string
	Kind() Kind
	// State reports the state of the document's content loader.
	State() loader.State
	// Err returns the load error of a Failed document.
	Err() error
	// Update polls the content loader and reports whether it transitioned.
	Update() bool

	sealed()
}

// TextDocument is an editable text file.
type TextDocument struct {
	path     string
	content  *loader.Loader[string]
	modified bool
}

// NewTextDocument wraps an existing loader.
func NewTextDocument(path string, content *loader.Loader[string]) *TextDocument {
	return &TextDocument{path: path, content: content}
}

func (d *TextDocument) Path() string        { return d.path }
func (d *TextDocument) Kind() Kind          { return KindText }
func (d *TextDocument) State() loader.State { return d.content.State() }
func (d *TextDocument) Err() error          { return d.content.Err() }
func (d *TextDocument) Update() bool        { return d.content.Update() }
func (d *TextDocument) sealed()             {}

// Content returns the text once loaded.
func (d *TextDocument) Content() (string, bool) {
	return d.content.Content()
}

// SetContent replaces the text of a loaded document and marks it modified.
// It reports false while the document is loading or after it failed.
func (d *TextDocument) SetContent(text string) bool {
	if !d.content.Mutate(func(s *string) { *s = text }) {
		return false
	}
	d.modified = true
	return true
}

// Modified reports whether the text changed since it was loaded or saved.
func (d *TextDocument) Modified() bool { return d.modified }

// ImageDocument is a decoded raster image.
type ImageDocument struct {
	path  string
	image *loader.Loader[image.Image]
}

// NewImageDocument wraps an existing loader.
func NewImageDocument(path string, img *loader.Loader[image.Image]) *ImageDocument {
	return &ImageDocument{path: path, image: img}
}

func (d *ImageDocument) Path() string        { return d.path }
func (d *ImageDocument) Kind() Kind          { return KindImage }
func (d *ImageDocument) State() loader.State { return d.image.State() }
func (d *ImageDocument) Err() error          { return d.image.Err() }
func (d *ImageDocument) Update() bool        { return d.image.Update() }
func (d *ImageDocument) sealed()             {}

// Image returns the decoded image once loaded.
func (d *ImageDocument) Image() (image.Image, bool) {
	return d.image.Content()
}
