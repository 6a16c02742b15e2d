package documents

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Iron-Ham/tabshell/internal/loader"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
)

var (
	// ErrUnsupportedFormat is returned for paths matching no text or image pattern.
	ErrUnsupportedFormat = errors.New("documents: unsupported format")
	// ErrInvalidName is returned by Create for empty names or names containing a path separator.
	ErrInvalidName = errors.New("documents: invalid document name")
	// ErrDocumentExists is returned by Create when the target file already exists.
	ErrDocumentExists = errors.New("documents: file already exists")
	// ErrNotText is returned when a text document's file is not valid UTF-8.
	ErrNotText = errors.New("documents: not a text file")
	// ErrNotLoaded is returned by Save for documents whose content is not available.
	ErrNotLoaded = errors.New("documents: content not loaded")
	// ErrRegistryNotEmpty is returned by RestoreKeySpace on a registry holding documents.
	ErrRegistryNotEmpty = errors.New("documents: registry not empty")
)

// Notifier is called from a loader's worker goroutine once the document
// stored under the key has finished loading.
type Notifier func(DocumentKey) error

// CreateArgs describes a document created from the New tab.
type CreateArgs struct {
	Name      string
	Directory string
	Kind      Kind
}

// Path returns the file a document created from args is written to.
func (a CreateArgs) Path() string {
	return filepath.Join(a.Directory, a.Name+a.Kind.Extension())
}

// ReservedName reports whether name is "." or "..", which cannot name a file.
func ReservedName(name string) bool {
	return name == "." || name == ".."
}

// Validate checks the name and kind.
func (a CreateArgs) Validate() error {
	if a.Name == "" || strings.ContainsAny(a.Name, `/\`) || ReservedName(a.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, a.Name)
	}
	if a.Kind != KindText && a.Kind != KindImage {
		return fmt.Errorf("documents: invalid kind %v", a.Kind)
	}
	return nil
}

// Opener turns paths into documents: it decides the kind from the file name
// and starts the background load.
type Opener struct {
	fs     afero.Fs
	text   []glob.Glob
	image  []glob.Glob
	decode DecodeFunc
	delay  time.Duration
}

// OpenerOption configures an Opener.
type OpenerOption func(*Opener)

// WithDecoder replaces the image decoder.
func WithDecoder(decode DecodeFunc) OpenerOption {
	return func(o *Opener) {
		o.decode = decode
	}
}

// WithLoadDelay delays every background load by d.
func WithLoadDelay(d time.Duration) OpenerOption {
	return func(o *Opener) {
		o.delay = d
	}
}

// NewOpener compiles the glob patterns used to classify file names.
// Patterns are matched case-insensitively against the base name.
func NewOpener(fs afero.Fs, textPatterns, imagePatterns []string, opts ...OpenerOption) (*Opener, error) {
	text, err := compilePatterns(textPatterns)
	if err != nil {
		return nil, err
	}
	img, err := compilePatterns(imagePatterns)
	if err != nil {
		return nil, err
	}

	o := &Opener{fs: fs, text: text, image: img, decode: DecodeImage}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(strings.ToLower(p))
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Fs returns the filesystem documents are read from and written to.
func (o *Opener) Fs() afero.Fs { return o.fs }

// KindOf classifies path by its base name.
func (o *Opener) KindOf(path string) (Kind, error) {
	name := strings.ToLower(filepath.Base(path))
	for _, g := range o.text {
		if g.Match(name) {
			return KindText, nil
		}
	}
	for _, g := range o.image {
		if g.Match(name) {
			return KindImage, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

// Open inserts a Loading document for path into reg and starts loading its
// content. notify is called with the new key when the load finishes.
func (o *Opener) Open(reg *Registry, path string, notify Notifier) (DocumentKey, error) {
	kind, err := o.KindOf(path)
	if err != nil {
		return DocumentKey{}, err
	}

	key := reg.InsertWithKey(func(k DocumentKey) Document {
		done := func() error {
			if notify == nil {
				return nil
			}
			return notify(k)
		}
		if kind == KindImage {
			return NewImageDocument(path, loader.Load(path, done, LoadImage(o.fs, o.decode), loader.WithDelay(o.delay)))
		}
		return NewTextDocument(path, loader.Load(path, done, LoadText(o.fs), loader.WithDelay(o.delay)))
	})
	return key, nil
}

// Create writes a new document to disk and inserts it into reg, already
// loaded. Text documents start with PlaceholderText, images with a blank
// canvas. Existing files are never overwritten.
func (o *Opener) Create(reg *Registry, args CreateArgs) (DocumentKey, error) {
	if err := args.Validate(); err != nil {
		return DocumentKey{}, err
	}
	path := args.Path()

	exists, err := afero.Exists(o.fs, path)
	if err != nil {
		return DocumentKey{}, err
	}
	if exists {
		return DocumentKey{}, fmt.Errorf("%w: %s", ErrDocumentExists, path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := o.fs.MkdirAll(dir, 0755); err != nil {
			return DocumentKey{}, fmt.Errorf("create directory: %w", err)
		}
	}

	var doc Document
	switch args.Kind {
	case KindImage:
		canvas := BlankCanvas()
		data, err := encodeBMP(canvas)
		if err != nil {
			return DocumentKey{}, fmt.Errorf("encode %s: %w", path, err)
		}
		if err := afero.WriteFile(o.fs, path, data, 0644); err != nil {
			return DocumentKey{}, err
		}
		doc = NewImageDocument(path, loader.New[image.Image](canvas))
	default:
		if err := afero.WriteFile(o.fs, path, []byte(PlaceholderText), 0644); err != nil {
			return DocumentKey{}, err
		}
		doc = NewTextDocument(path, loader.New(PlaceholderText))
	}

	return reg.Insert(doc), nil
}

// Save writes the content of a loaded text document back to its path.
// Image documents are not editable and are left untouched.
func (o *Opener) Save(doc Document) error {
	text, ok := doc.(*TextDocument)
	if !ok {
		return nil
	}
	content, loaded := text.Content()
	if !loaded {
		return fmt.Errorf("%w: %s", ErrNotLoaded, text.Path())
	}

	// Write through a temp file so a crash never truncates the document.
	tmp := text.Path() + ".tmp"
	if err := afero.WriteFile(o.fs, tmp, []byte(content), 0644); err != nil {
		return err
	}
	if err := o.fs.Rename(tmp, text.Path()); err != nil {
		_ = o.fs.Remove(tmp)
		return err
	}
	text.modified = false
	return nil
}

// IsNotExist reports whether err means a document's file is missing.
func IsNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
