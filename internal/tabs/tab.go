package tabs

import (
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/logging"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
	"github.com/Iron-Ham/tabshell/internal/prefs"
	"github.com/Iron-Ham/tabshell/internal/tui/styles"
)

// Kind names a tab variant. It is also the tag of the persisted envelope.
type Kind string

const (
	KindHome     Kind = "home"
	KindNew      Kind = "new"
	KindDocument Kind = "document"
)

// Tab is a *HomeTab, *NewTab or *DocumentTab.
type Tab interface {
	Kind() Kind
	sealed()
}

// CloseOutcome is a tab's answer to a close request.
type CloseOutcome int

const (
	CloseAllow CloseOutcome = iota
	CloseKeep
)

// Context is handed to every tab call. All fields are optional; missing
// ones fall back to no-op or default implementations.
type Context struct {
	Prefs      *prefs.Preferences
	Documents  *documents.Registry
	Sender     mailbox.Sender[Entry]
	Logger     *logging.Logger
	Translator i18n.Translator
	Theme      *styles.Theme

	// Directory receives documents created from New tabs.
	Directory string
	// Spinner is the current frame of the loading indicator.
	Spinner string
}

var (
	fallbackTheme      = styles.NewTheme(nil)
	fallbackTranslator = i18n.New("")
)

func (c *Context) tr(key string, args ...any) string {
	if c == nil || c.Translator == nil {
		return fallbackTranslator.Tr(key, args...)
	}
	return c.Translator.Tr(key, args...)
}

func (c *Context) theme() *styles.Theme {
	if c == nil || c.Theme == nil {
		return fallbackTheme
	}
	return c.Theme
}

func (c *Context) logger() *logging.Logger {
	if c == nil || c.Logger == nil {
		return logging.NopLogger()
	}
	return c.Logger
}

// HomeTab shows the welcome page and the startup preference.
type HomeTab struct{}

// NewHomeTab returns a Home tab.
func NewHomeTab() *HomeTab { return &HomeTab{} }

func (*HomeTab) Kind() Kind { return KindHome }
func (*HomeTab) sealed()    {}

// DocumentTab shows one document. It only refers to the document; the
// documents.Registry owns it.
type DocumentTab struct {
	Title       string
	Path        string
	DocumentKey documents.DocumentKey

	editor editor
}

// NewDocumentTab returns a tab showing the document stored under key.
func NewDocumentTab(title, path string, key documents.DocumentKey) *DocumentTab {
	return &DocumentTab{Title: title, Path: path, DocumentKey: key}
}

func (*DocumentTab) Kind() Kind { return KindDocument }
func (*DocumentTab) sealed()    {}
