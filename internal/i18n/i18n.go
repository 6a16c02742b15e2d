// Package i18n provides the localized strings shown in the UI.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translator looks up a message by key and formats it with args.
type Translator interface {
	Tr(key string, args ...any) string
}

// Message keys.
const (
	HomeTabLabel         = "home-tab-label"
	HomeHeading          = "home-heading"
	HomeShowOnStartup    = "home-tab-show-on-startup"
	NewTabLabel          = "new-tab-label"
	FormNewName          = "form-new-name"
	FormNewKind          = "form-new-kind"
	FormNewKindText      = "form-new-kind-text"
	FormNewKindImage     = "form-new-kind-image"
	FormComboDefault     = "form-common-combo-default"
	FormButtonOK         = "form-common-button-ok"
	FormNameRequired     = "form-error-name-required"
	FormNameSeparator    = "form-error-name-separator"
	FormNameReserved     = "form-error-name-reserved"
	FormKindRequired     = "form-error-kind-required"
	FileLoading          = "file-loading"
	FileLoadFailed       = "file-load-failed"
	DocumentNotAvailable = "document-not-available"
	ImageSummary         = "image-summary"
	OpenTitle            = "open-title"
	OpenUnsupported      = "open-unsupported"
	OpenFailed           = "open-failed"
	CreateFailed         = "create-failed"
	WorkspaceSaved       = "workspace-saved"
	WorkspaceSaveFailed  = "workspace-save-failed"
	DocumentsSaved       = "documents-saved"
	DocumentSaveFailed   = "document-save-failed"
	ToolbarHome          = "toolbar-button-home"
	ToolbarNew           = "toolbar-button-new"
	ToolbarOpen          = "toolbar-button-open"
	ToolbarCloseAll      = "toolbar-button-close-all"
	MenuQuit             = "menu-item-quit"
	EmptyWorkspace       = "workspace-empty"
)

var enUS = map[string]string{
	HomeTabLabel:         "Home",
	HomeHeading:          "Welcome to tabshell",
	HomeShowOnStartup:    "Show home tab on startup",
	NewTabLabel:          "New",
	FormNewName:          "Name",
	FormNewKind:          "Kind",
	FormNewKindText:      "Text",
	FormNewKindImage:     "Image",
	FormComboDefault:     "Select...",
	FormButtonOK:         "OK",
	FormNameRequired:     "Name is required",
	FormNameSeparator:    "Name must not contain path separators",
	FormNameReserved:     "Name must not be . or ..",
	FormKindRequired:     "Kind is required",
	FileLoading:          "Loading...",
	FileLoadFailed:       "Failed to load %s: %v",
	DocumentNotAvailable: "Document not available",
	ImageSummary:         "%d x %d image",
	OpenTitle:            "Open file",
	OpenUnsupported:      "Unsupported file: %s",
	OpenFailed:           "Could not open %s: %v",
	CreateFailed:         "Could not create document: %v",
	WorkspaceSaved:       "Workspace saved",
	WorkspaceSaveFailed:  "Could not save workspace: %v",
	DocumentsSaved:       "Saved %d document(s)",
	DocumentSaveFailed:   "Could not save %s: %v",
	ToolbarHome:          "Home",
	ToolbarNew:           "New",
	ToolbarOpen:          "Open",
	ToolbarCloseAll:      "Close all",
	MenuQuit:             "Quit",
	EmptyWorkspace:       "No tabs open",
}

// Catalog is a Translator backed by a golang.org/x/text message catalog.
type Catalog struct {
	printer *message.Printer
}

var supported = []language.Tag{language.AmericanEnglish}

// New returns a Catalog for the closest supported match of lang, a BCP 47
// tag such as "en-GB". Unknown or empty tags fall back to en-US.
func New(lang string) *Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.AmericanEnglish))
	for key, msg := range enUS {
		// SetString only fails for malformed tags.
		_ = b.SetString(language.AmericanEnglish, key, msg)
	}

	tag := language.AmericanEnglish
	if parsed, err := language.Parse(lang); err == nil {
		tag, _, _ = language.NewMatcher(supported).Match(parsed)
	}

	return &Catalog{printer: message.NewPrinter(tag, message.Catalog(b))}
}

// Tr implements Translator. Unknown keys are returned unchanged.
func (c *Catalog) Tr(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}
