package tabs

import (
	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/loader"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// editor is the in-memory editing state of a text document tab. It is
// seeded from the document once loaded and reseeded when the tab is pointed
// at a different document.
type editor struct {
	area   textarea.Model
	seeded bool
	source documents.DocumentKey
}

func (e *editor) seed(key documents.DocumentKey, content string) {
	if e.seeded && e.source == key {
		return
	}
	area := textarea.New()
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.SetValue(content)
	area.Focus()
	e.area = area
	e.seeded = true
	e.source = key
}

func (t *DocumentTab) label(*Context) string {
	return t.Title
}

// SetDocumentKey points the tab at another document. Used when a restored
// workspace mints fresh documents for persisted tabs.
func (t *DocumentTab) SetDocumentKey(key documents.DocumentKey) {
	t.DocumentKey = key
}

// document resolves the tab's key and polls the document's loader.
func (t *DocumentTab) document(ctx *Context) (documents.Document, bool) {
	if ctx == nil || ctx.Documents == nil {
		return nil, false
	}
	ctx.Documents.Update(t.DocumentKey)
	return ctx.Documents.Get(t.DocumentKey)
}

func (t *DocumentTab) render(s dock.Surface, ctx *Context) string {
	th := ctx.theme()
	doc, ok := t.document(ctx)
	if !ok {
		return th.Muted.Render(ctx.tr(i18n.DocumentNotAvailable))
	}

	switch doc.State() {
	case loader.Loading:
		indicator := ""
		if ctx.Spinner != "" {
			indicator = ctx.Spinner + " "
		}
		return th.Muted.Render(indicator + ctx.tr(i18n.FileLoading))
	case loader.Failed:
		return th.Error.Render(ctx.tr(i18n.FileLoadFailed, doc.Path(), doc.Err()))
	}

	switch d := doc.(type) {
	case *documents.TextDocument:
		content, _ := d.Content()
		t.editor.seed(t.DocumentKey, content)
		t.editor.area.SetWidth(s.Width)
		t.editor.area.SetHeight(max(s.Height, 1))
		if s.Focused {
			t.editor.area.Focus()
		} else {
			t.editor.area.Blur()
		}
		return t.editor.area.View()
	case *documents.ImageDocument:
		img, _ := d.Image()
		b := img.Bounds()
		caption := th.Muted.Render(ctx.tr(i18n.ImageSummary, b.Dx(), b.Dy()))
		return renderImage(img, s.Width, max(s.Height-1, 1)) + "\n" + caption
	}
	return ""
}

// update forwards input to the editor of a loaded text document and writes
// edits back into the document.
func (t *DocumentTab) update(msg tea.Msg, ctx *Context) tea.Cmd {
	doc, ok := t.document(ctx)
	if !ok {
		return nil
	}
	text, ok := doc.(*documents.TextDocument)
	if !ok || text.State() != loader.Loaded || !t.editor.seeded || t.editor.source != t.DocumentKey {
		return nil
	}

	before := t.editor.area.Value()
	var cmd tea.Cmd
	t.editor.area, cmd = t.editor.area.Update(msg)
	if after := t.editor.area.Value(); after != before {
		text.SetContent(after)
	}
	return cmd
}
