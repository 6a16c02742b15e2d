package tabs

import (
	"slices"
	"strings"

	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/documents"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/Iron-Ham/tabshell/internal/mailbox"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// formField is the field of the New form receiving keys.
type formField int

const (
	fieldName formField = iota
	fieldKind
	fieldSubmit
	fieldCount
)

// kindChoices is the cycle order of the kind selector.
var kindChoices = []documents.Kind{documents.KindText, documents.KindImage}

// NewTab is the "new document" form. Submitting a valid form queues a
// CreateDocument entry; the workspace then replaces this tab in place.
type NewTab struct {
	name   textinput.Model
	kind   documents.Kind // zero until chosen
	focus  formField
	errors []string // message keys of the last failed validation
}

// NewNewTab returns an empty form with the name field focused.
func NewNewTab() *NewTab {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 32
	return &NewTab{name: ti}
}

func (*NewTab) Kind() Kind { return KindNew }
func (*NewTab) sealed()    {}

// Name returns the current content of the name field.
func (t *NewTab) Name() string { return t.name.Value() }

// SetName replaces the content of the name field.
func (t *NewTab) SetName(name string) { t.name.SetValue(name) }

// DocumentKind returns the selected kind, zero if none was chosen.
func (t *NewTab) DocumentKind() documents.Kind { return t.kind }

// SetDocumentKind selects a kind.
func (t *NewTab) SetDocumentKind(k documents.Kind) { t.kind = k }

// Errors returns the message keys of the last failed validation.
func (t *NewTab) Errors() []string { return t.errors }

// Validate returns the message keys of every problem with the form.
func (t *NewTab) Validate() []string {
	var problems []string
	name := strings.TrimSpace(t.name.Value())
	switch {
	case name == "":
		problems = append(problems, i18n.FormNameRequired)
	case strings.ContainsAny(name, `/\`):
		problems = append(problems, i18n.FormNameSeparator)
	case documents.ReservedName(name):
		problems = append(problems, i18n.FormNameReserved)
	}
	if t.kind == 0 {
		problems = append(problems, i18n.FormKindRequired)
	}
	return problems
}

// Submit validates the form and, when it is valid, queues a CreateDocument
// request from key. Validation problems are kept for rendering.
func (t *NewTab) Submit(key TabKey, ctx *Context) error {
	t.errors = t.Validate()
	if len(t.errors) > 0 {
		return nil
	}

	var (
		dir    string
		sender mailbox.Sender[Entry]
	)
	if ctx != nil {
		dir, sender = ctx.Directory, ctx.Sender
	}
	args := documents.CreateArgs{
		Name:      strings.TrimSpace(t.name.Value()),
		Directory: dir,
		Kind:      t.kind,
	}
	return sender.Send(Entry{Source: TabSource{Key: key}, Message: CreateDocument{Args: args}})
}

func (t *NewTab) label(ctx *Context) string {
	return ctx.tr(i18n.NewTabLabel)
}

// cycleKind moves the kind selector by step. From the unset state the first
// step lands on the first or last choice.
func (t *NewTab) cycleKind(step int) {
	n := len(kindChoices)
	i := slices.Index(kindChoices, t.kind)
	if i < 0 {
		if step > 0 {
			t.kind = kindChoices[0]
		} else {
			t.kind = kindChoices[n-1]
		}
		return
	}
	t.kind = kindChoices[((i+step)%n+n)%n]
}

func (t *NewTab) setFocus(f formField) {
	t.focus = f
	if f == fieldName {
		t.name.Focus()
	} else {
		t.name.Blur()
	}
}

func (t *NewTab) update(key TabKey, msg tea.Msg, ctx *Context) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		t.name, cmd = t.name.Update(msg)
		return cmd
	}

	switch keyMsg.String() {
	case "tab", "down":
		t.setFocus((t.focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		t.setFocus((t.focus + fieldCount - 1) % fieldCount)
		return nil
	case "enter":
		if err := t.Submit(key, ctx); err != nil {
			ctx.logger().Error("create-document request dropped", "tab_key", key.String(), "error", err)
		}
		return nil
	}

	if t.focus == fieldKind {
		switch keyMsg.String() {
		case "left", "h":
			t.cycleKind(-1)
		case "right", "l", " ":
			t.cycleKind(1)
		}
		return nil
	}
	if t.focus == fieldName {
		var cmd tea.Cmd
		t.name, cmd = t.name.Update(msg)
		return cmd
	}
	return nil
}

func (t *NewTab) render(s dock.Surface, ctx *Context) string {
	th := ctx.theme()
	field := func(f formField, body string) string {
		if s.Focused && t.focus == f {
			return th.FieldFocused.Render(body)
		}
		return th.Field.Render(body)
	}

	kind := ctx.tr(i18n.FormComboDefault)
	switch t.kind {
	case documents.KindText:
		kind = ctx.tr(i18n.FormNewKindText)
	case documents.KindImage:
		kind = ctx.tr(i18n.FormNewKindImage)
	}

	var b strings.Builder
	b.WriteString(th.Text.Render(ctx.tr(i18n.FormNewName)))
	b.WriteString("\n")
	b.WriteString(field(fieldName, t.name.View()))
	b.WriteString("\n")
	b.WriteString(th.Text.Render(ctx.tr(i18n.FormNewKind)))
	b.WriteString("\n")
	b.WriteString(field(fieldKind, "< "+kind+" >"))
	b.WriteString("\n")
	b.WriteString(field(fieldSubmit, th.Button.Render(ctx.tr(i18n.FormButtonOK))))

	for _, key := range t.errors {
		b.WriteString("\n")
		b.WriteString(th.Error.Render(ctx.tr(key)))
	}
	return b.String()
}
