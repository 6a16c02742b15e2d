package tabs

import (
	"strings"

	"github.com/Iron-Ham/tabshell/internal/dock"
	"github.com/Iron-Ham/tabshell/internal/i18n"
	tea "github.com/charmbracelet/bubbletea"
)

func (t *HomeTab) label(ctx *Context) string {
	return ctx.tr(i18n.HomeTabLabel)
}

func (t *HomeTab) render(s dock.Surface, ctx *Context) string {
	th := ctx.theme()

	box := "[ ]"
	if ctx != nil && ctx.Prefs != nil && ctx.Prefs.ShowHomeTabOnStartup {
		box = th.Success.Render("[x]")
	}
	option := box + " " + ctx.tr(i18n.HomeShowOnStartup)
	if s.Focused {
		option = th.Text.Render(option)
	} else {
		option = th.Muted.Render(option)
	}

	var b strings.Builder
	b.WriteString(th.Heading.Render(ctx.tr(i18n.HomeHeading)))
	b.WriteString("\n")
	b.WriteString(option)
	return b.String()
}

// update toggles the startup preference on space or enter.
func (t *HomeTab) update(msg tea.Msg, ctx *Context) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || ctx == nil || ctx.Prefs == nil {
		return nil
	}
	switch key.String() {
	case " ", "enter":
		ctx.Prefs.ShowHomeTabOnStartup = !ctx.Prefs.ShowHomeTabOnStartup
	}
	return nil
}
