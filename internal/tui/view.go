package tui

import (
	"strings"

	"github.com/Iron-Ham/tabshell/internal/i18n"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// View renders the toolbar, the layout or Open dialog, and the status line.
func (m Model) View() string {
	if !m.ready {
		return m.tr.Tr(i18n.FileLoading)
	}
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderToolbar())
	b.WriteString("\n")

	if m.picking {
		title := m.theme.Heading.Render(m.tr.Tr(i18n.OpenTitle))
		body := lipgloss.JoinVertical(lipgloss.Left, title, m.picker.View())
		b.WriteString(lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body))
	} else {
		b.WriteString(m.ws.Render(m.width, m.bodyHeight()))
	}
	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) renderToolbar() string {
	items := []struct {
		label   string
		binding key.Binding
	}{
		{i18n.ToolbarHome, m.keys.Home},
		{i18n.ToolbarNew, m.keys.New},
		{i18n.ToolbarOpen, m.keys.Open},
		{i18n.ToolbarCloseAll, m.keys.CloseAll},
		{i18n.MenuQuit, m.keys.Quit},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, m.tr.Tr(it.label)+" "+m.theme.Muted.Render(it.binding.Help().Key))
	}
	return m.theme.Toolbar.Width(m.width).Render(strings.Join(parts, "  │  "))
}

func (m Model) renderStatus() string {
	if m.toast != "" {
		return m.theme.Toast.Render(m.toast)
	}
	if !m.showHelp {
		return m.help.ShortHelpView(m.keys.ShortHelp())
	}
	return ""
}
