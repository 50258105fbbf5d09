package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/tui/theme"
)

// HelpBind represents a single keybind entry
type HelpBind struct {
	Key  string
	Desc string
}

// HelpSection represents a group of related keybinds
type HelpSection struct {
	Title string
	Binds []HelpBind
}

// RenderHelpPopup renders a centered help popup with the given sections
func RenderHelpPopup(sections []HelpSection, width, height int) string {
	p := theme.Current
	helpSectionStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	helpKeyStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	helpDescStyle := lipgloss.NewStyle().Foreground(p.Text)
	helpDismissStyle := lipgloss.NewStyle().Foreground(p.TextMuted)

	line := func(key, desc string) string {
		return "  " + helpKeyStyle.Width(14).Render(key) + helpDescStyle.Render(desc)
	}

	var content string
	for i, section := range sections {
		if i > 0 {
			content += "\n"
		}
		content += helpSectionStyle.Render(section.Title) + "\n"
		for _, bind := range section.Binds {
			content += line(bind.Key, bind.Desc) + "\n"
		}
	}

	content += "\n" + helpDismissStyle.Render("Press any key to close")

	// Trim trailing newline before boxing
	content = strings.TrimRight(content, "\n")

	box := theme.ModalBox.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
