package kanban

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/kanban/models"
	"taskboard/internal/tui/theme"
)

type confirmAction int

const (
	confirmDelete confirmAction = iota
	confirmClear
)

// ConfirmationModal asks before a destructive board action. A delete prompt
// remembers the card it was opened for.
type ConfirmationModal struct {
	action   confirmAction
	cardID   string
	question string
	detail   string
	width    int
}

// ConfirmationResultMsg carries the answer back to the board
type ConfirmationResultMsg struct {
	Action    confirmAction
	CardID    string
	Confirmed bool
}

func newDeleteConfirm(card models.Card, width int) *ConfirmationModal {
	return &ConfirmationModal{
		action:   confirmDelete,
		cardID:   card.ID,
		question: "Delete this card?",
		detail:   card.Title,
		width:    width,
	}
}

func newClearConfirm(cards, width int) *ConfirmationModal {
	return &ConfirmationModal{
		action:   confirmClear,
		question: "Clear the entire board?",
		detail:   fmt.Sprintf("All %d cards in every column are removed.", cards),
		width:    width,
	}
}

// Update answers y/Y with yes and n/N/esc/q with no. Other keys are ignored.
func (m *ConfirmationModal) Update(msg tea.KeyMsg) tea.Cmd {
	var confirmed bool
	switch msg.String() {
	case "y", "Y":
		confirmed = true
	case "n", "N", "esc", "q":
	default:
		return nil
	}

	result := ConfirmationResultMsg{Action: m.action, CardID: m.cardID, Confirmed: confirmed}
	return func() tea.Msg { return result }
}

func (m *ConfirmationModal) View() string {
	var s strings.Builder
	s.WriteString(theme.Warn.Render(m.question))
	s.WriteString("\n")
	if m.detail != "" {
		s.WriteString("\n" + theme.Muted.Render(m.detail) + "\n")
	}
	s.WriteString("\n" + theme.Ok.Render("[y]") + " confirm   " + theme.Error.Render("[n/esc]") + " keep")
	return theme.ModalBox.Width(m.width).Render(s.String())
}

// renderAlert draws a blocking message that any key dismisses
func renderAlert(message string, width, height int) string {
	content := theme.Error.Render(message) + "\n\n" + theme.ModalHelp.Render("Press any key to continue")
	box := theme.ModalBox.BorderForeground(theme.Current.Danger).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
