package kanban

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ImportPrompt asks for the path of a board file to import
type ImportPrompt struct {
	textInput textinput.Model
	width     int
	height    int
}

func NewImportPrompt(defaultDir string) ImportPrompt {
	ti := textinput.New()
	ti.Placeholder = defaultDir + "/kanban-board.json"
	ti.CharLimit = 1024
	ti.Width = 56

	return ImportPrompt{textInput: ti}
}

func (m *ImportPrompt) Open(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return m.textInput.Focus()
}

// Reset empties the input so the same file can be chosen again
func (m *ImportPrompt) Reset() {
	m.textInput.SetValue("")
	m.textInput.Blur()
}

func (m ImportPrompt) Update(msg tea.KeyMsg) (ImportPrompt, formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, formCancelled, nil
	case "enter":
		if m.Path() == "" {
			return m, formPending, nil
		}
		return m, formSubmitted, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, formPending, cmd
}

func (m ImportPrompt) View(styles boardStyles) string {
	var s strings.Builder

	s.WriteString(styles.modalTitle.Render("Import Board"))
	s.WriteString("\n\n")
	s.WriteString(m.textInput.View())
	s.WriteString("\n\n")
	s.WriteString(styles.help.Render(".json or .md • enter: import • esc: cancel"))

	box := styles.modalBox.Width(64).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m ImportPrompt) Path() string {
	return expandHome(strings.TrimSpace(m.textInput.Value()))
}
