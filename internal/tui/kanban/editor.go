package kanban

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/kanban/models"
)

const maxEditorHeight = 12

// newEditor builds the inline title editor, pre-filled with value
func newEditor(value string, width int) textarea.Model {
	ta := textarea.New()
	ta.Prompt = ""
	ta.ShowLineNumbers = false
	ta.CharLimit = 2000
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle()
	ta.SetWidth(max(1, width))
	ta.SetValue(value)
	ta.SetHeight(editorHeight(value, width))
	return ta
}

// editorHeight grows the editor with its wrapped content
func editorHeight(value string, width int) int {
	if width < 1 {
		return 1
	}
	rows := lipgloss.Height(lipgloss.NewStyle().Width(width).Render(value))
	return min(max(rows, 1), maxEditorHeight)
}

func (m BoardModel) startEdit(card models.Card) (BoardModel, tea.Cmd) {
	m.editingID = card.ID
	m.editor = newEditor(card.Title, m.cardTextWidth())
	m.mode = boardModeEdit
	return m, m.editor.Focus()
}

func (m BoardModel) updateEdit(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s", "tab":
		return m.commitEdit(), nil
	case "esc":
		return m.cancelEdit(), nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.resizeEditor()
	return m, cmd
}

// commitEdit saves the editor value. An empty value keeps the old title.
func (m BoardModel) commitEdit() BoardModel {
	id := m.editingID
	m.editor.Blur()
	m.editingID = ""
	m.mode = boardModeNormal
	delete(m.expanded, id)

	changed, err := m.svc.EditTitle(id, m.editor.Value())
	m.refresh(id)
	if err != nil {
		m.err = err
	} else if changed {
		m.message = "Card updated"
	}
	return m
}

// cancelEdit discards the editor value and resyncs the untouched board
func (m BoardModel) cancelEdit() BoardModel {
	id := m.editingID
	m.editor.Blur()
	m.editingID = ""
	m.mode = boardModeNormal
	delete(m.expanded, id)

	if err := m.svc.Resync(); err != nil {
		m.err = err
	}
	m.refresh(id)
	return m
}

func (m *BoardModel) resizeEditor() {
	width := m.cardTextWidth()
	m.editor.SetWidth(max(1, width))
	m.editor.SetHeight(editorHeight(m.editor.Value(), width))
}
