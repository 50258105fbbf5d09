package kanban

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/kanban/models"
)

type formResult int

const (
	formPending formResult = iota
	formSubmitted
	formCancelled
)

// NewTaskForm collects a title and priority for a card added to Start
type NewTaskForm struct {
	title    textinput.Model
	priority models.Priority
	width    int
	height   int
}

func NewNewTaskForm() NewTaskForm {
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 500
	ti.Width = 50

	return NewTaskForm{
		title:    ti,
		priority: models.PriorityLow,
	}
}

// Open focuses the title input. The previously chosen priority is kept.
func (m *NewTaskForm) Open(width, height int) tea.Cmd {
	m.width = width
	m.height = height
	return m.title.Focus()
}

// Reset clears the title after a successful submit
func (m *NewTaskForm) Reset() {
	m.title.SetValue("")
	m.title.Blur()
}

func (m NewTaskForm) Update(msg tea.KeyMsg) (NewTaskForm, formResult, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.title.Blur()
		return m, formCancelled, nil
	case "enter":
		return m, formSubmitted, nil
	case "tab":
		m.priority = m.priority.Next()
		return m, formPending, nil
	case "shift+tab":
		m.priority = m.priority.Next().Next()
		return m, formPending, nil
	case "alt+1":
		m.priority = models.PriorityLow
		return m, formPending, nil
	case "alt+2":
		m.priority = models.PriorityMed
		return m, formPending, nil
	case "alt+3":
		m.priority = models.PriorityHigh
		return m, formPending, nil
	}

	var cmd tea.Cmd
	m.title, cmd = m.title.Update(msg)
	return m, formPending, cmd
}

func (m NewTaskForm) View(styles boardStyles) string {
	var s strings.Builder

	s.WriteString(styles.modalTitle.Render("New Task"))
	s.WriteString("\n\n")
	s.WriteString(m.title.View())
	s.WriteString("\n\n")

	var choices []string
	for _, p := range models.Priorities {
		label := p.Label()
		if p == m.priority {
			choices = append(choices, styles.badge(p))
		} else {
			choices = append(choices, styles.emptyColumn.Render(" "+label+" "))
		}
	}
	s.WriteString("Priority: " + strings.Join(choices, " "))
	s.WriteString("\n\n")

	s.WriteString(styles.help.Render("enter: add • tab/shift+tab: priority • alt+1-3: low/med/high • esc: cancel"))

	box := styles.modalBox.Width(64).Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m NewTaskForm) Title() string {
	return m.title.Value()
}

func (m NewTaskForm) Priority() models.Priority {
	return m.priority
}
