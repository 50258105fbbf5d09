package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/kanban/service"
	"taskboard/internal/logs"
	kanbanview "taskboard/internal/tui/kanban"
	"taskboard/internal/tui/messages"
	"taskboard/internal/tui/shared"
	"taskboard/internal/tui/theme"
)

// statusBarLines is the top border plus one line of hints
const statusBarLines = 2

// AppModel is the root model that owns the board view and the help overlay
type AppModel struct {
	boardView kanbanview.BoardModel
	showHelp  bool
	width     int
	height    int
	ready     bool
}

// NewAppModel creates the root application model
func NewAppModel(svc service.BoardService, exportDir string) AppModel {
	return AppModel{
		boardView: kanbanview.NewBoardModel(svc, exportDir),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.boardView.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.boardView.SetSize(msg.Width, msg.Height-statusBarLines)
		return m, nil

	case messages.ThemeChangedMsg:
		// Styles were rebuilt by the board, the next View picks them up
		logs.Logger.Printf("Theme switched to %s", msg.Theme)
		return m, nil

	case tea.KeyMsg:
		// Global keys: ctrl+c always quits
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		// Dismiss help overlay on any key
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		if msg.String() == "?" && !m.boardView.IsModal() {
			m.showHelp = true
			return m, nil
		}

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.boardView, cmd = m.boardView.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return shared.RenderHelpPopup(kanbanview.HelpSections(), m.width, m.height)
	}

	statusText := "Kanban board | ?:help | q:quit"
	if m.boardView.IsModal() {
		statusText = "Kanban board | ctrl+c:quit"
	}
	statusBar := theme.StatusBar.Width(m.width).Render(
		theme.HelpHint.Render(statusText),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.boardView.View(), statusBar)
}
