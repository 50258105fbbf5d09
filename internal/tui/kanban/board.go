package kanban

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/kanban/dnd"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"
	"taskboard/internal/kanban/service"
	"taskboard/internal/logs"
	"taskboard/internal/tui/messages"
	"taskboard/internal/tui/theme"
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeForm
	boardModeEdit
	boardModeDrag
	boardModeConfirm
	boardModeImportPrompt
	boardModeImporting
	boardModeAlert
	boardModeFilter
)

const (
	doubleClickWindow = 400 * time.Millisecond
	importFailedAlert = "Failed to import JSON"
)

type BoardModel struct {
	svc       service.BoardService
	exportDir string

	// board is the last projection of the service model
	board  models.Board
	styles boardStyles

	selectedCol         int
	selectedCard        int
	columnScrollOffsets []int // scroll position (card index) for each column
	columnCursorPos     []int // cursor position (card index) for each column
	expanded            map[string]bool

	mode    boardMode
	width   int
	height  int
	err     error
	message string
	warning string

	// lastDiagnostic is the newest storage failure already shown
	lastDiagnostic error

	form         NewTaskForm
	importPrompt ImportPrompt
	confirm      *ConfirmationModal
	alert        string

	editor    textarea.Model
	editingID string

	drag        *dnd.Session
	mouseDrag   bool
	lastClickID string
	lastClickAt time.Time

	filterInput     textinput.Model
	filterQuery     string
	filterActive    bool
	filteredIndices [][]int // per-column: original card indices that match

	now            func() time.Time
	writeClipboard func(string) error
}

func NewBoardModel(svc service.BoardService, exportDir string) BoardModel {
	theme.Apply(svc.Theme())

	board := svc.Board()
	m := BoardModel{
		svc:                 svc,
		exportDir:           exportDir,
		board:               board,
		styles:              newBoardStyles(),
		columnScrollOffsets: make([]int, len(board.Columns)),
		columnCursorPos:     make([]int, len(board.Columns)),
		expanded:            make(map[string]bool),
		mode:                boardModeNormal,
		form:                NewNewTaskForm(),
		importPrompt:        NewImportPrompt(exportDir),
		now:                 time.Now,
		writeClipboard:      clipboard.WriteAll,
	}
	m.pickUpDiagnostics()
	return m
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.mode == boardModeEdit {
		m.resizeEditor()
	}
	m.adjustScrollPosition()
}

// IsModal returns true while the board owns every key (forms, editor, prompts)
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal
}

func (m BoardModel) Init() tea.Cmd {
	return nil
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ImportReadMsg:
		return m.finishImport(msg)

	case messages.ClipboardResultMsg:
		if msg.Err != nil {
			logs.Logger.Printf("Clipboard copy failed: %v", msg.Err)
			m.err = fmt.Errorf("copy failed: %w", msg.Err)
		} else {
			m.message = "Copied board JSON to clipboard"
		}
		return m, nil

	case ConfirmationResultMsg:
		return m.finishConfirm(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeForm:
			return m.updateForm(msg)
		case boardModeEdit:
			return m.updateEdit(msg)
		case boardModeDrag:
			return m.updateDrag(msg)
		case boardModeConfirm:
			return m, m.confirm.Update(msg)
		case boardModeImportPrompt:
			return m.updateImportPrompt(msg)
		case boardModeImporting:
			// Ignore input until the read completes
			return m, nil
		case boardModeAlert:
			m.alert = ""
			m.mode = boardModeNormal
			return m, nil
		case boardModeFilter:
			return m.updateFilter(msg)
		}

	default:
		if m.mode == boardModeEdit {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil
	m.warning = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.filterActive {
			m.clearFilter()
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "filter..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.filterQuery)
		ti.Focus()
		m.filterInput = ti
		m.mode = boardModeFilter
		m.selectedCard = 0
		m.columnCursorPos[m.selectedCol] = 0
		return m, textinput.Blink

	case "h", "left":
		if m.selectedCol > 0 {
			m.focusColumn(m.selectedCol - 1)
		}

	case "l", "right":
		if m.selectedCol < len(m.board.Columns)-1 {
			m.focusColumn(m.selectedCol + 1)
		}

	case "j", "down":
		maxCard := len(m.getVisibleCards(m.selectedCol)) - 1
		if m.selectedCard < maxCard {
			m.selectedCard++
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
			m.columnCursorPos[m.selectedCol] = m.selectedCard
			m.adjustScrollPosition()
		}

	case "n":
		m.mode = boardModeForm
		return m, m.form.Open(m.width, m.height)

	case "e", "enter":
		if card, ok := m.currentCard(); ok {
			return m.startEdit(card)
		}

	case "p":
		if card, ok := m.currentCard(); ok {
			return m.cyclePriority(card.ID)
		}

	case "x", "D":
		if card, ok := m.currentCard(); ok {
			m.confirm = newDeleteConfirm(card, 50)
			m.mode = boardModeConfirm
		}

	case "z":
		if card, ok := m.currentCard(); ok {
			m.expanded[card.ID] = !m.expanded[card.ID]
			m.adjustScrollPosition()
		}

	case "m", " ":
		if card, ok := m.currentCard(); ok {
			if m.filterActive {
				m.message = "Clear the filter to move cards"
				return m, nil
			}
			_, realIdx, _ := m.board.FindCard(card.ID)
			m.drag = dnd.Start(card.ID, m.selectedCol)
			m.drag.At(m.selectedCol, realIdx)
			m.mouseDrag = false
			m.mode = boardModeDrag
		}

	case "s":
		on, err := m.svc.ToggleAutoSort()
		m.refresh(m.currentCardID())
		if err != nil {
			m.err = err
		} else {
			m.message = "Auto-sort " + onOff(on)
		}

	case "t":
		name, err := m.svc.ToggleTheme()
		m.applyTheme(name)
		if err != nil {
			m.err = err
		}
		return m, messages.ThemeChanged(name)

	case "E":
		path, err := m.svc.ExportToFile(m.exportDir)
		m.refresh(m.currentCardID())
		if err != nil {
			m.err = err
		} else {
			m.message = "Exported " + path
		}

	case "M":
		path, err := m.svc.ExportMarkdownToFile(m.exportDir)
		m.refresh(m.currentCardID())
		if err != nil {
			m.err = err
		} else {
			m.message = "Exported " + path
		}

	case "y":
		data, err := m.svc.Export()
		m.refresh(m.currentCardID())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, messages.CopyToClipboard(m.writeClipboard, string(data))

	case "i":
		m.mode = boardModeImportPrompt
		return m, m.importPrompt.Open(m.width, m.height)

	case "C":
		total := 0
		for _, n := range m.board.Counts() {
			total += n
		}
		m.confirm = newClearConfirm(total, 50)
		m.mode = boardModeConfirm
	}

	return m, nil
}

func (m BoardModel) updateForm(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	form, result, cmd := m.form.Update(msg)
	m.form = form

	switch result {
	case formCancelled:
		m.mode = boardModeNormal
	case formSubmitted:
		card, err := m.svc.AddTask(m.form.Title(), m.form.Priority())
		if errors.Is(err, operations.ErrEmptyTitle) {
			// Nothing to add, leave the form as it is
			return m, nil
		}
		m.form.Reset()
		m.mode = boardModeNormal
		m.refresh(card.ID)
		if err != nil {
			m.err = err
		} else {
			m.message = "Added " + card.Title
		}
		return m, nil
	}
	return m, cmd
}

func (m BoardModel) updateDrag(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m.endDrag(false), nil
	case "enter", "m", " ":
		return m.endDrag(true), nil
	case "h", "left":
		m.drag.Step(-1, 0, m.dragCounts())
	case "l", "right":
		m.drag.Step(1, 0, m.dragCounts())
	case "j", "down":
		m.drag.Step(0, 1, m.dragCounts())
	case "k", "up":
		m.drag.Step(0, -1, m.dragCounts())
	}
	return m, nil
}

// endDrag finishes the session. Without a drop, or with the pointer outside
// every column, the board is only resynced.
func (m BoardModel) endDrag(drop bool) BoardModel {
	session := m.drag
	m.drag = nil
	m.mouseDrag = false
	m.mode = boardModeNormal
	if session == nil {
		return m
	}

	if drop {
		if col, position, ok := session.Drop(); ok {
			if err := m.svc.DropTask(session.CardID, m.board.Columns[col].Name, position); err != nil {
				m.err = err
			}
			m.refresh(session.CardID)
			return m
		}
	}

	if err := m.svc.Resync(); err != nil {
		m.err = err
	}
	m.refresh(session.CardID)
	return m
}

// dragCounts returns the cards per column without the dragged card
func (m BoardModel) dragCounts() []int {
	counts := make([]int, len(m.board.Columns))
	for i, col := range m.board.Columns {
		counts[i] = len(col.Cards)
		if m.drag != nil && i == m.drag.Source {
			counts[i]--
		}
	}
	return counts
}

func (m BoardModel) updateImportPrompt(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	prompt, result, cmd := m.importPrompt.Update(msg)
	m.importPrompt = prompt

	switch result {
	case formCancelled:
		m.importPrompt.Reset()
		m.mode = boardModeNormal
		return m, nil
	case formSubmitted:
		path := m.importPrompt.Path()
		m.mode = boardModeImporting
		m.message = "Importing " + path + "..."
		return m, messages.ReadImport(path)
	}
	return m, cmd
}

func (m BoardModel) finishImport(msg messages.ImportReadMsg) (BoardModel, tea.Cmd) {
	m.importPrompt.Reset()
	m.message = ""

	err := msg.Err
	if err == nil {
		err = m.svc.Import(msg.Path, msg.Data)
	}
	if err != nil {
		logs.Logger.Printf("Import %s: %v", msg.Path, err)
		m.alert = importFailedAlert
		m.mode = boardModeAlert
		return m, nil
	}

	m.mode = boardModeNormal
	m.expanded = make(map[string]bool)
	m.selectedCol, m.selectedCard = 0, 0
	m.refresh("")
	m.message = "Imported " + filepath.Base(msg.Path)
	return m, nil
}

func (m BoardModel) finishConfirm(msg ConfirmationResultMsg) (BoardModel, tea.Cmd) {
	m.mode = boardModeNormal
	m.confirm = nil
	if !msg.Confirmed {
		return m, nil
	}

	switch msg.Action {
	case confirmDelete:
		if err := m.svc.DeleteTask(msg.CardID); err != nil {
			m.err = err
		} else {
			m.message = "Card deleted"
		}
		delete(m.expanded, msg.CardID)
		m.refresh("")

	case confirmClear:
		if err := m.svc.Clear(); err != nil {
			m.err = err
		} else {
			m.message = "Board cleared"
		}
		m.expanded = make(map[string]bool)
		m.refresh("")
	}
	return m, nil
}

func (m BoardModel) cyclePriority(id string) (BoardModel, tea.Cmd) {
	p, err := m.svc.CyclePriority(id)
	m.refresh(id)
	if err != nil {
		m.err = err
	} else {
		m.message = "Priority " + p.Label()
	}
	return m, nil
}

func (m *BoardModel) applyTheme(name string) {
	theme.Apply(name)
	m.styles = newBoardStyles()
}

// refresh re-projects the service model and keeps the cursor on focusID
// when it is still visible
func (m *BoardModel) refresh(focusID string) {
	m.board = m.svc.Board()
	m.reloadBoardState()
	m.pickUpDiagnostics()

	if focusID == "" {
		return
	}
	for col := range m.board.Columns {
		for i, card := range m.getVisibleCards(col) {
			if card.ID == focusID {
				m.selectedCol = col
				m.selectedCard = i
				m.columnCursorPos[col] = i
				m.adjustScrollPosition()
				return
			}
		}
	}
}

// pickUpDiagnostics surfaces the newest storage failure the service recovered from
func (m *BoardModel) pickUpDiagnostics() {
	errs := m.svc.Errors()
	if len(errs) == 0 {
		return
	}
	last := errs[len(errs)-1]
	if last == m.lastDiagnostic {
		return
	}
	m.lastDiagnostic = last
	m.warning = "Storage problem: " + last.Error()
}

func (m *BoardModel) focusColumn(col int) {
	m.selectedCol = col
	m.selectedCard = m.columnCursorPos[col]
	visibleCount := len(m.getVisibleCards(col))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
		m.columnCursorPos[col] = m.selectedCard
	}
	m.adjustScrollPosition()
}

func (m BoardModel) currentCard() (models.Card, bool) {
	if m.selectedCol >= len(m.board.Columns) {
		return models.Card{}, false
	}
	cards := m.getVisibleCards(m.selectedCol)
	if m.selectedCard < 0 || m.selectedCard >= len(cards) {
		return models.Card{}, false
	}
	return cards[m.selectedCard], true
}

func (m BoardModel) currentCardID() string {
	card, _ := m.currentCard()
	return card.ID
}

// reloadBoardState syncs arrays and validates cursors after a board reload
func (m *BoardModel) reloadBoardState() {
	if len(m.columnScrollOffsets) != len(m.board.Columns) {
		newOffsets := make([]int, len(m.board.Columns))
		copy(newOffsets, m.columnScrollOffsets)
		m.columnScrollOffsets = newOffsets
	}

	if len(m.columnCursorPos) != len(m.board.Columns) {
		newCursorPos := make([]int, len(m.board.Columns))
		copy(newCursorPos, m.columnCursorPos)
		m.columnCursorPos = newCursorPos
	}

	if m.filterActive {
		m.recomputeFilter()
	}
	m.clampFilteredCursors()
	m.adjustScrollPosition()
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
