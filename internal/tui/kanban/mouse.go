package kanban

import (
	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/kanban/dnd"
)

func (m BoardModel) updateMouse(msg tea.MouseMsg) (BoardModel, tea.Cmd) {
	_, layout, overflow := m.renderColumns()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mousePress(msg.X, msg.Y, layout, overflow)

	case tea.MouseActionMotion:
		if m.mode == boardModeDrag && m.mouseDrag {
			m.drag.Pointer(msg.X, msg.Y, layout)
		}

	case tea.MouseActionRelease:
		if m.mode == boardModeDrag && m.mouseDrag {
			m.drag.Pointer(msg.X, msg.Y, layout)
			return m.endDrag(true), nil
		}
	}

	return m, nil
}

func (m BoardModel) mousePress(x, y int, layout dnd.Layout, overflow map[string]bool) (BoardModel, tea.Cmd) {
	switch m.mode {
	case boardModeEdit:
		// Clicking anywhere but the editor blurs it, which commits
		if col, box, ok := layout.CardAt(x, y); ok && col >= 0 && box.ID == m.editingID {
			return m, nil
		}
		return m.commitEdit(), nil
	case boardModeNormal:
	default:
		return m, nil
	}

	col, box, ok := layout.CardAt(x, y)
	if !ok {
		if col >= 0 {
			m.focusColumn(col)
		}
		return m, nil
	}

	cards := m.getVisibleCards(col)
	index := -1
	for i, card := range cards {
		if card.ID == box.ID {
			index = i
			break
		}
	}
	if index < 0 {
		return m, nil
	}
	card := cards[index]

	m.message = ""
	m.err = nil
	m.warning = ""
	m.selectedCol = col
	m.selectedCard = index
	m.columnCursorPos[col] = index

	// The badge opens the first card row
	badgeLeft := layout.Columns[col].Left + 1 + columnPaddingHorizontal + cardBorderWidth + cardPaddingHorizontal
	badgeWidth := len(card.Priority.Label()) + 2
	if y == box.Top && x >= badgeLeft && x < badgeLeft+badgeWidth {
		m.lastClickID = ""
		return m.cyclePriority(card.ID)
	}

	if overflow[card.ID] && y == box.Top+box.Height-1 {
		m.expanded[card.ID] = !m.expanded[card.ID]
		m.lastClickID = ""
		return m, nil
	}

	now := m.now()
	if m.lastClickID == card.ID && now.Sub(m.lastClickAt) <= doubleClickWindow {
		m.lastClickID = ""
		return m.startEdit(card)
	}
	m.lastClickID = card.ID
	m.lastClickAt = now

	if m.filterActive {
		return m, nil
	}

	m.drag = dnd.Start(card.ID, col)
	m.drag.Pointer(x, y, layout)
	m.mouseDrag = true
	m.mode = boardModeDrag
	return m, nil
}
