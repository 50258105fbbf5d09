package kanban

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/kanban/dnd"
	"taskboard/internal/kanban/models"
)

const (
	boardHeaderLines = 2
	boardFooterLines = 2

	// header, blank, first gap row, bottom scroll marker
	columnOverheadLines = 4
)

func (m BoardModel) View() string {
	switch m.mode {
	case boardModeForm:
		return m.form.View(m.styles)
	case boardModeImportPrompt:
		return m.importPrompt.View(m.styles)
	case boardModeAlert:
		return renderAlert(m.alert, m.width, m.height)
	case boardModeConfirm:
		if m.confirm != nil {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View())
		}
	}

	var s strings.Builder

	s.WriteString(m.renderHeader())
	s.WriteString("\n")

	// Filter bar or mode indicator
	switch {
	case m.mode == boardModeFilter:
		s.WriteString("  / " + m.filterInput.View())
	case m.mode == boardModeDrag:
		s.WriteString("  " + m.styles.modeIndicator.Render("MOVE"))
	case m.mode == boardModeEdit:
		s.WriteString("  " + m.styles.modeIndicator.Render("EDIT"))
	case m.filterActive:
		s.WriteString("  " + m.styles.filterBadge.Render("Filter: "+m.filterQuery))
	}
	s.WriteString("\n")

	columns, _, _ := m.renderColumns()
	s.WriteString(columns)
	s.WriteString("\n")

	// Status message or error
	if m.err != nil {
		s.WriteString(m.styles.errorText.Render(fmt.Sprintf("Error: %v", m.err)))
	} else if m.message != "" {
		s.WriteString(m.styles.successText.Render(m.message))
	} else if m.warning != "" {
		s.WriteString(m.styles.warningText.Render(m.warning))
	}
	s.WriteString("\n")

	s.WriteString(m.styles.help.Render(m.helpLine()))

	return s.String()
}

func (m BoardModel) renderHeader() string {
	var counts []string
	for _, col := range m.board.Columns {
		counts = append(counts, fmt.Sprintf("%s %d", col.Name, len(col.Cards)))
	}
	status := fmt.Sprintf("auto-sort: %s • theme: %s", onOff(m.svc.AutoSort()), m.svc.Theme())
	return m.styles.title.Render("Kanban") + " " +
		m.styles.columnCount.Render(strings.Join(counts, " · ")+"   "+status)
}

func (m BoardModel) helpLine() string {
	switch m.mode {
	case boardModeDrag:
		if m.mouseDrag {
			return "release to drop • esc: cancel"
		}
		return "h/l: column • j/k: position • enter: drop • esc: cancel"
	case boardModeEdit:
		return "ctrl+s/tab: save • esc: cancel • click outside: save"
	case boardModeFilter:
		return "type to filter • enter: lock filter • esc: cancel"
	case boardModeImporting:
		return "importing..."
	}
	if m.filterActive {
		return "hjkl: navigate • enter: edit • p: priority • /: edit filter • esc: clear filter • q: quit"
	}
	return "hjkl: navigate • n: new • e: edit • p: priority • m: move • x: delete • z: more • s: sort • t: theme • E/M: export • y: copy • i: import • C: clear • /: filter • ?: help • q: quit"
}

// renderColumns draws the columns side by side and returns where each column
// and card landed, plus the ids of cards whose titles were clamped
func (m BoardModel) renderColumns() (string, dnd.Layout, map[string]bool) {
	var views []string
	var layout dnd.Layout
	overflow := make(map[string]bool)

	left := boardMarginLeft
	for i := range m.board.Columns {
		view, box := m.renderColumn(i, left, boardHeaderLines, overflow)
		views = append(views, view)
		layout.Columns = append(layout.Columns, box)
		left += lipgloss.Width(view)
	}

	joined := lipgloss.JoinHorizontal(lipgloss.Top, views...)
	return lipgloss.NewStyle().PaddingLeft(boardMarginLeft).Render(joined), layout, overflow
}

func (m BoardModel) renderColumn(index, left, top int, overflow map[string]bool) (string, dnd.ColumnBox) {
	col := m.board.Columns[index]
	cards := m.getVisibleCards(index)
	available := m.columnInnerHeight() - columnOverheadLines

	titleStyle := m.styles.columnTitle
	if index == m.selectedCol {
		titleStyle = m.styles.selectedColumnTitle
	}
	header := titleStyle.Render(col.Name) + " " + m.styles.columnCount.Render(fmt.Sprintf("(%d)", len(col.Cards)))
	lines := []string{header, ""}

	scrollOffset := 0
	if index < len(m.columnScrollOffsets) {
		scrollOffset = min(m.columnScrollOffsets[index], len(cards))
	}

	box := dnd.ColumnBox{Left: left, Top: top}
	for _, card := range cards[:scrollOffset] {
		box.Above = append(box.Above, card.ID)
	}

	hovering := m.drag.Hovering(index)
	dragID := ""
	if m.drag != nil {
		dragID = m.drag.CardID
	}
	slot := 0
	for _, id := range box.Above {
		if id != dragID {
			slot++
		}
	}
	placeholderDrawn := false
	placeholder := m.styles.placeholder.Render(strings.Repeat("─", m.cardWidth()+cardBorderWidth))
	markGap := func() {
		if hovering && !placeholderDrawn && m.drag.Placeholder == slot {
			lines[len(lines)-1] = placeholder
			placeholderDrawn = true
		}
	}

	// First gap row doubles as the scroll marker
	if scrollOffset > 0 {
		lines = append(lines, m.styles.scrollMarker.Render(fmt.Sprintf("▲ +%d above", scrollOffset)))
	} else {
		lines = append(lines, "")
	}

	// Content starts one row below the top border
	contentTop := top + 1
	used := 0
	rendered := 0
	for i := scrollOffset; i < len(cards); i++ {
		card := cards[i]
		view, clamped := m.renderCard(index, i, card)
		height := lipgloss.Height(view)
		if rendered > 0 && used+height+1 > available {
			break
		}

		markGap()
		if card.ID != dragID {
			slot++
		}

		box.Cards = append(box.Cards, dnd.CardBox{ID: card.ID, Top: contentTop + len(lines), Height: height})
		lines = append(lines, strings.Split(view, "\n")...)
		lines = append(lines, "")
		if clamped {
			overflow[card.ID] = true
		}
		used += height + 1
		rendered++
	}
	markGap()

	if len(cards) == 0 {
		lines = append(lines, m.styles.emptyColumn.Render("(empty)"))
	}
	if below := len(cards) - scrollOffset - rendered; below > 0 {
		lines = append(lines, m.styles.scrollMarker.Render(fmt.Sprintf("▼ +%d below", below)))
	}

	style := m.styles.column
	switch {
	case hovering:
		style = m.styles.hoverColumn
	case index == m.selectedCol:
		style = m.styles.selectedColumn
	}

	view := style.Width(m.columnWidth()).Height(m.columnInnerHeight()).Render(strings.Join(lines, "\n"))
	box.Right = left + lipgloss.Width(view)
	box.Bottom = top + lipgloss.Height(view)
	return view, box
}

// renderCard draws one card. The second result reports whether the wrapped
// title runs past maxCardLines.
func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card) (string, bool) {
	if m.mode == boardModeEdit && card.ID == m.editingID {
		return m.styles.editorBorder.Width(m.cardWidth()).Render(m.editor.View()), false
	}

	lines, clamped := wrapCardTitle(card, m.cardTextWidth())
	if clamped && !m.expanded[card.ID] {
		lines = lines[:maxCardLines]
	}

	prefix := "[" + card.Priority.Label() + "]"
	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, prefix) {
			lines[i] = m.styles.badge(card.Priority) + m.styles.cardTitle.Render(line[len(prefix):])
			continue
		}
		lines[i] = m.styles.cardTitle.Render(line)
	}

	if clamped {
		more := "▾ show more"
		if m.expanded[card.ID] {
			more = "▴ show less"
		}
		lines = append(lines, m.styles.cardMore.Render(more))
	}

	style := m.styles.card
	switch {
	case m.drag != nil && card.ID == m.drag.CardID:
		style = m.styles.draggedCard
	case colIndex == m.selectedCol && cardIndex == m.selectedCard:
		style = m.styles.selectedCard
	}

	return style.Width(m.cardWidth()).Render(strings.Join(lines, "\n")), clamped
}

// wrapCardTitle wraps the badge and title to width and reports whether the
// result is taller than maxCardLines
func wrapCardTitle(card models.Card, width int) ([]string, bool) {
	text := "[" + card.Priority.Label() + "] " + card.Title
	wrapped := lipgloss.NewStyle().Width(max(width, 1)).Render(text)

	lines := strings.Split(wrapped, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines, len(lines) > maxCardLines
}

func (m BoardModel) columnWidth() int {
	if m.width <= 0 || len(m.board.Columns) == 0 {
		return minColumnWidth
	}
	// Each column adds two border cells
	w := (m.width-2*boardMarginLeft)/len(m.board.Columns) - 2
	return min(max(w, minColumnWidth), maxColumnWidth)
}

func (m BoardModel) columnInnerHeight() int {
	h := m.height - boardHeaderLines - boardFooterLines - 2
	return max(h, 10)
}

// cardWidth is the card style width, padding included and left border excluded
func (m BoardModel) cardWidth() int {
	return m.columnWidth() - 2*columnPaddingHorizontal - cardBorderWidth
}

func (m BoardModel) cardTextWidth() int {
	return m.cardWidth() - 2*cardPaddingHorizontal
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	if m.selectedCol >= len(m.board.Columns) || m.selectedCol >= len(m.columnScrollOffsets) {
		return
	}

	cards := m.getVisibleCards(m.selectedCol)
	if len(cards) == 0 {
		m.columnScrollOffsets[m.selectedCol] = 0
		return
	}

	available := m.columnInnerHeight() - columnOverheadLines
	scrollOffset := m.columnScrollOffsets[m.selectedCol]

	if m.selectedCard < scrollOffset {
		m.columnScrollOffsets[m.selectedCol] = m.selectedCard
	} else {
		// Walk back from the selected card to find the lowest offset that keeps it on screen
		used := 0
		first := m.selectedCard
		for i := m.selectedCard; i >= scrollOffset; i-- {
			view, _ := m.renderCard(m.selectedCol, i, cards[i])
			height := lipgloss.Height(view) + 1
			if i != m.selectedCard && used+height > available {
				break
			}
			used += height
			first = i
		}
		if first > scrollOffset {
			m.columnScrollOffsets[m.selectedCol] = first
		}
	}

	maxOffset := max(len(cards)-1, 0)
	m.columnScrollOffsets[m.selectedCol] = min(max(m.columnScrollOffsets[m.selectedCol], 0), maxOffset)
}
