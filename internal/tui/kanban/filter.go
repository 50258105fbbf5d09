package kanban

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"taskboard/internal/kanban/models"
)

func (m BoardModel) updateFilter(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Lock filter and return to normal mode
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
			m.selectedCard = 0
			m.columnCursorPos[m.selectedCol] = 0
			m.adjustScrollPosition()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.mode = boardModeNormal
		return m, nil

	case "esc":
		m.clearFilter()
		m.mode = boardModeNormal
		return m, nil

	default:
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		// Live recompute
		m.filterQuery = m.filterInput.Value()
		if m.filterQuery != "" {
			m.filterActive = true
			m.recomputeFilter()
		} else {
			m.filterActive = false
			m.filteredIndices = nil
		}
		m.clampFilteredCursors()
		m.adjustScrollPosition()
		return m, cmd
	}
}

func (m *BoardModel) clearFilter() {
	m.filterQuery = ""
	m.filterActive = false
	m.filteredIndices = nil
	m.selectedCard = 0
	m.columnCursorPos[m.selectedCol] = 0
	m.filterInput = textinput.Model{}
	m.adjustScrollPosition()
}

// cardSearchString builds the text a card is fuzzy matched against
func cardSearchString(card models.Card) string {
	return card.Title + " " + string(card.Priority)
}

// recomputeFilter rebuilds filteredIndices for each column based on the current filterQuery
func (m *BoardModel) recomputeFilter() {
	if m.filterQuery == "" {
		m.filterActive = false
		m.filteredIndices = nil
		return
	}

	m.filteredIndices = make([][]int, len(m.board.Columns))
	for colIdx, col := range m.board.Columns {
		searchStrings := make([]string, len(col.Cards))
		for i, card := range col.Cards {
			searchStrings[i] = cardSearchString(card)
		}
		matches := fuzzy.Find(m.filterQuery, searchStrings)
		indices := make([]int, len(matches))
		for i, match := range matches {
			indices[i] = match.Index
		}
		m.filteredIndices[colIdx] = indices
	}
}

// getVisibleCards returns the cards to display for a column, respecting the active filter
func (m *BoardModel) getVisibleCards(colIndex int) []models.Card {
	if colIndex < 0 || colIndex >= len(m.board.Columns) {
		return nil
	}
	if !m.filterActive || m.filteredIndices == nil || colIndex >= len(m.filteredIndices) {
		return m.board.Columns[colIndex].Cards
	}
	indices := m.filteredIndices[colIndex]
	cards := make([]models.Card, len(indices))
	for i, idx := range indices {
		cards[i] = m.board.Columns[colIndex].Cards[idx]
	}
	return cards
}

// clampFilteredCursors ensures cursor positions are valid for the visible card sets
func (m *BoardModel) clampFilteredCursors() {
	if m.selectedCol >= len(m.board.Columns) {
		return
	}
	visibleCount := len(m.getVisibleCards(m.selectedCol))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
	}
	m.columnCursorPos[m.selectedCol] = m.selectedCard
}
