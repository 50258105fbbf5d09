package operations

import (
	"sort"

	"taskboard/internal/kanban/models"
)

// SortColumn orders a column high, med, low. Cards of equal priority keep their order.
func SortColumn(column *models.Column) {
	sort.SliceStable(column.Cards, func(i, j int) bool {
		return column.Cards[i].Priority.Rank() < column.Cards[j].Priority.Rank()
	})
}

// SortAll sorts every column of the board
func SortAll(board *models.Board) {
	for i := range board.Columns {
		SortColumn(&board.Columns[i])
	}
}
