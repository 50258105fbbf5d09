package operations

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskboard/internal/kanban/models"
)

// ErrInvalidImport wraps every reason an import document is rejected
var ErrInvalidImport = errors.New("invalid import")

// Demo cards shown on first run
var demoCards = []struct {
	title    string
	priority models.Priority
}{
	{"Try to drag me", models.PriorityMed},
	{"Double-click to edit", models.PriorityLow},
}

// SeedDemo puts the first-run cards into the first column
func SeedDemo(board *models.Board, now time.Time) {
	for _, demo := range demoCards {
		card, err := NewCard(demo.title, demo.priority, now)
		if err != nil {
			continue
		}
		AddCard(board, card)
	}
}

// ImportJSON parses an exported board. Columns missing from the document are empty,
// and cards without a creation time are stamped with now.
func ImportJSON(data []byte, now time.Time) (models.Board, error) {
	var board models.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return models.Board{}, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}
	for ci := range board.Columns {
		for i := range board.Columns[ci].Cards {
			if board.Columns[ci].Cards[i].CreatedAt.IsZero() {
				board.Columns[ci].Cards[i].CreatedAt = now
			}
		}
	}
	return board, nil
}

// ExportJSON renders the board in the pretty-printed export format
func ExportJSON(board models.Board) ([]byte, error) {
	data, err := board.MarshalIndent()
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
