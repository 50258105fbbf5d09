package operations

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/kanban/models"
)

var (
	ErrEmptyTitle    = errors.New("task title cannot be empty")
	ErrCardNotFound  = errors.New("card not found")
	ErrUnknownColumn = errors.New("unknown column")
)

// NewCard builds a card with a fresh id. The title is trimmed and must not be empty.
func NewCard(title string, priority models.Priority, now time.Time) (models.Card, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return models.Card{}, ErrEmptyTitle
	}
	if priority == "" {
		priority = models.PriorityLow
	}
	return models.Card{
		ID:        models.NewID(),
		Title:     trimmed,
		Priority:  models.ParsePriority(string(priority)),
		CreatedAt: now,
	}, nil
}

// AddCard appends card to the first column
func AddCard(board *models.Board, card models.Card) error {
	if len(board.Columns) == 0 {
		return fmt.Errorf("board has no columns")
	}
	board.Columns[0].Cards = append(board.Columns[0].Cards, card)
	return nil
}

// DeleteCard removes the card with the given id
func DeleteCard(board *models.Board, id string) error {
	colIndex, cardIndex, ok := board.FindCard(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	column := &board.Columns[colIndex]
	column.Cards = append(column.Cards[:cardIndex], column.Cards[cardIndex+1:]...)
	return nil
}

// EditTitle commits an inline edit. The value is trimmed; an empty result keeps
// the previous title. Returns whether the title changed.
func EditTitle(board *models.Board, id, value string) (bool, error) {
	colIndex, cardIndex, ok := board.FindCard(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}

	trimmed := strings.TrimSpace(value)
	card := &board.Columns[colIndex].Cards[cardIndex]
	if trimmed == "" || trimmed == card.Title {
		return false, nil
	}
	card.Title = trimmed
	return true, nil
}

// CyclePriority advances the card's priority one step and returns the new value
func CyclePriority(board *models.Board, id string) (models.Priority, error) {
	colIndex, cardIndex, ok := board.FindCard(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}
	card := &board.Columns[colIndex].Cards[cardIndex]
	card.Priority = card.Priority.Next()
	return card.Priority, nil
}

// MoveCard relocates a card to position within the named column.
// position is clamped to the column; -1 means the end.
func MoveCard(board *models.Board, id, toColumn string, position int) error {
	toIndex := board.GetColumnIndex(toColumn)
	if toIndex < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, toColumn)
	}

	fromIndex, cardIndex, ok := board.FindCard(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, id)
	}

	fromCol := &board.Columns[fromIndex]
	card := fromCol.Cards[cardIndex]
	fromCol.Cards = append(fromCol.Cards[:cardIndex], fromCol.Cards[cardIndex+1:]...)

	toCol := &board.Columns[toIndex]
	if position < 0 || position > len(toCol.Cards) {
		position = len(toCol.Cards)
	}

	toCol.Cards = append(toCol.Cards, models.Card{})
	copy(toCol.Cards[position+1:], toCol.Cards[position:])
	toCol.Cards[position] = card

	return nil
}

// ResolveColumn matches a user-supplied column name case-insensitively
func ResolveColumn(name string) (string, error) {
	for _, col := range models.ColumnNames {
		if strings.EqualFold(col, strings.TrimSpace(name)) {
			return col, nil
		}
	}
	return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownColumn, name, strings.Join(models.ColumnNames, ", "))
}
