package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Fixed column names, in display order
const (
	ColumnStart    = "Start"
	ColumnProgress = "Progress"
	ColumnDone     = "Done"
)

// ColumnNames is the fixed, never extended set of board columns
var ColumnNames = []string{ColumnStart, ColumnProgress, ColumnDone}

// Column is one lane of the board
type Column struct {
	Name  string
	Cards []Card
}

// Board maps each fixed column to its ordered cards
type Board struct {
	Columns []Column
}

// NewBoard returns a board with all three columns empty
func NewBoard() Board {
	cols := make([]Column, len(ColumnNames))
	for i, name := range ColumnNames {
		cols[i] = Column{Name: name, Cards: []Card{}}
	}
	return Board{Columns: cols}
}

// NewID returns a fresh card identifier
func NewID() string {
	return uuid.NewString()
}

// GetColumn returns a pointer to the column with the given name
func (b *Board) GetColumn(name string) *Column {
	for i := range b.Columns {
		if b.Columns[i].Name == name {
			return &b.Columns[i]
		}
	}
	return nil
}

// GetColumnIndex returns the index of the column with the given name
func (b Board) GetColumnIndex(name string) int {
	for i := range b.Columns {
		if b.Columns[i].Name == name {
			return i
		}
	}
	return -1
}

// FindCard returns the column and card index of the card with the given id
func (b Board) FindCard(id string) (colIndex, cardIndex int, ok bool) {
	for ci, col := range b.Columns {
		for i, card := range col.Cards {
			if card.ID == id {
				return ci, i, true
			}
		}
	}
	return -1, -1, false
}

// IsEmpty reports whether no column holds a card
func (b Board) IsEmpty() bool {
	for _, col := range b.Columns {
		if len(col.Cards) > 0 {
			return false
		}
	}
	return true
}

// Counts returns the number of cards per column, keyed by column name
func (b Board) Counts() map[string]int {
	counts := make(map[string]int, len(b.Columns))
	for _, col := range b.Columns {
		counts[col.Name] = len(col.Cards)
	}
	return counts
}

// Clone returns a deep copy so callers cannot mutate the original's slices
func (b Board) Clone() Board {
	out := Board{Columns: make([]Column, len(b.Columns))}
	for i, col := range b.Columns {
		cards := make([]Card, len(col.Cards))
		copy(cards, col.Cards)
		out.Columns[i] = Column{Name: col.Name, Cards: cards}
	}
	return out
}

// snapshot is the persisted and exported document shape
type snapshot struct {
	Start    []Card `json:"Start"`
	Progress []Card `json:"Progress"`
	Done     []Card `json:"Done"`
}

func (b Board) toSnapshot() snapshot {
	s := snapshot{Start: []Card{}, Progress: []Card{}, Done: []Card{}}
	for _, col := range b.Columns {
		cards := append([]Card{}, col.Cards...)
		switch col.Name {
		case ColumnStart:
			s.Start = cards
		case ColumnProgress:
			s.Progress = cards
		case ColumnDone:
			s.Done = cards
		}
	}
	return s
}

// MarshalJSON writes exactly the Start, Progress and Done keys
func (b Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.toSnapshot())
}

// MarshalIndent writes the pretty-printed export form
func (b Board) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(b.toSnapshot(), "", "  ")
}

// UnmarshalJSON accepts any subset of the column keys; missing ones become empty.
// Missing and repeated ids are replaced with fresh ones.
func (b *Board) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("board document must be a JSON object")
	}

	var s snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return err
	}

	*b = NewBoard()
	seen := make(map[string]bool)
	for i, cards := range [][]Card{s.Start, s.Progress, s.Done} {
		for _, card := range cards {
			// Ids must be unique across the board for lookups to hit the right card
			if card.ID == "" || seen[card.ID] {
				card.ID = NewID()
			}
			seen[card.ID] = true
			b.Columns[i].Cards = append(b.Columns[i].Cards, card)
		}
	}
	return nil
}
