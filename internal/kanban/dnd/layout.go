package dnd

// CardBox is the on-screen extent of a rendered card, in rows
type CardBox struct {
	ID     string
	Top    int
	Height int
}

// Midpoint is the vertical centre of the card
func (c CardBox) Midpoint() float64 {
	return float64(c.Top) + float64(c.Height)/2
}

// Contains reports whether row y falls on the card
func (c CardBox) Contains(y int) bool {
	return y >= c.Top && y < c.Top+c.Height
}

// ColumnBox is the on-screen extent of a column and the cards rendered in it.
// Left/Top are inclusive, Right/Bottom exclusive.
type ColumnBox struct {
	Left, Right int
	Top, Bottom int
	Cards       []CardBox

	// Above lists cards scrolled out of view above the first rendered card
	Above []string
}

// Contains reports whether the cell (x, y) lies inside the column bounds
func (c ColumnBox) Contains(x, y int) bool {
	return x >= c.Left && x < c.Right && y >= c.Top && y < c.Bottom
}

// Layout is a snapshot of where the board view drew each column
type Layout struct {
	Columns []ColumnBox
}

// ColumnAt returns the column under (x, y)
func (l Layout) ColumnAt(x, y int) (int, bool) {
	for i, col := range l.Columns {
		if col.Contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// CardAt returns the column index and card under (x, y)
func (l Layout) CardAt(x, y int) (int, CardBox, bool) {
	colIndex, ok := l.ColumnAt(x, y)
	if !ok {
		return -1, CardBox{}, false
	}
	for _, card := range l.Columns[colIndex].Cards {
		if card.Contains(y) {
			return colIndex, card, true
		}
	}
	return colIndex, CardBox{}, false
}

// InsertionIndex returns the slot before the first card whose midpoint lies
// below the pointer. When no midpoint does, the slot is the end of the column.
// Screen rows grow downward, so "below" means a larger value.
func InsertionIndex(midpoints []float64, y float64) int {
	for i, mid := range midpoints {
		if mid > y {
			return i
		}
	}
	return len(midpoints)
}
