package dnd

// Session tracks a single drag gesture. It is created when the drag starts and
// discarded when it ends; nothing about a drag outlives its session.
type Session struct {
	CardID string
	Source int

	// Hover is the column the pointer is over, -1 when outside every column
	Hover int
	// Placeholder is the insertion slot among the hovered column's other cards
	Placeholder int
}

// Start begins dragging cardID out of column source
func Start(cardID string, source int) *Session {
	return &Session{
		CardID:      cardID,
		Source:      source,
		Hover:       -1,
		Placeholder: -1,
	}
}

// Over records the pointer at row y inside column col and places the
// placeholder relative to the midpoints of every card except the dragged one.
func (s *Session) Over(col int, y float64, layout Layout) {
	if col < 0 || col >= len(layout.Columns) {
		s.Leave(s.Hover)
		return
	}
	box := layout.Columns[col]
	s.Hover = col
	s.Placeholder = s.hidden(box) + InsertionIndex(s.midpoints(box), y)
}

// Pointer routes a pointer position to Over or Leave based on column bounds,
// so moving across a card inside a column never drops its hover state. The
// pointer is taken to be at the centre of its cell.
func (s *Session) Pointer(x, y int, layout Layout) {
	if col, ok := layout.ColumnAt(x, y); ok {
		s.Over(col, float64(y)+0.5, layout)
		return
	}
	s.Leave(s.Hover)
}

// Leave clears the hover state if the pointer left the hovered column
func (s *Session) Leave(col int) {
	if col != s.Hover {
		return
	}
	s.Hover = -1
	s.Placeholder = -1
}

// At places the placeholder directly, for keyboard driven drags
func (s *Session) At(col, slot int) {
	s.Hover = col
	s.Placeholder = slot
}

// Step moves the placeholder by keyboard. counts holds the number of cards per
// column excluding the dragged card.
func (s *Session) Step(dCol, dSlot int, counts []int) {
	if len(counts) == 0 {
		return
	}
	if s.Hover < 0 {
		s.Hover = s.Source
		s.Placeholder = 0
	}

	s.Hover = clamp(s.Hover+dCol, 0, len(counts)-1)
	if dCol != 0 {
		s.Placeholder = min(s.Placeholder, counts[s.Hover])
	}
	s.Placeholder = clamp(s.Placeholder+dSlot, 0, counts[s.Hover])
}

// Hovering reports whether col currently shows the hover state
func (s *Session) Hovering(col int) bool {
	return s != nil && s.Hover == col && s.Hover >= 0
}

// Drop returns the destination column and slot, or false when the pointer is
// not over any column
func (s *Session) Drop() (col, position int, ok bool) {
	if s.Hover < 0 || s.Placeholder < 0 {
		return -1, -1, false
	}
	return s.Hover, s.Placeholder, true
}

func (s *Session) midpoints(col ColumnBox) []float64 {
	mids := make([]float64, 0, len(col.Cards))
	for _, card := range col.Cards {
		if card.ID == s.CardID {
			continue
		}
		mids = append(mids, card.Midpoint())
	}
	return mids
}

// hidden counts the scrolled-out cards above col, excluding the dragged one
func (s *Session) hidden(col ColumnBox) int {
	n := 0
	for _, id := range col.Above {
		if id != s.CardID {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
