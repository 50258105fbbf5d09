package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Priority is the urgency of a card
type Priority string

const (
	PriorityLow  Priority = "low"
	PriorityMed  Priority = "med"
	PriorityHigh Priority = "high"
)

// Priorities lists every priority from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMed, PriorityHigh}

// ParsePriority maps a stored value to a Priority. Unknown values are low.
func ParsePriority(s string) Priority {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityMed:
		return PriorityMed
	default:
		return PriorityLow
	}
}

// Next returns the following priority in the low -> med -> high -> low cycle
func (p Priority) Next() Priority {
	switch p {
	case PriorityLow:
		return PriorityMed
	case PriorityMed:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// Rank orders priorities for sorting: high first, low last
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMed:
		return 1
	default:
		return 2
	}
}

// Label is the badge text for the priority
func (p Priority) Label() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityMed:
		return "Med"
	default:
		return "Low"
	}
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Non-string priorities fall back to low like any other unknown value
		*p = PriorityLow
		return nil
	}
	*p = ParsePriority(s)
	return nil
}

// Card is a single task on the board
type Card struct {
	ID        string
	Title     string
	Priority  Priority
	CreatedAt time.Time
}

type cardJSON struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Priority  Priority `json:"priority"`
	CreatedAt int64    `json:"createdAt"`
}

// MarshalJSON writes createdAt as Unix milliseconds
func (c Card) MarshalJSON() ([]byte, error) {
	p := c.Priority
	if p == "" {
		p = PriorityLow
	}
	var created int64
	if !c.CreatedAt.IsZero() {
		created = c.CreatedAt.UnixMilli()
	}
	return json.Marshal(cardJSON{
		ID:        c.ID,
		Title:     c.Title,
		Priority:  p,
		CreatedAt: created,
	})
}

// UnmarshalJSON is tolerant of missing fields and of non-integer timestamps
func (c *Card) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID        string          `json:"id"`
		Title     string          `json:"title"`
		Priority  Priority        `json:"priority"`
		CreatedAt json.RawMessage `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ID = aux.ID
	c.Title = aux.Title
	c.Priority = aux.Priority
	if c.Priority == "" {
		c.Priority = PriorityLow
	}
	c.CreatedAt = time.Time{}
	var ms float64
	if len(aux.CreatedAt) > 0 && json.Unmarshal(aux.CreatedAt, &ms) == nil && ms > 0 {
		c.CreatedAt = time.UnixMilli(int64(ms))
	}
	return nil
}
