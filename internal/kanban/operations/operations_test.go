package operations

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskboard/internal/kanban/models"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func boardWith(cols ...[]models.Card) models.Board {
	b := models.NewBoard()
	for i, cards := range cols {
		b.Columns[i].Cards = cards
	}
	return b
}

func titles(col models.Column) []string {
	out := make([]string, len(col.Cards))
	for i, c := range col.Cards {
		out[i] = c.Title
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewCard(t *testing.T) {
	card, err := NewCard("  Write spec  ", models.PriorityHigh, fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.Title != "Write spec" {
		t.Errorf("expected trimmed title, got %q", card.Title)
	}
	if card.ID == "" {
		t.Error("expected an id")
	}
	if !card.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected createdAt %v, got %v", fixedNow, card.CreatedAt)
	}

	if _, err := NewCard("   ", models.PriorityLow, fixedNow); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}

	card, _ = NewCard("x", "", fixedNow)
	if card.Priority != models.PriorityLow {
		t.Errorf("expected default low, got %q", card.Priority)
	}
}

func TestSortColumn_StableByPriority(t *testing.T) {
	col := models.Column{Name: "Start", Cards: []models.Card{
		{Title: "low1", Priority: models.PriorityLow},
		{Title: "high1", Priority: models.PriorityHigh},
		{Title: "med1", Priority: models.PriorityMed},
		{Title: "low2", Priority: models.PriorityLow},
		{Title: "high2", Priority: models.PriorityHigh},
		{Title: "med2", Priority: models.PriorityMed},
	}}

	SortColumn(&col)

	expected := []string{"high1", "high2", "med1", "med2", "low1", "low2"}
	if got := titles(col); !equalStrings(got, expected) {
		t.Errorf("expected %v, got %v", expected, got)
	}
}

func TestEditTitle(t *testing.T) {
	b := boardWith([]models.Card{{ID: "a", Title: "old"}})

	tests := []struct {
		name     string
		value    string
		changed  bool
		expected string
	}{
		{"commit trims", "  new title ", true, "new title"},
		{"empty reverts", "   ", false, "new title"},
		{"same value", "new title", false, "new title"},
	}

	for _, tt := range tests {
		changed, err := EditTitle(&b, "a", tt.value)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if changed != tt.changed {
			t.Errorf("%s: expected changed=%v, got %v", tt.name, tt.changed, changed)
		}
		if got := b.Columns[0].Cards[0].Title; got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, got)
		}
	}

	if _, err := EditTitle(&b, "nope", "x"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestCyclePriority(t *testing.T) {
	b := boardWith([]models.Card{{ID: "a", Title: "x", Priority: models.PriorityLow}})

	expected := []models.Priority{models.PriorityMed, models.PriorityHigh, models.PriorityLow}
	for i, want := range expected {
		got, err := CyclePriority(&b, "a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("step %d: expected %q, got %q", i, want, got)
		}
	}
}

func TestDeleteCard(t *testing.T) {
	b := boardWith([]models.Card{{ID: "a", Title: "a"}, {ID: "b", Title: "b"}})

	if err := DeleteCard(&b, "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := titles(b.Columns[0]); !equalStrings(got, []string{"b"}) {
		t.Errorf("expected [b], got %v", got)
	}
	if err := DeleteCard(&b, "a"); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestMoveCard(t *testing.T) {
	tests := []struct {
		name     string
		toColumn string
		position int
		start    []string
		progress []string
	}{
		{"to front of other column", models.ColumnProgress, 0, []string{"a", "c"}, []string{"b", "x", "y"}},
		{"to end of other column", models.ColumnProgress, -1, []string{"a", "c"}, []string{"x", "y", "b"}},
		{"clamped past end", models.ColumnProgress, 99, []string{"a", "c"}, []string{"x", "y", "b"}},
		{"middle of other column", models.ColumnProgress, 1, []string{"a", "c"}, []string{"x", "b", "y"}},
		{"reorder within column", models.ColumnStart, 0, []string{"b", "a", "c"}, []string{"x", "y"}},
		{"within column to end", models.ColumnStart, -1, []string{"a", "c", "b"}, []string{"x", "y"}},
	}

	for _, tt := range tests {
		b := boardWith(
			[]models.Card{{ID: "a", Title: "a"}, {ID: "b", Title: "b"}, {ID: "c", Title: "c"}},
			[]models.Card{{ID: "x", Title: "x"}, {ID: "y", Title: "y"}},
		)
		if err := MoveCard(&b, "b", tt.toColumn, tt.position); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got := titles(b.Columns[0]); !equalStrings(got, tt.start) {
			t.Errorf("%s: Start expected %v, got %v", tt.name, tt.start, got)
		}
		if got := titles(b.Columns[1]); !equalStrings(got, tt.progress) {
			t.Errorf("%s: Progress expected %v, got %v", tt.name, tt.progress, got)
		}
	}
}

func TestMoveCard_Errors(t *testing.T) {
	b := boardWith([]models.Card{{ID: "a", Title: "a"}})

	if err := MoveCard(&b, "a", "Backlog", 0); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
	if err := MoveCard(&b, "zzz", models.ColumnDone, 0); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
}

func TestResolveColumn(t *testing.T) {
	if col, err := ResolveColumn("progress"); err != nil || col != models.ColumnProgress {
		t.Errorf("expected Progress, got %q (%v)", col, err)
	}
	if _, err := ResolveColumn("Backlog"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestSeedDemo(t *testing.T) {
	b := models.NewBoard()
	SeedDemo(&b, fixedNow)

	if got := titles(b.Columns[0]); !equalStrings(got, []string{"Try to drag me", "Double-click to edit"}) {
		t.Errorf("unexpected demo cards %v", got)
	}
	if len(b.Columns[1].Cards) != 0 || len(b.Columns[2].Cards) != 0 {
		t.Error("demo cards belong in the first column only")
	}
}

func TestImportJSON(t *testing.T) {
	b, err := ImportJSON([]byte(`{}`), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error for {}: %v", err)
	}
	if len(b.Columns) != 3 || !b.IsEmpty() {
		t.Error("expected three empty columns for {}")
	}

	b, err = ImportJSON([]byte(`{"Start":[{"id":"1","title":"t"}]}`), fixedNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Columns[0].Cards[0].CreatedAt.Equal(fixedNow) {
		t.Error("expected missing createdAt to be stamped with now")
	}

	for _, doc := range []string{`{`, `not json`, `[1,2]`, ``} {
		if _, err := ImportJSON([]byte(doc), fixedNow); !errors.Is(err, ErrInvalidImport) {
			t.Errorf("ImportJSON(%q): expected ErrInvalidImport, got %v", doc, err)
		}
	}
}

func TestExportJSON_RoundTrip(t *testing.T) {
	original := boardWith(
		[]models.Card{{ID: "1", Title: "one", Priority: models.PriorityHigh, CreatedAt: fixedNow}},
		nil,
		[]models.Card{{ID: "2", Title: "two", Priority: models.PriorityMed, CreatedAt: fixedNow}},
	)

	data, err := ExportJSON(original)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}

	loaded, err := ImportJSON(data, time.Now())
	if err != nil {
		t.Fatalf("import error: %v", err)
	}
	if loaded.Columns[0].Cards[0].Title != "one" || loaded.Columns[2].Cards[0].Priority != models.PriorityMed {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
	if !loaded.Columns[2].Cards[0].CreatedAt.Equal(fixedNow) {
		t.Error("createdAt should survive export and import")
	}
}

func TestUniqueFilename(t *testing.T) {
	dir := t.TempDir()

	if got := UniqueFilename(ExportBaseName, ".json", dir); got != "kanban-board.json" {
		t.Errorf("expected kanban-board.json, got %q", got)
	}

	os.WriteFile(filepath.Join(dir, "kanban-board.json"), []byte("{}"), 0644)
	if got := UniqueFilename(ExportBaseName, "json", dir); got != "kanban-board_2.json" {
		t.Errorf("expected kanban-board_2.json, got %q", got)
	}

	os.WriteFile(filepath.Join(dir, "kanban-board_2.json"), []byte("{}"), 0644)
	if got := UniqueFilename(ExportBaseName, ".json", dir); got != "kanban-board_3.json" {
		t.Errorf("expected kanban-board_3.json, got %q", got)
	}
}
