package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskboard/internal/kanban/models"
)

var now = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func TestRenderMarkdown_Layout(t *testing.T) {
	board := models.NewBoard()
	board.Columns[0].Cards = []models.Card{
		{ID: "1", Title: "Draft roadmap", Priority: models.PriorityHigh},
	}

	data, err := RenderMarkdown(board, Frontmatter{Theme: "dark", Exported: "2026-05-04T12:00:00Z"})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	out := string(data)
	for _, want := range []string{"---\nversion: 2\n", "# Kanban", "## Start", "- [high] Draft roadmap", "## Progress", "## Done"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestMarkdown_RoundTrip(t *testing.T) {
	board := models.NewBoard()
	board.Columns[0].Cards = []models.Card{
		{ID: "1", Title: "Plain", Priority: models.PriorityLow},
		{ID: "2", Title: "Two\nlines", Priority: models.PriorityMed},
	}
	board.Columns[2].Cards = []models.Card{
		{ID: "3", Title: "Shipped *it*", Priority: models.PriorityHigh},
	}

	path := filepath.Join(t.TempDir(), "board.md")
	if err := WriteMarkdown(path, board, Frontmatter{AutoSort: true}); err != nil {
		t.Fatalf("write error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	loaded, meta, err := ParseMarkdown(data, now)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}
	if meta.Version != MarkdownVersion || !meta.AutoSort {
		t.Errorf("unexpected frontmatter %+v", meta)
	}

	start := loaded.GetColumn(models.ColumnStart).Cards
	if len(start) != 2 {
		t.Fatalf("expected 2 Start cards, got %d", len(start))
	}
	if start[1].Title != "Two\nlines" || start[1].Priority != models.PriorityMed {
		t.Errorf("multi-line card mismatch: %+v", start[1])
	}

	done := loaded.GetColumn(models.ColumnDone).Cards
	if len(done) != 1 || done[0].Title != "Shipped *it*" || done[0].Priority != models.PriorityHigh {
		t.Errorf("Done card mismatch: %+v", done)
	}
	if done[0].ID == "3" || done[0].ID == "" {
		t.Error("expected imported cards to receive fresh ids")
	}
	if !done[0].CreatedAt.Equal(now) {
		t.Error("expected imported cards to be stamped with now")
	}
}

func TestParseMarkdown_IgnoresUnknownSections(t *testing.T) {
	doc := `# Anything

Intro paragraph.

- stray item

## Backlog

- not imported

## progress

- [med] In flight
- no priority tag
- [urgent] literal brackets
`
	board, _, err := ParseMarkdown([]byte(doc), now)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if len(board.GetColumn(models.ColumnStart).Cards) != 0 {
		t.Error("items before a known column should be ignored")
	}

	progress := board.GetColumn(models.ColumnProgress).Cards
	if len(progress) != 3 {
		t.Fatalf("expected 3 Progress cards, got %d", len(progress))
	}
	if progress[0].Priority != models.PriorityMed || progress[0].Title != "In flight" {
		t.Errorf("unexpected first card %+v", progress[0])
	}
	if progress[1].Priority != models.PriorityLow {
		t.Errorf("expected default low, got %q", progress[1].Priority)
	}
	if progress[2].Title != "[urgent] literal brackets" {
		t.Errorf("unknown tag should stay in the title, got %q", progress[2].Title)
	}
}

func TestParseMarkdown_RejectsOtherVersions(t *testing.T) {
	doc := "---\nversion: 7\n---\n\n## Start\n\n- x\n"
	if _, _, err := ParseMarkdown([]byte(doc), now); err == nil {
		t.Error("expected error for unsupported version")
	}
}

func TestParseMarkdown_InvalidFrontmatter(t *testing.T) {
	doc := "---\nversion: [unclosed\n---\n\n## Start\n"
	if _, _, err := ParseMarkdown([]byte(doc), now); err == nil {
		t.Error("expected error for invalid frontmatter")
	}
}
