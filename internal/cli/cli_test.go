package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/service"
	"taskboard/internal/kanban/store"
)

func setupCLI(t *testing.T) (service.BoardService, string) {
	dir := t.TempDir()
	st, err := store.Open(store.BackendFile, dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := service.NewBoardService(st)
	svc.Bootstrap(false)
	return svc, dir
}

func run(svc service.BoardService, dir string, args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := RunWithOutput(args, svc, dir, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	svc, dir := setupCLI(t)

	if code, _, _ := run(svc, dir); code != 1 {
		t.Errorf("expected exit 1 without args, got %d", code)
	}
	if code, out, _ := run(svc, dir, "help"); code != 0 || !strings.Contains(out, "taskboard board help") {
		t.Errorf("unexpected help output (%d): %s", code, out)
	}
	if code, _, errOut := run(svc, dir, "bogus"); code != 1 || !strings.Contains(errOut, "Unknown command") {
		t.Errorf("expected unknown command error, got %d %q", code, errOut)
	}
}

func TestAdd_FlagAfterTitle(t *testing.T) {
	svc, dir := setupCLI(t)

	code, out, errOut := run(svc, dir, "board", "add", "Draft", "roadmap", "-p", "high")
	if code != 0 {
		t.Fatalf("add failed (%d): %s", code, errOut)
	}
	if !strings.Contains(out, "Added: [High] Draft roadmap") {
		t.Errorf("unexpected output %q", out)
	}

	b := svc.Board()
	start := b.GetColumn(models.ColumnStart).Cards
	if len(start) != 1 || start[0].Title != "Draft roadmap" || start[0].Priority != models.PriorityHigh {
		t.Errorf("unexpected Start column %+v", start)
	}
}

func TestAdd_EmptyTitle(t *testing.T) {
	svc, dir := setupCLI(t)

	if code, _, _ := run(svc, dir, "board", "add"); code != 1 {
		t.Errorf("expected exit 1, got %d", code)
	}
	if code, _, _ := run(svc, dir, "board", "add", "   "); code != 1 {
		t.Errorf("expected exit 1 for blank title, got %d", code)
	}
	if !svc.Board().IsEmpty() {
		t.Error("board should be unchanged")
	}
}

func TestList(t *testing.T) {
	svc, dir := setupCLI(t)
	svc.AddTask("first", models.PriorityLow)
	svc.AddTask("second", models.PriorityMed)

	code, out, _ := run(svc, dir, "board", "list")
	if code != 0 {
		t.Fatalf("list failed: %d", code)
	}
	for _, want := range []string{"Start (2)", "Progress (0)", "Done (0)", "first", "[Med]", "2 card(s)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	code, out, _ = run(svc, dir, "board", "list", "-c", "done")
	if code != 0 || strings.Contains(out, "Start") || !strings.Contains(out, "Done (0)") {
		t.Errorf("expected only Done column, got:\n%s", out)
	}
}

func TestDelete_RequiresYes(t *testing.T) {
	svc, dir := setupCLI(t)
	card, _ := svc.AddTask("doomed", models.PriorityLow)

	if code, _, errOut := run(svc, dir, "board", "delete", card.ID); code != 1 || !strings.Contains(errOut, "--yes") {
		t.Errorf("expected refusal without --yes, got %d %q", code, errOut)
	}
	if svc.Board().IsEmpty() {
		t.Fatal("card should still exist")
	}

	if code, _, errOut := run(svc, dir, "board", "delete", card.ID[:6], "--yes"); code != 0 {
		t.Fatalf("delete failed (%d): %s", code, errOut)
	}
	if !svc.Board().IsEmpty() {
		t.Error("card should be deleted")
	}
}

func TestEditCycleMove(t *testing.T) {
	svc, dir := setupCLI(t)
	card, _ := svc.AddTask("draft", models.PriorityLow)

	if code, out, _ := run(svc, dir, "board", "edit", card.ID, "final", "title"); code != 0 || !strings.Contains(out, "Renamed: final title") {
		t.Errorf("edit failed (%d): %s", code, out)
	}
	if code, out, _ := run(svc, dir, "board", "cycle", card.ID); code != 0 || !strings.Contains(out, "Low -> Med") {
		t.Errorf("cycle failed (%d): %s", code, out)
	}
	if code, _, errOut := run(svc, dir, "board", "move", card.ID, "DONE"); code != 0 {
		t.Fatalf("move failed (%d): %s", code, errOut)
	}

	b := svc.Board()
	done := b.GetColumn(models.ColumnDone).Cards
	if len(done) != 1 || done[0].Title != "final title" || done[0].Priority != models.PriorityMed {
		t.Errorf("unexpected Done column %+v", done)
	}

	if code, _, _ := run(svc, dir, "board", "move", card.ID, "backlog"); code != 1 {
		t.Error("expected unknown column to fail")
	}
	if code, _, _ := run(svc, dir, "board", "move", card.ID, "start", "-3"); code != 1 {
		t.Error("expected negative position to fail")
	}
	if code, _, _ := run(svc, dir, "board", "cycle", "zzzz"); code != 1 {
		t.Error("expected unknown id to fail")
	}
}

func TestExportImport(t *testing.T) {
	svc, dir := setupCLI(t)
	svc.AddTask("exported", models.PriorityHigh)

	code, out, _ := run(svc, dir, "board", "export")
	if code != 0 || !strings.Contains(out, "kanban-board.json") {
		t.Fatalf("export failed (%d): %s", code, out)
	}

	mdPath := filepath.Join(dir, "custom.md")
	if code, _, errOut := run(svc, dir, "board", "export", mdPath, "--md"); code != 0 {
		t.Fatalf("markdown export failed (%d): %s", code, errOut)
	}
	data, _ := os.ReadFile(mdPath)
	if !strings.Contains(string(data), "- [high] exported") {
		t.Errorf("unexpected markdown export:\n%s", data)
	}

	other, otherDir := setupCLI(t)
	code, out, errOut := run(other, otherDir, "board", "import", filepath.Join(dir, "kanban-board.json"))
	if code != 0 || !strings.Contains(out, "Imported: 1 start") {
		t.Fatalf("import failed (%d): %s %s", code, out, errOut)
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{nope"), 0644)
	code, _, errOut = run(other, otherDir, "board", "import", bad)
	if code != 1 || !strings.Contains(errOut, "Failed to import JSON") {
		t.Errorf("expected import failure alert, got %d %q", code, errOut)
	}
	if other.Board().IsEmpty() {
		t.Error("failed import must leave the board intact")
	}
}

func TestClear_RequiresYes(t *testing.T) {
	svc, dir := setupCLI(t)
	svc.AddTask("x", models.PriorityLow)

	if code, _, _ := run(svc, dir, "board", "clear"); code != 1 {
		t.Error("expected refusal without --yes")
	}
	if code, _, _ := run(svc, dir, "board", "clear", "--yes"); code != 0 {
		t.Error("expected clear to succeed")
	}
	if !svc.Board().IsEmpty() {
		t.Error("expected empty board")
	}
}

func TestPreferences(t *testing.T) {
	svc, dir := setupCLI(t)

	if _, out, _ := run(svc, dir, "board", "theme"); strings.TrimSpace(out) != "dark" {
		t.Errorf("expected dark, got %q", out)
	}
	if code, _, _ := run(svc, dir, "board", "theme", "Light"); code != 0 || svc.Theme() != "light" {
		t.Errorf("expected light theme, got %q", svc.Theme())
	}
	if code, _, _ := run(svc, dir, "board", "theme", "sepia"); code != 1 {
		t.Error("expected unknown theme to fail")
	}

	if code, _, _ := run(svc, dir, "board", "autosort", "on"); code != 0 || !svc.AutoSort() {
		t.Error("expected autosort on")
	}
	if _, out, _ := run(svc, dir, "board", "autosort"); strings.TrimSpace(out) != "on" {
		t.Errorf("expected on, got %q", out)
	}
	if code, _, _ := run(svc, dir, "board", "autosort", "maybe"); code != 1 {
		t.Error("expected invalid autosort value to fail")
	}
}
