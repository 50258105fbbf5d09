package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskboard/internal/kanban/fs"
	"taskboard/internal/kanban/models"
	"taskboard/internal/kanban/operations"
	"taskboard/internal/kanban/store"
	"taskboard/internal/logs"
)

// maxDiagnostics bounds how many recovered storage failures are kept
const maxDiagnostics = 20

// BoardService owns the board model. Every mutation ends in Resync, so the
// persisted snapshot always matches what the view projects.
type BoardService interface {
	Bootstrap(seedDemo bool)
	Board() models.Board
	Counts() map[string]int

	AddTask(title string, priority models.Priority) (models.Card, error)
	DeleteTask(id string) error
	EditTitle(id, value string) (bool, error)
	CyclePriority(id string) (models.Priority, error)
	MoveTask(id, column string, position int) error
	DropTask(id, column string, position int) error
	Sort() error

	Export() ([]byte, error)
	ExportToFile(dir string) (string, error)
	ExportMarkdown() ([]byte, error)
	ExportMarkdownToFile(dir string) (string, error)
	Import(name string, data []byte) error
	ImportFile(path string) error
	Clear() error

	Resync() error

	Theme() string
	SetTheme(theme string) error
	ToggleTheme() (string, error)
	AutoSort() bool
	SetAutoSort(on bool) error
	ToggleAutoSort() (bool, error)

	Errors() []error
}

type boardServiceImpl struct {
	board       models.Board
	store       *store.Store
	now         func() time.Time
	theme       string
	autoSort    bool
	diagnostics []error
}

// Option configures a BoardService
type Option func(*boardServiceImpl)

// WithClock overrides the time source used for new cards and imports
func WithClock(now func() time.Time) Option {
	return func(s *boardServiceImpl) {
		s.now = now
	}
}

// NewBoardService creates a BoardService persisting through st. Call Bootstrap
// before use.
func NewBoardService(st *store.Store, opts ...Option) BoardService {
	svc := &boardServiceImpl{
		board: models.NewBoard(),
		store: st,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	st.SetReporter(svc.report)
	svc.theme = st.Theme()
	svc.autoSort = st.AutoSort()
	return svc
}

func (s *boardServiceImpl) report(op string, err error) {
	logs.Logger.Printf("storage %s: %v", op, err)
	s.diagnostics = append(s.diagnostics, fmt.Errorf("%s: %w", op, err))
	if len(s.diagnostics) > maxDiagnostics {
		s.diagnostics = s.diagnostics[len(s.diagnostics)-maxDiagnostics:]
	}
}

// Bootstrap loads the persisted board. An entirely empty board gets the demo
// cards when seedDemo is set. Nothing is written until the first mutation.
func (s *boardServiceImpl) Bootstrap(seedDemo bool) {
	s.board = s.store.Load()
	if seedDemo && s.board.IsEmpty() {
		operations.SeedDemo(&s.board, s.now())
		logs.Logger.Println("Seeded demo cards")
	}
	if s.autoSort {
		operations.SortAll(&s.board)
	}
}

func (s *boardServiceImpl) Board() models.Board {
	return s.board.Clone()
}

func (s *boardServiceImpl) Counts() map[string]int {
	return s.board.Counts()
}

func (s *boardServiceImpl) AddTask(title string, priority models.Priority) (models.Card, error) {
	card, err := operations.NewCard(title, priority, s.now())
	if err != nil {
		return models.Card{}, err
	}
	if err := operations.AddCard(&s.board, card); err != nil {
		return models.Card{}, err
	}
	if s.autoSort {
		operations.SortColumn(&s.board.Columns[0])
	}
	logs.Logger.Printf("Service: Add Task: %s", card.ID)
	return card, s.Resync()
}

func (s *boardServiceImpl) DeleteTask(id string) error {
	if err := operations.DeleteCard(&s.board, id); err != nil {
		return err
	}
	logs.Logger.Printf("Service: Delete Task: %s", id)
	return s.Resync()
}

// EditTitle commits an inline edit; an empty value keeps the old title.
// The board is resynced either way, matching the view's commit and cancel paths.
func (s *boardServiceImpl) EditTitle(id, value string) (bool, error) {
	changed, err := operations.EditTitle(&s.board, id, value)
	if err != nil {
		return false, err
	}
	return changed, s.Resync()
}

func (s *boardServiceImpl) CyclePriority(id string) (models.Priority, error) {
	p, err := operations.CyclePriority(&s.board, id)
	if err != nil {
		return "", err
	}
	if s.autoSort {
		colIndex, _, _ := s.board.FindCard(id)
		operations.SortColumn(&s.board.Columns[colIndex])
	}
	return p, s.Resync()
}

// MoveTask relocates a card without the drop-time auto-sort
func (s *boardServiceImpl) MoveTask(id, column string, position int) error {
	if err := operations.MoveCard(&s.board, id, column, position); err != nil {
		return err
	}
	return s.Resync()
}

// DropTask relocates a card at the end of a drag. With auto-sort on, the
// destination column is re-sorted, superseding the drop position.
func (s *boardServiceImpl) DropTask(id, column string, position int) error {
	if err := operations.MoveCard(&s.board, id, column, position); err != nil {
		return err
	}
	if s.autoSort {
		operations.SortColumn(s.board.GetColumn(column))
	}
	return s.Resync()
}

// Sort orders every column by priority regardless of the auto-sort preference
func (s *boardServiceImpl) Sort() error {
	operations.SortAll(&s.board)
	return s.Resync()
}

// Export forces a full sort and returns the pretty-printed board
func (s *boardServiceImpl) Export() ([]byte, error) {
	if err := s.Sort(); err != nil {
		// The export is still valid even if the snapshot write failed
		logs.Logger.Printf("Export: %v", err)
	}
	return operations.ExportJSON(s.board)
}

func (s *boardServiceImpl) ExportToFile(dir string) (string, error) {
	data, err := s.Export()
	if err != nil {
		return "", err
	}
	return writeExport(dir, ".json", data)
}

func (s *boardServiceImpl) ExportMarkdown() ([]byte, error) {
	if err := s.Sort(); err != nil {
		logs.Logger.Printf("Export: %v", err)
	}
	return fs.RenderMarkdown(s.board, s.frontmatter())
}

func (s *boardServiceImpl) ExportMarkdownToFile(dir string) (string, error) {
	if err := s.Sort(); err != nil {
		logs.Logger.Printf("Export: %v", err)
	}
	path, err := exportPath(dir, ".md")
	if err != nil {
		return "", err
	}
	if err := fs.WriteMarkdown(path, s.board, s.frontmatter()); err != nil {
		return "", err
	}
	logs.Logger.Printf("Exported board to %s", path)
	return path, nil
}

func (s *boardServiceImpl) frontmatter() fs.Frontmatter {
	return fs.Frontmatter{
		Exported: s.now().Format(time.RFC3339),
		Theme:    s.theme,
		AutoSort: s.autoSort,
	}
}

func writeExport(dir, ext string, data []byte) (string, error) {
	path, err := exportPath(dir, ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	logs.Logger.Printf("Exported board to %s", path)
	return path, nil
}

// exportPath picks the first free kanban-board name in dir
func exportPath(dir, ext string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, operations.UniqueFilename(operations.ExportBaseName, ext, dir)), nil
}

func (s *boardServiceImpl) Import(name string, data []byte) error {
	var board models.Board
	var err error

	if strings.EqualFold(filepath.Ext(name), ".md") {
		board, _, err = fs.ParseMarkdown(data, s.now())
		if err != nil {
			err = fmt.Errorf("%w: %v", operations.ErrInvalidImport, err)
		}
	} else {
		board, err = operations.ImportJSON(data, s.now())
	}
	if err != nil {
		logs.Logger.Printf("Import %s failed: %v", name, err)
		return err
	}

	s.board = board
	logs.Logger.Printf("Imported board from %s", name)
	return s.Resync()
}

func (s *boardServiceImpl) ImportFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.Import(path, data)
}

// Clear erases the persisted snapshot and empties the board. Demo cards are
// not seeded again.
func (s *boardServiceImpl) Clear() error {
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.board = models.NewBoard()
	logs.Logger.Println("Cleared board")
	return nil
}

// Resync optionally sorts every column, then snapshots the model and saves it
func (s *boardServiceImpl) Resync() error {
	if s.autoSort {
		operations.SortAll(&s.board)
	}
	if err := s.store.Save(s.board); err != nil {
		s.report("save", err)
		return err
	}
	return nil
}

func (s *boardServiceImpl) Theme() string {
	return s.theme
}

// SetTheme applies theme for the session even if storing it fails
func (s *boardServiceImpl) SetTheme(theme string) error {
	if theme != store.ThemeLight && theme != store.ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	s.theme = theme
	return s.store.SetTheme(theme)
}

func (s *boardServiceImpl) ToggleTheme() (string, error) {
	next := store.ThemeLight
	if s.theme == store.ThemeLight {
		next = store.ThemeDark
	}
	return next, s.SetTheme(next)
}

func (s *boardServiceImpl) AutoSort() bool {
	return s.autoSort
}

// SetAutoSort applies the preference for the session and stores it. Turning it
// on sorts the board immediately.
func (s *boardServiceImpl) SetAutoSort(on bool) error {
	s.autoSort = on
	storeErr := s.store.SetAutoSort(on)
	if storeErr != nil {
		s.report("save autosort", storeErr)
	}
	if on {
		operations.SortAll(&s.board)
	}
	if err := s.Resync(); err != nil {
		return err
	}
	return storeErr
}

func (s *boardServiceImpl) ToggleAutoSort() (bool, error) {
	next := !s.autoSort
	return next, s.SetAutoSort(next)
}

// Errors returns the storage failures recovered from so far, oldest first
func (s *boardServiceImpl) Errors() []error {
	return append([]error(nil), s.diagnostics...)
}
