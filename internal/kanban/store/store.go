package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"taskboard/internal/kanban/models"
	"taskboard/internal/logs"
)

// Storage keys
const (
	BoardKey    = "kanban.board.v2"
	ThemeKey    = "kanban.theme"
	AutoSortKey = "kanban.autosort"
)

// Theme values
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Reporter receives failures that the store recovered from
type Reporter func(op string, err error)

// Store is the persistence adapter between the board and a KV medium.
// Reads never fail: storage errors and corrupt documents fall back to defaults
// and are handed to the reporter instead.
type Store struct {
	kv     KV
	report Reporter
}

// New wraps kv. Recovered failures go to the debug log.
func New(kv KV) *Store {
	return &Store{kv: kv, report: logReporter}
}

// Open creates the KV backend named by backend inside dataDir
func Open(backend, dataDir string) (*Store, error) {
	var kv KV
	var err error

	switch backend {
	case "", BackendFile:
		kv, err = NewFileKV(filepath.Join(dataDir, "storage.json"))
	case BackendSQLite:
		kv, err = NewSQLiteKV(filepath.Join(dataDir, "taskboard.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	return New(kv), nil
}

func logReporter(op string, err error) {
	logs.Logger.Printf("storage %s: %v", op, err)
}

// SetReporter replaces the failure reporter. nil restores the default.
func (s *Store) SetReporter(r Reporter) {
	if r == nil {
		r = logReporter
	}
	s.report = r
}

// Load returns the persisted board, or an empty board when nothing usable is stored
func (s *Store) Load() models.Board {
	raw, ok, err := s.kv.Get(BoardKey)
	if err != nil {
		s.report("load", err)
		return models.NewBoard()
	}
	if !ok || raw == "" {
		return models.NewBoard()
	}

	var board models.Board
	if err := json.Unmarshal([]byte(raw), &board); err != nil {
		s.report("load", fmt.Errorf("malformed board snapshot: %w", err))
		return models.NewBoard()
	}
	return board
}

// Save writes the board snapshot synchronously
func (s *Store) Save(board models.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}
	if err := s.kv.Set(BoardKey, string(data)); err != nil {
		return fmt.Errorf("save board: %w", err)
	}
	return nil
}

// Clear removes the board snapshot so the next Load returns defaults
func (s *Store) Clear() error {
	if err := s.kv.Remove(BoardKey); err != nil {
		return fmt.Errorf("clear board: %w", err)
	}
	return nil
}

// Theme returns the stored theme, dark when unset or unreadable
func (s *Store) Theme() string {
	v, ok, err := s.kv.Get(ThemeKey)
	if err != nil {
		s.report("read theme", err)
		return ThemeDark
	}
	if !ok || (v != ThemeLight && v != ThemeDark) {
		return ThemeDark
	}
	return v
}

func (s *Store) SetTheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.kv.Set(ThemeKey, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// AutoSort reports whether columns are kept sorted by priority
func (s *Store) AutoSort() bool {
	v, _, err := s.kv.Get(AutoSortKey)
	if err != nil {
		s.report("read autosort", err)
		return false
	}
	return v == "1"
}

func (s *Store) SetAutoSort(on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	if err := s.kv.Set(AutoSortKey, v); err != nil {
		return fmt.Errorf("save autosort: %w", err)
	}
	return nil
}

// Close releases the underlying medium
func (s *Store) Close() error {
	return s.kv.Close()
}
