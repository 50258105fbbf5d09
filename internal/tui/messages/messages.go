package messages

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

// ImportReadMsg carries the bytes of a board file read off the update loop
type ImportReadMsg struct {
	Path string
	Data []byte
	Err  error
}

// ClipboardResultMsg reports the outcome of copying the export
type ClipboardResultMsg struct {
	Err error
}

// ThemeChangedMsg is sent after the board switches palettes
type ThemeChangedMsg struct {
	Theme string
}

// ReadImport reads path in the background
func ReadImport(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return ImportReadMsg{Path: path, Data: data, Err: err}
	}
}

// CopyToClipboard writes text with the given writer in the background
func CopyToClipboard(write func(string) error, text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardResultMsg{Err: write(text)}
	}
}

func ThemeChanged(theme string) tea.Cmd {
	return func() tea.Msg {
		return ThemeChangedMsg{Theme: theme}
	}
}
