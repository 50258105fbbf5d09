package kanban

import "taskboard/internal/tui/shared"

// HelpSections lists the board keybinds for the help popup
func HelpSections() []shared.HelpSection {
	return []shared.HelpSection{
		{
			Title: "Navigation",
			Binds: []shared.HelpBind{
				{Key: "h/j/k/l", Desc: "Move between columns and cards"},
				{Key: "/", Desc: "Fuzzy filter cards"},
				{Key: "esc", Desc: "Clear filter"},
			},
		},
		{
			Title: "Cards",
			Binds: []shared.HelpBind{
				{Key: "n", Desc: "New task in Start"},
				{Key: "e / enter", Desc: "Edit title inline"},
				{Key: "p", Desc: "Cycle priority low → med → high"},
				{Key: "x / D", Desc: "Delete card"},
				{Key: "z", Desc: "Show more / less of a long title"},
				{Key: "m / space", Desc: "Move card (h/l/j/k, enter to drop)"},
			},
		},
		{
			Title: "Mouse",
			Binds: []shared.HelpBind{
				{Key: "drag", Desc: "Move a card between columns"},
				{Key: "double-click", Desc: "Edit title"},
				{Key: "badge click", Desc: "Cycle priority"},
			},
		},
		{
			Title: "Board",
			Binds: []shared.HelpBind{
				{Key: "s", Desc: "Toggle auto-sort by priority"},
				{Key: "t", Desc: "Toggle light / dark theme"},
				{Key: "E", Desc: "Export JSON file"},
				{Key: "M", Desc: "Export markdown file"},
				{Key: "y", Desc: "Copy JSON to clipboard"},
				{Key: "i", Desc: "Import .json or .md file"},
				{Key: "C", Desc: "Clear the board"},
				{Key: "?", Desc: "Show this help"},
				{Key: "q / ctrl+c", Desc: "Quit"},
			},
		},
	}
}
