package kanban

import (
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/kanban/models"
	"taskboard/internal/tui/theme"
)

const (
	// Layout constants
	minColumnWidth          = 24
	maxColumnWidth          = 48
	columnPaddingHorizontal = 1
	cardPaddingHorizontal   = 1
	cardBorderWidth         = 1
	boardMarginLeft         = 1

	// Cards taller than this are clamped until expanded
	maxCardLines = 4
)

// boardStyles is rebuilt from the active palette whenever the theme changes
type boardStyles struct {
	title lipgloss.Style

	column         lipgloss.Style
	selectedColumn lipgloss.Style
	hoverColumn    lipgloss.Style

	columnTitle         lipgloss.Style
	selectedColumnTitle lipgloss.Style
	columnCount         lipgloss.Style

	card          lipgloss.Style
	selectedCard  lipgloss.Style
	draggedCard   lipgloss.Style
	cardTitle     lipgloss.Style
	cardMore      lipgloss.Style
	placeholder   lipgloss.Style
	emptyColumn   lipgloss.Style
	scrollMarker  lipgloss.Style
	badgeHigh     lipgloss.Style
	badgeMed      lipgloss.Style
	badgeLow      lipgloss.Style
	editorBorder  lipgloss.Style
	help          lipgloss.Style
	errorText     lipgloss.Style
	warningText   lipgloss.Style
	successText   lipgloss.Style
	filterBadge   lipgloss.Style
	modeIndicator lipgloss.Style
	modalBox      lipgloss.Style
	modalTitle    lipgloss.Style
}

func newBoardStyles() boardStyles {
	p := theme.Current

	columnBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, columnPaddingHorizontal)

	cardBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), false, false, false, true).
		Padding(0, cardPaddingHorizontal)

	return boardStyles{
		title: theme.Title.Padding(0, 1),

		column:         columnBase.BorderForeground(p.Border),
		selectedColumn: columnBase.BorderForeground(p.BorderFocused),
		hoverColumn:    columnBase.BorderForeground(p.Accent).BorderStyle(lipgloss.ThickBorder()),

		columnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),
		selectedColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning).
			Underline(true),
		columnCount: lipgloss.NewStyle().Foreground(p.TextMuted),

		card:         cardBase.BorderForeground(p.Border),
		selectedCard: cardBase.BorderForeground(p.BorderFocused).Background(p.Surface),
		draggedCard:  cardBase.BorderForeground(p.Warning).Background(p.Hover).Faint(true),
		cardTitle:    lipgloss.NewStyle().Foreground(p.Text),
		cardMore:     lipgloss.NewStyle().Foreground(p.Secondary).Italic(true),
		placeholder:  lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		emptyColumn:  lipgloss.NewStyle().Foreground(p.TextMuted),
		scrollMarker: lipgloss.NewStyle().Foreground(p.Primary).Italic(true),

		badgeHigh: theme.PriorityHigh,
		badgeMed:  theme.PriorityMed,
		badgeLow:  theme.PriorityLow,

		editorBorder: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.Warning),

		help:          theme.Muted.Padding(0, 1),
		errorText:     theme.Error.Padding(0, 1),
		warningText:   theme.Warn.Padding(0, 1),
		successText:   theme.Ok.Padding(0, 1),
		filterBadge:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		modeIndicator: lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		modalBox:      theme.ModalBox,
		modalTitle:    theme.ModalTitle.Align(lipgloss.Center),
	}
}

// badge renders the [High]/[Med]/[Low] priority marker
func (s boardStyles) badge(p models.Priority) string {
	text := "[" + p.Label() + "]"
	switch p {
	case models.PriorityHigh:
		return s.badgeHigh.Render(text)
	case models.PriorityMed:
		return s.badgeMed.Render(text)
	default:
		return s.badgeLow.Render(text)
	}
}
