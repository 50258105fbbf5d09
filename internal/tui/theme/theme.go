package theme

import "github.com/charmbracelet/lipgloss"

const (
	NameDark  = "dark"
	NameLight = "light"
)

// Palette is the set of colors a theme is built from
type Palette struct {
	Text       lipgloss.Color
	TextMuted  lipgloss.Color
	TextBright lipgloss.Color

	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Danger        lipgloss.Color
	Surface       lipgloss.Color
	Hover         lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
}

// ---------------------------------------------------------------------------
// Palettes: ANSI 0-15 plus a few 256-color surfaces
// ---------------------------------------------------------------------------

var Dark = Palette{
	Text:          lipgloss.Color("7"),
	TextMuted:     lipgloss.Color("8"),
	TextBright:    lipgloss.Color("15"),
	Primary:       lipgloss.Color("4"), // blue
	Secondary:     lipgloss.Color("6"), // cyan
	Accent:        lipgloss.Color("5"), // magenta
	Success:       lipgloss.Color("2"),
	Warning:       lipgloss.Color("3"),
	Danger:        lipgloss.Color("1"),
	Surface:       lipgloss.Color("236"),
	Hover:         lipgloss.Color("54"),
	Border:        lipgloss.Color("8"),
	BorderFocused: lipgloss.Color("4"),
}

var Light = Palette{
	Text:          lipgloss.Color("235"),
	TextMuted:     lipgloss.Color("244"),
	TextBright:    lipgloss.Color("16"),
	Primary:       lipgloss.Color("25"),
	Secondary:     lipgloss.Color("30"),
	Accent:        lipgloss.Color("90"),
	Success:       lipgloss.Color("28"),
	Warning:       lipgloss.Color("130"),
	Danger:        lipgloss.Color("160"),
	Surface:       lipgloss.Color("254"),
	Hover:         lipgloss.Color("189"),
	Border:        lipgloss.Color("250"),
	BorderFocused: lipgloss.Color("25"),
}

// Current is the palette the styles below were last built from
var Current = Dark

// ---------------------------------------------------------------------------
// Semantic text styles
// ---------------------------------------------------------------------------

var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	Error lipgloss.Style
	Warn  lipgloss.Style
	Ok    lipgloss.Style

	Cursor     lipgloss.Style
	Selected   lipgloss.Style
	SelectedBg lipgloss.Style

	PriorityHigh lipgloss.Style
	PriorityMed  lipgloss.Style
	PriorityLow  lipgloss.Style
)

// ---------------------------------------------------------------------------
// Reusable component helpers
// ---------------------------------------------------------------------------

var (
	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	ModalHelp  lipgloss.Style

	StatusBar lipgloss.Style
	HelpHint  lipgloss.Style
)

func init() {
	Apply(NameDark)
}

// Apply rebuilds every style from the named palette. Unknown names use dark.
func Apply(name string) {
	p := Dark
	if name == NameLight {
		p = Light
	}
	Current = p

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	Subtitle = lipgloss.NewStyle().Bold(true).Foreground(p.Secondary)
	Muted = lipgloss.NewStyle().Foreground(p.TextMuted)
	Bold = lipgloss.NewStyle().Bold(true)

	Error = lipgloss.NewStyle().Bold(true).Foreground(p.Danger)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	Ok = lipgloss.NewStyle().Bold(true).Foreground(p.Success)

	Cursor = lipgloss.NewStyle().Bold(true).Foreground(p.Success)
	Selected = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	SelectedBg = lipgloss.NewStyle().Foreground(p.TextBright).Background(p.Surface)

	PriorityHigh = lipgloss.NewStyle().Bold(true).Foreground(p.Danger)
	PriorityMed = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	PriorityLow = lipgloss.NewStyle().Bold(true).Foreground(p.Success)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)
	ModalTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)
	ModalHelp = lipgloss.NewStyle().Foreground(p.TextMuted)

	StatusBar = lipgloss.NewStyle().
		Foreground(p.TextMuted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(p.Border)
	HelpHint = lipgloss.NewStyle().Foreground(p.TextMuted)
}
