package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Symbols Symbols
}

type Symbols struct {
	// LED preview
	LEDOn  rune // ● lit
	LEDOff rune // · dark

	// Picker
	Cursor rune // ▶ highlighted row
}

func New() *Theme {
	return &Theme{
		Symbols: Symbols{
			LEDOn:  '●',
			LEDOff: '·',
			Cursor: '▶',
		},
	}
}

// Color roles
var (
	colorFG      = lipgloss.Color("#e8e6f0")
	colorMuted   = lipgloss.Color("#7a6f8f")
	colorAccent  = lipgloss.Color("#d946ef")
	colorSegment = lipgloss.Color("#ff3b30")
	colorPanel   = lipgloss.Color("#1c1424")
	colorWhite   = lipgloss.Color("#ffffff")
	colorRed     = lipgloss.Color("#c0262d")
	colorBlue    = lipgloss.Color("#2353c4")
	colorGreen   = lipgloss.Color("#2f8f46")
)

func (t *Theme) FG() lipgloss.Color      { return colorFG }
func (t *Theme) Muted() lipgloss.Color   { return colorMuted }
func (t *Theme) Accent() lipgloss.Color  { return colorAccent }
func (t *Theme) Segment() lipgloss.Color { return colorSegment }
func (t *Theme) Panel() lipgloss.Color   { return colorPanel }

// Log level badges, white text on a colored block like a terminal alert
var (
	ErrorBadge   = lipgloss.NewStyle().Foreground(colorWhite).Background(colorRed).Padding(0, 1)
	WarningBadge = lipgloss.NewStyle().Foreground(colorWhite).Background(colorBlue).Padding(0, 1)
	InfoBadge    = lipgloss.NewStyle().Foreground(colorWhite).Background(colorGreen).Padding(0, 1)
	DebugBadge   = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	Category     = lipgloss.NewStyle().Foreground(colorAccent)
)

// CellStyle renders text on a scribble strip backlight. inverted swaps the
// text and background colors the way the hardware does.
func CellStyle(backlight byte, inverted bool) lipgloss.Style {
	bg := BacklightColor(backlight)
	fg := RGB{0, 0, 0}
	if bg.Luma() < 110 {
		fg = RGB{255, 255, 255}
	}
	if inverted {
		fg, bg = bg, fg
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
}
