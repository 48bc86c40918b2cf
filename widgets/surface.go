package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"xtouch-bridge/surface"
	"xtouch-bridge/theme"
)

// ledsPerRow is the width of the LED grid in RenderLEDs
const ledsPerRow = 16

// SegmentText decodes the segment display back into characters. Patterns
// without a matching glyph show as '?', lit dots as '.'.
func SegmentText(st *surface.State) string {
	var out strings.Builder
	for i, pattern := range st.Segments {
		r, ok := surface.GlyphChar(pattern)
		if !ok {
			r = '?'
		}
		out.WriteRune(r)
		if st.Dot(i) {
			out.WriteRune('.')
		}
	}
	return out.String()
}

// RenderSegments renders the 12-character display like the red LEDs on the
// device
func RenderSegments(st *surface.State, th *theme.Theme) string {
	style := lipgloss.NewStyle().
		Foreground(th.Segment()).
		Background(th.Panel()).
		Bold(true).
		Padding(0, 1)
	return style.Render(SegmentText(st))
}

// RenderCell renders one scribble strip with its backlight
func RenderCell(st *surface.State, cell int) string {
	backlight := st.ScribbleBacklight[cell]
	top := theme.CellStyle(backlight, backlight&(1<<4) != 0)
	bottom := theme.CellStyle(backlight, backlight&(1<<5) != 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		top.Render(cellText(st.ScribbleTop[cell])),
		bottom.Render(cellText(st.ScribbleBottom[cell])),
	)
}

func cellText(row [surface.CellWidth]byte) string {
	b := make([]byte, surface.CellWidth)
	for i, c := range row {
		if c < 0x20 || c > 0x7E {
			c = ' '
		}
		b[i] = c
	}
	return string(b)
}

// RenderCells renders all eight scribble strips side by side
func RenderCells(st *surface.State) string {
	cells := make([]string, 0, 2*surface.NumCells)
	for i := 0; i < surface.NumCells; i++ {
		if i > 0 {
			cells = append(cells, " ")
		}
		cells = append(cells, RenderCell(st, i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// RenderLED renders a single button LED
func RenderLED(on bool, th *theme.Theme) string {
	if on {
		return lipgloss.NewStyle().Foreground(th.Segment()).Render(string(th.Symbols.LEDOn))
	}
	return lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.LEDOff))
}

// RenderLEDs renders the 94 button LEDs as a grid, first id of each row on
// the left
func RenderLEDs(st *surface.State, th *theme.Theme) string {
	var lines []string
	for start := 0; start < surface.NumLEDs; start += ledsPerRow {
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%2d ", start))
		for id := start; id < start+ledsPerRow && id < surface.NumLEDs; id++ {
			line.WriteString(RenderLED(st.LED(id), th))
			line.WriteString(" ")
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// RenderSurface renders the whole surface: status line, segment display,
// scribble strips and LEDs
func RenderSurface(st *surface.State, th *theme.Theme) string {
	status := lipgloss.NewStyle().Foreground(th.Muted()).Render(
		fmt.Sprintf("mode %s  channel bank %02d  presets bank %02d", st.Mode, st.Banks.Channel, st.Banks.Presets))
	return strings.Join([]string{
		RenderSegments(st, th),
		RenderCells(st),
		RenderLEDs(st, th),
		status,
	}, "\n\n")
}

// RenderKeyHelp formats command help in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-28s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related commands
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single command and its description
type KeyBinding struct {
	Key  string
	Desc string
}
