package theme

import "fmt"

type RGB [3]uint8

// Backlight is the scribble strip backlight palette, indexed by the 3-bit
// color code (0=black ... 7=white)
var Backlight = [8]RGB{
	{0, 0, 0},       // black
	{220, 40, 40},   // red
	{40, 200, 60},   // green
	{230, 210, 40},  // yellow
	{50, 90, 230},   // blue
	{210, 50, 200},  // magenta
	{40, 200, 210},  // cyan
	{240, 240, 240}, // white
}

// BacklightColor returns the palette entry for a backlight byte.
// Only bits 0-2 select the color.
func BacklightColor(backlight byte) RGB {
	return Backlight[backlight&0x07]
}

// Hex formats the color for lipgloss
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Luma is the perceived brightness 0-255, used to pick readable text
func (c RGB) Luma() int {
	return (299*int(c[0]) + 587*int(c[1]) + 114*int(c[2])) / 1000
}
