package surface

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"xtouch-bridge/debug"
)

const (
	NumCells  = 8
	CellWidth = 7

	scribbleCommand = 0x4C

	invertTopBit    = 1 << 4
	invertBottomBit = 1 << 5
)

// Colors maps backlight names to their 3-bit codes
var Colors = map[string]byte{
	"off":     0b000,
	"black":   0b000,
	"red":     0b001,
	"green":   0b010,
	"yellow":  0b011,
	"blue":    0b100,
	"magenta": 0b101,
	"cyan":    0b110,
	"white":   0b111,
}

// ColorNames lists the distinct backlight colors in code order
var ColorNames = []string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Text returns a pointer for SetCellText rows
func Text(s string) *string {
	return &s
}

// CenterText truncates s to width, or pads it with spaces on both sides.
// An odd remainder puts the extra space on the right.
func CenterText(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return string([]rune(s)[:width])
	}
	left := (width - n) / 2
	right := width - n - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// cellRow centers text and converts it to display bytes; runes outside
// ASCII become '?'
func cellRow(text string) [CellWidth]byte {
	var row [CellWidth]byte
	for i, r := range []rune(CenterText(text, CellWidth)) {
		if r > 0x7F {
			r = '?'
		}
		row[i] = byte(r)
	}
	return row
}

// RenderScribble builds one scribble strip frame:
// F0 00 20 32 14 4C <cell> <backlight> <7 top> <7 bottom> F7
func RenderScribble(cell int, backlight byte, top, bottom [CellWidth]byte) ([]byte, error) {
	if cell < 0 || cell >= NumCells {
		return nil, fmt.Errorf("scribble cell %d: %w", cell, ErrIndexOutOfRange)
	}
	frame := make([]byte, 0, len(sysExHeader)+3+2*CellWidth+1)
	frame = append(frame, sysExHeader...)
	frame = append(frame, scribbleCommand, byte(cell), backlight)
	frame = append(frame, top[:]...)
	frame = append(frame, bottom[:]...)
	return append(frame, sysExEnd), nil
}

// Backlight packs a color code and the two invert flags
func Backlight(color byte, invertTop, invertBottom bool) byte {
	b := color & 0x07
	if invertTop {
		b |= invertTopBit
	}
	if invertBottom {
		b |= invertBottomBit
	}
	return b
}

func checkCell(cell int) error {
	if cell < 0 || cell >= NumCells {
		debug.Error("scribble", "display %d out of range (0-%d), not updated", cell, NumCells-1)
		return fmt.Errorf("scribble cell %d: %w", cell, ErrIndexOutOfRange)
	}
	return nil
}

// SetCellText updates one or both rows of a cell. A nil row is left as is.
func (s *Surface) SetCellText(cell int, top, bottom *string) error {
	if err := checkCell(cell); err != nil {
		return err
	}
	if top != nil {
		if utf8.RuneCountInString(*top) > CellWidth {
			debug.Warn("scribble", "top text %q doesn't fit and will be cut off", *top)
		}
		s.ScribbleTop[cell] = cellRow(*top)
	}
	if bottom != nil {
		if utf8.RuneCountInString(*bottom) > CellWidth {
			debug.Warn("scribble", "bottom text %q doesn't fit and will be cut off", *bottom)
		}
		s.ScribbleBottom[cell] = cellRow(*bottom)
	}
	return s.flushCell(cell)
}

// SetCellColor sets the backlight color and inversion of a cell
func (s *Surface) SetCellColor(cell int, color string, invertTop, invertBottom bool) error {
	if err := checkCell(cell); err != nil {
		return err
	}
	code, ok := Colors[strings.ToLower(color)]
	if !ok {
		debug.Warn("scribble", "color %q unknown, display %d unchanged", color, cell)
		return fmt.Errorf("scribble color %q: %w", color, ErrUnknownColor)
	}
	s.ScribbleBacklight[cell] = Backlight(code, invertTop, invertBottom)
	return s.flushCell(cell)
}

// ClearCell blanks both rows of a cell
func (s *Surface) ClearCell(cell int) error {
	if err := checkCell(cell); err != nil {
		return err
	}
	s.ScribbleTop[cell] = [CellWidth]byte{}
	s.ScribbleBottom[cell] = [CellWidth]byte{}
	return s.flushCell(cell)
}

// ResetCells returns every cell to a blank white strip
func (s *Surface) ResetCells() error {
	var errs []error
	for i := 0; i < NumCells; i++ {
		s.ScribbleBacklight[i] = Colors["white"]
		errs = append(errs, s.ClearCell(i))
	}
	return errors.Join(errs...)
}

func (s *Surface) flushCell(cell int) error {
	frame, err := RenderScribble(cell, s.ScribbleBacklight[cell], s.ScribbleTop[cell], s.ScribbleBottom[cell])
	if err != nil {
		return err
	}
	if err := s.out.WriteSysEx(frame); err != nil {
		return fmt.Errorf("scribble cell %d: %w", cell, err)
	}
	return nil
}
