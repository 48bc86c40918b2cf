// Package surface models the X-Touch control surface: its display state,
// LEDs, encoders and bank/mode state machine. Every mutation is mirrored to
// the device through a midi.Writer.
package surface

import (
	"errors"
	"fmt"

	"xtouch-bridge/midi"
)

var (
	// ErrIndexOutOfRange is returned for segment, cell or LED indices
	// outside the device's range. Nothing is written.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidMode is returned for an unrecognized mode name
	ErrInvalidMode = errors.New("invalid mode")
	// ErrUnknownColor is returned for a backlight color not in the table
	ErrUnknownColor = errors.New("unknown color")
)

// Behringer X-Touch SysEx prefix: F0, manufacturer 00 20 32, device 14
var sysExHeader = []byte{0xF0, 0x00, 0x20, 0x32, 0x14}

const sysExEnd = 0xF7

// controls is the number of note and CC numbers zeroed on reset
const controls = 119

// State is everything the surface currently shows
type State struct {
	Segments [NumSegments]byte
	Dots     [2]byte

	ScribbleTop       [NumCells][CellWidth]byte
	ScribbleBottom    [NumCells][CellWidth]byte
	ScribbleBacklight [NumCells]byte

	LEDs [NumLEDs]bool

	Mode     Mode
	Banks    Banks
	Encoders Encoders
}

// Surface owns the state and the writer that mirrors it to the device
type Surface struct {
	State
	out midi.Writer
}

// New creates a surface with all-zero state in channel mode
func New(out midi.Writer) *Surface {
	return &Surface{out: out}
}

// ResetControls zeroes every note and controller on the device
// (LEDs off, faders down, encoder rings dark)
func (s *Surface) ResetControls() error {
	var errs []error
	for i := uint8(0); i < controls; i++ {
		errs = append(errs, s.out.WriteRaw(midi.NoteOn, i, 0))
		errs = append(errs, s.out.WriteRaw(midi.CC, i, 0))
	}
	s.LEDs = [NumLEDs]bool{}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("reset controls: %w", err)
	}
	return nil
}
