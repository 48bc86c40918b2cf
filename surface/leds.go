package surface

import (
	"errors"
	"fmt"

	"xtouch-bridge/debug"
	"xtouch-bridge/midi"
)

const (
	NumLEDs = 94

	// logical button i is addressed as note i+8
	ledNoteOffset = 8
	ledOnVelocity = 127
)

// LED reports the last commanded state of a button LED
func (st *State) LED(id int) bool {
	if id < 0 || id >= NumLEDs {
		return false
	}
	return st.LEDs[id]
}

// On lights the given button LEDs. Invalid ids are reported and skipped;
// the rest are still processed.
func (s *Surface) On(ids ...int) error {
	return s.setLEDs(ids, func(int) bool { return true })
}

// Off darkens the given button LEDs
func (s *Surface) Off(ids ...int) error {
	return s.setLEDs(ids, func(int) bool { return false })
}

// Toggle flips the given button LEDs
func (s *Surface) Toggle(ids ...int) error {
	return s.setLEDs(ids, func(id int) bool { return !s.LEDs[id] })
}

// AllOn lights every button
func (s *Surface) AllOn() error {
	return s.On(allLEDs()...)
}

// AllOff darkens every button
func (s *Surface) AllOff() error {
	return s.Off(allLEDs()...)
}

func allLEDs() []int {
	ids := make([]int, NumLEDs)
	for i := range ids {
		ids[i] = i
	}
	return ids
}

func (s *Surface) setLEDs(ids []int, next func(id int) bool) error {
	var errs []error
	for _, id := range ids {
		if id < 0 || id >= NumLEDs {
			debug.Warn("led", "button %d is not valid, must be between 0 and %d", id, NumLEDs-1)
			errs = append(errs, fmt.Errorf("led %d: %w", id, ErrIndexOutOfRange))
			continue
		}
		errs = append(errs, s.setLED(id, next(id)))
	}
	return errors.Join(errs...)
}

func (s *Surface) setLED(id int, on bool) error {
	velocity := uint8(0)
	if on {
		velocity = ledOnVelocity
	}
	s.LEDs[id] = on
	if err := s.out.WriteRaw(midi.NoteOn, uint8(id+ledNoteOffset), velocity); err != nil {
		return fmt.Errorf("led %d: %w", id, err)
	}
	return nil
}
