package midi

import (
	"bytes"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
	CC      uint8 = 0xB0
	SysEx   uint8 = 0xF0

	sysExEnd uint8 = 0xF7
)

// Event is one decoded MIDI message.
// Notes and control changes use Data1/Data2; everything else (SysEx,
// pitch bend, ...) is carried verbatim in Raw.
type Event struct {
	Type    uint8 // NoteOn, NoteOff, CC, SysEx or another status nibble
	Channel uint8
	Data1   uint8 // note or controller
	Data2   uint8 // velocity or value
	Raw     []byte
}

// NewNoteOn builds a note-on event
func NewNoteOn(channel, note, velocity uint8) Event {
	return Event{Type: NoteOn, Channel: channel & 0x0F, Data1: note & 0x7F, Data2: velocity & 0x7F}
}

// NewNoteOff builds a note-off event
func NewNoteOff(channel, note, velocity uint8) Event {
	return Event{Type: NoteOff, Channel: channel & 0x0F, Data1: note & 0x7F, Data2: velocity & 0x7F}
}

// NewControlChange builds a control change event
func NewControlChange(channel, controller, value uint8) Event {
	return Event{Type: CC, Channel: channel & 0x0F, Data1: controller & 0x7F, Data2: value & 0x7F}
}

// NewSysEx wraps a complete F0 ... F7 frame
func NewSysEx(frame []byte) Event {
	return Event{Type: SysEx, Raw: append([]byte(nil), frame...)}
}

// IsNote reports whether the event is a note-on or note-off
func (e Event) IsNote() bool {
	return e.Type == NoteOn || e.Type == NoteOff
}

// Status returns the status byte as sent on the wire
func (e Event) Status() uint8 {
	switch e.Type {
	case NoteOn, NoteOff, CC:
		return e.Type | e.Channel
	}
	if len(e.Raw) > 0 {
		return e.Raw[0]
	}
	return e.Type
}

// Bytes returns the wire representation of the event
func (e Event) Bytes() []byte {
	switch e.Type {
	case NoteOn, NoteOff, CC:
		return []byte{e.Type | e.Channel, e.Data1, e.Data2}
	}
	return append([]byte(nil), e.Raw...)
}

// Equal compares two events including any raw payload
func (e Event) Equal(o Event) bool {
	return e.Type == o.Type &&
		e.Channel == o.Channel &&
		e.Data1 == o.Data1 &&
		e.Data2 == o.Data2 &&
		bytes.Equal(e.Raw, o.Raw)
}

func (e Event) String() string {
	switch e.Type {
	case NoteOn:
		return fmt.Sprintf("note_on ch=%d note=%d vel=%d", e.Channel, e.Data1, e.Data2)
	case NoteOff:
		return fmt.Sprintf("note_off ch=%d note=%d vel=%d", e.Channel, e.Data1, e.Data2)
	case CC:
		return fmt.Sprintf("control_change ch=%d cc=%d value=%d", e.Channel, e.Data1, e.Data2)
	case SysEx:
		return fmt.Sprintf("sysex % X", e.Raw)
	}
	return fmt.Sprintf("raw % X", e.Raw)
}

// EventFromMessage decodes a gomidi message. It returns false for empty
// messages.
func EventFromMessage(msg gomidi.Message) (Event, bool) {
	var channel, key, velocity uint8
	var data []byte

	switch {
	case msg.GetNoteOn(&channel, &key, &velocity):
		return NewNoteOn(channel, key, velocity), true
	case msg.GetNoteOff(&channel, &key, &velocity):
		return NewNoteOff(channel, key, velocity), true
	case msg.GetControlChange(&channel, &key, &velocity):
		return NewControlChange(channel, key, velocity), true
	case msg.GetSysEx(&data):
		frame := make([]byte, 0, len(data)+2)
		frame = append(frame, SysEx)
		frame = append(frame, data...)
		return NewSysEx(append(frame, sysExEnd)), true
	}

	raw := msg.Bytes()
	if len(raw) == 0 {
		return Event{}, false
	}
	// system messages keep their full status byte so 0xF8 never reads as SysEx
	if raw[0] >= 0xF0 {
		return Event{Type: raw[0], Raw: append([]byte(nil), raw...)}, true
	}
	return Event{Type: raw[0] & 0xF0, Channel: raw[0] & 0x0F, Raw: append([]byte(nil), raw...)}, true
}

// Debounce collapses runs of identical adjacent events into one.
// Non-adjacent repeats survive and order is preserved. It keeps no state
// between calls.
func Debounce(events []Event) []Event {
	if len(events) == 0 {
		return nil
	}
	out := make([]Event, 0, len(events))
	for i, ev := range events {
		if i == 0 || !ev.Equal(events[i-1]) {
			out = append(out, ev)
		}
	}
	return out
}
