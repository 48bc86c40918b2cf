package midi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestDebounce(t *testing.T) {
	a := NewNoteOn(0, 92, 127)
	b := NewNoteOn(0, 92, 0)
	c := NewControlChange(0, 80, 65)

	tests := []struct {
		name string
		in   []Event
		want []Event
	}{
		{name: "empty", in: nil, want: nil},
		{name: "single", in: []Event{a}, want: []Event{a}},
		{name: "adjacent duplicates", in: []Event{a, a, a, b}, want: []Event{a, b}},
		{name: "non adjacent repeats survive", in: []Event{a, b, a, b}, want: []Event{a, b, a, b}},
		{name: "mixed", in: []Event{c, c, a, a, c}, want: []Event{c, a, c}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Debounce(tt.in)
			require.Len(t, got, len(tt.want))
			for i := range got {
				assert.True(t, got[i].Equal(tt.want[i]), "event %d: got %s want %s", i, got[i], tt.want[i])
			}
		})
	}
}

func TestDebounceIdempotent(t *testing.T) {
	x := []Event{
		NewNoteOn(0, 1, 127), NewNoteOn(0, 1, 127),
		NewSysEx([]byte{0xF0, 0x01, 0xF7}), NewSysEx([]byte{0xF0, 0x01, 0xF7}),
		NewSysEx([]byte{0xF0, 0x02, 0xF7}),
		NewControlChange(1, 7, 3), NewNoteOn(0, 1, 127),
	}
	once := Debounce(x)
	twice := Debounce(once)
	require.Len(t, twice, len(once))
	for i := range once {
		assert.True(t, once[i].Equal(twice[i]))
	}
	assert.Len(t, once, 5)
}

func TestDebounceDoesNotAliasInput(t *testing.T) {
	in := []Event{NewNoteOn(0, 1, 1), NewNoteOn(0, 2, 1)}
	out := Debounce(in)
	out[0].Data1 = 99
	assert.Equal(t, uint8(1), in[0].Data1)
}

func TestEventFromMessage(t *testing.T) {
	ev, ok := EventFromMessage(gomidi.NoteOn(2, 92, 127))
	require.True(t, ok)
	assert.Equal(t, NoteOn, ev.Type)
	assert.Equal(t, uint8(2), ev.Channel)
	assert.Equal(t, []byte{0x92, 92, 127}, ev.Bytes())

	ev, ok = EventFromMessage(gomidi.ControlChange(0, 88, 65))
	require.True(t, ok)
	assert.Equal(t, CC, ev.Type)
	assert.Equal(t, uint8(88), ev.Data1)
	assert.Equal(t, uint8(65), ev.Data2)

	ev, ok = EventFromMessage(gomidi.SysEx([]byte{0x00, 0x20, 0x32}))
	require.True(t, ok)
	assert.Equal(t, SysEx, ev.Type)
	assert.Equal(t, []byte{0xF0, 0x00, 0x20, 0x32, 0xF7}, ev.Bytes())

	ev, ok = EventFromMessage(gomidi.Message{0xF8})
	require.True(t, ok)
	assert.Equal(t, uint8(0xF8), ev.Type)
	assert.Equal(t, uint8(0xF8), ev.Status())

	_, ok = EventFromMessage(nil)
	assert.False(t, ok)
}

func TestFakeTransportReadBatch(t *testing.T) {
	f := NewFakeTransport("fake")
	for i := 0; i < 12; i++ {
		f.Queue(NewNoteOn(0, uint8(i), 1))
	}
	assert.Len(t, f.ReadBatch(MaxBatch), MaxBatch)
	assert.Len(t, f.ReadBatch(MaxBatch), 2)
	assert.Empty(t, f.ReadBatch(MaxBatch))
}
