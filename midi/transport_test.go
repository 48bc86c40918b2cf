package midi

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func openDetached(t *testing.T) *Port {
	t.Helper()
	p, err := OpenPort("detached", nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPortDropsOnOverflow(t *testing.T) {
	p := openDetached(t)

	for i := 0; i < inputBuffer+44; i++ {
		p.receive(gomidi.NoteOn(0, uint8(i%128), 127), 0)
	}

	assert.Len(t, p.events, inputBuffer)
	assert.Equal(t, uint64(44), atomic.LoadUint64(&p.dropped))

	// the oldest events are kept
	first := p.ReadBatch(1)
	require.Len(t, first, 1)
	assert.True(t, first[0].Equal(NewNoteOn(0, 0, 127)))
}

func TestPortIgnoresEmptyMessages(t *testing.T) {
	p := openDetached(t)
	p.receive(nil, 0)
	assert.Empty(t, p.ReadBatch(MaxBatch))
}

func TestPortReadBatchBounded(t *testing.T) {
	p := openDetached(t)
	assert.Empty(t, p.ReadBatch(MaxBatch), "empty queue returns immediately")

	for i := 0; i < MaxBatch+3; i++ {
		p.receive(gomidi.ControlChange(0, 80, uint8(i)), 0)
	}

	batch := p.ReadBatch(MaxBatch)
	require.Len(t, batch, MaxBatch)
	for i, ev := range batch {
		assert.True(t, ev.Equal(NewControlChange(0, 80, uint8(i))), "event %d: %s", i, ev)
	}
	assert.Len(t, p.ReadBatch(MaxBatch), 3)
	assert.Empty(t, p.ReadBatch(MaxBatch))
}

func TestPortWriteErrors(t *testing.T) {
	p := openDetached(t)

	tests := []struct {
		name  string
		write func() error
	}{
		{name: "too short", write: func() error { return p.WriteSysEx([]byte{0xF0}) }},
		{name: "no start byte", write: func() error { return p.WriteSysEx([]byte{0x01, 0x02}) }},
		{name: "no end byte", write: func() error { return p.WriteSysEx([]byte{0xF0, 0x00, 0x20}) }},
		{name: "no output sysex", write: func() error { return p.WriteSysEx([]byte{0xF0, 0x00, 0xF7}) }},
		{name: "no output raw", write: func() error { return p.WriteRaw(NoteOn, 20, 127) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.write()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrTransportWrite))
		})
	}
}
