package surface

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLEDOnOff(t *testing.T) {
	s, out := newTestSurface()

	require.NoError(t, s.On(0, 93))
	assert.True(t, s.LED(0))
	assert.True(t, s.LED(93))
	require.NoError(t, s.Off(0))
	assert.False(t, s.LED(0))

	assert.Equal(t, [][]byte{
		{0x90, 8, 127},
		{0x90, 101, 127},
		{0x90, 8, 0},
	}, out.ChannelMessages())
}

func TestLEDToggle(t *testing.T) {
	s, out := newTestSurface()

	require.NoError(t, s.Toggle(10))
	assert.True(t, s.LED(10))
	require.NoError(t, s.Toggle(10))
	assert.False(t, s.LED(10))

	assert.Equal(t, [][]byte{{0x90, 18, 127}, {0x90, 18, 0}}, out.ChannelMessages())
}

func TestLEDOutOfRangeIsPerID(t *testing.T) {
	s, out := newTestSurface()

	err := s.On(-1, 5, 94)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.True(t, s.LED(5))
	assert.Equal(t, [][]byte{{0x90, 13, 127}}, out.ChannelMessages())

	assert.True(t, errors.Is(s.Toggle(200), ErrIndexOutOfRange))
	assert.False(t, s.LED(200))
}

func TestAllOnAllOff(t *testing.T) {
	s, out := newTestSurface()
	require.NoError(t, s.AllOn())
	for i := 0; i < NumLEDs; i++ {
		assert.True(t, s.LED(i))
	}
	require.NoError(t, s.AllOff())
	assert.Equal(t, [NumLEDs]bool{}, s.LEDs)
	assert.Len(t, out.Written, 2*NumLEDs)
}

func TestResetControls(t *testing.T) {
	s, out := newTestSurface()
	require.NoError(t, s.On(3))
	out.Reset()

	require.NoError(t, s.ResetControls())
	assert.False(t, s.LED(3))
	msgs := out.ChannelMessages()
	require.Len(t, msgs, 2*controls)
	assert.Equal(t, []byte{0x90, 0, 0}, msgs[0])
	assert.Equal(t, []byte{0xB0, 0, 0}, msgs[1])
	assert.Equal(t, []byte{0xB0, 118, 0}, msgs[len(msgs)-1])
}
