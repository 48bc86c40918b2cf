package surface

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xtouch-bridge/midi"
)

func newTestSurface() (*Surface, *midi.FakeTransport) {
	out := midi.NewFakeTransport("surface")
	return New(out), out
}

func TestRenderSegments(t *testing.T) {
	var segs [NumSegments]byte
	for i := range segs {
		segs[i] = byte(i + 1)
	}
	frame := RenderSegments(segs, [2]byte{0x55, 0x0A})

	want := []byte{0xF0, 0x00, 0x20, 0x32, 0x14, 0x37,
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
		0x55, 0x0A, 0xF7}
	assert.Equal(t, want, frame)
}

func TestSetSegmentTextWritesFrame(t *testing.T) {
	s, out := newTestSurface()

	require.NoError(t, s.SetSegmentText(0, "0123456789ab"))

	frame := out.LastSysEx()
	require.NotNil(t, frame)
	assert.Len(t, frame, 21)
	assert.Equal(t, byte(0b0111111), frame[6])  // '0'
	assert.Equal(t, byte(0b1111100), frame[17]) // 'b'
	assert.Equal(t, byte(0xF7), frame[20])
}

func TestSetSegmentTextDotFollowsChar(t *testing.T) {
	for idx := 0; idx < NumSegments; idx++ {
		t.Run(fmt.Sprintf("slot %d", idx), func(t *testing.T) {
			plain, _ := newTestSurface()
			require.NoError(t, plain.SetSegmentText(idx, "7"))

			dotted, _ := newTestSurface()
			require.NoError(t, dotted.SetSegmentText(idx, "7."))

			assert.Equal(t, plain.Segments[idx], dotted.Segments[idx])
			assert.True(t, dotted.Dot(idx))
			assert.False(t, plain.Dot(idx))
			for other := 0; other < NumSegments; other++ {
				if other != idx {
					assert.False(t, dotted.Dot(other), "dot %d", other)
				}
			}
		})
	}
}

func TestSetSegmentTextDotDoesNotTakeSlot(t *testing.T) {
	s, _ := newTestSurface()
	require.NoError(t, s.SetSegmentText(0, "1.2"))

	one, _ := Glyph('1')
	two, _ := Glyph('2')
	assert.Equal(t, one, s.Segments[0])
	assert.Equal(t, two, s.Segments[1])
	assert.Equal(t, byte(0b1), s.Dots[0])
}

func TestSetSegmentTextClearsDot(t *testing.T) {
	s, _ := newTestSurface()
	require.NoError(t, s.SetSegmentText(8, "4."))
	require.True(t, s.Dot(8))
	assert.Equal(t, byte(0b10), s.Dots[1])

	require.NoError(t, s.SetSegmentText(8, "4"))
	assert.False(t, s.Dot(8))
	assert.Equal(t, byte(0), s.Dots[1])
}

func TestSetSegmentTextTruncates(t *testing.T) {
	s, out := newTestSurface()
	require.NoError(t, s.SetSegmentText(10, "1234"))

	one, _ := Glyph('1')
	two, _ := Glyph('2')
	assert.Equal(t, one, s.Segments[10])
	assert.Equal(t, two, s.Segments[11])
	assert.Len(t, out.SysExFrames(), 1)
}

func TestSetSegmentTextUnknownGlyphAdvances(t *testing.T) {
	s, _ := newTestSurface()
	require.NoError(t, s.SetSegmentText(0, "1k2"))

	one, _ := Glyph('1')
	two, _ := Glyph('2')
	assert.Equal(t, one, s.Segments[0])
	assert.Equal(t, byte(0), s.Segments[1])
	assert.Equal(t, two, s.Segments[2])
}

func TestSetSegmentTextIsCaseInsensitive(t *testing.T) {
	s, _ := newTestSurface()
	require.NoError(t, s.SetSegmentText(0, "AbC"))
	a, _ := Glyph('a')
	assert.Equal(t, a, s.Segments[0])
}

func TestSetSegmentTextOutOfRange(t *testing.T) {
	s, out := newTestSurface()
	for _, idx := range []int{-1, 12, 100} {
		err := s.SetSegmentText(idx, "1")
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "idx %d", idx)
	}
	assert.Empty(t, out.Written)
}

func TestSetSegmentTextWriteFailure(t *testing.T) {
	s, out := newTestSurface()
	out.FailWrites = true
	err := s.SetSegmentText(0, "1")
	assert.True(t, errors.Is(err, midi.ErrTransportWrite))
	// local state still reflects the request
	one, _ := Glyph('1')
	assert.Equal(t, one, s.Segments[0])
}

func TestGlyphTableExcludesAmbiguousLetters(t *testing.T) {
	for _, r := range "kmvwz" {
		_, ok := Glyph(r)
		assert.False(t, ok, "%q", r)
	}
	for _, r := range "0123456789abcdefghijlnopqrstuxy- " {
		_, ok := Glyph(r)
		assert.True(t, ok, "%q", r)
	}
}

func TestGlyphChar(t *testing.T) {
	r, ok := GlyphChar(0b1101101) // shared by '5' and 's'
	require.True(t, ok)
	assert.Equal(t, '5', r)

	_, ok = GlyphChar(0b1111110)
	assert.False(t, ok)
}

func TestClearSegments(t *testing.T) {
	s, out := newTestSurface()
	require.NoError(t, s.SetSegmentText(0, "8.8."))
	require.NoError(t, s.ClearSegments())
	assert.Equal(t, [NumSegments]byte{}, s.Segments)
	assert.Equal(t, [2]byte{}, s.Dots)
	assert.Equal(t, RenderSegments([NumSegments]byte{}, [2]byte{}), out.LastSysEx())
}
