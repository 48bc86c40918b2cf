package surface

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustBankWraps(t *testing.T) {
	s, _ := newTestSurface()

	require.NoError(t, s.AdjustBank(-1))
	assert.Equal(t, 63, s.Banks.Channel)
	require.NoError(t, s.AdjustBank(1))
	assert.Equal(t, 0, s.Banks.Channel)

	require.NoError(t, s.SetMode("presets"))
	require.NoError(t, s.AdjustBank(-1))
	assert.Equal(t, 99, s.Banks.Presets)
	require.NoError(t, s.AdjustBank(1))
	assert.Equal(t, 0, s.Banks.Presets)
	assert.Equal(t, 0, s.Banks.Channel)
}

func TestAdjustBankComposes(t *testing.T) {
	deltas := []int{-250, -101, -64, -1, 0, 1, 7, 63, 64, 99, 100, 333}
	for _, mode := range []Mode{ModeChannel, ModePresets} {
		for _, d1 := range deltas {
			for _, d2 := range deltas {
				split, _ := newTestSurface()
				split.Mode = mode
				require.NoError(t, split.AdjustBank(d1))
				require.NoError(t, split.AdjustBank(d2))

				joined, _ := newTestSurface()
				joined.Mode = mode
				require.NoError(t, joined.AdjustBank(d1+d2))

				assert.Equal(t, joined.ActiveBank(), split.ActiveBank(), "%s %d %d", mode, d1, d2)
				assert.GreaterOrEqual(t, split.ActiveBank(), 0)
				assert.Less(t, split.ActiveBank(), mode.size())
			}
		}
	}
}

func TestAdjustBankRendersTwoDigits(t *testing.T) {
	s, _ := newTestSurface()
	require.NoError(t, s.AdjustBank(5))

	zero, _ := Glyph('0')
	five, _ := Glyph('5')
	assert.Equal(t, zero, s.Segments[0])
	assert.Equal(t, five, s.Segments[1])
}

func TestModeSwitchShowsOwnBank(t *testing.T) {
	s, _ := newTestSurface()
	require.NoError(t, s.AdjustBank(5))
	require.Equal(t, 5, s.Banks.Channel)

	require.NoError(t, s.SetMode("presets"))

	assert.Equal(t, ModePresets, s.Mode)
	assert.True(t, s.LED(LEDModePresets))
	assert.False(t, s.LED(LEDModeChannel))

	want, _ := newTestSurface()
	require.NoError(t, want.SetSegmentText(0, fmt.Sprintf("%02d%-7s", 0, "presets")))
	assert.Equal(t, want.Segments, s.Segments)

	zero, _ := Glyph('0')
	assert.Equal(t, zero, s.Segments[0])
	assert.Equal(t, zero, s.Segments[1])
}

func TestSetModeReentryDrivesLEDs(t *testing.T) {
	s, out := newTestSurface()
	require.NoError(t, s.SetMode("channel"))

	assert.True(t, s.LED(LEDModeChannel))
	assert.False(t, s.LED(LEDModePresets))
	msgs := out.ChannelMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []byte{0x90, LEDModeChannel + 8, 127}, msgs[0])
	assert.Equal(t, []byte{0x90, LEDModePresets + 8, 0}, msgs[1])
}

func TestSetModeInvalid(t *testing.T) {
	s, out := newTestSurface()
	s.Banks.Channel = 12

	err := s.SetMode("mixer")
	assert.True(t, errors.Is(err, ErrInvalidMode))
	assert.Equal(t, ModeChannel, s.Mode)
	assert.Empty(t, out.Written)
}

func TestSetBankNumber(t *testing.T) {
	s, out := newTestSurface()

	presets := ModePresets
	require.NoError(t, s.SetBankNumber(&presets, 42))
	assert.Equal(t, 42, s.Banks.Presets)
	assert.Empty(t, out.Written, "inactive counter must not re-render")

	require.NoError(t, s.SetBankNumber(nil, 7))
	assert.Equal(t, 7, s.Banks.Channel)
	seven, _ := Glyph('7')
	assert.Equal(t, seven, s.Segments[1])
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("PRESETS")
	require.NoError(t, err)
	assert.Equal(t, ModePresets, m)

	_, err = ParseMode("")
	assert.True(t, errors.Is(err, ErrInvalidMode))
}
