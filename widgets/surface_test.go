package widgets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xtouch-bridge/midi"
	"xtouch-bridge/surface"
	"xtouch-bridge/theme"
)

func TestSegmentText(t *testing.T) {
	s := surface.New(midi.NewFakeTransport("preview"))
	require.NoError(t, s.SetSegmentText(0, "05presets"))
	require.NoError(t, s.SetSegmentText(9, "1.2.3"))

	assert.Equal(t, "05pre5et51.2.3", SegmentText(&s.State))
}

func TestSegmentTextUnknownPattern(t *testing.T) {
	var st surface.State
	st.Segments[0] = 0b1111110
	assert.Equal(t, "?"+strings.Repeat(" ", 11), SegmentText(&st))
}

func TestRenderSurface(t *testing.T) {
	s := surface.New(midi.NewFakeTransport("preview"))
	require.NoError(t, s.SetCellText(3, surface.Text("Display"), surface.Text("3")))
	require.NoError(t, s.On(0))

	out := RenderSurface(&s.State, theme.New())
	assert.Contains(t, out, "Display")
	assert.Contains(t, out, "mode channel")
	assert.Contains(t, out, "●")
	assert.Contains(t, out, "·")
}

func TestRenderLEDsRows(t *testing.T) {
	var st surface.State
	lines := strings.Split(RenderLEDs(&st, theme.New()), "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[5], "80 "))
}
