package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	require.NoError(t, r.Press(Left))
	require.NoError(t, r.Release(Left))
	require.NoError(t, r.Press(Up))

	assert.Equal(t, []Action{
		{Key: Left, Pressed: true},
		{Key: Left},
		{Key: Up, Pressed: true},
	}, r.Actions())
	assert.Equal(t, "release left", r.Actions()[1].String())
}

func TestOpenDisabledLogs(t *testing.T) {
	inj := Open(false)
	assert.IsType(t, Logging{}, inj)
	assert.NoError(t, inj.Press(Down))
	assert.NoError(t, inj.Close())
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "key(9)", Key(9).String())
}
