package seatalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeuristicFramer_FindsFrameAfterGarbagePrefix(t *testing.T) {
	f := NewHeuristicFramer()
	depth := []byte{cmdDepth, 0x02, 0x00, 0x64, 0x00}
	lamp := []byte{cmdLampIntensity, 0x00, 0x01}

	garbage := []byte{0xF1, 0xF2, 0xF3}
	var stream []byte
	stream = append(stream, garbage...)
	stream = append(stream, depth...)
	stream = append(stream, lamp...)
	f.Feed(stream)

	d, discarded, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, len(garbage), discarded)
	assert.Equal(t, cmdDepth, d.Command)

	d2, _, err := f.Next()
	require.ErrorIs(t, err, errNeedMoreData) // lamp has no following known ID to confirm it yet
	_ = d2
}

func TestHeuristicFramer_ConfirmsWithLookaheadByte(t *testing.T) {
	f := NewHeuristicFramer()
	depth := []byte{cmdDepth, 0x02, 0x00, 0x64, 0x00}
	lamp := []byte{cmdLampIntensity, 0x00, 0x01}
	f.Feed(depth)
	f.Feed(lamp)
	f.Feed([]byte{cmdCancelMOB})

	d1, _, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, cmdDepth, d1.Command)

	d2, _, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, cmdLampIntensity, d2.Command)
}

func TestHeuristicFramer_NeedsMoreData(t *testing.T) {
	f := NewHeuristicFramer()
	f.Feed([]byte{cmdDepth, 0x02, 0x00})
	_, _, err := f.Next()
	assert.ErrorIs(t, err, errNeedMoreData)
}
