package seatalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(b byte, mark bool) ParityByte { return ParityByte{Byte: b, Mark: mark} }

func spaceBytes(bs ...byte) []ParityByte {
	out := make([]ParityByte, len(bs))
	for i, b := range bs {
		out[i] = plain(b, false)
	}
	return out
}

func TestParityFramer_HappyPath(t *testing.T) {
	f := NewParityFramer()
	f.Feed([]ParityByte{plain(cmdDepth, true)})
	f.Feed(spaceBytes(0x02, 0x00, 0x64, 0x00))

	d, discarded, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, discarded)
	assert.Equal(t, cmdDepth, d.Command)
	assert.Equal(t, []byte{0x00, 0x64, 0x00}, d.Data)
}

func TestParityFramer_SkipsGarbageBeforeFirstMarkByte(t *testing.T) {
	f := NewParityFramer()
	f.Feed(spaceBytes(0x11, 0x22, 0x33))
	f.Feed([]ParityByte{plain(cmdLampIntensity, true)})
	f.Feed(spaceBytes(0x00, 0x01))

	d, discarded, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, 3, discarded)
	assert.Equal(t, cmdLampIntensity, d.Command)
}

func TestParityFramer_ResyncsOnUnexpectedMarkInPayload(t *testing.T) {
	f := NewParityFramer()
	// A mark-parity byte appears where a payload byte was expected: the
	// framer should discard the first candidate and restart from there.
	f.Feed([]ParityByte{plain(cmdDepth, true)})         // false command byte candidate
	f.Feed([]ParityByte{plain(0x02, false)})            // attr claims attrLen=2 (5 byte frame)
	f.Feed([]ParityByte{plain(cmdLampIntensity, true)}) // real command byte, arrives early
	f.Feed(spaceBytes(0x00, 0x01))

	d, discarded, err := f.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, discarded)
	assert.Equal(t, cmdLampIntensity, d.Command)
}

func TestParityFramer_NeedsMoreData(t *testing.T) {
	f := NewParityFramer()
	f.Feed([]ParityByte{plain(cmdDepth, true)})
	_, _, err := f.Next()
	assert.ErrorIs(t, err, errNeedMoreData)
}
