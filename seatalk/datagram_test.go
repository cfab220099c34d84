package seatalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDatagram_Depth(t *testing.T) {
	// S2: command 0x00, attr_len=2, depth=0x0064=100 -> 10.0 ft -> 3.048 m
	buf := []byte{0x00, 0x02, 0x00, 0x64, 0x00}
	d, n, err := ParseDatagram(buf)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, byte(0x00), d.Command)
	assert.Equal(t, []byte{0x00, 0x64, 0x00}, d.Data)
}

func TestParseDatagram_NeedsMoreData(t *testing.T) {
	_, _, err := ParseDatagram([]byte{0x00})
	assert.ErrorIs(t, err, errNeedMoreData)

	_, _, err = ParseDatagram([]byte{0x00, 0x02, 0x00})
	assert.ErrorIs(t, err, errNeedMoreData)
}

func TestBuildDatagram_RoundTrip(t *testing.T) {
	wire := BuildDatagram(0x23, 0, []byte{0x0B, 0x00})
	assert.Equal(t, []byte{0x23, 0x01, 0x0B, 0x00}, wire)

	d, n, err := ParseDatagram(wire)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, byte(0x23), d.Command)
	assert.Equal(t, []byte{0x0B, 0x00}, d.Data)
}
