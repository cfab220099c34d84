package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParmrkDecoder_PlainBytes(t *testing.T) {
	var d parmrkDecoder
	out := d.Feed([]byte{0x01, 0x02, 0x03})
	assert.Equal(t, []ParityByte{{Byte: 0x01}, {Byte: 0x02}, {Byte: 0x03}}, out)
}

func TestParmrkDecoder_MarkedByte(t *testing.T) {
	var d parmrkDecoder
	out := d.Feed([]byte{0x01, 0xFF, 0x00, 0x84, 0x02})
	assert.Equal(t, []ParityByte{
		{Byte: 0x01},
		{Byte: 0x84, Mark: true},
		{Byte: 0x02},
	}, out)
}

func TestParmrkDecoder_EscapedLiteralFF(t *testing.T) {
	var d parmrkDecoder
	out := d.Feed([]byte{0xFF, 0xFF, 0x02})
	assert.Equal(t, []ParityByte{
		{Byte: 0xFF},
		{Byte: 0x02},
	}, out)
}

func TestParmrkDecoder_SplitAcrossFeeds(t *testing.T) {
	var d parmrkDecoder

	out1 := d.Feed([]byte{0x01, 0xFF})
	assert.Equal(t, []ParityByte{{Byte: 0x01}}, out1)

	out2 := d.Feed([]byte{0x00, 0x84, 0x02})
	assert.Equal(t, []ParityByte{
		{Byte: 0x84, Mark: true},
		{Byte: 0x02},
	}, out2)
}

func TestParmrkDecoder_SplitThreeWays(t *testing.T) {
	var d parmrkDecoder

	assert.Empty(t, d.Feed([]byte{0xFF}))
	assert.Empty(t, d.Feed([]byte{0x00}))
	out := d.Feed([]byte{0x84})
	assert.Equal(t, []ParityByte{{Byte: 0x84, Mark: true}}, out)
}

func TestParmrkDecoder_EscapedFFSplitAcrossFeeds(t *testing.T) {
	var d parmrkDecoder

	assert.Empty(t, d.Feed([]byte{0xFF}))
	out := d.Feed([]byte{0xFF, 0x02})
	assert.Equal(t, []ParityByte{{Byte: 0xFF}, {Byte: 0x02}}, out)
}
