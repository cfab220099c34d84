package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
)

func TestNMEACodec_FeedAndDecode(t *testing.T) {
	c := NewNMEACodec("II")
	c.Feed([]byte("$IIMTW,21.5,C*15\r\n"), nil)

	msgs, discarded, needMore, err := c.Next()
	require.NoError(t, err)
	assert.False(t, needMore)
	assert.Equal(t, 0, discarded)
	require.Len(t, msgs, 1)
	wt, ok := msgs[0].(message.WaterTemperature)
	require.True(t, ok)
	assert.InDelta(t, 21.5, wt.Celsius, 1e-4)

	_, _, needMore, err = c.Next()
	assert.NoError(t, err)
	assert.True(t, needMore)
}

func TestNMEACodec_PartialLineNeedsMore(t *testing.T) {
	c := NewNMEACodec("II")
	c.Feed([]byte("$IIMTW,21.5"), nil)
	_, _, needMore, err := c.Next()
	assert.NoError(t, err)
	assert.True(t, needMore)
}

func TestNMEACodec_Encode(t *testing.T) {
	c := NewNMEACodec("II")
	data, parity, ok, err := c.Encode([]message.Message{message.WaterTemperature{Celsius: 21.5}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, parity)
	assert.Contains(t, string(data), "$IIMTW,21.5,C*")
}

func TestNMEACodec_EncodeUnsupportedKind(t *testing.T) {
	c := NewNMEACodec("II")
	_, _, ok, err := c.Encode([]message.Message{message.SatelliteInfo{Count: 6}})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSeatalkCodec_HeuristicDecode(t *testing.T) {
	c := NewSeatalkCodec(false, false)
	c.Feed([]byte{0x00, 0x02, 0x00, 0x64, 0x00, 0x10, 0x00, 0x64}, nil)

	msgs, _, needMore, err := c.Next()
	require.NoError(t, err)
	assert.False(t, needMore)
	require.Len(t, msgs, 1)
	d, ok := msgs[0].(message.DepthBelowTransducer)
	require.True(t, ok)
	assert.InDelta(t, 3.048, d.Meters, 1e-3)
}

func TestSeatalkCodec_Encode(t *testing.T) {
	c := NewSeatalkCodec(true, false)
	data, parity, ok, err := c.Encode([]message.Message{message.WaterTemperature{Celsius: 21.5}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x23, 0x01, 0x0B, 0x00}, data)
	require.Len(t, parity, len(data))
	assert.True(t, parity[0])
	assert.False(t, parity[1])
}

func TestSeatalkCodec_EncodeNoParityWithoutParityFramer(t *testing.T) {
	c := NewSeatalkCodec(false, false)
	_, parity, ok, err := c.Encode([]message.Message{message.WaterTemperature{Celsius: 21.5}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, parity)
}
