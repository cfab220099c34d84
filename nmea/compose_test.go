package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
)

func TestComposer_EmptyFieldsUntilSeen(t *testing.T) {
	c := NewComposer("GP")

	line, ok := c.Update(message.SpeedOverGround{Knots: 5.2})
	require.True(t, ok)
	f, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "GPRMC", f.ID)
	assert.Equal(t, "", f.Fields[0]) // time not seen yet
	assert.Equal(t, "", f.Fields[2]) // lat not seen yet
	assert.Equal(t, "005.2", f.Fields[6])

	line, ok = c.Update(message.GmtTime{Hour: 10, Minute: 20, Second: 30})
	require.True(t, ok)
	f, err = ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "102030", f.Fields[0])
	assert.Equal(t, "005.2", f.Fields[6]) // previously seen SOG still present
}

func TestComposer_VHWBuildsIncrementally(t *testing.T) {
	c := NewComposer("II")

	line, ok := c.Update(message.SpeedThroughWater{Knots: 6.0})
	require.True(t, ok)
	f, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "IIVHW", f.ID)
	assert.Equal(t, "", f.Fields[0])
	assert.Equal(t, "6.00", f.Fields[4])

	line, ok = c.Update(message.Heading{TrueDeg: 90, HasTrue: true})
	require.True(t, ok)
	f, err = ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "90.0", f.Fields[0])
	assert.Equal(t, "T", f.Fields[1])
	assert.Equal(t, "6.00", f.Fields[4])
}

func TestComposer_UnrelatedMessageNotOK(t *testing.T) {
	c := NewComposer("II")
	_, ok := c.Update(message.SatelliteInfo{Count: 5})
	assert.False(t, ok)
}
