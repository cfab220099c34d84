package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
)

func TestDecodeMWV(t *testing.T) {
	f, err := ParseLine(Build("WIMWV", []string{"045.0", "R", "12.3", "N", "A"}))
	require.NoError(t, err)

	msgs, err := decodeMWV(f)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	angle := msgs[0].(message.ApparentWindAngle)
	assert.InDelta(t, 45.0, angle.Degrees0To360, 0.01)
	assert.Equal(t, message.WindRelative, angle.Reference)

	speed := msgs[1].(message.ApparentWindSpeed)
	assert.InDelta(t, 12.3, speed.Value, 0.01)
	assert.Equal(t, message.UnitKnots, speed.Unit)
	assert.True(t, speed.StatusValid)
}

func TestDecodeMWV_VoidStatus(t *testing.T) {
	f, err := ParseLine(Build("WIMWV", []string{"045.0", "T", "12.3", "M", "V"}))
	require.NoError(t, err)
	msgs, err := decodeMWV(f)
	require.NoError(t, err)
	speed := msgs[1].(message.ApparentWindSpeed)
	assert.False(t, speed.StatusValid)
	assert.Equal(t, message.UnitMeterPerSecond, speed.Unit)
	assert.Equal(t, message.WindTrue, msgs[0].(message.ApparentWindAngle).Reference)
}
