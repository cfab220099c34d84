package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
)

func TestDecodeRMC_S1ValidFix(t *testing.T) {
	f, err := ParseLine("$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n")
	require.NoError(t, err)

	msgs, err := decodeRMC(f)
	require.NoError(t, err)
	require.Len(t, msgs, 6)

	gmt := msgs[0].(message.GmtTime)
	assert.Equal(t, message.GmtTime{Hour: 12, Minute: 35, Second: 19}, gmt)

	pos := msgs[1].(message.Position)
	assert.InDelta(t, 48.1173, pos.LatDeg, 1e-3)
	assert.InDelta(t, 11.5167, pos.LonDeg, 1e-3)

	sog := msgs[2].(message.SpeedOverGround)
	assert.InDelta(t, 22.4, sog.Knots, 0.01)

	cog := msgs[3].(message.CourseOverGround)
	assert.InDelta(t, 84.4, cog.DegreesTrue, 0.01)

	date := msgs[4].(message.Date)
	assert.Equal(t, message.Date{Year: 94, Month: 3, Day: 23}, date)

	magvar := msgs[5].(message.MagneticVariation)
	assert.InDelta(t, -3.1, magvar.DegreesEast, 0.01)
}

func TestDecodeRMC_VoidFixEmitsNothing(t *testing.T) {
	f, err := ParseLine(Build("GPRMC", []string{"123519", "V", "", "", "", "", "", "", "230394", "", ""}))
	require.NoError(t, err)

	msgs, err := decodeRMC(f)
	require.NoError(t, err)
	assert.Nil(t, msgs)
}

func TestDecodeRMC_TooFewFields(t *testing.T) {
	f := Frame{ID: "GPRMC", Fields: []string{"123519", "A"}}
	_, err := decodeRMC(f)
	assert.Error(t, err)
}
