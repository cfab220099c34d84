package nmea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/nmea"
	"github.com/arnegue/seatalk-mux/seatalk"
)

// TestNMEAToSeatalk_S3 mirrors spec.md's S3 scenario end to end: an NMEA
// MTW line decodes to a canonical WaterTemperature, which re-encodes to the
// exact Seatalk datagram bytes spec.md gives.
func TestNMEAToSeatalk_S3(t *testing.T) {
	f, err := nmea.ParseLine(nmea.Build("IIMTW", []string{"21.5", "C"}))
	require.NoError(t, err)

	msgs, err := nmea.Decode(f)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	d, err := seatalk.Encode(msgs[0])
	require.NoError(t, err)
	assert.Equal(t, []byte{0x23, 0x01, 0x0B, 0x00}, seatalk.BuildDatagram(d.Command, d.Attr&0xF0, d.Data))
}
