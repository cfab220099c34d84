package nmea_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/nmea"
)

// TestNMEAToNMEA_S1 mirrors spec.md's S1 scenario end to end on a
// same-family edge: decoding an RMC line and re-encoding the whole batch it
// produced must reproduce the original line byte-for-byte (spec.md §8
// Property 1), rather than splitting into several progressively-filling
// lines the way per-message dispatch used to.
func TestNMEAToNMEA_S1(t *testing.T) {
	const line = "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n"

	f, err := nmea.ParseLine(line)
	require.NoError(t, err)

	msgs, err := nmea.Decode(f)
	require.NoError(t, err)
	require.Len(t, msgs, 6)

	c := nmea.NewComposer("GP")
	out, ok := c.Encode(msgs)
	require.True(t, ok)
	assert.Equal(t, line, out)
}

// TestNMEAToNMEA_S1VHW is the same round-trip property for VHW, whose
// decode also splits one sentence into more than one canonical message
// (Heading and SpeedThroughWater).
func TestNMEAToNMEA_S1VHW(t *testing.T) {
	const line = "$IIVHW,90.0,T,95.0,M,6.00,N,11.11,K*66\r\n"

	f, err := nmea.ParseLine(line)
	require.NoError(t, err)

	msgs, err := nmea.Decode(f)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	c := nmea.NewComposer("II")
	out, ok := c.Encode(msgs)
	require.True(t, ok)
	assert.Equal(t, line, out)
}
