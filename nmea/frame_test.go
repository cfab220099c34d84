package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

func TestParseLine_S1PassThrough(t *testing.T) {
	line := "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A\r\n"
	f, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "GPRMC", f.ID)
	assert.Equal(t, []string{"123519", "A", "4807.038", "N", "01131.000", "E", "022.4", "084.4", "230394", "003.1", "W"}, f.Fields)
}

func TestParseLine_S4BadChecksum(t *testing.T) {
	_, err := ParseLine("$IIMTW,21.5,C*00\r\n")
	assert.ErrorIs(t, err, muxerr.ErrChecksumMismatch)
}

func TestParseLine_MissingLeadingDelimiter(t *testing.T) {
	_, err := ParseLine("IIMTW,21.5,C*7C\r\n")
	assert.ErrorIs(t, err, muxerr.ErrFramingError)
}

func TestParseLine_MissingChecksumDelimiter(t *testing.T) {
	_, err := ParseLine("$IIMTW,21.5,C\r\n")
	assert.ErrorIs(t, err, muxerr.ErrFramingError)
}

func TestBuild_RoundTrips(t *testing.T) {
	line := Build("IIDBT", []string{"10.0", "f", "3.0", "M", "1.7", "F"})
	f, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "IIDBT", f.ID)
	assert.Equal(t, []string{"10.0", "f", "3.0", "M", "1.7", "F"}, f.Fields)
}

func TestDecode_UnknownSentenceRoundTripsRaw(t *testing.T) {
	line := Build("GPGGA", []string{"123519", "4807.038", "N", "01131.000", "E", "1", "08", "0.9", "545.4", "M", "46.9", "M", "", ""})
	f, err := ParseLine(line)
	require.NoError(t, err)
	msgs, err := Decode(f)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	raw, ok := msgs[0].(message.RawNmeaLine)
	require.True(t, ok)
	assert.Equal(t, f.Raw, raw.Bytes)
}

func TestDecode_S2Depth(t *testing.T) {
	f, err := ParseLine(Build("IIDBT", []string{"10.0", "f", "3.0", "M", "1.7", "F"}))
	require.NoError(t, err)
	msgs, err := Decode(f)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	depth := msgs[0].(message.DepthBelowTransducer)
	assert.InDelta(t, 3.0, depth.Meters, 0.01)
}
