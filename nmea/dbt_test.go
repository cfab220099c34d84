package nmea

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegue/seatalk-mux/message"
)

func TestEncodeDBT_S2(t *testing.T) {
	line := encodeDBT("II", message.DepthBelowTransducer{Meters: 3.048})
	f, err := ParseLine(line)
	require.NoError(t, err)
	assert.Equal(t, "IIDBT", f.ID)
	assert.Equal(t, "10.0", f.Fields[0])
	assert.Equal(t, "3.0", f.Fields[2])
	assert.Equal(t, "1.7", f.Fields[4])
}

func TestDecodeDBT_NegativeRejected(t *testing.T) {
	f := Frame{ID: "IIDBT", Fields: []string{"-1.0", "f", "-0.3", "M", "-0.2", "F"}}
	_, err := decodeDBT(f)
	assert.Error(t, err)
}
