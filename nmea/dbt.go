package nmea

import (
	"fmt"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// decodeDBT parses Depth Below Transducer.
// Fields: feet,f,meters,M,fathoms,F
func decodeDBT(f Frame) ([]message.Message, error) {
	if len(f.Fields) < 5 {
		return nil, fmt.Errorf("nmea: %w: DBT wants at least 5 fields, got %d", muxerr.ErrFramingError, len(f.Fields))
	}
	meters, err := parseFloat(f.Fields[2])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: DBT meters: %v", muxerr.ErrValidationError, err)
	}
	m := message.DepthBelowTransducer{Meters: float32(meters)}
	if !m.Valid() {
		return nil, fmt.Errorf("nmea: %w: DBT negative depth", muxerr.ErrValidationError)
	}
	return []message.Message{m}, nil
}

// encodeDBT builds DBT from canonical meters, deriving feet and fathoms —
// pure unit conversions of the same value, so no information is lost
// going the other direction.
func encodeDBT(talkerID string, m message.DepthBelowTransducer) string {
	feet := m.Meters * 3.28084
	fathoms := m.Meters * 0.546807
	return Build(talkerID+"DBT", []string{
		fmt.Sprintf("%.1f", feet), "f",
		fmt.Sprintf("%.1f", m.Meters), "M",
		fmt.Sprintf("%.1f", fathoms), "F",
	})
}
