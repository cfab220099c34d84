package nmea

import (
	"fmt"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// decodeMTW parses Mean Water Temperature.
// Fields: celsius,C
func decodeMTW(f Frame) ([]message.Message, error) {
	if len(f.Fields) < 2 {
		return nil, fmt.Errorf("nmea: %w: MTW wants at least 2 fields, got %d", muxerr.ErrFramingError, len(f.Fields))
	}
	celsius, err := parseFloat(f.Fields[0])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: MTW celsius: %v", muxerr.ErrValidationError, err)
	}
	return []message.Message{message.WaterTemperature{Celsius: float32(celsius)}}, nil
}

func encodeMTW(talkerID string, m message.WaterTemperature) string {
	return Build(talkerID+"MTW", []string{fmt.Sprintf("%.1f", m.Celsius), "C"})
}
