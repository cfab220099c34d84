package nmea

import (
	"fmt"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// decodeVHW parses Water Speed and Heading.
// Fields: headingTrue,T,headingMag,M,speedKnots,N,speedKmh,K
func decodeVHW(f Frame) ([]message.Message, error) {
	if len(f.Fields) < 8 {
		return nil, fmt.Errorf("nmea: %w: VHW wants at least 8 fields, got %d", muxerr.ErrFramingError, len(f.Fields))
	}

	h := message.Heading{}
	if f.Fields[0] != "" {
		v, err := parseFloat(f.Fields[0])
		if err != nil {
			return nil, fmt.Errorf("nmea: %w: VHW true heading: %v", muxerr.ErrValidationError, err)
		}
		h.TrueDeg, h.HasTrue = float32(v), true
	}
	if f.Fields[2] != "" {
		v, err := parseFloat(f.Fields[2])
		if err != nil {
			return nil, fmt.Errorf("nmea: %w: VHW magnetic heading: %v", muxerr.ErrValidationError, err)
		}
		h.MagneticDeg, h.HasMagnetic = float32(v), true
	}

	knots, err := parseFloat(f.Fields[4])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: VHW speed: %v", muxerr.ErrValidationError, err)
	}
	stw := message.SpeedThroughWater{Knots: float32(knots)}
	if !stw.Valid() {
		return nil, fmt.Errorf("nmea: %w: VHW speed negative", muxerr.ErrValidationError)
	}

	return []message.Message{h, stw}, nil
}
