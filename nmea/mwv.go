package nmea

import (
	"fmt"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// decodeMWV parses Wind Speed and Angle.
// Fields: angle,R/T,speed,unit(K/M/N),status(A/V)
func decodeMWV(f Frame) ([]message.Message, error) {
	if len(f.Fields) < 5 {
		return nil, fmt.Errorf("nmea: %w: MWV wants at least 5 fields, got %d", muxerr.ErrFramingError, len(f.Fields))
	}

	angleDeg, err := parseFloat(f.Fields[0])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: MWV angle: %v", muxerr.ErrValidationError, err)
	}
	ref := message.WindRelative
	if f.Fields[1] == "T" {
		ref = message.WindTrue
	}
	angle := message.ApparentWindAngle{Degrees0To360: normalize360(float32(angleDeg)), Reference: ref}
	if !angle.Valid() {
		return nil, fmt.Errorf("nmea: %w: MWV angle out of range", muxerr.ErrValidationError)
	}

	speedVal, err := parseFloat(f.Fields[2])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: MWV speed: %v", muxerr.ErrValidationError, err)
	}
	var unit message.SpeedUnit
	switch f.Fields[3] {
	case "M":
		unit = message.UnitMeterPerSecond
	case "K":
		unit = message.UnitKilometerPerHour
	default:
		unit = message.UnitKnots
	}
	speed := message.ApparentWindSpeed{Value: float32(speedVal), Unit: unit, StatusValid: f.Fields[4] == "A"}
	if !speed.Valid() {
		return nil, fmt.Errorf("nmea: %w: MWV speed negative", muxerr.ErrValidationError)
	}

	return []message.Message{angle, speed}, nil
}
