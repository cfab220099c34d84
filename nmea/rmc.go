package nmea

import (
	"fmt"
	"strconv"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// decodeRMC parses the Recommended Minimum Navigation sentence. magvar and
// its hemisphere (fields 9 and 10) are optional trailing fields some
// receivers omit; when present they decode to a message.MagneticVariation
// so the sentence can round-trip it rather than silently dropping it.
// Fields: time,status,lat,N/S,lon,E/W,sog,cog,date,magvar,E/W[,mode]
func decodeRMC(f Frame) ([]message.Message, error) {
	if len(f.Fields) < 9 {
		return nil, fmt.Errorf("nmea: %w: RMC wants at least 9 fields, got %d", muxerr.ErrFramingError, len(f.Fields))
	}

	status := f.Fields[1]
	if status != "A" {
		// Void fix: spec.md §4.3 requires only status=A sentences to ever
		// reach SetTimeDevice, so nothing is emitted for a void RMC.
		return nil, nil
	}

	hh, mm, ss, err := parseHHMMSS(f.Fields[0])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: RMC time %q: %v", muxerr.ErrValidationError, f.Fields[0], err)
	}

	lat, err := parseLatLon(f.Fields[2], f.Fields[3], 2)
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: RMC latitude: %v", muxerr.ErrValidationError, err)
	}
	lon, err := parseLatLon(f.Fields[4], f.Fields[5], 3)
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: RMC longitude: %v", muxerr.ErrValidationError, err)
	}

	sog, err := parseFloat(f.Fields[6])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: RMC SOG: %v", muxerr.ErrValidationError, err)
	}
	cog, err := parseFloat(f.Fields[7])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: RMC COG: %v", muxerr.ErrValidationError, err)
	}

	yy, mo, dd, err := parseDDMMYY(f.Fields[8])
	if err != nil {
		return nil, fmt.Errorf("nmea: %w: RMC date %q: %v", muxerr.ErrValidationError, f.Fields[8], err)
	}

	msgs := []message.Message{
		message.GmtTime{Hour: hh, Minute: mm, Second: ss},
		message.Position{LatDeg: lat, LonDeg: lon},
		message.SpeedOverGround{Knots: float32(sog)},
		message.CourseOverGround{DegreesTrue: normalize360(float32(cog))},
		message.Date{Year: yy, Month: mo, Day: dd},
	}

	if len(f.Fields) > 10 && f.Fields[9] != "" {
		mv, err := parseMagVar(f.Fields[9], f.Fields[10])
		if err != nil {
			return nil, fmt.Errorf("nmea: %w: RMC magnetic variation: %v", muxerr.ErrValidationError, err)
		}
		msgs = append(msgs, mv)
	}

	for _, m := range msgs {
		if !m.Valid() {
			return nil, fmt.Errorf("nmea: %w: RMC component %s out of range", muxerr.ErrValidationError, m.Kind())
		}
	}
	return msgs, nil
}

func parseMagVar(value, hemisphere string) (message.MagneticVariation, error) {
	v, err := parseFloat(value)
	if err != nil {
		return message.MagneticVariation{}, err
	}
	deg := float32(v)
	switch hemisphere {
	case "W":
		deg = -deg
	case "E", "":
	default:
		return message.MagneticVariation{}, fmt.Errorf("unknown hemisphere %q", hemisphere)
	}
	return message.MagneticVariation{DegreesEast: deg}, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseHHMMSS(s string) (hh, mm, ss uint8, err error) {
	if len(s) < 6 {
		return 0, 0, 0, fmt.Errorf("too short")
	}
	h, err := strconv.Atoi(s[0:2])
	if err != nil {
		return 0, 0, 0, err
	}
	m, err := strconv.Atoi(s[2:4])
	if err != nil {
		return 0, 0, 0, err
	}
	sec, err := strconv.Atoi(s[4:6])
	if err != nil {
		return 0, 0, 0, err
	}
	return uint8(h), uint8(m), uint8(sec), nil
}

func parseDDMMYY(s string) (yy, mm, dd uint8, err error) {
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("too short")
	}
	d, err := strconv.Atoi(s[0:2])
	if err != nil {
		return 0, 0, 0, err
	}
	mo, err := strconv.Atoi(s[2:4])
	if err != nil {
		return 0, 0, 0, err
	}
	y, err := strconv.Atoi(s[4:6])
	if err != nil {
		return 0, 0, 0, err
	}
	return uint8(y), uint8(mo), uint8(d), nil
}

// parseLatLon decodes NMEA's ddmm.mmmm / dddmm.mmmm form (degreeDigits is
// 2 for latitude, 3 for longitude) with a trailing N/S or E/W hemisphere
// letter, returning signed decimal degrees.
func parseLatLon(value, hemisphere string, degreeDigits int) (float64, error) {
	if value == "" {
		return 0, nil
	}
	if len(value) < degreeDigits+1 {
		return 0, fmt.Errorf("value %q too short", value)
	}
	deg, err := strconv.Atoi(value[:degreeDigits])
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(value[degreeDigits:], 64)
	if err != nil {
		return 0, err
	}
	dec := float64(deg) + min/60
	switch hemisphere {
	case "S", "W":
		dec = -dec
	case "N", "E", "":
	default:
		return 0, fmt.Errorf("unknown hemisphere %q", hemisphere)
	}
	return dec, nil
}

func normalize360(deg float32) float32 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}
