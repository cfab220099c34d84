package nmea

import (
	"fmt"

	"github.com/arnegue/seatalk-mux/message"
)

// rmcFields accumulates the components of one RMC sentence. It backs both
// Composer's persistent cross-family state and the throwaway local state
// Encode uses for a same-family batch.
type rmcFields struct {
	haveTime             bool
	hour, minute, second uint8

	havePos        bool
	latDeg, lonDeg float64

	haveSOG bool
	sog     float32

	haveCOG bool
	cog     float32

	haveDate         bool
	year, month, day uint8

	haveMagVar bool
	magVarEast float32
}

// applyRMC folds msg into f if msg is one of RMC's component kinds,
// reporting whether it did.
func applyRMC(f *rmcFields, msg message.Message) bool {
	switch m := msg.(type) {
	case message.GmtTime:
		f.haveTime, f.hour, f.minute, f.second = true, m.Hour, m.Minute, m.Second
	case message.Position:
		f.havePos, f.latDeg, f.lonDeg = true, m.LatDeg, m.LonDeg
	case message.SpeedOverGround:
		f.haveSOG, f.sog = true, m.Knots
	case message.CourseOverGround:
		f.haveCOG, f.cog = true, m.DegreesTrue
	case message.Date:
		f.haveDate, f.year, f.month, f.day = true, m.Year, m.Month, m.Day
	case message.MagneticVariation:
		f.haveMagVar, f.magVarEast = true, m.DegreesEast
	default:
		return false
	}
	return true
}

func (f rmcFields) build(talkerID string) string {
	fields := make([]string, 11)
	if f.haveTime {
		fields[0] = fmt.Sprintf("%02d%02d%02d", f.hour, f.minute, f.second)
	}
	fields[1] = "A"
	if f.havePos {
		fields[2], fields[3] = formatLatLon(f.latDeg, 2, "N", "S")
		fields[4], fields[5] = formatLatLon(f.lonDeg, 3, "E", "W")
	}
	if f.haveSOG {
		fields[6] = fmt.Sprintf("%05.1f", f.sog)
	}
	if f.haveCOG {
		fields[7] = fmt.Sprintf("%05.1f", f.cog)
	}
	if f.haveDate {
		fields[8] = fmt.Sprintf("%02d%02d%02d", f.day, f.month, f.year)
	}
	if f.haveMagVar {
		v, hemi := f.magVarEast, "E"
		if v < 0 {
			v, hemi = -v, "W"
		}
		fields[9] = fmt.Sprintf("%05.1f", v)
		fields[10] = hemi
	}
	return Build(talkerID+"RMC", fields)
}

// vhwFields accumulates the components of one VHW sentence.
type vhwFields struct {
	haveHeading bool
	heading     message.Heading

	haveSTW bool
	stw     message.SpeedThroughWater
}

func applyVHW(f *vhwFields, msg message.Message) bool {
	switch m := msg.(type) {
	case message.Heading:
		f.haveHeading, f.heading = true, m
	case message.SpeedThroughWater:
		f.haveSTW, f.stw = true, m
	default:
		return false
	}
	return true
}

func (f vhwFields) build(talkerID string) string {
	fields := make([]string, 8)
	if f.haveHeading {
		if f.heading.HasTrue {
			fields[0] = fmt.Sprintf("%.1f", f.heading.TrueDeg)
			fields[1] = "T"
		}
		if f.heading.HasMagnetic {
			fields[2] = fmt.Sprintf("%.1f", f.heading.MagneticDeg)
			fields[3] = "M"
		}
	}
	if f.haveSTW {
		fields[4] = fmt.Sprintf("%.2f", f.stw.Knots)
		fields[5] = "N"
		fields[6] = fmt.Sprintf("%.2f", f.stw.Knots*1.852)
		fields[7] = "K"
	}
	return Build(talkerID+"VHW", fields)
}

// mwvFields accumulates the components of one MWV sentence.
type mwvFields struct {
	haveWindAngle bool
	windAngle     message.ApparentWindAngle

	haveWindSpeed bool
	windSpeed     message.ApparentWindSpeed
}

func applyMWV(f *mwvFields, msg message.Message) bool {
	switch m := msg.(type) {
	case message.ApparentWindAngle:
		f.haveWindAngle, f.windAngle = true, m
	case message.ApparentWindSpeed:
		f.haveWindSpeed, f.windSpeed = true, m
	default:
		return false
	}
	return true
}

func (f mwvFields) build(talkerID string) string {
	fields := make([]string, 4)
	if f.haveWindAngle {
		fields[0] = fmt.Sprintf("%.1f", f.windAngle.Degrees0To360)
		if f.windAngle.Reference == message.WindTrue {
			fields[1] = "T"
		} else {
			fields[1] = "R"
		}
	}
	status := "V"
	if f.haveWindSpeed {
		fields[2] = fmt.Sprintf("%.1f", f.windSpeed.Value)
		switch f.windSpeed.Unit {
		case message.UnitMeterPerSecond:
			fields[3] = "M"
		case message.UnitKilometerPerHour:
			fields[3] = "K"
		default:
			fields[3] = "N"
		}
		if f.windSpeed.StatusValid {
			status = "A"
		}
	}
	return Build(talkerID+"MWV", append(fields, status))
}

// Composer assembles RMC/VHW/MWV lines from canonical messages that arrive
// one physical quantity at a time (e.g. from a Seatalk observer edge, where
// latitude/longitude/SOG/COG/time/date are separate datagrams). Composer is
// not safe for concurrent use; each Device owns one.
type Composer struct {
	talkerID string

	rmc rmcFields
	vhw vhwFields
	mwv mwvFields
}

// NewComposer creates a Composer that stamps built sentences with the
// given 2-character talker ID (e.g. "GP", "II").
func NewComposer(talkerID string) *Composer {
	return &Composer{talkerID: talkerID}
}

// Update feeds one canonical message in, folding it into this Composer's
// running state and immediately re-emitting the sentence it belongs to,
// using empty fields for any quantity not yet seen — the cross-family
// assembly case spec.md §4.1 describes ("fields absent from the source
// message are encoded as empty strings"). Use Encode instead when every
// component of a sentence is already available together.
func (c *Composer) Update(msg message.Message) (line string, ok bool) {
	switch {
	case applyRMC(&c.rmc, msg):
		return c.rmc.build(c.talkerID), true
	case applyVHW(&c.vhw, msg):
		return c.vhw.build(c.talkerID), true
	case applyMWV(&c.mwv, msg):
		return c.mwv.build(c.talkerID), true
	}
	return encodeSelfContained(c.talkerID, msg)
}

// Encode renders msgs — every message one Decode() call produced — as the
// single wire line that set of components describes, so a same-family edge
// reproduces the original sentence byte-for-byte (spec.md §8 Property 1)
// instead of one line per component. A single-message batch, the shape a
// cross-family edge always hands in, behaves exactly like Update.
func (c *Composer) Encode(msgs []message.Message) (line string, ok bool) {
	if len(msgs) == 1 {
		return c.Update(msgs[0])
	}

	var rmc rmcFields
	var vhw vhwFields
	var mwv mwvFields
	var sawRMC, sawVHW, sawMWV bool

	for _, msg := range msgs {
		switch {
		case applyRMC(&rmc, msg):
			sawRMC = true
		case applyVHW(&vhw, msg):
			sawVHW = true
		case applyMWV(&mwv, msg):
			sawMWV = true
		default:
			if l, ok := encodeSelfContained(c.talkerID, msg); ok {
				return l, true
			}
		}
	}

	switch {
	case sawRMC:
		return rmc.build(c.talkerID), true
	case sawVHW:
		return vhw.build(c.talkerID), true
	case sawMWV:
		return mwv.build(c.talkerID), true
	}
	return "", false
}

// encodeSelfContained builds the wire line for a message that needs no
// aggregation: DepthBelowTransducer, WaterTemperature and RawNmeaLine.
func encodeSelfContained(talkerID string, msg message.Message) (string, bool) {
	switch m := msg.(type) {
	case message.DepthBelowTransducer:
		return encodeDBT(talkerID, m), true
	case message.WaterTemperature:
		return encodeMTW(talkerID, m), true
	case message.RawNmeaLine:
		return m.Bytes + "\r\n", true
	default:
		return "", false
	}
}

func formatLatLon(dec float64, degreeDigits int, posHemi, negHemi string) (value, hemi string) {
	hemi = posHemi
	if dec < 0 {
		hemi = negHemi
		dec = -dec
	}
	deg := int(dec)
	min := (dec - float64(deg)) * 60
	format := fmt.Sprintf("%%0%dd%%06.3f", degreeDigits)
	return fmt.Sprintf(format, deg, min), hemi
}

// Encode builds the wire line for a self-contained message (one that needs
// no aggregation): DepthBelowTransducer, WaterTemperature and RawNmeaLine.
// Anything that is part of a multi-field sentence (RMC, VHW, MWV) must go
// through a Composer instead, since spec.md §4.1 requires missing fields
// to be rendered as empty strings rather than omitting the sentence.
func Encode(talkerID string, msg message.Message) (string, error) {
	if line, ok := encodeSelfContained(talkerID, msg); ok {
		return line, nil
	}
	return "", fmt.Errorf("nmea: %w: %s", errUnsupportedEncode, msg.Kind())
}

var errUnsupportedEncode = fmt.Errorf("no NMEA builder registered for this message")
