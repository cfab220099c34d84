package seatalk

import (
	"fmt"
	"math"

	"github.com/arnegue/seatalk-mux/message"
)

// Encode is the inverse of Decode for every message kind the decoder can
// produce directly from a single datagram (i.e. every kind except the
// multi-datagram aggregates that the NMEA side composes from; those have no
// single-datagram Seatalk analogue and are not accepted here).
func Encode(m message.Message) (Datagram, error) {
	switch v := m.(type) {
	case message.DepthBelowTransducer:
		tenthsFt := round16(v.Meters / 0.3048 * 10)
		return mk(cmdDepth, 0, []byte{0, byte(tenthsFt), byte(tenthsFt >> 8)}), nil
	case message.ApparentWindAngle:
		raw := round16(v.Degrees0To360 * 2)
		return mk(cmdApparentWindAngle, 0, []byte{byte(raw), byte(raw >> 8)}), nil
	case message.ApparentWindSpeed:
		tenths := round16(v.Value * 10)
		return mk(cmdApparentWindSpeed, 0, []byte{byte(tenths), byte(tenths >> 8)}), nil
	case message.SpeedThroughWater:
		tenths := round16(v.Knots * 10)
		return mk(cmdSpeedThroughWater, 0, []byte{byte(tenths), byte(tenths >> 8)}), nil
	case message.TripMileage:
		raw := uint32(math.Round(float64(v.NauticalMiles) * 100))
		return mk(cmdTripMileage, 0, []byte{byte(raw), byte(raw >> 8), byte(raw >> 16)}), nil
	case message.TotalMileage:
		raw := round16(v.NauticalMiles * 10)
		return mk(cmdTotalMileage, 0, []byte{byte(raw), byte(raw >> 8)}), nil
	case message.WaterTemperature:
		offset := int8(math.Floor(float64(v.Celsius) - 10))
		return mk(cmdWaterTemperature, 0, []byte{byte(offset), 0}), nil
	case message.DisplayUnitMileageSpeed:
		var b byte
		switch v.Unit {
		case message.UnitStatuteMiles:
			b = 1
		case message.UnitKilometers:
			b = 2
		}
		return mk(cmdDisplayUnit, 0, []byte{b}), nil
	case message.LampIntensity:
		return mk(cmdLampIntensity, 0, []byte{v.Level & 0x03}), nil
	case message.CancelMOB:
		return mk(cmdCancelMOB, 0, []byte{0x01}), nil
	case message.ManOverBoard:
		return mk(cmdManOverBoard, 0, []byte{0x00}), nil
	case message.Latitude:
		return encodeLatLon(cmdLatitude, v.Deg), nil
	case message.Longitude:
		return encodeLatLon(cmdLongitude, v.Deg), nil
	case message.SpeedOverGround:
		tenths := round16(v.Knots * 10)
		return mk(cmdSOG, 0, []byte{byte(tenths), byte(tenths >> 8)}), nil
	case message.CourseOverGround:
		tenths := round16(v.DegreesTrue * 10)
		return mk(cmdCOG, 0, []byte{byte(tenths), byte(tenths >> 8)}), nil
	case message.GmtTime:
		return mk(cmdGMTTime, 0, []byte{v.Hour, v.Minute, v.Second}), nil
	case message.Keystroke:
		return mk(cmdKeystroke, 0, []byte{v.Code}), nil
	case message.Date:
		return mk(cmdDate, 0, []byte{v.Year, v.Month, v.Day}), nil
	case message.SatelliteInfo:
		return mk(cmdSatelliteInfo, 0, []byte{v.Count}), nil
	case message.Position:
		return encodePosition(v), nil
	case message.SetResponseLevel:
		return mk(cmdSetResponseLevel, 0, []byte{v.Level}), nil
	case message.RawSeatalkDatagram:
		data := make([]byte, len(v.Data))
		copy(data, v.Data)
		return Datagram{Command: v.Command, Attr: byte(len(data) - 1), Data: data}, nil
	default:
		return Datagram{}, fmt.Errorf("seatalk: no datagram encoding for %s", m.Kind())
	}
}

// round16 rounds a non-negative float to the nearest uint16, guarding
// against binary floating point making a plain truncating cast land one
// unit below the intended integer (e.g. 3.048/0.3048*10 landing at
// 9.999999999999998 instead of 10).
func round16(v float32) uint16 {
	return uint16(math.Round(float64(v)))
}

func mk(command, attrHigh byte, data []byte) Datagram {
	return Datagram{Command: command, Attr: (attrHigh & 0xF0) | byte(len(data)-1), Data: data}
}

func encodeLatLon(command byte, deg float64) Datagram {
	neg := deg < 0
	if neg {
		deg = -deg
	}
	whole := byte(deg)
	minutesHundredths := uint16(math.Round((deg - float64(whole)) * 60 * 100))
	var attrHigh byte
	if neg {
		attrHigh = 0x80
	}
	return mk(command, attrHigh, []byte{whole, byte(minutesHundredths), byte(minutesHundredths >> 8)})
}

func encodePosition(p message.Position) Datagram {
	latNeg := p.LatDeg < 0
	lat := p.LatDeg
	if latNeg {
		lat = -lat
	}
	lonNeg := p.LonDeg < 0
	lon := p.LonDeg
	if lonNeg {
		lon = -lon
	}
	latWhole := byte(lat)
	latMin := uint16(math.Round((lat - float64(latWhole)) * 60 * 100))
	lonWhole := byte(lon)
	lonMin := uint16(math.Round((lon - float64(lonWhole)) * 60 * 100))
	var flags byte
	if latNeg {
		flags |= 0x01
	}
	if lonNeg {
		flags |= 0x02
	}
	data := []byte{
		latWhole, byte(latMin), byte(latMin >> 8),
		lonWhole, byte(lonMin), byte(lonMin >> 8),
		flags,
	}
	return mk(cmdPosition, 0, data)
}
