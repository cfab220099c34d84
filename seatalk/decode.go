package seatalk

import (
	"fmt"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// Decode turns one parsed Datagram into zero or more canonical messages.
// Most IDs produce exactly one message; a few that have no typed field
// layout (peripheralIDs) or that are gated behind Lenient produce a
// RawSeatalkDatagram instead. Unrecognized command bytes are reported as
// muxerr.ErrUnknownDatagramID.
func Decode(d Datagram, lenient bool) ([]message.Message, error) {
	if !knownIDs[d.Command] {
		return nil, fmt.Errorf("seatalk: %w: command 0x%02X", muxerr.ErrUnknownDatagramID, d.Command)
	}
	if untestedIDs[d.Command] {
		if !lenient {
			return nil, fmt.Errorf("seatalk: %w: command 0x%02X is untested and Lenient is off", muxerr.ErrUnknownDatagramID, d.Command)
		}
		return []message.Message{rawDatagram(d)}, nil
	}
	if peripheralIDs[d.Command] {
		return []message.Message{rawDatagram(d)}, nil
	}

	switch d.Command {
	case cmdDepth:
		return decodeDepth(d)
	case cmdEquipmentID:
		return []message.Message{rawDatagram(d)}, nil
	case cmdApparentWindAngle:
		return decodeWindAngle(d)
	case cmdApparentWindSpeed:
		return decodeWindSpeed(d)
	case cmdSpeedThroughWater, cmdSpeedThroughWater2:
		return decodeSTW(d)
	case cmdTripMileage:
		return decodeTripMileage(d)
	case cmdTotalMileage:
		return decodeTotalMileage(d)
	case cmdWaterTemperature:
		return decodeWaterTemp(d)
	case cmdWaterTemperature2:
		return decodeWaterTemp2(d)
	case cmdDisplayUnit:
		return decodeDisplayUnit(d)
	case cmdLampIntensity, cmdLampIntensity2:
		return decodeLampIntensity(d)
	case cmdCancelMOB:
		return []message.Message{message.CancelMOB{}}, nil
	case cmdLatitude:
		return decodeLatitude(d)
	case cmdLongitude:
		return decodeLongitude(d)
	case cmdSOG:
		return decodeSOG(d)
	case cmdCOG:
		return decodeCOG(d)
	case cmdGMTTime:
		return decodeGMTTime(d)
	case cmdKeystroke, cmdKeystroke2:
		return decodeKeystroke(d)
	case cmdDate:
		return decodeDate(d)
	case cmdSatelliteInfo:
		return decodeSatelliteInfo(d)
	case cmdPosition:
		return decodePosition(d)
	case cmdManOverBoard:
		return []message.Message{message.ManOverBoard{}}, nil
	case cmdSetResponseLevel:
		return decodeResponseLevel(d)
	default:
		return []message.Message{rawDatagram(d)}, nil
	}
}

func rawDatagram(d Datagram) message.RawSeatalkDatagram {
	data := make([]byte, len(d.Data))
	copy(data, d.Data)
	return message.RawSeatalkDatagram{Command: d.Command, Data: data}
}

func requireLen(d Datagram, n int) error {
	if len(d.Data) != n {
		return fmt.Errorf("seatalk: %w: command 0x%02X wants %d data bytes, got %d", muxerr.ErrFramingError, d.Command, n, len(d.Data))
	}
	return nil
}

func validationErr(d Datagram, why string) error {
	return fmt.Errorf("seatalk: %w: command 0x%02X: %s", muxerr.ErrValidationError, d.Command, why)
}

func decodeDepth(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 3); err != nil {
		return nil, err
	}
	tenthsFt := uint16(d.Data[1]) | uint16(d.Data[2])<<8
	m := message.DepthBelowTransducer{Meters: float32(tenthsFt) / 10 * 0.3048}
	if !m.Valid() {
		return nil, validationErr(d, "negative depth")
	}
	return []message.Message{m}, nil
}

func decodeWindAngle(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	raw := uint16(d.Data[0]) | uint16(d.Data[1])<<8
	m := message.ApparentWindAngle{Degrees0To360: normalize360(float32(raw) / 2), Reference: message.WindRelative}
	if !m.Valid() {
		return nil, validationErr(d, "angle out of range")
	}
	return []message.Message{m}, nil
}

func decodeWindSpeed(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	tenthsKt := uint16(d.Data[0]) | uint16(d.Data[1])<<8
	m := message.ApparentWindSpeed{Value: float32(tenthsKt) / 10, Unit: message.UnitKnots, StatusValid: true}
	if !m.Valid() {
		return nil, validationErr(d, "negative speed")
	}
	return []message.Message{m}, nil
}

// decodeSTW handles both 0x20 (plain) and 0x26 (speed + extra trip/log
// bytes this codec does not model); only the leading speed field is read.
func decodeSTW(d Datagram) ([]message.Message, error) {
	if len(d.Data) < 2 {
		return nil, fmt.Errorf("seatalk: %w: command 0x%02X wants at least 2 data bytes, got %d", muxerr.ErrFramingError, d.Command, len(d.Data))
	}
	tenthsKt := uint16(d.Data[0]) | uint16(d.Data[1])<<8
	m := message.SpeedThroughWater{Knots: float32(tenthsKt) / 10}
	if !m.Valid() {
		return nil, validationErr(d, "negative speed")
	}
	return []message.Message{m}, nil
}

func decodeTripMileage(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 3); err != nil {
		return nil, err
	}
	raw := uint32(d.Data[0]) | uint32(d.Data[1])<<8 | uint32(d.Data[2]&0x0F)<<16
	m := message.TripMileage{NauticalMiles: float32(raw) / 100}
	if !m.Valid() {
		return nil, validationErr(d, "negative trip mileage")
	}
	return []message.Message{m}, nil
}

func decodeTotalMileage(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	raw := uint16(d.Data[0]) | uint16(d.Data[1])<<8
	m := message.TotalMileage{NauticalMiles: float32(raw) / 10}
	if !m.Valid() {
		return nil, validationErr(d, "negative total mileage")
	}
	return []message.Message{m}, nil
}

func decodeWaterTemp(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	m := message.WaterTemperature{Celsius: 10 + float32(int8(d.Data[0]))}
	return []message.Message{m}, nil
}

func decodeWaterTemp2(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	raw := int16(uint16(d.Data[0]) | uint16(d.Data[1])<<8)
	m := message.WaterTemperature{Celsius: float32(raw) / 10}
	return []message.Message{m}, nil
}

func decodeDisplayUnit(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 1); err != nil {
		return nil, err
	}
	var unit message.DisplayUnit
	switch d.Data[0] {
	case 1:
		unit = message.UnitStatuteMiles
	case 2:
		unit = message.UnitKilometers
	default:
		unit = message.UnitNauticalMiles
	}
	return []message.Message{message.DisplayUnitMileageSpeed{Unit: unit}}, nil
}

func decodeLampIntensity(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 1); err != nil {
		return nil, err
	}
	m := message.LampIntensity{Level: d.Data[0] & 0x03}
	return []message.Message{m}, nil
}

func decodeLatitude(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 3); err != nil {
		return nil, err
	}
	deg := float64(d.Data[0])
	minutesHundredths := uint16(d.Data[1]) | uint16(d.Data[2])<<8
	value := deg + float64(minutesHundredths)/100/60
	if d.Attr&0x80 != 0 {
		value = -value
	}
	m := message.Latitude{Deg: value}
	if !m.Valid() {
		return nil, validationErr(d, "latitude out of range")
	}
	return []message.Message{m}, nil
}

func decodeLongitude(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 3); err != nil {
		return nil, err
	}
	deg := float64(d.Data[0])
	minutesHundredths := uint16(d.Data[1]) | uint16(d.Data[2])<<8
	value := deg + float64(minutesHundredths)/100/60
	if d.Attr&0x80 != 0 {
		value = -value
	}
	m := message.Longitude{Deg: value}
	if !m.Valid() {
		return nil, validationErr(d, "longitude out of range")
	}
	return []message.Message{m}, nil
}

func decodeSOG(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	tenthsKt := uint16(d.Data[0]) | uint16(d.Data[1])<<8
	m := message.SpeedOverGround{Knots: float32(tenthsKt) / 10}
	if !m.Valid() {
		return nil, validationErr(d, "negative speed")
	}
	return []message.Message{m}, nil
}

func decodeCOG(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 2); err != nil {
		return nil, err
	}
	tenthsDeg := uint16(d.Data[0]) | uint16(d.Data[1])<<8
	m := message.CourseOverGround{DegreesTrue: normalize360(float32(tenthsDeg) / 10)}
	if !m.Valid() {
		return nil, validationErr(d, "course out of range")
	}
	return []message.Message{m}, nil
}

func decodeGMTTime(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 3); err != nil {
		return nil, err
	}
	m := message.GmtTime{Hour: d.Data[0], Minute: d.Data[1], Second: d.Data[2]}
	if !m.Valid() {
		return nil, validationErr(d, "time out of range")
	}
	return []message.Message{m}, nil
}

func decodeKeystroke(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 1); err != nil {
		return nil, err
	}
	return []message.Message{message.Keystroke{Code: d.Data[0]}}, nil
}

func decodeDate(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 3); err != nil {
		return nil, err
	}
	m := message.Date{Year: d.Data[0], Month: d.Data[1], Day: d.Data[2]}
	if !m.Valid() {
		return nil, validationErr(d, "date out of range")
	}
	return []message.Message{m}, nil
}

func decodeSatelliteInfo(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 1); err != nil {
		return nil, err
	}
	return []message.Message{message.SatelliteInfo{Count: d.Data[0]}}, nil
}

func decodePosition(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 7); err != nil {
		return nil, err
	}
	latDeg := float64(d.Data[0])
	latMinHundredths := uint16(d.Data[1]) | uint16(d.Data[2])<<8
	lat := latDeg + float64(latMinHundredths)/100/60
	lonDeg := float64(d.Data[3])
	lonMinHundredths := uint16(d.Data[4]) | uint16(d.Data[5])<<8
	lon := lonDeg + float64(lonMinHundredths)/100/60
	flags := d.Data[6]
	if flags&0x01 != 0 {
		lat = -lat
	}
	if flags&0x02 != 0 {
		lon = -lon
	}
	m := message.Position{LatDeg: lat, LonDeg: lon}
	if !m.Valid() {
		return nil, validationErr(d, "position out of range")
	}
	return []message.Message{m}, nil
}

func decodeResponseLevel(d Datagram) ([]message.Message, error) {
	if err := requireLen(d, 1); err != nil {
		return nil, err
	}
	return []message.Message{message.SetResponseLevel{Level: d.Data[0]}}, nil
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
