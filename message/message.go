// Package message defines the canonical in-memory representation that
// flows between devices, independent of the wire family (NMEA-0183 or
// Seatalk-1) a value was decoded from or will be encoded to.
package message

import "time"

// Kind identifies which variant a Message value holds. The set is closed:
// adding a new kind of message requires adding a new variant type and a
// case everywhere Kind is switched on.
type Kind int

const (
	KindDepthBelowTransducer Kind = iota
	KindSpeedThroughWater
	KindWaterTemperature
	KindApparentWindAngle
	KindApparentWindSpeed
	KindTripMileage
	KindTotalMileage
	KindDisplayUnitMileageSpeed
	KindLampIntensity
	KindPosition
	KindLatitude
	KindLongitude
	KindSpeedOverGround
	KindCourseOverGround
	KindGmtTime
	KindDate
	KindSatelliteInfo
	KindKeystroke
	KindSetResponseLevel
	KindCancelMOB
	KindManOverBoard
	KindHeading
	KindMagneticVariation
	KindRawNmeaLine
	KindRawSeatalkDatagram
)

func (k Kind) String() string {
	switch k {
	case KindDepthBelowTransducer:
		return "DepthBelowTransducer"
	case KindSpeedThroughWater:
		return "SpeedThroughWater"
	case KindWaterTemperature:
		return "WaterTemperature"
	case KindApparentWindAngle:
		return "ApparentWindAngle"
	case KindApparentWindSpeed:
		return "ApparentWindSpeed"
	case KindTripMileage:
		return "TripMileage"
	case KindTotalMileage:
		return "TotalMileage"
	case KindDisplayUnitMileageSpeed:
		return "DisplayUnitMileageSpeed"
	case KindLampIntensity:
		return "LampIntensity"
	case KindPosition:
		return "Position"
	case KindLatitude:
		return "Latitude"
	case KindLongitude:
		return "Longitude"
	case KindSpeedOverGround:
		return "SpeedOverGround"
	case KindCourseOverGround:
		return "CourseOverGround"
	case KindGmtTime:
		return "GmtTime"
	case KindDate:
		return "Date"
	case KindSatelliteInfo:
		return "SatelliteInfo"
	case KindKeystroke:
		return "Keystroke"
	case KindSetResponseLevel:
		return "SetResponseLevel"
	case KindCancelMOB:
		return "CancelMOB"
	case KindManOverBoard:
		return "ManOverBoard"
	case KindHeading:
		return "Heading"
	case KindMagneticVariation:
		return "MagneticVariation"
	case KindRawNmeaLine:
		return "RawNmeaLine"
	case KindRawSeatalkDatagram:
		return "RawSeatalkDatagram"
	default:
		return "Unknown"
	}
}

// SpeedUnit is the unit an ApparentWindSpeed value is expressed in.
type SpeedUnit uint8

const (
	UnitKnots SpeedUnit = iota
	UnitMeterPerSecond
	// UnitKilometerPerHour supplements spec.md's {knots,m_s} pair: NMEA
	// MWV's wind-speed-unit field also allows 'K' (km/h), which the
	// distilled spec's enum omitted but a complete decoder must round-trip.
	UnitKilometerPerHour
)

// DisplayUnit is the unit configured on an instrument display.
type DisplayUnit uint8

const (
	UnitNauticalMiles DisplayUnit = iota
	UnitStatuteMiles
	UnitKilometers
)

// Message is implemented by every canonical message variant. The method
// set is deliberately minimal (a closed-interface tag) rather than a class
// hierarchy: callers type-switch on the concrete variant to reach fields.
type Message interface {
	Kind() Kind
	// Valid reports whether the message's fields fall within the
	// invariants spec.md §3 requires (angles normalized, latitudes/
	// longitudes bounded, knots non-negative). Decoders drop messages
	// that fail this check instead of emitting them.
	Valid() bool

	sealed()
}

type base struct{}

func (base) sealed() {}

// DepthBelowTransducer is the depth reading under the transducer.
type DepthBelowTransducer struct {
	base
	Meters float32
}

func (DepthBelowTransducer) Kind() Kind { return KindDepthBelowTransducer }
func (m DepthBelowTransducer) Valid() bool {
	return m.Meters >= 0
}

// SpeedThroughWater is boat speed relative to the water.
type SpeedThroughWater struct {
	base
	Knots float32
}

func (SpeedThroughWater) Kind() Kind    { return KindSpeedThroughWater }
func (m SpeedThroughWater) Valid() bool { return m.Knots >= 0 }

// WaterTemperature is the sea temperature at the transducer.
type WaterTemperature struct {
	base
	Celsius float32
}

func (WaterTemperature) Kind() Kind  { return KindWaterTemperature }
func (WaterTemperature) Valid() bool { return true }

// WindReference distinguishes a relative (apparent) wind reading from one
// already corrected to true wind. NMEA MWV carries this flag explicitly;
// Seatalk apparent-wind datagrams are always relative.
type WindReference uint8

const (
	WindRelative WindReference = iota
	WindTrue
)

// ApparentWindAngle is relative wind angle, normalized to [0, 360).
// Reference supplements spec.md's bullet field: MWV's R/T flag, needed to
// round-trip the sentence exactly (spec.md §4.1 lists it as a decoded
// field).
type ApparentWindAngle struct {
	base
	Degrees0To360 float32
	Reference     WindReference
}

func (ApparentWindAngle) Kind() Kind { return KindApparentWindAngle }
func (m ApparentWindAngle) Valid() bool {
	return m.Degrees0To360 >= 0 && m.Degrees0To360 < 360
}

// ApparentWindSpeed is relative wind speed in the given unit. Valid mirrors
// MWV's status field (A=valid/V=void), a supplement over the bullet
// definition for the same round-trip reason as Reference above.
type ApparentWindSpeed struct {
	base
	Value       float32
	Unit        SpeedUnit
	StatusValid bool
}

func (ApparentWindSpeed) Kind() Kind    { return KindApparentWindSpeed }
func (m ApparentWindSpeed) Valid() bool { return m.Value >= 0 }

// TripMileage is distance logged since the trip counter was last reset.
type TripMileage struct {
	base
	NauticalMiles float32
}

func (TripMileage) Kind() Kind    { return KindTripMileage }
func (m TripMileage) Valid() bool { return m.NauticalMiles >= 0 }

// TotalMileage is the lifetime distance log.
type TotalMileage struct {
	base
	NauticalMiles float32
}

func (TotalMileage) Kind() Kind    { return KindTotalMileage }
func (m TotalMileage) Valid() bool { return m.NauticalMiles >= 0 }

// DisplayUnitMileageSpeed reports the unit an instrument is configured to show.
type DisplayUnitMileageSpeed struct {
	base
	Unit DisplayUnit
}

func (DisplayUnitMileageSpeed) Kind() Kind  { return KindDisplayUnitMileageSpeed }
func (DisplayUnitMileageSpeed) Valid() bool { return true }

// LampIntensity is the backlight level of an instrument, 0-3.
type LampIntensity struct {
	base
	Level uint8
}

func (LampIntensity) Kind() Kind    { return KindLampIntensity }
func (m LampIntensity) Valid() bool { return m.Level <= 3 }

// Position is a combined lat/lon fix.
type Position struct {
	base
	LatDeg float64
	LonDeg float64
}

func (Position) Kind() Kind { return KindPosition }
func (m Position) Valid() bool {
	return m.LatDeg >= -90 && m.LatDeg <= 90 && m.LonDeg >= -180 && m.LonDeg < 180
}

// Latitude is a standalone latitude fix.
type Latitude struct {
	base
	Deg float64
}

func (Latitude) Kind() Kind    { return KindLatitude }
func (m Latitude) Valid() bool { return m.Deg >= -90 && m.Deg <= 90 }

// Longitude is a standalone longitude fix.
type Longitude struct {
	base
	Deg float64
}

func (Longitude) Kind() Kind    { return KindLongitude }
func (m Longitude) Valid() bool { return m.Deg >= -180 && m.Deg < 180 }

// SpeedOverGround is GPS-derived speed.
type SpeedOverGround struct {
	base
	Knots float32
}

func (SpeedOverGround) Kind() Kind    { return KindSpeedOverGround }
func (m SpeedOverGround) Valid() bool { return m.Knots >= 0 }

// CourseOverGround is GPS-derived true course.
type CourseOverGround struct {
	base
	DegreesTrue float32
}

func (CourseOverGround) Kind() Kind { return KindCourseOverGround }
func (m CourseOverGround) Valid() bool {
	return m.DegreesTrue >= 0 && m.DegreesTrue < 360
}

// GmtTime is a UTC time-of-day reading.
type GmtTime struct {
	base
	Hour, Minute, Second uint8
}

func (GmtTime) Kind() Kind { return KindGmtTime }
func (m GmtTime) Valid() bool {
	return m.Hour < 24 && m.Minute < 60 && m.Second < 60
}

// Date is a calendar date reading.
type Date struct {
	base
	Year, Month, Day uint8
}

func (Date) Kind() Kind { return KindDate }
func (m Date) Valid() bool {
	return m.Month >= 1 && m.Month <= 12 && m.Day >= 1 && m.Day <= 31
}

// SatelliteInfo is the number of satellites used in a fix.
type SatelliteInfo struct {
	base
	Count uint8
}

func (SatelliteInfo) Kind() Kind  { return KindSatelliteInfo }
func (SatelliteInfo) Valid() bool { return true }

// Keystroke is a button press relayed from a remote instrument.
type Keystroke struct {
	base
	Code uint8
}

func (Keystroke) Kind() Kind  { return KindKeystroke }
func (Keystroke) Valid() bool { return true }

// SetResponseLevel changes autopilot response level.
type SetResponseLevel struct {
	base
	Level uint8
}

func (SetResponseLevel) Kind() Kind  { return KindSetResponseLevel }
func (SetResponseLevel) Valid() bool { return true }

// CancelMOB cancels a previously raised man-overboard alarm.
type CancelMOB struct {
	base
}

func (CancelMOB) Kind() Kind  { return KindCancelMOB }
func (CancelMOB) Valid() bool { return true }

// ManOverBoard raises a man-overboard alarm.
type ManOverBoard struct {
	base
}

func (ManOverBoard) Kind() Kind  { return KindManOverBoard }
func (ManOverBoard) Valid() bool { return true }

// Heading is true and/or magnetic heading, as carried by NMEA VHW. Neither
// component is in spec.md's bullet list (it only names VHW's speed
// output); added here because VHW decodes both heading values as part of
// the same sentence and a complete codec must round-trip them.
type Heading struct {
	base
	TrueDeg     float32
	HasTrue     bool
	MagneticDeg float32
	HasMagnetic bool
}

func (Heading) Kind() Kind  { return KindHeading }
func (Heading) Valid() bool { return true }

// MagneticVariation is RMC's magvar field: local magnetic variation, degrees
// east positive (the same sign convention Position uses for hemisphere),
// present only when the source sentence actually carried a value.
type MagneticVariation struct {
	base
	DegreesEast float32
}

func (MagneticVariation) Kind() Kind { return KindMagneticVariation }
func (m MagneticVariation) Valid() bool {
	return m.DegreesEast >= -180 && m.DegreesEast <= 180
}

// RawNmeaLine is the fallback for any NMEA sentence identifier with no
// typed parser. The original bytes, including the checksum, round-trip
// verbatim.
type RawNmeaLine struct {
	base
	Bytes string
}

func (RawNmeaLine) Kind() Kind  { return KindRawNmeaLine }
func (RawNmeaLine) Valid() bool { return true }

// RawSeatalkDatagram is the fallback for a recognized Seatalk command byte
// whose attribute length matches a known shape but which has no fully
// typed canonical field layout in this module (either a peripheral ID
// with no spec-given numeric encoding, or one of the IDs spec.md's Open
// Question (a) marks as untested in the original implementation). It
// round-trips the command byte and raw data bytes verbatim.
type RawSeatalkDatagram struct {
	base
	Command byte
	Data    []byte
}

func (RawSeatalkDatagram) Kind() Kind  { return KindRawSeatalkDatagram }
func (RawSeatalkDatagram) Valid() bool { return true }

// Envelope wraps every Message one decoded wire unit produced — a whole
// NMEA sentence's components, or a single Seatalk datagram's — with the
// monotonic timestamp it was placed into an observer's queue at, used for
// age-based expiry (spec.md §4.5). Keeping a decode batch together lets the
// writer encode it back out as one atomic wire unit instead of one line per
// component (spec.md §8 Property 1).
type Envelope struct {
	Payload    []Message
	EnqueuedAt time.Time
}
