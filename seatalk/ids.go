package seatalk

// Command bytes this codec understands. Names follow the Thomas Knauf
// Seatalk reference cited by spec.md; numeric field layouts for the IDs
// with no worked example in spec.md are this module's own consistent
// convention rather than a verified reproduction of the original hardware
// encoding — see DESIGN.md.
const (
	cmdDepth              byte = 0x00
	cmdEquipmentID        byte = 0x01
	cmdApparentWindAngle  byte = 0x10
	cmdApparentWindSpeed  byte = 0x11
	cmdSpeedThroughWater  byte = 0x20
	cmdSpeedThroughWater2 byte = 0x26
	cmdTripMileage        byte = 0x21
	cmdTotalMileage       byte = 0x22
	cmdWaterTemperature   byte = 0x23
	cmdWaterTemperature2  byte = 0x27
	cmdDisplayUnit        byte = 0x24
	cmdTotalTripLog       byte = 0x25
	cmdLampIntensity      byte = 0x30
	cmdLampIntensity2     byte = 0x80
	cmdCancelMOB          byte = 0x36
	cmdCodeLock           byte = 0x38
	cmdLatitude           byte = 0x50
	cmdLongitude          byte = 0x51
	cmdSOG                byte = 0x52
	cmdCOG                byte = 0x53
	cmdGMTTime            byte = 0x54
	cmdKeystroke          byte = 0x55
	cmdKeystroke2         byte = 0x86
	cmdDate               byte = 0x56
	cmdSatelliteInfo      byte = 0x57
	cmdPosition           byte = 0x58
	cmdCountdownTimer     byte = 0x59
	cmdE80Init            byte = 0x61
	cmdSelectFathom       byte = 0x65
	cmdWindAlarm          byte = 0x66
	cmdAlarmAckKeystroke  byte = 0x68
	cmdEquipmentID2       byte = 0x6C
	cmdManOverBoard       byte = 0x6E
	cmdCourseComputer     byte = 0x81
	cmdSetResponseLevel   byte = 0x87
	cmdDeviceID           byte = 0x90
	cmdRudderGain         byte = 0x91
	cmdAPSetup            byte = 0x93
	cmdMagneticVariation  byte = 0x99
	cmdDeviceIDBroadcast  byte = 0xA4
)

// untestedIDs lists the command bytes spec.md's Open Question (a) notes as
// untested in the original implementation. Decoded only when Lenient is set
// on the Decoder; otherwise treated the same as an unknown ID.
var untestedIDs = map[byte]bool{
	cmdCodeLock:          true,
	cmdCountdownTimer:    true,
	cmdE80Init:           true,
	cmdSelectFathom:      true,
	cmdWindAlarm:         true,
	cmdAlarmAckKeystroke: true,
	cmdAPSetup:           true,
}

// knownIDs is every command byte this codec recognizes, used by the
// heuristic framer to validate a candidate datagram boundary when no parity
// information is available.
var knownIDs = map[byte]bool{
	cmdDepth: true, cmdEquipmentID: true,
	cmdApparentWindAngle: true, cmdApparentWindSpeed: true,
	cmdSpeedThroughWater: true, cmdSpeedThroughWater2: true,
	cmdTripMileage: true, cmdTotalMileage: true,
	cmdWaterTemperature: true, cmdWaterTemperature2: true,
	cmdDisplayUnit: true, cmdTotalTripLog: true,
	cmdLampIntensity: true, cmdLampIntensity2: true,
	cmdCancelMOB: true, cmdCodeLock: true,
	cmdLatitude: true, cmdLongitude: true,
	cmdSOG: true, cmdCOG: true,
	cmdGMTTime: true, cmdKeystroke: true, cmdKeystroke2: true,
	cmdDate: true, cmdSatelliteInfo: true, cmdPosition: true,
	cmdCountdownTimer: true, cmdE80Init: true, cmdSelectFathom: true,
	cmdWindAlarm: true, cmdAlarmAckKeystroke: true,
	cmdEquipmentID2: true, cmdManOverBoard: true,
	cmdCourseComputer: true, cmdSetResponseLevel: true,
	cmdDeviceID: true, cmdRudderGain: true, cmdAPSetup: true,
	cmdMagneticVariation: true, cmdDeviceIDBroadcast: true,
}

// peripheralIDs are recognized command bytes with no spec-given numeric
// field layout; they always decode to message.RawSeatalkDatagram regardless
// of the Lenient flag (unlike untestedIDs, they're not being deliberately
// suppressed — there's simply no typed representation for them yet).
var peripheralIDs = map[byte]bool{
	cmdEquipmentID:       true,
	cmdTotalTripLog:      true,
	cmdEquipmentID2:      true,
	cmdCourseComputer:    true,
	cmdDeviceID:          true,
	cmdRudderGain:        true,
	cmdMagneticVariation: true,
	cmdDeviceIDBroadcast: true,
}
