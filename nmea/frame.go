// Package nmea implements the NMEA-0183 line protocol: ASCII sentence
// framing, checksum validation, and typed parsers/builders for the
// sentence identifiers spec.md §4.1 names (RMC, VHW, DBT, MTW, MWV).
// Unknown sentence identifiers round-trip as message.RawNmeaLine.
package nmea

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// Frame is one decoded NMEA-0183 line: its talker+sentence identifier, the
// comma-delimited fields between '$'/'!' and '*', and the raw line bytes it
// was parsed from (needed to round-trip unknown sentence identifiers
// byte-for-byte, per spec.md §4.1).
type Frame struct {
	ID     string // 5 uppercase chars, e.g. "GPRMC"
	Fields []string
	Raw    string // full line, without trailing \r\n
}

// Checksum computes the XOR of every byte between '$'/'!' (exclusive) and
// '*' (exclusive), per spec.md §4.1.
func Checksum(body string) uint8 {
	var c uint8
	for i := 0; i < len(body); i++ {
		c ^= body[i]
	}
	return c
}

// Decoder reads sentences from a byte stream, one per call to Next.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder wraps r for sentence-at-a-time decoding.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next reads up to the next '\n', validates framing and checksum, and
// returns the parsed Frame. Malformed framing yields muxerr.ErrFramingError;
// a checksum mismatch yields muxerr.ErrChecksumMismatch. Both are sentinel
// errors the caller (Device's reader loop) counts and otherwise ignores
// before resuming at the next line.
func (d *Decoder) Next() (Frame, error) {
	line, err := d.r.ReadString('\n')
	if err != nil {
		if line == "" {
			return Frame{}, err
		}
		// last line in stream with no trailing newline: still try to parse it.
	}
	return ParseLine(line)
}

// ParseLine validates and decodes a single line (with or without trailing
// \r\n, per spec.md §6 "decoder accepts either").
func ParseLine(line string) (Frame, error) {
	line = strings.TrimRight(line, "\r\n")
	if len(line) < 1 || (line[0] != '$' && line[0] != '!') {
		return Frame{}, fmt.Errorf("nmea: %w: missing leading '$' or '!'", muxerr.ErrFramingError)
	}

	star := strings.LastIndexByte(line, '*')
	if star == -1 || star+3 > len(line) {
		return Frame{}, fmt.Errorf("nmea: %w: missing checksum delimiter", muxerr.ErrFramingError)
	}

	body := line[1:star]
	wantHex := line[star+1 : star+3]
	var want uint8
	if _, err := fmt.Sscanf(wantHex, "%02X", &want); err != nil {
		return Frame{}, fmt.Errorf("nmea: %w: bad checksum digits %q", muxerr.ErrFramingError, wantHex)
	}

	if got := Checksum(body); got != want {
		return Frame{}, fmt.Errorf("nmea: %w: got %02X want %02X", muxerr.ErrChecksumMismatch, got, want)
	}

	fields := strings.Split(body, ",")
	if len(fields) == 0 || len(fields[0]) != 5 {
		return Frame{}, fmt.Errorf("nmea: %w: identifier field %q is not 5 chars", muxerr.ErrFramingError, fields[0])
	}

	return Frame{
		ID:     fields[0],
		Fields: fields[1:],
		Raw:    line,
	}, nil
}

// Build assembles a line from a talker+sentence ID and already-formatted
// fields, appending the checksum and \r\n terminator. Emitted lines always
// include \r\n (spec.md §6).
func Build(id string, fields []string) string {
	body := id
	if len(fields) > 0 {
		body += "," + strings.Join(fields, ",")
	}
	return fmt.Sprintf("$%s*%02X\r\n", body, Checksum(body))
}

// Decode converts a Frame into zero or more canonical message.Message
// values. DBT and MTW decode to exactly one; VHW (heading, speed) and MWV
// (angle, speed) decode to two; RMC bundles several distinct physical
// quantities (time, fix, SOG, COG, date, and magvar when present) and
// decodes to one message per quantity (spec.md §4.3's "for each output
// message" phrasing), dropping all of them when status is void ('V') so that only
// status=A sentences can ever reach SetTimeDevice (spec.md §4.3).
// Sentence identifiers with no typed parser below decode to a single
// message.RawNmeaLine, preserving Frame.Raw verbatim.
func Decode(f Frame) ([]message.Message, error) {
	if len(f.ID) != 5 {
		return nil, fmt.Errorf("nmea: %w: identifier %q is not 5 chars", muxerr.ErrFramingError, f.ID)
	}
	switch f.ID[2:] {
	case "RMC":
		return decodeRMC(f)
	case "VHW":
		return decodeVHW(f)
	case "DBT":
		return decodeDBT(f)
	case "MTW":
		return decodeMTW(f)
	case "MWV":
		return decodeMWV(f)
	default:
		return []message.Message{message.RawNmeaLine{Bytes: f.Raw}}, nil
	}
}
