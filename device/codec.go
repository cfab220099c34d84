package device

import (
	"bytes"
	"errors"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/nmea"
	"github.com/arnegue/seatalk-mux/seatalk"
)

// maxNMEALineBuffer bounds how much unterminated input nmeaCodec will hold
// before giving up and discarding it, mirroring seatalk.HeuristicFramer's
// maxHeuristicBuffer guard against a transport that never sends '\n'.
const maxNMEALineBuffer = 4096

// FamilyCodec adapts one wire protocol family to the push/pull shape
// Device's reader and writer loops need: feed newly read bytes in, pull
// decoded messages out one frame at a time, and encode a canonical message
// back to wire form for the writer to send.
type FamilyCodec interface {
	// Feed appends newly read bytes, and — for Seatalk's parity-aware mode
	// only — one parity bit per byte, to the codec's internal buffer.
	// parity is nil for every other transport.
	Feed(data []byte, parity []bool)

	// Next returns the next decoded message batch. needMore is true when
	// Feed must be called again before another frame is available, in
	// which case msgs and err are both nil. discarded counts bytes thrown
	// away resyncing to a frame boundary (always 0 for nmeaCodec). A
	// non-nil err with needMore false means a complete, correctly-framed
	// unit failed to decode (bad checksum, unknown datagram ID, or a
	// message that failed its validity invariant) — the caller should
	// count it and call Next again, since another frame may already be
	// buffered.
	Next() (msgs []message.Message, discarded int, needMore bool, err error)

	// Encode renders msgs — every message one Next() call produced,
	// together — to wire bytes (and, where the family's wire form carries
	// one, a parity bit per byte), so one wire unit in yields exactly one
	// wire unit out on a same-family edge (spec.md §8 Property 1). ok is
	// false when this family has no representation for any message in the
	// batch; that is not an error, the writer simply drops it for this
	// observer silently.
	Encode(msgs []message.Message) (data []byte, parity []bool, ok bool, err error)
}

// nmeaCodec implements FamilyCodec over NMEA-0183 ASCII lines.
type nmeaCodec struct {
	buf      []byte
	composer *nmea.Composer
}

// NewNMEACodec creates a FamilyCodec that decodes and composes NMEA-0183
// sentences stamped with the given 2-character talker ID.
func NewNMEACodec(talkerID string) FamilyCodec {
	return &nmeaCodec{composer: nmea.NewComposer(talkerID)}
}

func (c *nmeaCodec) Feed(data []byte, _ []bool) {
	c.buf = append(c.buf, data...)
}

func (c *nmeaCodec) Next() ([]message.Message, int, bool, error) {
	idx := bytes.IndexByte(c.buf, '\n')
	if idx == -1 {
		if len(c.buf) > maxNMEALineBuffer {
			c.buf = nil
		}
		return nil, 0, true, nil
	}
	line := string(c.buf[:idx+1])
	c.buf = c.buf[idx+1:]

	frame, err := nmea.ParseLine(line)
	if err != nil {
		return nil, 0, false, err
	}
	msgs, err := nmea.Decode(frame)
	return msgs, 0, false, err
}

func (c *nmeaCodec) Encode(msgs []message.Message) ([]byte, []bool, bool, error) {
	line, ok := c.composer.Encode(msgs)
	if !ok {
		return nil, nil, false, nil
	}
	return []byte(line), nil, true, nil
}

// seatalkCodec implements FamilyCodec over Seatalk-1 datagrams, using
// either the parity-aware or heuristic framer depending on whether the
// device's transport can surface per-byte parity (spec.md §4.2, §9).
type seatalkCodec struct {
	parityFramer    *seatalk.ParityFramer
	heuristicFramer *seatalk.HeuristicFramer
	decoder         *seatalk.Decoder
}

// NewSeatalkCodec creates a FamilyCodec for Seatalk-1. parityAware selects
// ParityFramer (for transport.SeatalkSerial, which surfaces parity bits)
// over HeuristicFramer (for every other transport). lenient gates the
// best-effort decode of datagram IDs spec.md's Open Question (a) marks as
// untested.
func NewSeatalkCodec(parityAware bool, lenient bool) FamilyCodec {
	c := &seatalkCodec{}
	if parityAware {
		c.parityFramer = seatalk.NewParityFramer()
		c.decoder = seatalk.NewDecoder(c.parityFramer, lenient)
	} else {
		c.heuristicFramer = seatalk.NewHeuristicFramer()
		c.decoder = seatalk.NewDecoder(c.heuristicFramer, lenient)
	}
	return c
}

func (c *seatalkCodec) Feed(data []byte, parity []bool) {
	if c.parityFramer != nil {
		pb := make([]seatalk.ParityByte, len(data))
		for i, b := range data {
			pb[i] = seatalk.ParityByte{Byte: b, Mark: i < len(parity) && parity[i]}
		}
		c.parityFramer.Feed(pb)
		return
	}
	c.heuristicFramer.Feed(data)
}

func (c *seatalkCodec) Next() ([]message.Message, int, bool, error) {
	msgs, discarded, err := c.decoder.Next()
	if errors.Is(err, seatalk.ErrNeedMoreData) {
		return nil, discarded, true, nil
	}
	return msgs, discarded, false, err
}

func (c *seatalkCodec) Encode(msgs []message.Message) ([]byte, []bool, bool, error) {
	var data []byte
	var parity []bool
	for _, msg := range msgs {
		dg, err := seatalk.Encode(msg)
		if err != nil {
			continue
		}
		frame := seatalk.BuildDatagram(dg.Command, dg.Attr&0xF0, dg.Data)
		if c.parityFramer != nil {
			fp := make([]bool, len(frame))
			fp[0] = true
			parity = append(parity, fp...)
		}
		data = append(data, frame...)
	}
	if len(data) == 0 {
		return nil, nil, false, nil
	}
	return data, parity, true, nil
}
