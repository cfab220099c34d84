package seatalk

import "github.com/arnegue/seatalk-mux/message"

// Framer produces one complete Datagram at a time from a byte stream,
// resyncing past unparseable bytes on its own. ParityFramer and
// HeuristicFramer both implement it; which one a device uses depends on
// whether its transport can surface parity bits (spec.md §4.2).
type Framer interface {
	// Next returns the next datagram, the number of bytes it had to
	// discard to find or recover the frame boundary, and errNeedMoreData
	// if the buffered data doesn't yet contain a complete frame.
	Next() (Datagram, int, error)
}

// Decoder pairs a Framer with Decode, so a device only has to feed bytes in
// and pull canonical messages out.
type Decoder struct {
	framer  Framer
	Lenient bool
}

func NewDecoder(framer Framer, lenient bool) *Decoder {
	return &Decoder{framer: framer, Lenient: lenient}
}

// Next returns the next decoded message set, the number of bytes discarded
// while resyncing to reach it, and an error. err is errNeedMoreData when the
// framer has no complete datagram buffered yet; callers should stop reading
// results and feed more bytes. Any other error is a decode failure for a
// complete, correctly-framed datagram (muxerr.ErrUnknownDatagramID or
// muxerr.ErrValidationError) — the datagram itself was still consumed.
func (d *Decoder) Next() ([]message.Message, int, error) {
	dg, discarded, err := d.framer.Next()
	if err != nil {
		return nil, discarded, err
	}
	msgs, err := Decode(dg, d.Lenient)
	return msgs, discarded, err
}
