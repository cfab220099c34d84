package transport

// ParityByte pairs a byte read off the wire with whether it carried mark
// (rather than space) parity, mirroring seatalk.ParityByte for transports
// that can observe hardware parity directly.
type ParityByte struct {
	Byte byte
	Mark bool
}

// parmrkDecoder unescapes a PARMRK-encoded byte stream (Linux termios,
// INPCK|PARMRK): an erroneous (parity or framing error) byte arrives as the
// three-byte sequence 0xFF 0x00 <byte>, and a literal 0xFF in the data
// arrives doubled as 0xFF 0xFF. Seatalk-1 intentionally transmits its
// command byte with the "wrong" parity so it shows up here as a marked
// byte; every other byte passes straight through unmarked. pending buffers
// a 0xFF (and, if seen, the following 0x00) split across Feed calls so the
// escape sequence isn't missed at a read boundary.
type parmrkDecoder struct {
	pending []byte
}

// Feed decodes newly read raw bytes into parity-tagged bytes.
func (d *parmrkDecoder) Feed(raw []byte) []ParityByte {
	buf := append(d.pending, raw...)
	d.pending = nil

	out := make([]ParityByte, 0, len(buf))
	i := 0
	for i < len(buf) {
		if buf[i] != 0xFF {
			out = append(out, ParityByte{Byte: buf[i]})
			i++
			continue
		}
		// buf[i] == 0xFF: need to see the next byte to know what this means.
		if i+1 >= len(buf) {
			d.pending = []byte{buf[i]}
			break
		}
		if buf[i+1] == 0xFF {
			// escaped literal 0xFF
			out = append(out, ParityByte{Byte: 0xFF})
			i += 2
			continue
		}
		if buf[i+1] != 0x00 {
			// malformed sequence; treat the 0xFF as literal and resync at i+1
			out = append(out, ParityByte{Byte: 0xFF})
			i++
			continue
		}
		// buf[i:i+2] == 0xFF 0x00, the marked byte follows
		if i+2 >= len(buf) {
			d.pending = []byte{buf[i], buf[i+1]}
			break
		}
		out = append(out, ParityByte{Byte: buf[i+2], Mark: true})
		i += 3
	}
	return out
}
