package transport

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/arnegue/seatalk-mux/muxerr"
)

// SeatalkSerial opens a raw serial device configured for Seatalk-1's 4800
// baud / 8 data bits, space-parity-checked line discipline and surfaces per-byte
// parity via Linux's PARMRK termios mode, so the Seatalk codec can run its
// parity-aware framer (spec.md §4.2, §9 "Parity surfacing"). tarm/serial
// has no knob for PARMRK, so this transport opens and configures the tty
// itself via golang.org/x/sys/unix rather than going through it.
type SeatalkSerial struct {
	Port string

	f       *os.File
	decoder parmrkDecoder
}

func NewSeatalkSerial(port string) *SeatalkSerial {
	return &SeatalkSerial{Port: port}
}

func (t *SeatalkSerial) Open(ctx context.Context) error {
	f, err := os.OpenFile(t.Port, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return fmt.Errorf("transport: open %s: %w", t.Port, err)
	}

	term, err := unix.IoctlGetTermios(int(f.Fd()), unix.TCGETS)
	if err != nil {
		f.Close()
		return fmt.Errorf("transport: get termios on %s: %w", t.Port, err)
	}

	term.Iflag &^= unix.IGNPAR | unix.IGNBRK | unix.ISTRIP
	term.Iflag |= unix.INPCK | unix.PARMRK
	term.Cflag &^= unix.CSIZE | unix.PARODD | unix.CBAUD
	term.Cflag |= unix.CS8 | unix.PARENB | unix.CMSPAR | unix.CLOCAL | unix.CREAD | unix.B4800
	term.Lflag = 0
	term.Oflag = 0
	term.Cc[unix.VMIN] = 0
	term.Cc[unix.VTIME] = 1 // 100ms read granularity
	if err := unix.IoctlSetTermios(int(f.Fd()), unix.TCSETS, term); err != nil {
		f.Close()
		return fmt.Errorf("transport: set termios on %s: %w", t.Port, err)
	}

	t.f = f
	return nil
}

func (t *SeatalkSerial) Close() error {
	if t.f == nil {
		return nil
	}
	return t.f.Close()
}

func (t *SeatalkSerial) Read(ctx context.Context) ([]byte, []bool, error) {
	buf := make([]byte, 256)
	n, err := t.f.Read(buf)
	if err != nil {
		return nil, nil, err
	}
	tagged := t.decoder.Feed(buf[:n])
	data := make([]byte, len(tagged))
	parity := make([]bool, len(tagged))
	for i, pb := range tagged {
		data[i] = pb.Byte
		parity[i] = pb.Mark
	}
	return data, parity, nil
}

// Write sets mark parity on the command byte of a Seatalk datagram, per
// byte, by temporarily reconfiguring parity on the tty before that byte and
// restoring it after. Real UART hardware cannot toggle parity per byte
// without a brief stall, so this degrades throughput and is only used for
// occasional writes (keystroke echo, autopilot commands). A parity slice
// whose length differs from data's is rejected with
// muxerr.ErrWriteParityDegraded before anything is written.
func (t *SeatalkSerial) Write(ctx context.Context, data []byte, parity []bool) (int, error) {
	if len(parity) == 0 {
		return t.f.Write(data)
	}
	if len(parity) != len(data) {
		return 0, fmt.Errorf("transport: %w: parity slice length mismatch", muxerr.ErrWriteParityDegraded)
	}
	written := 0
	for i, b := range data {
		if parity[i] {
			if err := t.setParity(unix.PARENB | unix.CMSPAR | unix.PARODD); err != nil {
				return written, err
			}
		}
		n, err := t.f.Write([]byte{b})
		written += n
		if err != nil {
			return written, err
		}
		if parity[i] {
			if err := t.setParity(unix.PARENB | unix.CMSPAR); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (t *SeatalkSerial) setParity(cflagParityBits uint32) error {
	term, err := unix.IoctlGetTermios(int(t.f.Fd()), unix.TCGETS)
	if err != nil {
		return err
	}
	term.Cflag &^= unix.PARENB | unix.PARODD
	term.Cflag |= cflagParityBits
	return unix.IoctlSetTermios(int(t.f.Fd()), unix.TCSETS, term)
}

func (t *SeatalkSerial) Flush() error {
	return unix.IoctlSetInt(int(t.f.Fd()), unix.TCFLSH, unix.TCIOFLUSH)
}
