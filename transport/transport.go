// Package transport implements the byte-stream I/O primitives devices read
// from and write to: TCP client/server sockets, plain files, serial ports,
// stdout, and an already-open io.ReadWriteCloser. Transports that can
// surface per-byte parity (SeatalkSerial) return one parity flag per byte
// from Read, so the Seatalk codec can run its parity-aware framer instead
// of the heuristic one.
package transport

import "context"

// Transport is the capability set every device_io variant implements
// (spec.md §4.4). Open/Close bound the transport's lifetime; a Device owns
// exactly one and is responsible for closing it on every error and
// cancellation path.
type Transport interface {
	Open(ctx context.Context) error
	Close() error

	// Read blocks until at least one byte is available or ctx is done. It
	// returns the bytes read and, only for transports that can surface it,
	// one parity bit per byte in the same slice position.
	Read(ctx context.Context) (data []byte, parity []bool, err error)

	// Write sends data, optionally requesting mark parity on corresponding
	// bytes (used only by SeatalkSerial to mark a Seatalk command byte).
	// Transports that cannot honor per-byte parity ignore the parity
	// argument and the caller is responsible for warning
	// (muxerr.ErrWriteParityDegraded).
	Write(ctx context.Context, data []byte, parity []bool) (int, error)

	Flush() error
}
