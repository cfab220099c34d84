// Package muxerr holds the sentinel errors from the taxonomy in spec.md §7,
// shared by the nmea and seatalk codecs, the transport layer and devices.
// Decode errors are never propagated out of a codec; they exist so callers
// can errors.Is/errors.As against a stable set of values while counting them.
package muxerr

import "errors"

// Decode errors (spec.md §7): counted, logged, never propagated further
// than the device's reader loop.
var (
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrFramingError      = errors.New("framing error")
	ErrUnknownDatagramID = errors.New("unknown seatalk datagram id")
	ErrValidationError   = errors.New("message failed validation")
)

// Transport errors (spec.md §7): trigger reconnection with backoff, except
// ErrPermissionDenied which is fatal for the feature it was raised from.
var (
	ErrTransportClosed     = errors.New("transport closed")
	ErrTransportTimeout    = errors.New("transport timeout")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrWriteParityDegraded = errors.New("transport cannot set per-byte parity on write")
)

// ErrUnknownDevice is a config error: an observer list names a device that
// was not defined. Fatal at startup (spec.md §7, exit code 1).
var ErrUnknownDevice = errors.New("unknown device referenced")
