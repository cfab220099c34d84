// Package metrics holds the counted-but-not-propagated error classes from
// spec.md §7: decode errors, queue overflow and expiry drops. None of these
// are returned to a caller, they are only observable through these counters.
package metrics

import "sync/atomic"

// Counters is a set of per-device (or per-edge) atomic counters. The zero
// value is ready to use.
type Counters struct {
	ChecksumMismatch  atomic.Uint64
	FramingError      atomic.Uint64
	UnknownDatagramID atomic.Uint64
	ValidationError   atomic.Uint64
	OverflowDropped   atomic.Uint64
	ExpiredDropped    atomic.Uint64
	HeuristicResync   atomic.Uint64
}

// Snapshot is a point-in-time, non-atomic copy of Counters suitable for
// logging or JSON encoding.
type Snapshot struct {
	ChecksumMismatch  uint64
	FramingError      uint64
	UnknownDatagramID uint64
	ValidationError   uint64
	OverflowDropped   uint64
	ExpiredDropped    uint64
	HeuristicResync   uint64
}

// Snapshot reads every counter's current value.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		ChecksumMismatch:  c.ChecksumMismatch.Load(),
		FramingError:      c.FramingError.Load(),
		UnknownDatagramID: c.UnknownDatagramID.Load(),
		ValidationError:   c.ValidationError.Load(),
		OverflowDropped:   c.OverflowDropped.Load(),
		ExpiredDropped:    c.ExpiredDropped.Load(),
		HeuristicResync:   c.HeuristicResync.Load(),
	}
}
