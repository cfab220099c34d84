//go:build !linux

package main

import (
	"time"

	"github.com/arnegue/seatalk-mux/muxerr"
)

// setSystemClock has no portable implementation outside Linux in this
// module; it always reports muxerr.ErrPermissionDenied so SetTimeDevice's
// "lacking privilege" path (spec.md §4.3) is exercised uniformly rather
// than silently doing nothing.
func setSystemClock(time.Time) error {
	return muxerr.ErrPermissionDenied
}
