//go:build linux

package main

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/arnegue/seatalk-mux/muxerr"
)

// setSystemClock sets the host wall clock via settimeofday(2), per
// spec.md §4.3/§6's "platform-specific system-time setting" contract.
// Requires CAP_SYS_TIME; lacking it surfaces as muxerr.ErrPermissionDenied
// so SetTimeDevice can log it once and stop trying, per spec.md §4.3.
func setSystemClock(t time.Time) error {
	tv := unix.Timeval{
		Sec:  int64(t.Unix()),
		Usec: int64(t.Nanosecond() / 1000),
	}
	if err := unix.Settimeofday(&tv); err != nil {
		if errors.Is(err, unix.EPERM) {
			return muxerr.ErrPermissionDenied
		}
		return fmt.Errorf("settimeofday: %w", err)
	}
	return nil
}
