package device

import (
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/muxerr"
)

// SetSystemClock sets the host's wall clock to t. Production wiring points
// this at settimeofday on Linux; the hardware (RTC) clock is not set.
// Tests inject a fake to observe calls without touching the real clock.
type SetSystemClock func(t time.Time) error

// NewSetTimeDevice creates the observer-only device that sets the system
// clock exactly once, from the first complete (time, date) pair it
// receives from any observed edge — NMEA RMC with status=A or Seatalk's
// 0x54/0x56 pair both decode to the same message.GmtTime/message.Date
// values, so this device is family-agnostic (spec.md §4.3's "additionally
// accepts Seatalk 0x54/0x56... used only when no NMEA RMC has yet set the
// clock" reduces, since both sources feed the same canonical types, to
// "first complete pair wins, from whichever source it arrives").
// setClock failing with muxerr.ErrPermissionDenied is logged once, per
// spec.md §4.3, and every later message is then silently ignored.
func NewSetTimeDevice(name string, setClock SetSystemClock, logger *log.Logger) *Device {
	return NewSetTimeDeviceWithCallback(name, setClock, nil, logger)
}

// NewSetTimeDeviceWithCallback is NewSetTimeDevice plus onDenied, invoked
// once if setClock ever fails with muxerr.ErrPermissionDenied. cmd/ wires
// this to report the CLI's exit code 3 (spec.md §6) for the privileged
// feature that could not run, without making the whole process exit
// non-zero on every unprivileged dry run.
func NewSetTimeDeviceWithCallback(name string, setClock SetSystemClock, onDenied func(), logger *log.Logger) *Device {
	s := &setTimeState{setClock: setClock, logger: logger, name: name, onDenied: onDenied}
	return &Device{
		Name:         name,
		observerOnly: true,
		onMessage:    s.onMessage,
	}
}

type setTimeState struct {
	name     string
	setClock SetSystemClock
	logger   *log.Logger

	mu sync.Mutex

	haveTime             bool
	hour, minute, second uint8

	haveDate         bool
	year, month, day uint8

	done           bool
	permissionDeny bool
	onDenied       func()
}

func (s *setTimeState) onMessage(msgs []message.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done || s.permissionDeny {
		return
	}

	for _, msg := range msgs {
		switch m := msg.(type) {
		case message.GmtTime:
			s.haveTime, s.hour, s.minute, s.second = true, m.Hour, m.Minute, m.Second
		case message.Date:
			s.haveDate, s.year, s.month, s.day = true, m.Year, m.Month, m.Day
		}
	}

	if !s.haveTime || !s.haveDate {
		return
	}

	t := time.Date(2000+int(s.year), time.Month(s.month), int(s.day), int(s.hour), int(s.minute), int(s.second), 0, time.UTC)
	if err := s.setClock(t); err != nil {
		if s.logger != nil {
			s.logger.Error("set system clock", "device", s.name, "err", err)
		}
		if errors.Is(err, muxerr.ErrPermissionDenied) {
			s.permissionDeny = true
			if s.onDenied != nil {
				s.onDenied()
			}
		}
		return
	}
	s.done = true
	if s.logger != nil {
		s.logger.Info("set system clock", "device", s.name, "time", t)
	}
}
