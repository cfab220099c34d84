// Package supervisor tracks the liveness of every device task (spec.md
// §4.6) and pets a hardware or software watchdog only while all of them
// are current, so that a wedged or dead task eventually lets the
// watchdog trip a system reset instead of leaving the process running
// half-dead.
package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arnegue/seatalk-mux/metrics"
)

// Watchdog abstracts the platform-specific device the Supervisor pets.
// Linux backs this with /dev/watchdog ioctls (watchdog_linux.go); other
// platforms get a no-op stub (watchdog_other.go). Tests inject a fake.
type Watchdog interface {
	// Open arms the watchdog with the given timeout. Called once before
	// the pet loop starts.
	Open(timeout time.Duration) error
	// Pet resets the watchdog's internal countdown.
	Pet() error
	// Close sends the magic "clean shutdown" sequence and releases the
	// device, so a deliberate process exit does not trigger a reset.
	Close() error
}

// AliveFunc is handed to a device's Run call; invoking it records "this
// device's task made forward progress just now".
type AliveFunc func()

// Supervisor owns one Watchdog and the last-alive timestamps of every
// device task registered with Track.
type Supervisor struct {
	Timeout   time.Duration // T in spec.md §4.6; default 16s
	MaxResets uint

	watchdog Watchdog
	logger   *log.Logger
	persist  func(resets uint) error

	// Counters, when set, is logged as a snapshot on every pet tick
	// (spec.md §7: "exposed via a metrics.Counters snapshot ... logged
	// periodically by the supervisor"). Keyed by device name.
	Counters map[string]*metrics.Counters

	mu             sync.Mutex
	lastAlive      map[string]time.Time
	previousResets uint
	startedAt      time.Time
}

// New creates a Supervisor. previousResets is the Watchdog.PreviousResets
// value loaded from config.json; persist is called with the incremented
// count every time the watchdog is (re)armed, and must itself perform the
// open->write->fsync->rename durable write spec.md §9 requires.
func New(wd Watchdog, timeout time.Duration, maxResets uint, previousResets uint, persist func(resets uint) error, logger *log.Logger) *Supervisor {
	if timeout <= 0 {
		timeout = 16 * time.Second
	}
	return &Supervisor{
		Timeout:        timeout,
		MaxResets:      maxResets,
		watchdog:       wd,
		logger:         logger,
		persist:        persist,
		lastAlive:      map[string]time.Time{},
		previousResets: previousResets,
	}
}

// Track registers a device under name and returns the AliveFunc to pass
// into its Run call. Safe to call before or after Run starts.
func (s *Supervisor) Track(name string) AliveFunc {
	s.mu.Lock()
	s.lastAlive[name] = time.Now()
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		s.lastAlive[name] = time.Now()
		s.mu.Unlock()
	}
}

// allFresh reports whether every tracked device's last-alive timestamp is
// younger than s.Timeout, as of now.
func (s *Supervisor) allFresh(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, t := range s.lastAlive {
		if now.Sub(t) >= s.Timeout {
			s.logError("device task stalled", "device", name)
			return false
		}
	}
	return true
}

// StartedAt is when Run armed the watchdog, or the zero Time if Run has
// not armed it (not yet called, no watchdog, or the bootloop guard held).
// cmd/seatalk-mux does not consult it.
func (s *Supervisor) StartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startedAt
}

// Run pets the watchdog at T/2 intervals for as long as every tracked
// device remains fresh, and blocks until ctx is cancelled. Bootloop
// avoidance (spec.md §4.6): if previousResets is already >= MaxResets,
// Run logs the condition and never arms the watchdog at all.
func (s *Supervisor) Run(ctx context.Context) error {
	armed := false
	if s.watchdog != nil {
		s.mu.Lock()
		resets := s.previousResets
		s.mu.Unlock()

		if resets >= s.MaxResets {
			if s.logger != nil {
				s.logger.Warn("watchdog not armed: previous resets at or above max", "previousResets", resets, "maxResets", s.MaxResets)
			}
		} else if err := s.arm(); err != nil {
			return err
		} else {
			armed = true
			defer func() {
				if err := s.watchdog.Close(); err != nil && s.logger != nil {
					s.logger.Error("watchdog close", "err", err)
				}
			}()
		}
	}

	ticker := time.NewTicker(s.Timeout / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.logCounters()
			if !armed {
				continue
			}
			if !s.allFresh(time.Now()) {
				continue // withhold the pet; a stuck task gets the system reset
			}
			if err := s.watchdog.Pet(); err != nil {
				s.logError("watchdog pet", "err", err)
			}
		}
	}
}

func (s *Supervisor) logCounters() {
	if s.logger == nil {
		return
	}
	for name, c := range s.Counters {
		snap := c.Snapshot()
		s.logger.Info("counters", "device", name,
			"checksumMismatch", snap.ChecksumMismatch,
			"framingError", snap.FramingError,
			"unknownDatagramID", snap.UnknownDatagramID,
			"validationError", snap.ValidationError,
			"overflowDropped", snap.OverflowDropped,
			"expiredDropped", snap.ExpiredDropped,
			"heuristicResync", snap.HeuristicResync,
		)
	}
}

// arm persists the incremented reset counter before opening the watchdog
// device, per spec.md §9's "Watchdog persistence race" note: the counter
// must survive a reboot that happens mid-arm, or the bootloop guard is
// lost.
func (s *Supervisor) arm() error {
	s.mu.Lock()
	next := s.previousResets + 1
	s.mu.Unlock()

	if s.persist != nil {
		if err := s.persist(next); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.previousResets = next
	s.startedAt = time.Now()
	s.mu.Unlock()

	return s.watchdog.Open(s.Timeout)
}

func (s *Supervisor) logError(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Error(msg, args...)
}
