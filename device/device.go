// Package device implements the long-lived reader/writer pair bound to one
// transport and one codec family (spec.md §4.3), the bounded per-observer
// dispatch queue (spec.md §4.5), and the two special observer-only devices
// spec.md and its expansion call out: SetTimeDevice and LogDevice.
package device

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arnegue/seatalk-mux/internal/utils"
	"github.com/arnegue/seatalk-mux/message"
	"github.com/arnegue/seatalk-mux/metrics"
	"github.com/arnegue/seatalk-mux/muxerr"
	"github.com/arnegue/seatalk-mux/transport"
)

const (
	defaultMaxItemAge = 30 * time.Second
	minBackoff        = time.Second
	maxBackoff        = 30 * time.Second
)

// Options configures a Device's dispatch and flush behavior (spec.md §4.3).
type Options struct {
	// AutoFlush is the number of written messages between explicit
	// transport flushes; 0 means flush after every message.
	AutoFlush uint32
	// MaxItemAge is how long a queued item may age before the writer
	// drops it unsent. Zero means "unset", in which case the spec.md
	// default of 30s applies.
	MaxItemAge time.Duration
	// QueueCapacity is the observer queue's bound; zero means the
	// spec.md default of 100.
	QueueCapacity int
	// DebugLogRawBytes logs every raw read at debug level, control
	// characters escaped, mirroring the teacher's DebugLogRawMessageBytes
	// knob. Off by default; noisy on a busy bus.
	DebugLogRawBytes bool
}

func (o Options) maxItemAge() time.Duration {
	if o.MaxItemAge == 0 {
		return defaultMaxItemAge
	}
	return o.MaxItemAge
}

// Device binds one transport to one codec family and fans the messages it
// decodes out to its configured observers. Construct with New,
// NewSetTimeDevice, or NewLogDevice; the zero value is not usable.
type Device struct {
	Name      string
	Transport transport.Transport
	Codec     FamilyCodec
	Observers []*Device
	Options   Options
	Counters  *metrics.Counters
	RawLog    io.Writer // nil unless this device logs raw bytes, per spec.md §6.2
	Logger    *log.Logger

	queue        *boundedQueue
	observerOnly bool
	onMessage    func([]message.Message) // overrides normal decode->enqueue fan-out; used by SetTimeDevice
}

// New creates a Device that reads tr through codec and fans decoded
// messages out to observers.
func New(name string, tr transport.Transport, codec FamilyCodec, observers []*Device, opts Options, counters *metrics.Counters, logger *log.Logger) *Device {
	return &Device{
		Name:      name,
		Transport: tr,
		Codec:     codec,
		Observers: observers,
		Options:   opts,
		Counters:  counters,
		Logger:    logger,
		queue:     newBoundedQueue(opts.QueueCapacity),
	}
}

// Enqueue is the dispatcher (spec.md §4.5): it pushes msgs — every message
// one Decode() call produced, together — tagged with the current time,
// into d's bounded inbound queue as a single item, dropping the oldest
// queued item first if d is already at capacity. Keeping a decode batch
// together lets the writer later encode it back out as one atomic wire
// unit (spec.md §8 Property 1).
func (d *Device) Enqueue(msgs []message.Message, now time.Time) {
	if d.onMessage != nil {
		d.onMessage(msgs)
		return
	}
	dropped := d.queue.push(message.Envelope{Payload: msgs, EnqueuedAt: now})
	if dropped && d.Counters != nil {
		d.Counters.OverflowDropped.Add(1)
	}
}

// Run starts d's reader and writer loops and blocks until ctx is done. A
// SetTimeDevice runs neither loop, only a once-a-second liveness tick,
// since Enqueue hands its messages straight to its handler. A Device with
// no Transport, or one marked observerOnly (LogDevice), runs only the
// writer, since its input only ever arrives via Enqueue from other devices.
func (d *Device) Run(ctx context.Context, alive func()) {
	if d.onMessage != nil {
		// SetTimeDevice-style device: no transport, no encode side, just
		// needs to stay alive for the supervisor while it waits on Enqueue
		// calls from other devices' reader loops.
		d.idleLoop(ctx, alive)
		return
	}

	done := make(chan struct{}, 2)
	n := 0
	if d.Transport != nil && !d.observerOnly {
		n++
		go func() {
			d.readerLoop(ctx, alive)
			done <- struct{}{}
		}()
	}
	n++
	go func() {
		d.writerLoop(ctx, alive)
		done <- struct{}{}
	}()
	for i := 0; i < n; i++ {
		<-done
	}
}

func (d *Device) idleLoop(ctx context.Context, alive func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			alive()
		}
	}
}

func (d *Device) readerLoop(ctx context.Context, alive func()) {
	backoff := minBackoff
	if err := d.Transport.Open(ctx); err != nil {
		d.logError("open transport", err)
	}
	defer d.Transport.Close()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		data, parity, err := d.Transport.Read(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			d.logError("transport read", err)
			if !d.reconnect(ctx, &backoff) {
				return
			}
			continue
		}
		backoff = minBackoff

		if d.Options.DebugLogRawBytes && d.Logger != nil {
			d.Logger.Debug("raw read", "device", d.Name, "bytes", utils.FormatSpaces(data))
		}

		if d.RawLog != nil {
			_, _ = d.RawLog.Write(data)
		}

		d.Codec.Feed(data, parity)
		for {
			msgs, discarded, needMore, decErr := d.Codec.Next()
			if discarded > 0 && d.Counters != nil {
				d.Counters.HeuristicResync.Add(uint64(discarded))
			}
			if needMore {
				break
			}
			if decErr != nil {
				d.countDecodeError(decErr)
				continue
			}
			now := time.Now()
			valid := make([]message.Message, 0, len(msgs))
			for _, m := range msgs {
				if !m.Valid() {
					if d.Counters != nil {
						d.Counters.ValidationError.Add(1)
					}
					continue
				}
				valid = append(valid, m)
			}
			if len(valid) > 0 {
				for _, obs := range d.Observers {
					obs.Enqueue(valid, now)
				}
			}
		}
		alive()
	}
}

func (d *Device) countDecodeError(err error) {
	if d.Counters == nil {
		return
	}
	switch {
	case errors.Is(err, muxerr.ErrChecksumMismatch):
		d.Counters.ChecksumMismatch.Add(1)
	case errors.Is(err, muxerr.ErrFramingError):
		d.Counters.FramingError.Add(1)
	case errors.Is(err, muxerr.ErrUnknownDatagramID):
		d.Counters.UnknownDatagramID.Add(1)
	case errors.Is(err, muxerr.ErrValidationError):
		d.Counters.ValidationError.Add(1)
	}
	d.logError("decode", err)
}

// reconnect closes and reopens d.Transport with exponential backoff
// (initial 1s, cap 30s, per spec.md §4.3). It returns false if ctx was
// cancelled while waiting.
func (d *Device) reconnect(ctx context.Context, backoff *time.Duration) bool {
	_ = d.Transport.Close()
	select {
	case <-ctx.Done():
		return false
	case <-time.After(*backoff):
	}
	*backoff *= 2
	if *backoff > maxBackoff {
		*backoff = maxBackoff
	}
	if err := d.Transport.Open(ctx); err != nil {
		d.logError("reopen transport", err)
	}
	return true
}

func (d *Device) writerLoop(ctx context.Context, alive func()) {
	if d.Transport != nil && d.observerOnly {
		if err := d.Transport.Open(ctx); err != nil {
			d.logError("open transport", err)
		}
		defer d.Transport.Close()
	}

	var written uint32
	for {
		select {
		case <-ctx.Done():
			return
		case <-d.queue.wake:
		}

		for _, env := range d.queue.popAll() {
			if expired(env, d.Options.maxItemAge(), time.Now()) {
				if d.Counters != nil {
					d.Counters.ExpiredDropped.Add(1)
				}
				continue
			}
			if d.Transport == nil || d.Codec == nil {
				continue
			}
			data, parity, ok, err := d.Codec.Encode(env.Payload)
			if err != nil {
				d.logError("encode", err)
				continue
			}
			if !ok {
				continue
			}
			if _, err := d.Transport.Write(ctx, data, parity); err != nil {
				d.logError("transport write", err)
				continue
			}
			written++
			if d.Options.AutoFlush == 0 || written%d.Options.AutoFlush == 0 {
				_ = d.Transport.Flush()
			}
		}
		alive()
	}
}

func (d *Device) logError(msg string, err error) {
	if d.Logger == nil {
		return
	}
	d.Logger.Error(msg, "device", d.Name, "err", err)
}
