package device

import (
	"github.com/charmbracelet/log"

	"github.com/arnegue/seatalk-mux/metrics"
	"github.com/arnegue/seatalk-mux/transport"
)

// NewLogDevice creates the observer-only device spec.md's expansion adds
// (§4.3): it receives messages the same way any other observer does, but
// instead of relaying them to external equipment it re-encodes each one
// with codec and appends the wire bytes to path, reusing the ordinary
// writer loop and transport.File rather than a special-cased code path.
func NewLogDevice(name string, path string, codec FamilyCodec, counters *metrics.Counters, logger *log.Logger) *Device {
	d := New(name, transport.NewFile(path), codec, nil, Options{}, counters, logger)
	d.observerOnly = true
	return d
}
