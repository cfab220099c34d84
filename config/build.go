package config

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/arnegue/seatalk-mux/device"
	"github.com/arnegue/seatalk-mux/logging"
	"github.com/arnegue/seatalk-mux/metrics"
	"github.com/arnegue/seatalk-mux/transport"
)

// SetSystemClock is supplied by cmd/ (it is the only platform-specific
// syscall the config package does not itself perform, per spec.md §6
// scoping platform-specific time setting as an external collaborator).
type SetSystemClock = device.SetSystemClock

// BuildDevices constructs every device.Device named in g, wires observer
// edges by name, and returns them name -> *device.Device. It does not
// start any of them; call Run per spec.md's device lifecycle once the
// whole graph is built, since every observer reference must already
// resolve to a constructed *device.Device before any reader starts
// enqueuing into it.
func BuildDevices(g *DeviceGraph, logDir string, setClock SetSystemClock, counters map[string]*metrics.Counters, logger *log.Logger) (map[string]*device.Device, error) {
	return buildDevices(g, logDir, setClock, nil, counters, logger)
}

// BuildDevicesWithDeniedHook is BuildDevices plus onPermissionDenied,
// invoked once if any SetTimeDevice's setClock call fails with
// muxerr.ErrPermissionDenied (spec.md §6's exit code 3).
func BuildDevicesWithDeniedHook(g *DeviceGraph, logDir string, setClock SetSystemClock, onPermissionDenied func(), counters map[string]*metrics.Counters, logger *log.Logger) (map[string]*device.Device, error) {
	return buildDevices(g, logDir, setClock, onPermissionDenied, counters, logger)
}

func buildDevices(g *DeviceGraph, logDir string, setClock SetSystemClock, onPermissionDenied func(), counters map[string]*metrics.Counters, logger *log.Logger) (map[string]*device.Device, error) {
	devices := make(map[string]*device.Device, len(g.Names))

	for _, name := range g.Names {
		spec := g.Specs[name]
		c := counters[name]
		if c == nil {
			c = &metrics.Counters{}
			counters[name] = c
		}

		switch spec.Type {
		case TypeSetTimeDevice:
			devices[name] = device.NewSetTimeDeviceWithCallback(name, setClock, onPermissionDenied, logger)

		case TypeLogDevice:
			codec, err := buildCodec(spec)
			if err != nil {
				return nil, fmt.Errorf("config: device %q: %w", name, err)
			}
			path := spec.LogPath
			if path == "" {
				path = fmt.Sprintf("%s/%s_raw.log", logDir, name)
			}
			devices[name] = device.NewLogDevice(name, path, codec, c, logger)

		case TypeNMEADevice, TypeSeatalkDevice:
			tr, err := buildTransport(spec.IO)
			if err != nil {
				return nil, fmt.Errorf("config: device %q: %w", name, err)
			}
			codec, err := buildCodec(spec)
			if err != nil {
				return nil, fmt.Errorf("config: device %q: %w", name, err)
			}
			opts := device.Options{AutoFlush: spec.AutoFlush}
			if spec.MaxItemAge != nil {
				opts.MaxItemAge = secondsToDuration(*spec.MaxItemAge)
			}
			d := device.New(name, tr, codec, nil, opts, c, logger)
			d.RawLog = logging.NewRawLogger(logging.Config{Dir: logDir}, name)
			devices[name] = d

		default:
			return nil, fmt.Errorf("config: device %q: unknown type %q", name, spec.Type)
		}
	}

	// Second pass: every *device.Device now exists, so observer edges can
	// be resolved to real pointers.
	for _, name := range g.Names {
		spec := g.Specs[name]
		d := devices[name]
		for _, obsName := range spec.Observers {
			d.Observers = append(d.Observers, devices[obsName])
		}
	}

	return devices, nil
}

func buildCodec(spec DeviceSpec) (device.FamilyCodec, error) {
	family := spec.Type
	if spec.Type == TypeLogDevice {
		family = spec.Family
		if family == "" {
			family = TypeNMEADevice
		} else if family == "Seatalk" {
			family = TypeSeatalkDevice
		} else if family == "NMEA" {
			family = TypeNMEADevice
		}
	}

	switch family {
	case TypeNMEADevice:
		talker := spec.TalkerID
		if talker == "" {
			talker = "II"
		}
		return device.NewNMEACodec(talker), nil
	case TypeSeatalkDevice:
		parityAware := spec.ParityAware || spec.IO.Type == IOSeatalkSerial
		return device.NewSeatalkCodec(parityAware, spec.Lenient), nil
	default:
		return nil, fmt.Errorf("no codec for device type %q", spec.Type)
	}
}

func buildTransport(io IOSpec) (transport.Transport, error) {
	switch io.Type {
	case IOTCPServer:
		return transport.NewTCPServer(io.TCP), nil
	case IOTCPClient:
		return transport.NewTCPClient(io.Host, io.TCP), nil
	case IOFile:
		return transport.NewFile(io.Path), nil
	case IOFileRewriter:
		return transport.NewFileRewriter(io.Path), nil
	case IOSerial:
		return transport.NewSerial(io.Port), nil
	case IOSeatalkSerial:
		return transport.NewSeatalkSerial(io.Port), nil
	case IOStdOutPrinter:
		return transport.NewStdOutPrinter(), nil
	default:
		return nil, fmt.Errorf("unknown device_io type %q", io.Type)
	}
}
