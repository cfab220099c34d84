// Package config loads and validates devices.json (the device graph) and
// config.json (logging + watchdog settings), the two "external
// collaborator" JSON shapes spec.md §6 names, and durably persists the
// one piece of runtime state the program mutates: Watchdog.PreviousResets.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/arnegue/seatalk-mux/muxerr"
)

// DeviceSpec is one entry of devices.json: name -> this shape.
type DeviceSpec struct {
	Type        string   `json:"type"`
	IO          IOSpec   `json:"device_io"`
	Observers   []string `json:"observers"`
	AutoFlush   uint32   `json:"auto_flush"`
	MaxItemAge  *uint32  `json:"max_item_age"`
	TalkerID    string   `json:"talker_id"`
	LogPath     string   `json:"log_path"` // LogDevice only
	ParityAware bool     `json:"parity_aware"`
	Lenient     bool     `json:"lenient"`
	Family      string   `json:"family"` // LogDevice only: "NMEA" or "Seatalk"
}

// IOSpec is the `device_io` block: transport type plus its parameters.
// Unused fields for a given Type are ignored.
type IOSpec struct {
	Type string `json:"type"`
	Port string `json:"port"`
	Host string `json:"host"`
	Path string `json:"path"`
	TCP  int    `json:"tcp_port"`
}

// Known values for DeviceSpec.Type.
const (
	TypeNMEADevice    = "NMEADevice"
	TypeSeatalkDevice = "SeatalkDevice"
	TypeSetTimeDevice = "SetTimeDevice"
	TypeLogDevice     = "LogDevice"
)

// Known values for IOSpec.Type.
const (
	IOTCPServer     = "TCPServer"
	IOTCPClient     = "TCPClient"
	IOFile          = "File"
	IOFileRewriter  = "FileRewriter"
	IOSerial        = "Serial"
	IOSeatalkSerial = "SeatalkSerial"
	IOStdOutPrinter = "StdOutPrinter"
	IOIO            = "IO"
)

// DeviceGraph is the parsed, validated contents of devices.json: device
// name -> its spec. Names lists every device name sorted alphabetically,
// giving a stable iteration order.
type DeviceGraph struct {
	Names []string
	Specs map[string]DeviceSpec
}

// LoadDevices reads and validates path. Every Observers reference must
// name a device declared in the same file, per spec.md §3 ("Configuration
// validation rejects references to unknown device names"); a violation
// wraps muxerr.ErrUnknownDevice with the offending device and target
// names so main can report it as a config error (exit code 1).
func LoadDevices(path string) (*DeviceGraph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var specs map[string]DeviceSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	for name, spec := range specs {
		for _, obs := range spec.Observers {
			if _, ok := specs[obs]; !ok {
				return nil, fmt.Errorf("config: device %q observes unknown device %q: %w", name, obs, muxerr.ErrUnknownDevice)
			}
		}
	}

	return &DeviceGraph{Names: names, Specs: specs}, nil
}
