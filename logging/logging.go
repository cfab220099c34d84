// Package logging wires up the two log files spec.md §6 names: a global
// main_log.log carrying every structured log line the rest of the program
// emits, and one <DeviceName>_raw.log per device holding the raw bytes
// each device's reader saw before decoding them. Both rotate by size using
// lumberjack; the structured side uses charmbracelet/log for leveled,
// field-based output.
package logging

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config mirrors the config.json Logger block (spec.md §6).
type Config struct {
	Dir         string
	MaxBytes    int
	BackupCount int
}

const bytesPerMB = 1024 * 1024

func (c Config) maxMegabytes() int {
	mb := c.MaxBytes / bytesPerMB
	if mb < 1 {
		return 1
	}
	return mb
}

// NewMainLogger builds the structured logger every non-raw log line in the
// program writes through, backed by <dir>/main_log.log.
func NewMainLogger(cfg Config) *log.Logger {
	w := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "main_log.log"),
		MaxSize:    cfg.maxMegabytes(),
		MaxBackups: cfg.BackupCount,
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "seatalk-mux",
	})
	logger.SetLevel(log.InfoLevel)
	return logger
}

// RawLogger is a per-device sink for bytes as received, before decode
// (spec.md §6's "<logdir>/<DeviceName>_raw.log").
type RawLogger struct {
	w *lumberjack.Logger
}

// NewRawLogger opens the rotating raw log for one device.
func NewRawLogger(cfg Config, deviceName string) *RawLogger {
	return &RawLogger{w: &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, deviceName+"_raw.log"),
		MaxSize:    cfg.maxMegabytes(),
		MaxBackups: cfg.BackupCount,
	}}
}

// Write appends data verbatim, satisfying io.Writer so a RawLogger can be
// handed directly to anything that writes raw bytes.
func (r *RawLogger) Write(data []byte) (int, error) {
	return r.w.Write(data)
}

func (r *RawLogger) Close() error {
	return r.w.Close()
}
