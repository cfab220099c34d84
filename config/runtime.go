package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/arnegue/seatalk-mux/logging"
)

// defaultWatchdogTimeout is spec.md §4.6's "default 16s on Linux".
const defaultWatchdogTimeout = 16 * time.Second

// WatchdogConfig mirrors config.json's Watchdog block (spec.md §6).
type WatchdogConfig struct {
	Enable         bool `json:"Enable"`
	TimeoutSec     *int `json:"Timeout"`
	MaxResets      uint `json:"MaxResets"`
	PreviousResets uint `json:"PreviousResets"`
}

// Timeout returns the configured watchdog timeout, or the spec.md
// default if Timeout is null.
func (w WatchdogConfig) Timeout() time.Duration {
	if w.TimeoutSec == nil {
		return defaultWatchdogTimeout
	}
	return time.Duration(*w.TimeoutSec) * time.Second
}

// runtimeFile is config.json's on-disk shape.
type runtimeFile struct {
	Logger   loggerBlock    `json:"Logger"`
	Watchdog WatchdogConfig `json:"Watchdog"`
}

type loggerBlock struct {
	Dir         string `json:"dir"`
	MaxBytes    int    `json:"max_bytes"`
	BackupCount int    `json:"backup_count"`
}

// Runtime is the parsed contents of config.json, plus the path it was
// read from so SavePreviousResets can write back to the same file.
type Runtime struct {
	Logger   logging.Config
	Watchdog WatchdogConfig

	path string
}

// LoadRuntime reads and parses config.json at path.
func LoadRuntime(path string) (*Runtime, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var rf runtimeFile
	if err := json.Unmarshal(raw, &rf); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &Runtime{
		Logger: logging.Config{
			Dir:         rf.Logger.Dir,
			MaxBytes:    rf.Logger.MaxBytes,
			BackupCount: rf.Logger.BackupCount,
		},
		Watchdog: rf.Watchdog,
		path:     path,
	}, nil
}

// SavePreviousResets durably persists the incremented Watchdog.PreviousResets
// count by rewriting the whole config.json file as open->write->fsync->rename
// onto the original path, per spec.md §9's "Watchdog persistence race" note:
// the counter must survive a reboot mid-write, or the bootloop guard is lost.
func (r *Runtime) SavePreviousResets(resets uint) error {
	r.Watchdog.PreviousResets = resets

	out := runtimeFile{
		Logger: loggerBlock{
			Dir:         r.Logger.Dir,
			MaxBytes:    r.Logger.MaxBytes,
			BackupCount: r.Logger.BackupCount,
		},
		Watchdog: r.Watchdog,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("config: marshal %s: %w", r.path, err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, ".config-*.json.tmp")
	if err != nil {
		return fmt.Errorf("config: create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("config: write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("config: fsync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("config: close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("config: rename %s to %s: %w", tmpName, r.path, err)
	}
	return nil
}

func secondsToDuration(sec uint32) time.Duration {
	return time.Duration(sec) * time.Second
}
