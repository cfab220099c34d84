package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntime_ParsesLoggerAndWatchdog(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{
		"Logger": {"dir": "/var/log/seatalk-mux", "max_bytes": 1048576, "backup_count": 3},
		"Watchdog": {"Enable": true, "Timeout": 20, "MaxResets": 5, "PreviousResets": 1}
	}`)

	r, err := LoadRuntime(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/log/seatalk-mux", r.Logger.Dir)
	assert.Equal(t, 1048576, r.Logger.MaxBytes)
	assert.Equal(t, 3, r.Logger.BackupCount)
	assert.True(t, r.Watchdog.Enable)
	assert.Equal(t, 20*time.Second, r.Watchdog.Timeout())
	assert.Equal(t, uint(5), r.Watchdog.MaxResets)
	assert.Equal(t, uint(1), r.Watchdog.PreviousResets)
}

func TestWatchdogConfig_NullTimeoutDefaultsTo16s(t *testing.T) {
	var w WatchdogConfig
	assert.Equal(t, 16*time.Second, w.Timeout())
}

func TestRuntime_SavePreviousResets_DurableRewrite(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.json", `{
		"Logger": {"dir": "/logs", "max_bytes": 100, "backup_count": 2},
		"Watchdog": {"Enable": true, "Timeout": 16, "MaxResets": 10, "PreviousResets": 0}
	}`)

	r, err := LoadRuntime(path)
	require.NoError(t, err)

	require.NoError(t, r.SavePreviousResets(4))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var rf runtimeFile
	require.NoError(t, json.Unmarshal(raw, &rf))
	assert.Equal(t, uint(4), rf.Watchdog.PreviousResets)
	assert.Equal(t, "/logs", rf.Logger.Dir)

	// no stray temp files left behind in the directory
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
