package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/arnegue/seatalk-mux/config"
	"github.com/arnegue/seatalk-mux/logging"
	"github.com/arnegue/seatalk-mux/metrics"
	"github.com/arnegue/seatalk-mux/supervisor"
)

// Exit codes, per spec.md §6.
const (
	exitOK               = 0
	exitConfigError      = 1
	exitRuntimeFatal     = 2
	exitPermissionDenied = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	devicesPath := flag.String("devices", "devices.json", "path to devices.json")
	configPath := flag.String("config", "config.json", "path to config.json")
	flag.Parse()

	runtimeCfg, err := config.LoadRuntime(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return exitConfigError
	}

	logger := logging.NewMainLogger(runtimeCfg.Logger)

	graph, err := config.LoadDevices(*devicesPath)
	if err != nil {
		logger.Error("config error", "err", err)
		return exitConfigError
	}

	permissionDenied := make(chan struct{}, 1)
	onDenied := func() {
		select {
		case permissionDenied <- struct{}{}:
		default:
		}
	}

	counters := map[string]*metrics.Counters{}
	devices, err := config.BuildDevicesWithDeniedHook(graph, runtimeCfg.Logger.Dir, setSystemClock, onDenied, counters, logger)
	if err != nil {
		logger.Error("config error", "err", err)
		return exitConfigError
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var wd supervisor.Watchdog
	if runtimeCfg.Watchdog.Enable {
		wd = supervisor.NewLinuxWatchdog("/dev/watchdog")
	}
	sup := supervisor.New(wd, runtimeCfg.Watchdog.Timeout(), runtimeCfg.Watchdog.MaxResets, runtimeCfg.Watchdog.PreviousResets, runtimeCfg.SavePreviousResets, logger)
	sup.Counters = counters

	startedAt := time.Now()
	var wg sync.WaitGroup
	taskExited := make(chan string, len(devices))

	for name, d := range devices {
		alive := sup.Track(name)
		wg.Add(1)
		go func(name string, run func(context.Context, func())) {
			defer wg.Done()
			run(ctx, alive)
			select {
			case taskExited <- name:
			default:
			}
		}(name, d.Run)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := sup.Run(ctx); err != nil {
			logger.Error("supervisor stopped", "err", err)
		}
	}()

	exitCode := exitOK
	select {
	case <-ctx.Done():
		// ordinary shutdown request (SIGINT/SIGTERM)
	case <-permissionDenied:
		logger.Error("privileged feature denied permission")
		exitCode = exitPermissionDenied
		cancel()
	case name := <-taskExited:
		// Within T of startup this is a config smoke-test failure; past
		// that it's what would otherwise lead to a watchdog-triggered
		// system reset (spec.md §7). Both map to exit code 2 here since
		// this process has no separate OS-level watchdog escalation path
		// to fall back to once it has already decided to exit.
		logger.Error("device task exited", "device", name, "uptime", time.Since(startedAt))
		exitCode = exitRuntimeFatal
		cancel()
	}

	wg.Wait()
	return exitCode
}
