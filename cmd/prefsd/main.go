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

	"github.com/workbitai/oopsworld/pkg/api"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
	"github.com/workbitai/oopsworld/pkg/state"
	"github.com/workbitai/oopsworld/pkg/version"
	"github.com/workbitai/oopsworld/pkg/workers"
)

func main() {
	port := flag.Int("port", 9090, "Inspector port to listen on")
	prefsPath := flag.String("prefs-path", "prefs.db", "Path to the player prefs SQLite file, used when PREFS_DATABASE_URL is unset")
	profile := flag.String("profile", "default", "Profile the Postgres rows are scoped to")
	snapshotDir := flag.String("snapshot-dir", "snapshots", "Directory for periodic prefs snapshots")
	snapshotInterval := flag.Duration("snapshot-interval", 10*time.Minute, "Interval between prefs snapshots")
	snapshotKeep := flag.Int("snapshot-keep", 24, "Number of snapshots to keep")
	logLevel := flag.String("log-level", "info", "Log level")
	flag.Parse()

	if *snapshotInterval <= 0 {
		panic(fmt.Sprintf("Snapshot interval must be positive, got %s", *snapshotInterval))
	}

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting prefsd version %s", version.Get())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var backend prefs.Backend
	if connStr := os.Getenv("PREFS_DATABASE_URL"); connStr != "" {
		backend, err = prefs.NewPostgresBackend(ctx, connStr, *profile)
	} else {
		backend, err = prefs.NewSQLiteBackend(ctx, *prefsPath)
	}
	if err != nil {
		panic(fmt.Sprintf("Failed to open prefs backend: %v", err))
	}

	store, err := prefs.Open(ctx, backend)
	if err != nil {
		panic(fmt.Sprintf("Failed to load prefs: %v", err))
	}

	lock := &sync.Mutex{}
	stateManager := state.NewManager(state.NewManagerOptions{
		Store: store,
	})

	snapshotWorker := workers.NewSnapshotWorker(workers.NewSnapshotWorkerOptions{
		Store:    store,
		Locker:   lock,
		Dir:      *snapshotDir,
		Interval: *snapshotInterval,
		Keep:     *snapshotKeep,
	})
	go snapshotWorker.Start(ctx)

	apiServer := api.NewAPIServer(api.NewAPIServerOptions{
		Port:    *port,
		Manager: stateManager,
		Store:   store,
		Lock:    lock,
		Token:   os.Getenv("INSPECTOR_TOKEN"),
	})
	go apiServer.Start()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	sig := <-signals
	log.Info("Received %s, shutting down", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop inspector: %v", err)
	}
	cancel()

	lock.Lock()
	defer lock.Unlock()
	if err := store.Close(shutdownCtx); err != nil {
		log.Error("Failed to close prefs: %v", err)
	}
}
