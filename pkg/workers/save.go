package workers

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
)

const snapshotExt = ".prefs.zst"

type SnapshotWorker struct {
	store    prefs.SnapshotStore
	locker   sync.Locker
	dir      string
	interval time.Duration
	keep     int
}

type NewSnapshotWorkerOptions struct {
	Store prefs.SnapshotStore
	// Locker serialises reads with the store's other writers.
	// A private mutex is used when nil.
	Locker   sync.Locker
	Dir      string
	Interval time.Duration
	// Keep is the number of snapshots retained; zero keeps all of them.
	Keep int
}

// NewSnapshotWorker creates a new SnapshotWorker.
// The worker periodically writes a compressed snapshot of the store to Dir
// and prunes old snapshots.
func NewSnapshotWorker(opts NewSnapshotWorkerOptions) *SnapshotWorker {
	locker := opts.Locker
	if locker == nil {
		locker = &sync.Mutex{}
	}
	return &SnapshotWorker{
		store:    opts.Store,
		locker:   locker,
		dir:      opts.Dir,
		interval: opts.Interval,
		keep:     opts.Keep,
	}
}

// Start writes snapshots every interval until ctx is done.
// A non-positive interval disables the worker.
func (w *SnapshotWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Error("Snapshot worker not started: interval must be positive, got %s", w.interval)
		return
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if _, err := w.WriteSnapshot(t); err != nil {
				log.Error("Failed to write prefs snapshot: %v", err)
			}
		}
	}
}

// WriteSnapshot writes one snapshot named after t and returns its path.
func (w *SnapshotWorker) WriteSnapshot(t time.Time) (string, error) {
	w.locker.Lock()
	entries := w.store.Entries()
	w.locker.Unlock()

	buf := bytes.NewBuffer(nil)
	if err := prefs.WriteSnapshot(buf, entries); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	name := t.UTC().Format("20060102T150405.000") + snapshotExt
	path := filepath.Join(w.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	log.Debug("Wrote prefs snapshot %s (%d keys)", path, len(entries))

	if err := w.prune(); err != nil {
		log.Warn("Failed to prune snapshots: %v", err)
	}
	return path, nil
}

func (w *SnapshotWorker) prune() error {
	if w.keep <= 0 {
		return nil
	}
	snapshots, err := ListSnapshots(w.dir)
	if err != nil {
		return err
	}
	for len(snapshots) > w.keep {
		if err := os.Remove(snapshots[0]); err != nil {
			return fmt.Errorf("failed to remove snapshot: %w", err)
		}
		snapshots = snapshots[1:]
	}
	return nil
}

// ListSnapshots returns the snapshot paths in dir, oldest first.
func ListSnapshots(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot dir: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
