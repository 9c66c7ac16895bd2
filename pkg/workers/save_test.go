package workers

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbitai/oopsworld/pkg/prefs"
)

func TestSnapshotWorker_WriteAndPrune(t *testing.T) {
	store := prefs.NewInMemoryStore()
	store.SetInt("COINS", 75)
	dir := t.TempDir()

	w := NewSnapshotWorker(NewSnapshotWorkerOptions{
		Store:    store,
		Dir:      dir,
		Interval: time.Minute,
		Keep:     2,
	})

	start := time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC)
	var paths []string
	for i := 0; i < 3; i++ {
		path, err := w.WriteSnapshot(start.Add(time.Duration(i) * time.Minute))
		require.NoError(t, err)
		paths = append(paths, path)
	}

	snapshots, err := ListSnapshots(dir)
	require.NoError(t, err)
	assert.Equal(t, paths[1:], snapshots)

	f, err := os.Open(snapshots[1])
	require.NoError(t, err)
	defer f.Close()
	entries, err := prefs.ReadSnapshot(f)
	require.NoError(t, err)
	assert.Equal(t, prefs.IntValue(75), entries["COINS"])
}

type countingLocker struct {
	sync.Mutex
	locks int
}

func (l *countingLocker) Lock() {
	l.Mutex.Lock()
	l.locks++
}

func TestSnapshotWorker_UsesSharedLocker(t *testing.T) {
	locker := &countingLocker{}
	w := NewSnapshotWorker(NewSnapshotWorkerOptions{
		Store:    prefs.NewInMemoryStore(),
		Locker:   locker,
		Dir:      t.TempDir(),
		Interval: time.Minute,
	})

	_, err := w.WriteSnapshot(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, locker.locks)
}

func TestSnapshotWorker_StartRejectsNonPositiveInterval(t *testing.T) {
	for _, interval := range []time.Duration{0, -time.Second} {
		t.Run(interval.String(), func(t *testing.T) {
			dir := t.TempDir()
			w := NewSnapshotWorker(NewSnapshotWorkerOptions{
				Store:    prefs.NewInMemoryStore(),
				Dir:      dir,
				Interval: interval,
			})

			done := make(chan struct{})
			go func() {
				defer close(done)
				w.Start(context.Background())
			}()

			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("Start did not return for a non-positive interval")
			}
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}
