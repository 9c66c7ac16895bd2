package tasks

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workbitai/oopsworld/pkg/clock"
	"github.com/workbitai/oopsworld/pkg/prefs"
)

func newTestTracker(t *testing.T) (*Tracker, *prefs.PlayerPrefs, *clock.Fixed) {
	t.Helper()
	store := prefs.NewInMemoryStore()
	c := clock.NewFixed(time.Date(2024, time.March, 9, 10, 0, 0, 0, time.UTC))
	return NewTracker(NewTrackerOptions{Store: store, Clock: c}), store, c
}

func TestTracker_EnsureDayIdempotent(t *testing.T) {
	tracker, store, _ := newTestTracker(t)

	rollovers := 0
	tracker.DayRolledOver().Subscribe(func(day string) { rollovers++ })

	day := tracker.EnsureDay()
	assert.Equal(t, "20240309", day)
	tracker.AddProgress(Win3Times, 2, 3)

	before := store.Entries()
	tracker.EnsureDay()
	tracker.EnsureDay()
	assert.Equal(t, before, store.Entries())
	assert.Equal(t, 1, rollovers)
}

func TestTracker_DayRolloverResetsEverythingOnce(t *testing.T) {
	tracker, _, c := newTestTracker(t)

	tracker.Complete(DailyLogin, 1)
	tracker.AddProgress(Win3Times, 2, 3)
	tracker.SetSpendSeconds(1800)

	rollovers := 0
	tracker.DayRolledOver().Subscribe(func(day string) { rollovers++ })

	c.Advance(24 * time.Hour)
	for _, id := range All() {
		assert.Equal(t, 0, tracker.GetProgress(id), id.String())
		assert.False(t, tracker.IsCompleted(id), id.String())
	}
	assert.Equal(t, 0.0, tracker.GetSpendSeconds())
	assert.Equal(t, 1, rollovers)
}

func TestTracker_SetProgressThreshold(t *testing.T) {
	tests := []struct {
		name          string
		id            TaskID
		progress      int
		target        int
		wantProgress  int
		wantCompleted bool
	}{
		{name: "reaches target", id: Win3Times, progress: 3, target: 3, wantProgress: 3, wantCompleted: true},
		{name: "below target", id: Win3Times, progress: 2, target: 3, wantProgress: 2, wantCompleted: false},
		{name: "overshoot clamps to target", id: Watch3Ads, progress: 7, target: 3, wantProgress: 3, wantCompleted: true},
		{name: "zero target disables completion", id: Win3Times, progress: 5, target: 0, wantProgress: 5, wantCompleted: false},
		{name: "negative target disables completion", id: Win3Times, progress: 5, target: -1, wantProgress: 5, wantCompleted: false},
		{name: "negative progress clamps to zero", id: Watch3Ads, progress: -4, target: 3, wantProgress: 0, wantCompleted: false},
		{name: "spend task ignores caller target", id: Spend2Hours, progress: 2, target: 2, wantProgress: 2, wantCompleted: false},
		{name: "spend task completes at 100 percent", id: Spend2Hours, progress: 100, target: 2, wantProgress: 100, wantCompleted: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _, _ := newTestTracker(t)
			tracker.SetProgress(tt.id, tt.progress, tt.target)
			assert.Equal(t, tt.wantProgress, tracker.GetProgress(tt.id))
			assert.Equal(t, tt.wantCompleted, tracker.IsCompleted(tt.id))
		})
	}
}

func TestTracker_CompletionIsMonotonic(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.AddProgress(Win3Times, 3, 3)
	require.True(t, tracker.IsCompleted(Win3Times))

	changes := 0
	tracker.Changed().Subscribe(func(r Record) { changes++ })

	tracker.AddProgress(Win3Times, 1, 3)
	tracker.AddProgress(Win3Times, 10, 3)
	assert.Equal(t, 3, tracker.GetProgress(Win3Times))
	assert.True(t, tracker.IsCompleted(Win3Times))
	assert.Equal(t, 0, changes)

	tracker.SetProgress(Win3Times, 1, 3)
	assert.True(t, tracker.IsCompleted(Win3Times))
}

func TestTracker_AddProgressIgnoresNonPositive(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.AddProgress(Watch3Ads, 2, 3)
	tracker.AddProgress(Watch3Ads, 0, 3)
	tracker.AddProgress(Watch3Ads, -5, 3)
	assert.Equal(t, 2, tracker.GetProgress(Watch3Ads))

	tracker.AddProgress(Watch3Ads, 1, 3)
	assert.True(t, tracker.IsCompleted(Watch3Ads))
}

func TestTracker_AddProgressSaturates(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		add       int
		target    int
		want      int
		completed bool
	}{
		{name: "no target", start: 5, add: math.MaxInt, target: 0, want: math.MaxInt},
		{name: "already at max", start: math.MaxInt, add: 1, target: 0, want: math.MaxInt},
		{name: "completes target", start: 1, add: math.MaxInt, target: 3, want: 3, completed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker, _, _ := newTestTracker(t)
			tracker.SetProgress(Win3Times, tt.start, tt.target)
			tracker.AddProgress(Win3Times, tt.add, tt.target)

			assert.Equal(t, tt.want, tracker.GetProgress(Win3Times))
			assert.Equal(t, tt.completed, tracker.IsCompleted(Win3Times))
		})
	}
}

func TestTracker_Complete(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.AddProgress(Win3Times, 1, 3)

	var got Record
	tracker.Changed().Subscribe(func(r Record) { got = r })
	tracker.Complete(Win3Times, 3)

	assert.Equal(t, Record{ID: Win3Times, Name: "Win3Times", Progress: 3, Completed: true}, got)
}

func TestTracker_GetCompletedPointsExcludesPlayWithFriend(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.Complete(DailyLogin, 1)
	tracker.Complete(PlayWithFriend, 1)
	tracker.Complete(Watch3Ads, 3)
	tracker.AddProgress(Win3Times, 1, 3)

	rewards := map[TaskID]int{
		DailyLogin:     10,
		Win3Times:      30,
		Watch3Ads:      -5,
		PlayWithFriend: 50,
		Spend2Hours:    40,
	}
	points := tracker.GetCompletedPoints(func(id TaskID) int { return rewards[id] })
	assert.Equal(t, 10, points)
}

func TestTracker_SpendSecondsClamped(t *testing.T) {
	tracker, _, _ := newTestTracker(t)
	tracker.SetSpendSeconds(-3)
	assert.Equal(t, 0.0, tracker.GetSpendSeconds())
	tracker.SetSpendSeconds(42.5)
	assert.Equal(t, 42.5, tracker.GetSpendSeconds())
}

func TestParseTaskID(t *testing.T) {
	for _, id := range All() {
		parsed, err := ParseTaskID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, parsed)
	}
	_, err := ParseTaskID("WinForever")
	assert.Error(t, err)
}
