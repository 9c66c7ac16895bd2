package tasks

import (
	"fmt"
	"math"

	"github.com/workbitai/oopsworld/pkg/clock"
	"github.com/workbitai/oopsworld/pkg/events"
	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/prefs"
)

const (
	DayKey          = "DAILY_TASKS_DAY"
	SpendSecondsKey = "DAILY_TASKS_SPEND_SECONDS"

	// SpendProgressTarget is the completion threshold of Spend2Hours, whose
	// progress is stored as a percentage of SpendTargetSeconds.
	SpendProgressTarget = 100
)

// ProgressKey returns the key holding a task's progress on day.
func ProgressKey(day string, id TaskID) string {
	return fmt.Sprintf("DT_%s_%s_PROGRESS", day, id)
}

// CompletedKey returns the key holding a task's completed flag on day.
func CompletedKey(day string, id TaskID) string {
	return fmt.Sprintf("DT_%s_%s_COMPLETED", day, id)
}

// Tracker owns daily task progress. Every public method first rolls the
// state over to the current day if the day has changed since the last call.
type Tracker struct {
	store         prefs.Store
	clock         clock.Clock
	changed       *events.Emitter[Record]
	dayRolledOver *events.Emitter[string]
}

type NewTrackerOptions struct {
	Store prefs.Store
	Clock clock.Clock
}

func NewTracker(opts NewTrackerOptions) *Tracker {
	c := opts.Clock
	if c == nil {
		c = clock.SystemClock{}
	}
	return &Tracker{
		store:         opts.Store,
		clock:         c,
		changed:       events.NewEmitter[Record]("TaskChanged"),
		dayRolledOver: events.NewEmitter[string]("DayRolledOver"),
	}
}

// Changed fires with the new record after a task's progress or completion changes.
func (t *Tracker) Changed() *events.Emitter[Record] {
	return t.changed
}

// DayRolledOver fires with the new day identifier after a rollover.
func (t *Tracker) DayRolledOver() *events.Emitter[string] {
	return t.dayRolledOver
}

// EnsureDay resets all daily state if the persisted day differs from today,
// and returns today's identifier.
func (t *Tracker) EnsureDay() string {
	today := clock.CurrentDayID(t.clock)
	last := t.store.GetString(DayKey, "")
	if last == today {
		return today
	}

	for _, id := range allTasks {
		t.store.SetInt(ProgressKey(today, id), 0)
		t.store.SetInt(CompletedKey(today, id), 0)
	}
	t.store.SetFloat(SpendSecondsKey, 0)
	t.store.SetString(DayKey, today)
	t.save()

	log.Info("Daily tasks rolled over from %q to %q", last, today)
	t.dayRolledOver.Emit(today)
	return today
}

func (t *Tracker) progress(day string, id TaskID) int {
	return max(0, t.store.GetInt(ProgressKey(day, id), 0))
}

func (t *Tracker) completed(day string, id TaskID) bool {
	return t.store.GetInt(CompletedKey(day, id), 0) == 1
}

func (t *Tracker) GetProgress(id TaskID) int {
	day := t.EnsureDay()
	return t.progress(day, id)
}

func (t *Tracker) IsCompleted(id TaskID) bool {
	day := t.EnsureDay()
	return t.completed(day, id)
}

// EffectiveTarget returns the completion threshold actually used for a task.
func EffectiveTarget(id TaskID, target int) int {
	if id == Spend2Hours {
		return SpendProgressTarget
	}
	return target
}

// SetProgress stores progress for a task. Reaching a positive target completes
// the task; a target of zero or less never auto-completes. Completion is never undone.
func (t *Tracker) SetProgress(id TaskID, progress int, target int) {
	day := t.EnsureDay()
	t.setProgress(day, id, progress, target)
}

func (t *Tracker) setProgress(day string, id TaskID, progress int, target int) {
	progress = max(0, progress)
	effectiveTarget := EffectiveTarget(id, target)

	if effectiveTarget > 0 && progress >= effectiveTarget {
		t.store.SetInt(ProgressKey(day, id), effectiveTarget)
		t.store.SetInt(CompletedKey(day, id), 1)
	} else {
		t.store.SetInt(ProgressKey(day, id), progress)
	}
	t.save()

	record := t.record(day, id)
	log.Debug("Task %s progress=%d completed=%t", id, record.Progress, record.Completed)
	t.changed.Emit(record)
}

// AddProgress adds amount to a task that is not yet completed.
func (t *Tracker) AddProgress(id TaskID, amount int, target int) {
	day := t.EnsureDay()
	if amount <= 0 || t.completed(day, id) {
		return
	}
	current := t.progress(day, id)
	next := math.MaxInt
	if amount <= math.MaxInt-current {
		next = current + amount
	}
	t.setProgress(day, id, next, target)
}

// Complete force-completes a task.
func (t *Tracker) Complete(id TaskID, target int) {
	day := t.EnsureDay()
	progress := max(t.progress(day, id), EffectiveTarget(id, target))
	t.store.SetInt(ProgressKey(day, id), progress)
	t.store.SetInt(CompletedKey(day, id), 1)
	t.save()

	log.Debug("Task %s force-completed", id)
	t.changed.Emit(t.record(day, id))
}

// GetSpendSeconds returns today's raw accumulated foreground seconds.
func (t *Tracker) GetSpendSeconds() float64 {
	t.EnsureDay()
	return max(0, t.store.GetFloat(SpendSecondsKey, 0))
}

func (t *Tracker) SetSpendSeconds(seconds float64) {
	t.EnsureDay()
	t.store.SetFloat(SpendSecondsKey, max(0, seconds))
	t.save()
}

// GetCompletedPoints sums the rewards of completed tasks. PlayWithFriend is
// rewarded through its own flow and never counted; negative rewards are ignored.
func (t *Tracker) GetCompletedPoints(rewardFn func(TaskID) int) int {
	day := t.EnsureDay()
	total := 0
	for _, id := range allTasks {
		if id == PlayWithFriend || !t.completed(day, id) {
			continue
		}
		if points := rewardFn(id); points > 0 {
			total += points
		}
	}
	return total
}

// Records returns today's state of every task.
func (t *Tracker) Records() []Record {
	day := t.EnsureDay()
	records := make([]Record, 0, len(allTasks))
	for _, id := range allTasks {
		records = append(records, t.record(day, id))
	}
	return records
}

func (t *Tracker) record(day string, id TaskID) Record {
	return Record{
		ID:        id,
		Name:      id.String(),
		Progress:  t.progress(day, id),
		Completed: t.completed(day, id),
	}
}

func (t *Tracker) save() {
	if err := t.store.Save(); err != nil {
		log.Error("Failed to save daily tasks: %v", err)
	}
}
