package spendtime

import (
	"math"
	"time"

	"github.com/workbitai/oopsworld/pkg/log"
	"github.com/workbitai/oopsworld/pkg/tasks"
)

const (
	// TargetSeconds is the foreground time that completes the spend task.
	TargetSeconds = 2 * 60 * 60
	// FlushThreshold is how much unflushed time may accumulate between ticks.
	FlushThreshold = time.Second
	// LegacyTarget is the target passed along with the percentage; the tracker
	// overrides it for the spend task.
	LegacyTarget = 2
)

// Tracker is the part of tasks.Tracker the accumulator writes to.
type Tracker interface {
	GetSpendSeconds() float64
	SetSpendSeconds(seconds float64)
	SetProgress(id tasks.TaskID, progress int, target int)
}

// Accumulator counts foreground time toward the spend task.
// Time only accrues while enabled, focused and not paused. Every transition
// out of that state flushes, so at most the last sub-second is lost on a crash.
type Accumulator struct {
	tracker     Tracker
	accumulated time.Duration
	enabled     bool
	focused     bool
	paused      bool
}

func New(tracker Tracker) *Accumulator {
	return &Accumulator{
		tracker: tracker,
		focused: true,
	}
}

// Accruing reports whether Tick currently counts time.
func (a *Accumulator) Accruing() bool {
	return a.enabled && a.focused && !a.paused
}

// Pending returns time accumulated but not yet flushed.
func (a *Accumulator) Pending() time.Duration {
	return a.accumulated
}

// Tick advances the accumulator by one frame.
func (a *Accumulator) Tick(dt time.Duration) {
	if !a.Accruing() || dt <= 0 {
		return
	}
	a.accumulated += dt
	if a.accumulated >= FlushThreshold {
		a.Flush()
	}
}

// Flush commits accumulated time to the tracker and recomputes the spend
// task's percentage progress.
func (a *Accumulator) Flush() {
	stored := a.tracker.GetSpendSeconds() + a.accumulated.Seconds()
	a.accumulated = 0
	a.tracker.SetSpendSeconds(stored)

	percent := int(math.Round(clamp01(stored/TargetSeconds) * 100))
	a.tracker.SetProgress(tasks.Spend2Hours, percent, LegacyTarget)
	log.Trace("Spend time flushed: %.2fs (%d%%)", stored, percent)
}

func (a *Accumulator) Enable() {
	a.enabled = true
}

func (a *Accumulator) Disable() {
	a.enabled = false
	a.Flush()
}

func (a *Accumulator) Pause() {
	a.paused = true
	a.Flush()
}

func (a *Accumulator) Resume() {
	a.paused = false
}

func (a *Accumulator) SetFocused(focused bool) {
	a.focused = focused
	if !focused {
		a.Flush()
	}
}

// Quit flushes on shutdown.
func (a *Accumulator) Quit() {
	a.enabled = false
	a.Flush()
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
