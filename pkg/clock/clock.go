package clock

import (
	"sync"
	"time"
)

// DayIDLayout is the layout of a day identifier: the UTC calendar date as YYYYMMDD.
const DayIDLayout = "20060102"

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// DayID returns the day identifier for t.
// Identifiers compare lexically in calendar order.
func DayID(t time.Time) string {
	return t.UTC().Format(DayIDLayout)
}

// CurrentDayID returns the day identifier for the clock's current time.
func CurrentDayID(c Clock) string {
	return DayID(c.Now())
}

// Fixed is a Clock that only moves when told to.
type Fixed struct {
	lock sync.Mutex
	now  time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.now
}

func (f *Fixed) Set(now time.Time) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.now = now
}

func (f *Fixed) Advance(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.now = f.now.Add(d)
}
