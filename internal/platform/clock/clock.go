package clock

import (
	"sync"
	"time"
)

// DateLayout is the ISO calendar date layout used for day keys.
const DateLayout = "2006-01-02"

// Clock abstracts time so day boundaries can be simulated in tests.
type Clock interface {
	// Now returns the current instant in the clock's location.
	Now() time.Time
}

// SystemClock reads the wall clock and reports it in Location.
// A nil Location means time.Local.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock creates a wall clock evaluated in loc.
func NewSystemClock(loc *time.Location) SystemClock {
	return SystemClock{Location: loc}
}

// Now implements Clock.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// ManualClock is a settable clock for tests and tooling.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock creates a ManualClock frozen at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Now implements Clock.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AddDays moves the clock forward by n calendar days, keeping the wall time.
func (c *ManualClock) AddDays(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, n)
}

// DateKey returns the calendar date of t in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return dayIn(t, loc).Format(DateLayout)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := dayIn(a, loc).Date()
	by, bm, bd := dayIn(b, loc).Date()
	return ay == by && am == bm && ad == bd
}

// BeforeDay reports whether a falls on a calendar day strictly before b's day in loc.
func BeforeDay(a, b time.Time, loc *time.Location) bool {
	return startOfDay(a, loc).Before(startOfDay(b, loc))
}

// IsToday reports whether t falls on the same calendar day as c.Now().
func IsToday(c Clock, t time.Time) bool {
	now := c.Now()
	return SameDay(t, now, now.Location())
}

func dayIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return t.In(loc)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	d := dayIn(t, loc)
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}
