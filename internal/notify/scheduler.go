package notify

import (
	"sort"
	"time"
)

// Scheduler runs fn once, no earlier than d from now. Implementations must
// invoke fn on the same goroutine that owns the presenter.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// ManualScheduler is a Scheduler driven by a virtual clock. Nothing fires
// until Advance is called.
type ManualScheduler struct {
	now     time.Time
	seq     int
	pending []timer
}

type timer struct {
	at  time.Time
	seq int
	fn  func()
}

// NewManualScheduler returns a scheduler whose clock starts at start.
func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

// After registers fn to run once the virtual clock reaches now+d.
func (m *ManualScheduler) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	m.seq++
	m.pending = append(m.pending, timer{at: m.now.Add(d), seq: m.seq, fn: fn})
}

// Now returns the current virtual time.
func (m *ManualScheduler) Now() time.Time {
	return m.now
}

// Pending returns the number of timers that have not fired yet.
func (m *ManualScheduler) Pending() int {
	return len(m.pending)
}

// Advance moves the clock forward by d, firing every due timer in
// deadline order. Timers registered by a firing callback also fire if
// they fall due within the same window.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now.Add(d)
	for {
		next, ok := m.nextDue(target)
		if !ok {
			break
		}
		m.now = next.at
		next.fn()
	}
	m.now = target
}

// Drain fires every pending timer, including ones scheduled while
// draining, and leaves the clock at the last deadline.
func (m *ManualScheduler) Drain() {
	for len(m.pending) > 0 {
		latest := m.now
		for _, t := range m.pending {
			if t.at.After(latest) {
				latest = t.at
			}
		}
		m.Advance(latest.Sub(m.now))
	}
}

func (m *ManualScheduler) nextDue(limit time.Time) (timer, bool) {
	if len(m.pending) == 0 {
		return timer{}, false
	}
	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at.Equal(m.pending[j].at) {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at.Before(m.pending[j].at)
	})
	next := m.pending[0]
	if next.at.After(limit) {
		return timer{}, false
	}
	m.pending = m.pending[1:]
	return next, true
}
