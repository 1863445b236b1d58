// Package ripple tracks the cosmetic click ripple drawn on buttons.
//
// A ripple is centered on the activation point, sized to the larger side of
// the control, and lives for Duration. A control shows at most one ripple at
// a time. Ripples never affect the control's action.
package ripple

import (
	"time"

	"github.com/nibzard/tasklist-go/internal/notify"
)

// Duration is how long a ripple stays on its control.
const Duration = 600 * time.Millisecond

// MaxScale is the scale a ripple reaches at the end of its animation.
const MaxScale = 4.0

// Point is a position in the view's coordinate space.
type Point struct {
	X, Y int
}

// Rect is a control's bounding box.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Ripple is one expanding-fade visual attached to a control.
type Ripple struct {
	Control  string
	Seq      int
	Diameter int
	// Left and Top are the ripple's offset relative to the control's
	// origin, so that its center sits on the activation point.
	Left, Top int
	Started   time.Time
}

// Frame is the animation state of a ripple at a point in time.
type Frame struct {
	Scale   float64
	Opacity float64
}

// Progress returns the animation frame at now, clamped to [0, Duration].
func (r Ripple) Progress(now time.Time) Frame {
	elapsed := now.Sub(r.Started)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > Duration {
		elapsed = Duration
	}
	t := float64(elapsed) / float64(Duration)
	return Frame{Scale: MaxScale * t, Opacity: 1 - t}
}

// Tracker holds the live ripple of each control.
type Tracker struct {
	scheduler notify.Scheduler
	now       func() time.Time
	active    map[string]Ripple
	seq       int
}

// NewTracker returns a tracker that expires ripples through s.
func NewTracker(s notify.Scheduler, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		scheduler: s,
		now:       now,
		active:    make(map[string]Ripple),
	}
}

// Spawn starts a ripple on control at the activation point. A ripple still
// present on the same control is replaced.
func (t *Tracker) Spawn(control string, bounds Rect, at Point) Ripple {
	diameter := bounds.Width
	if bounds.Height > diameter {
		diameter = bounds.Height
	}
	radius := diameter / 2

	t.seq++
	r := Ripple{
		Control:  control,
		Seq:      t.seq,
		Diameter: diameter,
		Left:     at.X - bounds.X - radius,
		Top:      at.Y - bounds.Y - radius,
		Started:  t.now(),
	}
	delete(t.active, control)
	t.active[control] = r

	seq := r.Seq
	t.scheduler.After(Duration, func() {
		if cur, ok := t.active[control]; ok && cur.Seq == seq {
			delete(t.active, control)
		}
	})
	return r
}

// Active returns the ripple currently on control, if any.
func (t *Tracker) Active(control string) (Ripple, bool) {
	r, ok := t.active[control]
	return r, ok
}

// Len returns the number of controls with a live ripple.
func (t *Tracker) Len() int {
	return len(t.active)
}
