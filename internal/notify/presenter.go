package notify

import (
	"time"

	"github.com/google/uuid"
)

// Toast timing.
const (
	EnterDelay    = 16 * time.Millisecond
	DwellDuration = 3000 * time.Millisecond
	ExitDuration  = 300 * time.Millisecond
)

// Phase is the lifecycle stage of a toast.
type Phase int

const (
	// Entering toasts have been added but not yet transitioned in.
	Entering Phase = iota
	// Visible toasts are fully shown.
	Visible
	// Exiting toasts are transitioning out and will be removed.
	Exiting
)

func (p Phase) String() string {
	switch p {
	case Entering:
		return "entering"
	case Visible:
		return "visible"
	case Exiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// Toast is a single notification overlay.
type Toast struct {
	ID       string
	Message  string
	Category Category
	Phase    Phase
}

// Color returns the toast's background color.
func (t Toast) Color() string {
	return t.Category.Color()
}

// Notifier is the fire-and-forget notification contract.
type Notifier interface {
	Notify(message string, category Category)
}

// Presenter owns the stack of active toasts.
type Presenter struct {
	scheduler Scheduler
	toasts    []*Toast
	observers []func(Toast)
	newID     func() string
}

// NewPresenter returns a presenter that times toasts with s.
func NewPresenter(s Scheduler) *Presenter {
	return &Presenter{
		scheduler: s,
		newID:     uuid.NewString,
	}
}

// Subscribe registers fn to be called with every new toast.
func (p *Presenter) Subscribe(fn func(Toast)) {
	p.observers = append(p.observers, fn)
}

// Notify shows message with the given category. Unrecognized categories are
// presented as Info. Every call produces its own independently timed toast.
func (p *Presenter) Notify(message string, category Category) {
	if !category.Valid() {
		category = Info
	}
	toast := &Toast{
		ID:       p.newID(),
		Message:  message,
		Category: category,
		Phase:    Entering,
	}
	p.toasts = append(p.toasts, toast)
	for _, fn := range p.observers {
		fn(*toast)
	}

	// Each callback captures this toast, not a lookup key, so later
	// toasts never affect its timeline.
	p.scheduler.After(EnterDelay, func() {
		toast.Phase = Visible
		p.scheduler.After(DwellDuration, func() {
			toast.Phase = Exiting
			p.scheduler.After(ExitDuration, func() {
				p.remove(toast)
			})
		})
	})
}

// Toasts returns the active toasts in insertion order.
func (p *Presenter) Toasts() []Toast {
	out := make([]Toast, 0, len(p.toasts))
	for _, t := range p.toasts {
		out = append(out, *t)
	}
	return out
}

func (p *Presenter) remove(target *Toast) {
	for i, t := range p.toasts {
		if t == target {
			p.toasts = append(p.toasts[:i], p.toasts[i+1:]...)
			return
		}
	}
}
