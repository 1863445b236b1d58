package tasklist

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/todo"
)

// User-facing notification text.
const (
	MsgEmptyText      = "Please enter a task name!"
	MsgTextTooLong    = "Task name is too long!"
	MsgTaskAdded      = "Task added!"
	MsgTaskCompleted  = "Task completed!"
	MsgTaskReopened   = "Task marked as pending!"
	MsgTaskDeleted    = "Task deleted!"
	msgClearedPattern = "%d completed tasks cleared!"
)

// ClearedMessage returns the notification text for a clear-completed run.
func ClearedMessage(n int) string {
	return fmt.Sprintf(msgClearedPattern, n)
}

// View is the render target of a controller.
type View interface {
	// Render replaces the displayed list with snap.
	Render(snap Snapshot)
	// ClearInput empties the input surface.
	ClearInput()
	// FocusInput moves focus to the input surface.
	FocusInput()
}

// Option configures a Controller.
type Option func(*Controller)

// WithView attaches the view that is re-rendered after every mutation.
func WithView(v View) Option {
	return func(c *Controller) {
		c.view = v
	}
}

// WithNotifier sets where user-facing notifications go.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithLogger sets the logger for operation tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

// Controller owns the task list.
type Controller struct {
	tasks    []todo.Task
	nextID   int
	view     View
	notifier notify.Notifier
	now      func() time.Time
	logger   *log.Logger
}

// New returns an empty controller. The first task gets id 1.
func New(opts ...Option) *Controller {
	c := &Controller{
		nextID:   1,
		view:     nopView{},
		notifier: nopNotifier{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// SetView attaches v and renders the current state into it.
func (c *Controller) SetView(v View) {
	if v == nil {
		v = nopView{}
	}
	c.view = v
	c.render()
}

// AddTask trims rawText and, if valid, prepends a new open task.
// Validation failures leave the list, the counter and the input untouched,
// report a warning and refocus the input.
func (c *Controller) AddTask(rawText string) (todo.Task, error) {
	text, err := todo.NormalizeText(rawText)
	if err != nil {
		switch {
		case errors.Is(err, todo.ErrEmptyText):
			c.notifier.Notify(MsgEmptyText, notify.Warning)
		case errors.Is(err, todo.ErrTextTooLong):
			c.notifier.Notify(MsgTextTooLong, notify.Warning)
		}
		c.logger.Warn("Rejected task", "err", err)
		c.view.FocusInput()
		return todo.Task{}, err
	}

	task := todo.New(c.nextID, text, c.now())
	c.nextID++
	c.tasks = append([]todo.Task{task}, c.tasks...)

	c.view.ClearInput()
	c.render()
	c.notifier.Notify(MsgTaskAdded, notify.Success)
	c.logger.Debug("Added task", "id", task.ID, "total", len(c.tasks))
	return task, nil
}

// ToggleTask flips the completion flag of the task with id. It reports
// whether a task was found; unknown ids change nothing.
func (c *Controller) ToggleTask(id int) bool {
	i := c.indexOf(id)
	if i < 0 {
		c.logger.Debug("Toggle ignored, no such task", "id", id)
		return false
	}

	completed := c.tasks[i].Toggle()
	c.render()
	if completed {
		c.notifier.Notify(MsgTaskCompleted, notify.Success)
	} else {
		c.notifier.Notify(MsgTaskReopened, notify.Info)
	}
	c.logger.Debug("Toggled task", "id", id, "completed", completed)
	return true
}

// DeleteTask removes the task with id. It reports whether a task was
// found; unknown ids change nothing.
func (c *Controller) DeleteTask(id int) bool {
	i := c.indexOf(id)
	if i < 0 {
		c.logger.Debug("Delete ignored, no such task", "id", id)
		return false
	}

	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	c.render()
	c.notifier.Notify(MsgTaskDeleted, notify.Info)
	c.logger.Debug("Deleted task", "id", id, "total", len(c.tasks))
	return true
}

// ClearCompleted removes every completed task, keeping the relative order
// of the rest, and returns how many were removed. The notification is sent
// even when nothing was removed.
func (c *Controller) ClearCompleted() int {
	kept := make([]todo.Task, 0, len(c.tasks))
	removed := 0
	for _, t := range c.tasks {
		if t.Completed {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	c.tasks = kept

	c.render()
	c.notifier.Notify(ClearedMessage(removed), notify.Info)
	c.logger.Debug("Cleared completed tasks", "removed", removed, "total", len(c.tasks))
	return removed
}

// Seed appends tasks in their given order, after any existing tasks.
// All texts are validated first; if any is invalid nothing is added.
func (c *Controller) Seed(seed []todo.SeedTask) error {
	texts := make([]string, len(seed))
	for i, s := range seed {
		text, err := todo.NormalizeText(s.Text)
		if err != nil {
			return fmt.Errorf("seed task %d: %w", i, err)
		}
		texts[i] = text
	}

	now := c.now()
	for i, s := range seed {
		task := todo.New(c.nextID, texts[i], now)
		task.Completed = s.Completed
		c.nextID++
		c.tasks = append(c.tasks, task)
	}
	c.render()
	c.logger.Debug("Seeded tasks", "count", len(seed), "total", len(c.tasks))
	return nil
}

// Tasks returns a copy of the list in display order.
func (c *Controller) Tasks() []todo.Task {
	out := make([]todo.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Find returns the task with id.
func (c *Controller) Find(id int) (todo.Task, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.tasks[i], true
	}
	return todo.Task{}, false
}

// NextID returns the id the next added task will receive.
func (c *Controller) NextID() int {
	return c.nextID
}

// Snapshot returns the current render state.
func (c *Controller) Snapshot() Snapshot {
	return buildSnapshot(c.tasks)
}

// Stats returns the current counts.
func (c *Controller) Stats() Stats {
	return buildSnapshot(c.tasks).Stats
}

func (c *Controller) indexOf(id int) int {
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) render() {
	c.view.Render(buildSnapshot(c.tasks))
}

type nopView struct{}

func (nopView) Render(Snapshot) {}
func (nopView) ClearInput()     {}
func (nopView) FocusInput()     {}

type nopNotifier struct{}

func (nopNotifier) Notify(string, notify.Category) {}
