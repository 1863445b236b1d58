package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// timerMsg carries a scheduled callback back into the update loop.
type timerMsg struct {
	fn func()
}

// frameMsg asks for a redraw while ripples animate.
type frameMsg time.Time

const frameInterval = 50 * time.Millisecond

// TickScheduler implements notify.Scheduler on top of bubbletea. Each
// request becomes a tea.Tick command; when it fires, the callback runs
// inside Update, so scheduled work never races with the model.
type TickScheduler struct {
	cmds []tea.Cmd
}

// NewTickScheduler returns an empty scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// After queues fn to run d from now.
func (s *TickScheduler) After(d time.Duration, fn func()) {
	s.enqueue(tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{fn: fn}
	}))
}

// Flush returns every queued command as one batch and empties the queue.
func (s *TickScheduler) Flush() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	if len(cmds) == 1 {
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// Len returns the number of queued commands.
func (s *TickScheduler) Len() int {
	return len(s.cmds)
}

func (s *TickScheduler) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		s.cmds = append(s.cmds, cmd)
	}
}

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
