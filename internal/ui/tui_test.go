package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/ripple"
	"github.com/nibzard/tasklist-go/internal/tasklist"
	"github.com/nibzard/tasklist-go/internal/todo"
)

var testStart = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, seed ...string) (*Model, *tasklist.Controller, *notify.ManualScheduler) {
	t.Helper()
	s := notify.NewManualScheduler(testStart)
	p := notify.NewPresenter(s)
	ctrl := tasklist.New(tasklist.WithNotifier(p), tasklist.WithClock(s.Now))
	if len(seed) > 0 {
		tasks := make([]todo.SeedTask, len(seed))
		for i, text := range seed {
			tasks[i] = todo.SeedTask{Text: text}
		}
		if err := ctrl.Seed(tasks); err != nil {
			t.Fatalf("Seed: %v", err)
		}
	}
	m := NewModel(ctrl, p, nil, WithScheduler(s), WithClock(s.Now))
	return m, ctrl, s
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func click(m *Model, x, y int) {
	m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func findZone(t *testing.T, m *Model, kind zoneKind, taskID int) zone {
	t.Helper()
	m.View()
	for _, z := range m.zones {
		if z.kind == kind && z.taskID == taskID {
			return z
		}
	}
	t.Fatalf("no zone of kind %d for task %d", kind, taskID)
	return zone{}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestModelAddTaskFromInput(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	if !m.InputFocused() {
		t.Fatal("input should be focused on start")
	}
	view := m.View()
	if !strings.Contains(view, EmptyStateText) {
		t.Errorf("empty list should show the empty state:\n%s", view)
	}

	send(m, runes("  Buy milk  "), tea.KeyMsg{Type: tea.KeyEnter})

	tasks := ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("tasks = %+v", tasks)
	}
	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}
	view = m.View()
	for _, want := range []string{"[ ] Buy milk", "Total: 1  Completed: 0  Pending: 1", tasklist.MsgTaskAdded} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, EmptyStateText) {
		t.Error("empty state shown with a task present")
	}
	if strings.Contains(view, ClearLabel) {
		t.Error("clear control shown with no completed task")
	}
}

func TestModelRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "blank", input: "   ", want: tasklist.MsgEmptyText},
		{name: "too long", input: strings.Repeat("a", todo.MaxTextLength+1), want: tasklist.MsgTextTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ctrl, _ := newTestModel(t)
			send(m, runes(tt.input))
			send(m, tea.KeyMsg{Type: tea.KeyEsc})
			if m.InputFocused() {
				t.Fatal("esc should blur the input")
			}

			// The add button submits even when the input is not focused.
			z := findZone(t, m, zoneAdd, 0)
			click(m, z.rect.X, z.rect.Y)

			if len(ctrl.Tasks()) != 0 {
				t.Fatal("invalid input must not create a task")
			}
			if m.input.Value() != tt.input {
				t.Errorf("input changed to %q", m.input.Value())
			}
			if !m.InputFocused() {
				t.Error("input should regain focus")
			}
			if view := m.View(); !strings.Contains(view, tt.want) {
				t.Errorf("view missing %q:\n%s", tt.want, view)
			}
		})
	}
}

func TestModelToastLifecycle(t *testing.T) {
	m, _, s := newTestModel(t)
	send(m, runes("Walk"), tea.KeyMsg{Type: tea.KeyEnter})

	s.Advance(notify.EnterDelay + notify.DwellDuration)
	if !strings.Contains(m.View(), tasklist.MsgTaskAdded) {
		t.Fatal("exiting toast should still be drawn")
	}
	s.Advance(notify.ExitDuration)
	if strings.Contains(m.View(), tasklist.MsgTaskAdded) {
		t.Fatal("toast should be removed after its exit transition")
	}
}

func TestModelKeyboardRowActions(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "Alpha", "Bravo", "Charlie")
	send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.InputFocused() {
		t.Fatal("tab should move focus to the list")
	}

	send(m, runes("j"), runes("x"))
	if task, _ := ctrl.Find(2); !task.Completed {
		t.Fatal("x should toggle the selected task")
	}
	if !strings.Contains(m.View(), ClearLabel) {
		t.Error("clear control hidden with a completed task")
	}

	send(m, runes("c"))
	if _, ok := ctrl.Find(2); ok {
		t.Fatal("c should clear completed tasks")
	}
	if m.Cursor() != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor())
	}

	send(m, runes("d"))
	tasks := ctrl.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Alpha" {
		t.Fatalf("tasks after delete = %+v", tasks)
	}
	if m.Cursor() != 0 {
		t.Errorf("cursor not clamped: %d", m.Cursor())
	}

	send(m, runes("k"), runes("k"))
	if m.Cursor() != 0 {
		t.Errorf("cursor moved above the first row: %d", m.Cursor())
	}
}

func TestModelFocusAndQuitKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	if cmd := send(m, runes("q")); isQuit(cmd) {
		t.Fatal("q must be typed into the focused input")
	}
	if m.input.Value() != "q" {
		t.Fatalf("input = %q, want q", m.input.Value())
	}

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	send(m, tea.KeyMsg{Type: tea.KeyCtrlUnderscore})
	if !m.InputFocused() {
		t.Fatal("ctrl+/ should focus the input")
	}

	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd := send(m, runes("q")); !isQuit(cmd) {
		t.Fatal("q should quit when the input is not focused")
	}
	if cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Fatal("ctrl+c should quit")
	}
}

func TestModelHelpToggle(t *testing.T) {
	m, _, _ := newTestModel(t)
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "clear completed") {
		t.Fatal("full help shown before toggling")
	}
	send(m, runes("?"))
	if !strings.Contains(m.View(), "clear completed") {
		t.Fatal("? should show the full help")
	}
}

func TestModelMouseBindsRowsByID(t *testing.T) {
	m, ctrl, _ := newTestModel(t, "Alpha", "Bravo", "Charlie")

	z := findZone(t, m, zoneToggle, 2)
	click(m, z.rect.X, z.rect.Y)
	if task, _ := ctrl.Find(2); !task.Completed {
		t.Fatal("checkbox click should toggle task 2")
	}

	z = findZone(t, m, zoneDelete, 3)
	click(m, z.rect.X, z.rect.Y)
	if _, ok := ctrl.Find(3); ok {
		t.Fatal("delete click should remove task 3")
	}
	if len(ctrl.Tasks()) != 2 {
		t.Fatalf("tasks = %+v", ctrl.Tasks())
	}

	// A click outside every zone does nothing.
	click(m, 500, 500)
	if len(ctrl.Tasks()) != 2 {
		t.Fatal("stray click changed the list")
	}
}

func TestModelRippleOnButtons(t *testing.T) {
	m, ctrl, s := newTestModel(t, "Alpha")
	ctrl.ToggleTask(1)

	z := findZone(t, m, zoneClear, 0)
	click(m, z.rect.X+3, z.rect.Y)

	if len(ctrl.Tasks()) != 0 {
		t.Fatal("clear click should still run the action")
	}
	r, ok := m.Ripples().Active(ControlClear)
	if !ok {
		t.Fatal("clear click should spawn a ripple")
	}
	if r.Diameter != z.rect.Width {
		t.Errorf("diameter = %d, want %d", r.Diameter, z.rect.Width)
	}
	if want := 3 - z.rect.Width/2; r.Left != want {
		t.Errorf("left = %d, want %d", r.Left, want)
	}

	send(m, runes("Pay bills"))
	z = findZone(t, m, zoneAdd, 0)
	click(m, z.rect.X, z.rect.Y)
	if len(ctrl.Tasks()) != 1 {
		t.Fatal("add click should add the typed task")
	}
	if _, ok := m.Ripples().Active(ControlAdd); !ok {
		t.Fatal("add click should spawn a ripple")
	}

	s.Advance(ripple.Duration)
	if m.Ripples().Len() != 0 {
		t.Fatalf("ripples left after %s: %d", ripple.Duration, m.Ripples().Len())
	}
}

func TestModelNeutralizesControlCharacters(t *testing.T) {
	m, _, _ := newTestModel(t, "evil\x1b[31mred", "<b>bold</b>")
	view := m.View()
	if strings.Contains(view, "\x1b[31m") {
		t.Fatal("escape sequence from task text reached the terminal")
	}
	for _, want := range []string{"evil\u241b[31mred", "<b>bold</b>"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing literal %q:\n%s", want, view)
		}
	}
}

func TestModelRunsTimerCallbacks(t *testing.T) {
	m, _, _ := newTestModel(t)
	fired := false
	send(m, timerMsg{fn: func() { fired = true }})
	if !fired {
		t.Fatal("timerMsg callback not run")
	}
}

func TestTickSchedulerFlush(t *testing.T) {
	s := NewTickScheduler()
	if s.Flush() != nil {
		t.Fatal("empty scheduler should flush to nil")
	}

	fired := false
	s.After(time.Millisecond, func() { fired = true })
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	cmd := s.Flush()
	if s.Len() != 0 {
		t.Fatal("Flush should empty the queue")
	}
	msg, ok := cmd().(timerMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	msg.fn()
	if !fired {
		t.Fatal("callback not delivered")
	}
}

func TestModelFitsTerminalWidth(t *testing.T) {
	long := strings.Repeat("a", 150)
	tests := []struct {
		width  int
		beside bool
	}{
		{width: 100, beside: true},
		{width: 60, beside: false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("width %d", tt.width), func(t *testing.T) {
			m, ctrl, _ := newTestModel(t)
			send(m, tea.WindowSizeMsg{Width: tt.width, Height: 40})
			task, err := ctrl.AddTask(long)
			if err != nil {
				t.Fatalf("AddTask: %v", err)
			}

			view := m.View()
			lines := strings.Split(view, "\n")
			for i, line := range lines {
				if w := lipgloss.Width(line); w > tt.width {
					t.Errorf("line %d is %d cells wide in a %d-column terminal: %q", i, w, tt.width, ansi.Strip(line))
				}
			}
			if !strings.Contains(view, tasklist.MsgTaskAdded) {
				t.Errorf("notification %q not drawn:\n%s", tasklist.MsgTaskAdded, view)
			}
			if !strings.Contains(view, "…") {
				t.Error("long task text was not truncated")
			}

			del := findZone(t, m, zoneDelete, task.ID)
			if end := del.rect.X + del.rect.Width; end > tt.width {
				t.Fatalf("delete control ends at column %d, beyond %d", end, tt.width)
			}
			row := []rune(ansi.Strip(lines[del.rect.Y]))
			if del.rect.X >= len(row) || string(row[del.rect.X]) != DeleteMark {
				t.Fatalf("no %s at column %d of %q", DeleteMark, del.rect.X, string(row))
			}

			toastLine := -1
			for i, line := range lines {
				if strings.Contains(line, tasklist.MsgTaskAdded) {
					toastLine = i
					break
				}
			}
			if onList := toastLine < len(lines)-3; onList != tt.beside {
				t.Errorf("toast on line %d of %d, want beside list = %v", toastLine, len(lines), tt.beside)
			}

			click(m, del.rect.X, del.rect.Y)
			if got := ctrl.Snapshot().Stats.Total; got != 0 {
				t.Errorf("Total = %d after clicking delete, want 0", got)
			}
		})
	}
}

func TestRunOptionsMouseNeedsAltScreen(t *testing.T) {
	tests := []struct {
		opts RunOptions
		want bool
	}{
		{RunOptions{Mouse: true, AltScreen: true}, true},
		{RunOptions{Mouse: true, AltScreen: false}, false},
		{RunOptions{Mouse: false, AltScreen: true}, false},
		{RunOptions{}, false},
	}
	for _, tt := range tests {
		if got := tt.opts.MouseEnabled(); got != tt.want {
			t.Errorf("%+v.MouseEnabled() = %v, want %v", tt.opts, got, tt.want)
		}
	}
}
