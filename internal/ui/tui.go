// Package ui provides the terminal and document views of the task list.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/ansi"

	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/ripple"
	"github.com/nibzard/tasklist-go/internal/tasklist"
)

// Controls that show a ripple when clicked.
const (
	ControlAdd   = "add"
	ControlClear = "clear"
)

const (
	toastWidth = 34
	toastGap   = 4

	// minListWidth is the narrowest list that still gets the toast column
	// beside it. Narrower terminals stack the toasts under the list.
	minListWidth = 40
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	countsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	emptyStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	doneTextStyle  = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6"))
	deleteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	buttonStyle    = lipgloss.NewStyle().Bold(true)
	rippleStrong   = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("#93C5FD"))
	rippleWeak     = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("#DBEAFE"))
	toastBaseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 2).
			Width(toastWidth).
			MarginBottom(1)
)

// RunOptions controls how the terminal program is started.
type RunOptions struct {
	Mouse     bool
	AltScreen bool
}

// MouseEnabled reports whether mouse tracking is turned on. Click zones are
// recorded relative to the top of the view, which only matches the
// terminal's rows when the view owns the whole screen, so the mouse needs
// the alternate screen.
func (o RunOptions) MouseEnabled() bool {
	return o.Mouse && o.AltScreen
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, m *Model, opts RunOptions) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.MouseEnabled() {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	_, err := tea.NewProgram(m, programOpts...).Run()
	return err
}

// ToastSource provides the notifications to draw.
type ToastSource interface {
	Toasts() []notify.Toast
}

// Option configures a Model.
type Option func(*Model)

// WithScheduler sets the scheduler used to expire ripples. It defaults to
// the model's tick scheduler.
func WithScheduler(s notify.Scheduler) Option {
	return func(m *Model) {
		m.scheduler = s
	}
}

// WithClock overrides the time source used for ripple animation.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// Model is the bubbletea model hosting a task list controller. It is also
// the controller's View.
type Model struct {
	ctrl      *tasklist.Controller
	toasts    ToastSource
	ticks     *TickScheduler
	scheduler notify.Scheduler
	ripples   *ripple.Tracker
	now       func() time.Time
	logger    *log.Logger

	input    textinput.Model
	keys     keyMap
	help     help.Model
	showHelp bool

	snap   tasklist.Snapshot
	cursor int
	width  int
	zones  []zone
}

type zoneKind int

const (
	zoneInput zoneKind = iota
	zoneAdd
	zoneToggle
	zoneDelete
	zoneClear
)

// zone is a clickable region recorded while rendering. Row zones carry the
// id of the task they act on.
type zone struct {
	kind    zoneKind
	taskID  int
	control string
	rect    ripple.Rect
	action  func()
}

// NewModel returns a model for ctrl and registers it as ctrl's view. The
// ticks scheduler is the one the toast presenter was built with; its queued
// timers are handed to bubbletea after every update.
func NewModel(ctrl *tasklist.Controller, toasts ToastSource, ticks *TickScheduler, opts ...Option) *Model {
	if ticks == nil {
		ticks = NewTickScheduler()
	}
	ti := textinput.New()
	ti.Placeholder = "Add a new task"
	ti.Prompt = "> "
	ti.Width = 40

	m := &Model{
		ctrl:   ctrl,
		toasts: toasts,
		ticks:  ticks,
		now:    time.Now,
		input:  ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.scheduler == nil {
		m.scheduler = m.ticks
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.ripples = ripple.NewTracker(m.scheduler, m.now)
	m.FocusInput()
	ctrl.SetView(m)
	return m
}

// Render stores the snapshot to draw.
func (m *Model) Render(snap tasklist.Snapshot) {
	m.snap = snap
	m.clampCursor()
}

// ClearInput empties the input field.
func (m *Model) ClearInput() {
	m.input.SetValue("")
}

// FocusInput focuses the input field.
func (m *Model) FocusInput() {
	m.ticks.enqueue(m.input.Focus())
}

// InputFocused reports whether key presses go to the input field.
func (m *Model) InputFocused() bool {
	return m.input.Focused()
}

// Cursor returns the index of the selected row.
func (m *Model) Cursor() int {
	return m.cursor
}

// Ripples returns the model's ripple tracker.
func (m *Model) Ripples() *ripple.Tracker {
	return m.ripples
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.ticks.Flush())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case timerMsg:
		msg.fn()
	case frameMsg:
		if m.ripples.Len() > 0 {
			m.ticks.enqueue(frameCmd())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		listWidth, _ := m.layout()
		m.input.Width = max(10, min(60, listWidth-lipgloss.Width(m.input.Prompt)-lipgloss.Width(AddLabel)-3))
		m.help.Width = listWidth
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	default:
		m.input, cmd = m.input.Update(msg)
	}
	return m, tea.Batch(cmd, m.ticks.Flush())
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.ForceQuit) {
		return tea.Quit
	}
	if key.Matches(msg, m.keys.Focus) {
		m.FocusInput()
		return nil
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.Submit):
			m.submit()
			return nil
		case key.Matches(msg, m.keys.Blur), key.Matches(msg, m.keys.Switch):
			m.input.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Switch):
		m.FocusInput()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snap.Rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selectedRow(); ok {
			m.ctrl.ToggleTask(row.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if row, ok := m.selectedRow(); ok {
			m.ctrl.DeleteTask(row.ID)
		}
	case key.Matches(msg, m.keys.Clear):
		if m.snap.ShowClearCompleted {
			m.ctrl.ClearCompleted()
		}
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	at := ripple.Point{X: msg.X, Y: msg.Y}
	for _, z := range m.zones {
		if !z.rect.Contains(at) {
			continue
		}
		if z.control != "" {
			if m.ripples.Len() == 0 {
				m.ticks.enqueue(frameCmd())
			}
			m.ripples.Spawn(z.control, z.rect, at)
		}
		m.logger.Debug("Click", "kind", z.kind, "task", z.taskID)
		z.action()
		return
	}
}

func (m *Model) submit() {
	if _, err := m.ctrl.AddTask(m.input.Value()); err != nil {
		m.logger.Debug("Add rejected", "err", err)
	}
}

func (m *Model) selectedRow() (tasklist.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.snap.Rows) {
		return tasklist.Row{}, false
	}
	return m.snap.Rows[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.snap.Rows) {
		m.cursor = len(m.snap.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// layout returns the width available to the list and whether the toasts
// are drawn beside it. A zero listWidth means the terminal size is unknown.
func (m *Model) layout() (listWidth int, beside bool) {
	switch {
	case m.width <= 0:
		return 0, true
	case m.width >= minListWidth+toastWidth+toastGap:
		return m.width - toastWidth - toastGap, true
	default:
		return m.width, false
	}
}

// View draws the list and records the clickable zones of this frame.
func (m *Model) View() string {
	var lines []string
	m.zones = m.zones[:0]

	lines = append(lines, titleStyle.Render(Title), "")

	inputView := m.input.View()
	inputWidth := max(lipgloss.Width(inputView), m.input.Width+lipgloss.Width(m.input.Prompt))
	inputView = lipgloss.NewStyle().Width(inputWidth).Render(inputView)
	y := len(lines)
	m.addZone(zone{kind: zoneInput, rect: ripple.Rect{X: 0, Y: y, Width: inputWidth, Height: 1}, action: m.FocusInput})
	addX := inputWidth + 2
	addWidth := lipgloss.Width(AddLabel)
	m.addZone(zone{kind: zoneAdd, control: ControlAdd, rect: ripple.Rect{X: addX, Y: y, Width: addWidth, Height: 1}, action: m.submit})
	lines = append(lines, inputView+"  "+m.renderButton(AddLabel, ControlAdd), "")

	lines = append(lines, countsStyle.Render(countsLine(m.snap.Stats)), "")

	if m.snap.Empty {
		lines = append(lines, "  "+emptyStyle.Render(EmptyStateText))
	} else {
		for i, row := range m.snap.Rows {
			lines = append(lines, m.renderRow(i, row, len(lines)))
		}
	}

	if m.snap.ShowClearCompleted {
		lines = append(lines, "")
		y := len(lines)
		m.addZone(zone{
			kind:    zoneClear,
			control: ControlClear,
			rect:    ripple.Rect{X: 0, Y: y, Width: lipgloss.Width(ClearLabel), Height: 1},
			action:  func() { m.ctrl.ClearCompleted() },
		})
		lines = append(lines, m.renderButton(ClearLabel, ControlClear))
	}

	lines = append(lines, "")
	m.help.ShowAll = m.showHelp
	lines = append(lines, m.help.View(m.keys))

	main := strings.Join(lines, "\n")
	toasts := m.renderToasts()
	if toasts == "" {
		return main
	}
	if _, beside := m.layout(); !beside {
		// Below the list, so the zones recorded above keep their rows.
		return lipgloss.JoinVertical(lipgloss.Left, main, "", toasts)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, strings.Repeat(" ", toastGap), toasts)
}

func (m *Model) renderRow(i int, row tasklist.Row, y int) string {
	prefix := "  "
	if !m.input.Focused() && i == m.cursor {
		prefix = cursorStyle.Render("›") + " "
	}
	box := checkbox(row.Completed)
	text := Sanitize(row.Text)
	if listWidth, _ := m.layout(); listWidth > 0 {
		fixed := lipgloss.Width(prefix) + lipgloss.Width(box) + 1 + 2 + lipgloss.Width(DeleteMark)
		text = ansi.Truncate(text, max(1, listWidth-fixed), "…")
	}
	if row.Completed {
		text = doneTextStyle.Render(text)
	}

	id := row.ID
	boxX := 2
	m.addZone(zone{
		kind:   zoneToggle,
		taskID: id,
		rect:   ripple.Rect{X: boxX, Y: y, Width: lipgloss.Width(box), Height: 1},
		action: func() { m.ctrl.ToggleTask(id) },
	})
	deleteX := boxX + lipgloss.Width(box) + 1 + lipgloss.Width(text) + 2
	m.addZone(zone{
		kind:   zoneDelete,
		taskID: id,
		rect:   ripple.Rect{X: deleteX, Y: y, Width: lipgloss.Width(DeleteMark), Height: 1},
		action: func() { m.ctrl.DeleteTask(id) },
	})

	return prefix + box + " " + text + "  " + deleteStyle.Render(DeleteMark)
}

// renderButton draws label, highlighting the cells reached by the
// control's ripple at the current animation frame.
func (m *Model) renderButton(label, control string) string {
	r, ok := m.ripples.Active(control)
	if !ok {
		return buttonStyle.Render(label)
	}
	frame := r.Progress(m.now())
	if frame.Opacity <= 0 {
		return buttonStyle.Render(label)
	}
	center := r.Left + r.Diameter/2
	reach := frame.Scale / ripple.MaxScale * float64(r.Diameter)
	fill := rippleStrong
	if frame.Opacity < 0.5 {
		fill = rippleWeak
	}

	var b strings.Builder
	for x, ch := range []rune(label) {
		cell := string(ch)
		if d := float64(x - center); d*d <= reach*reach {
			b.WriteString(fill.Render(cell))
		} else {
			b.WriteString(buttonStyle.Render(cell))
		}
	}
	return b.String()
}

func (m *Model) renderToasts() string {
	if m.toasts == nil {
		return ""
	}
	active := m.toasts.Toasts()
	if len(active) == 0 {
		return ""
	}
	width := toastWidth
	if m.width > 0 {
		width = min(width, m.width)
	}
	blocks := make([]string, 0, len(active))
	for _, t := range active {
		style := toastBaseStyle.Width(width).Background(lipgloss.Color(t.Color()))
		if t.Phase != notify.Visible {
			style = style.Faint(true)
		}
		blocks = append(blocks, style.Render(Sanitize(t.Message)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m *Model) addZone(z zone) {
	m.zones = append(m.zones, z)
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
