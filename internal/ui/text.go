package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/tasklist"
)

// Static text shared by the renderers.
const (
	Title          = "Task List"
	EmptyStateText = "No tasks yet. Add one above!"
	ClearLabel     = "[ Clear completed ]"
	AddLabel       = "[ Add ]"
	DeleteMark     = "✕"
)

// RenderText writes a plain, uncolored rendering of snap to w.
func RenderText(w io.Writer, snap tasklist.Snapshot) error {
	var b strings.Builder
	b.WriteString(Title + "\n")
	b.WriteString(strings.Repeat("=", len(Title)) + "\n\n")
	b.WriteString(countsLine(snap.Stats) + "\n\n")

	if snap.Empty {
		b.WriteString("  " + EmptyStateText + "\n")
	} else {
		for _, row := range snap.Rows {
			fmt.Fprintf(&b, "  %s #%d %s\n", checkbox(row.Completed), row.ID, Sanitize(row.Text))
		}
	}
	if snap.ShowClearCompleted {
		b.WriteString("\n" + ClearLabel + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderToastsText writes one line per toast.
func RenderToastsText(w io.Writer, toasts []notify.Toast) error {
	var b strings.Builder
	for _, t := range toasts {
		fmt.Fprintf(&b, "[%s] %s (%s)\n", t.Category, Sanitize(t.Message), t.Phase)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func countsLine(s tasklist.Stats) string {
	return fmt.Sprintf("Total: %d  Completed: %d  Pending: %d", s.Total, s.Completed, s.Pending)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}
