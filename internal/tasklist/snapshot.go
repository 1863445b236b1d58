package tasklist

import (
	"time"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// Row is the rendered representation of one task.
type Row struct {
	ID        int
	Text      string
	Completed bool
	CreatedAt time.Time
}

// Stats holds the aggregate counts shown next to the list.
type Stats struct {
	Total     int
	Completed int
	Pending   int
}

// Snapshot is everything a view needs to draw the list.
type Snapshot struct {
	Rows []Row
	Stats
	// Empty is true exactly when there are no tasks; views show the empty
	// state instead of the list.
	Empty bool
	// ShowClearCompleted is true exactly when at least one task is completed.
	ShowClearCompleted bool
}

func buildSnapshot(tasks []todo.Task) Snapshot {
	snap := Snapshot{
		Rows: make([]Row, 0, len(tasks)),
	}
	for _, t := range tasks {
		snap.Rows = append(snap.Rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt,
		})
		if t.Completed {
			snap.Completed++
		}
	}
	snap.Total = len(tasks)
	snap.Pending = snap.Total - snap.Completed
	snap.Empty = snap.Total == 0
	snap.ShowClearCompleted = snap.Completed > 0
	return snap
}
