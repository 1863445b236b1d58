// Package notify presents transient, category-colored toast notifications.
//
// Each call to Presenter.Notify creates an independent toast that enters on
// the next frame, stays visible for DwellDuration, exits over ExitDuration
// and is then removed. Timing is delegated to a Scheduler so the same
// presenter runs inside a bubbletea program, under a virtual clock in
// tests, or in a headless replay.
package notify

// Category selects the presentation style of a toast.
type Category string

const (
	Success Category = "success"
	Warning Category = "warning"
	Error   Category = "error"
	Info    Category = "info"
)

// colors maps each category to its background color.
var colors = map[Category]string{
	Success: "#10B981",
	Warning: "#F59E0B",
	Error:   "#EF4444",
	Info:    "#3B82F6",
}

// Color returns the background color for the category. Unrecognized
// categories use the info color.
func (c Category) Color() string {
	if color, ok := colors[c]; ok {
		return color
	}
	return colors[Info]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := colors[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}
