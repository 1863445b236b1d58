package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the longest task text accepted, in runes, after trimming.
const MaxTextLength = 200

var (
	// ErrEmptyText is returned when task text is empty after trimming.
	ErrEmptyText = errors.New("task text is empty")
	// ErrTextTooLong is returned when task text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("task text is too long")
)

// Task represents a single entry in the task list.
type Task struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// New returns an open task with the given id and text.
func New(id int, text string, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Text:      text,
		CreatedAt: createdAt,
	}
}

// Toggle flips the completion flag and reports the new value.
func (t *Task) Toggle() bool {
	t.Completed = !t.Completed
	return t.Completed
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // location of the offending value, e.g. "tasks[2].text"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NormalizeText trims raw input and checks it against the length rules.
// It returns the trimmed text on success.
func NormalizeText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", &ValidationError{Path: "text", Err: ErrEmptyText}
	}
	if n := utf8.RuneCountInString(text); n > MaxTextLength {
		return "", &ValidationError{
			Path: "text",
			Err:  fmt.Errorf("%w: %d characters, limit is %d", ErrTextTooLong, n, MaxTextLength),
		}
	}
	return text, nil
}
