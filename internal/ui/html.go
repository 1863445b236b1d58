package ui

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/nibzard/tasklist-go/internal/notify"
	"github.com/nibzard/tasklist-go/internal/tasklist"
)

//go:embed templates/page.html.tmpl
var pageSource string

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"timestamp": func(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) },
}).Parse(pageSource))

type pageData struct {
	Title      string
	Empty      string
	AddLabel   string
	ClearLabel string
	DeleteMark string
	Snapshot   tasklist.Snapshot
	Toasts     []notify.Toast
}

// RenderHTML writes snap and the active toasts as a complete HTML document.
// Task text and notification messages are escaped by html/template; rows are
// bound to their task through data-task-id attributes.
func RenderHTML(w io.Writer, snap tasklist.Snapshot, toasts []notify.Toast) error {
	data := pageData{
		Title:      Title,
		Empty:      EmptyStateText,
		AddLabel:   "Add",
		ClearLabel: "Clear completed",
		DeleteMark: DeleteMark,
		Snapshot:   snap,
		Toasts:     toasts,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
