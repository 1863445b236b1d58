// Package tasklist implements the task list controller.
//
// The Controller owns an ordered, newest-first list of tasks and a
// monotonic id counter. Every mutation either commits fully and re-renders
// the attached View, or changes nothing. Toggle and delete on unknown ids
// are silent no-ops so that stale rows in a view can never fail.
//
// Controllers are not safe for concurrent use; a hosting view drives one
// from a single event loop.
package tasklist
