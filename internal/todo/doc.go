// Package todo defines the task record and the seed files used to
// populate a task list at start-up.
//
// A seed file is a JSON document validated against an embedded JSON Schema
// (draft 2020-12) before it is used:
//
//	{
//	  "schema_version": 1,
//	  "tasks": [
//	    {"text": "Buy groceries", "completed": false},
//	    {"text": "Visit the doctor", "completed": true}
//	  ]
//	}
//
// # Task Text
//
// Task text is trimmed of surrounding whitespace and must then be between
// 1 and MaxTextLength characters long. Length is counted in runes, not
// UTF-16 code units, so a character outside the Basic Multilingual Plane
// (most emoji) counts once where a browser text field counts it twice. The
// trimmed text is stored as-is; no further normalization is applied.
//
// Seed files are read-only input. Nothing in this package writes task
// state back to disk.
package todo
