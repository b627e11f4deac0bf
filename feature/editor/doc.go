// Package editor manages interactive edit sessions over the structure.
//
// Each session is an explicit state machine: a top-level mode
// (read_only, edit) and an in-flight operation (edit, add, delete,
// insert, remove). Transitions are validated; in particular a session
// with unsaved changes or an active operation refuses to drop back to
// viewing unless forced, and structure filters lock while an operation
// is in progress.
//
// Sessions live in memory, keyed by generated UUID, and are exposed
// through a small HTTP surface under /editor/sessions.
package editor
