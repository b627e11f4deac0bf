// Package structure connects the reconciler to the tracker database.
//
// It loads the authoritative hierarchy (areas, categories, attribute
// definitions) into reconciler objects, converts submitted JSON
// snapshots into the comparable form, and executes the resulting
// operation plans against the database.
//
// # Planning and Applying
//
// The Service exposes a two-step workflow: Plan reconciles a snapshot
// and returns the reviewable operation list; Apply executes it. The
// applier honors the dependency order (insert parents before children,
// delete children before parents) and refuses unconfirmed deletions.
//
// # HTTP Surface
//
//   - GET  /structure        export the current structure as a snapshot
//   - POST /structure/diff   plan a reconciliation (dry run)
//   - POST /structure/apply  plan and execute (?confirm=true for deletes)
package structure
