// Package snapshot archives structure snapshots to object storage.
//
// Every snapshot submitted for reconciliation is stored under
// submitted/ before any plan is computed, and structure exports go
// under exports/. The archive is the audit trail for destructive
// plans: the exact submitted document can always be retrieved.
//
// # HTTP Surface
//
//   - GET /snapshots        list archived snapshots
//   - GET /snapshots/{key}  download one archived snapshot
package snapshot
