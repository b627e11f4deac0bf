// Package reconcile decides, for two snapshots of the tracked structure
// (Areas, Categories, Attribute definitions), which objects in the new
// snapshot are renamed or edited versions of objects in the old snapshot
// and which are genuinely new, and which old objects were deleted.
//
// # Algorithm
//
// Matching runs in four phases:
//
//  1. Identity tokens: objects sharing a non-empty token are matched with
//     confidence 1.0 before any similarity computation. Tokens are
//     authoritative and never overridden by content similarity.
//  2. Blocking: the remaining objects are partitioned into buckets by
//     kind, owning area, parent and hierarchy level. Objects are only
//     ever compared within the same bucket, so two same-named categories
//     under different areas can never be matched to each other.
//  3. Greedy matching: for every block the full old×new similarity
//     matrix is computed with five weighted signals (position, name,
//     parent, sibling context, attribute overlap). Candidates at or
//     above the confidence threshold are collected across all blocks,
//     sorted by score, and accepted greedily under a one-to-one
//     constraint. This is a greedy approximation of maximum-weight
//     bipartite matching; ties are broken by input order (stable sort).
//  4. Unmatched: leftovers on the old side are candidate deletions,
//     leftovers on the new side are candidate insertions.
//
// GenerateOperations turns a match result into a flat list of
// INSERT/UPDATE/DELETE operations for the persistence layer.
//
// The package is pure computation: it performs no I/O, holds no locks,
// and keeps no state between runs.
package reconcile
