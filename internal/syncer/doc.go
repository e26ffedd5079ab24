// Package syncer pushes locally-authored drafts to the remote sales service
// and pulls master-data mirrors back down.
//
// One syncer exists per draft-bearing entity: orders, check-ins, and
// customer-location edits (whose "draft" condition is a dirty flag rather
// than a status). All share the same pass shape:
//
//  1. One-shot snapshot of the current draft set. Empty is a successful
//     no-op, not an error.
//  2. Per record: progress callback, wire payload assembly, network attempt.
//  3. Accepted records flip to SENT with a separate local write. A crash
//     between network accept and local write leaves the record DRAFT and it
//     re-sends next pass; the service treats re-delivery by identifier as
//     idempotent (at-least-once, not exactly-once).
//  4. Any single record's failure is logged and skipped, never aborting the
//     rest of the pass.
//  5. The terminal outcome is Success("synced X of Y ...") even when X < Y;
//     Failure is reserved for a pass that cannot start (the snapshot itself
//     failing).
//
// Passes run sequentially (ordered, attributable progress) or concurrently
// (errgroup fan-out, joined before the count is reported); both shapes keep
// the per-record failure isolation.
package syncer
