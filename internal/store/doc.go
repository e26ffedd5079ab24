// Package store provides the SQLite-backed local record store for the
// draft/sync engine.
//
// The store holds two kinds of data:
//   - Drafts: orders (with line items) and check-ins authored on the device,
//     each carrying a DRAFT/SENT sync status.
//   - Master mirrors: customers, salespersons and catalog items pulled from
//     the remote service and replaced wholesale on each pull.
//
// # Critical Patterns
//
// Write-through upserts: every edit persists the whole record via
// INSERT OR REPLACE. No dirty tracking, no diffed updates - each write is a
// complete idempotent snapshot of the record.
//
// Total invariant in-transaction: any mutation of an order's items recomputes
// and persists the parent order's total_amount inside the same transaction,
// so orders.total_amount always equals SUM(order_items.line_total).
//
// Status at the write boundary: MarkOrderSent and MarkCheckInSent are the
// only paths that change a sync status, and they move DRAFT -> SENT only.
//
// Deterministic ordering: queries order by id COLLATE BINARY. Ids are
// timestamp-sortable, so this is creation order.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: order -> items cascade delete
package store
