// Package model provides the shared record types for the draft/sync engine.
//
// This package contains type definitions only. All other internal packages
// import model; model imports nothing internal. This keeps the data model
// the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Draft-bearing records (Order, CheckIn) carry a SyncStatus; the only
//     legal transition is DRAFT -> SENT, enforced at the store's write
//     boundary via SyncStatus.CanTransition.
//   - Customer/SalesPerson/Item are read-only mirrors of remote master data,
//     replaced wholesale on each pull; they carry no sync status.
//   - All JSON tags use snake_case.
package model
