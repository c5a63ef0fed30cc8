// Package repositories persists catalog snapshots through SQL.
//
// A snapshot is the whole library state: items in insertion order, members in registration
// order and each member's held items in borrow order. [Store.Save] replaces the stored
// snapshot in one transaction; [Store.Load] rebuilds a registry and ledger by replaying
// holdings through the ledger, so availability is never read back from a column.
//
// Queries are built with goqu for the configured dialect (sqlite3 or postgres) and run
// through sqlx, which scans rows into the db-tagged row structs below.
package repositories
