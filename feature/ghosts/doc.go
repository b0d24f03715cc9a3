// Package ghosts keeps a table of ghosts in line with descriptor snapshots.
//
// Every ghost row is owned by a reconcile.Reconciler keyed by ghost id. A sync
// inserts rows for new ids, deletes rows whose id disappeared and then updates
// every described row in place, bumping its revision and deriving its display
// name.
//
// Snapshots come from the request body (POST /ghosts/sync), from the storage
// bucket (POST /ghosts/refresh and the background poller started by Run) or
// from a local file (the sync command).
package ghosts
