// Package checks implements the individual integrity checks: the snapshot
// object in storage and the database schema behind live objects.
package checks
