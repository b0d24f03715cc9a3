// Package integrity provides health checks for the infrastructure behind
// reconcile cycles.
//
// # Checks Provided
//
//   - Snapshot: Checks that the storage bucket exists and the snapshot object decodes, and lists duplicate descriptor ids.
//   - Schema: Validates that the database tables match the GORM models of live objects (columns, explicit types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/snapshot : Runs the snapshot check (supports ?fix=true to create the bucket).
//   - GET /integrity/schema : Runs the schema check.
package integrity
