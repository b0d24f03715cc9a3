// Package setdiff compares two identity sets.
//
// Diff classifies every element of from ∪ to exactly once:
//   - Add: in to but not in from
//   - Remove: in from but not in to
//   - Keep: in both
//
// The result is returned as three disjoint sets (Result.Added, Result.Removed,
// Result.Kept). Result.Elements gives the flattened (Modification, value) view.
// Neither form carries an order and callers must not depend on one.
//
// # Usage
//
//	delta := setdiff.Diff(setdiff.New(1, 2), setdiff.New(2, 3))
//	// delta.Added = {3}, delta.Removed = {1}, delta.Kept = {2}
package setdiff
