// Package snapshot loads desired-state snapshots for the reconciler.
//
// A snapshot is a document holding the complete list of descriptors:
//
//	{"descriptors": [{"id": "...", "name": "Casper"}]}
//
// The same shape is accepted as JSON, YAML, TOML and MessagePack; the format is
// picked from the file or object extension (see FormatOf).
//
// # Source
//
// Source reads a snapshot object from the storage bucket. When a TTL is set the
// fetched snapshot is kept in memory and reused until it expires; concurrent
// loads of an expired snapshot are collapsed into one fetch with singleflight.
//
// # Usage
//
//	src := snapshot.NewSource[ghosts.Descriptor](client, "snapshots", "ghosts.json", 30*time.Second)
//	descriptors, err := src.Load(ctx)
//
//	// local files (CLI)
//	descriptors, err := snapshot.LoadFile[ghosts.Descriptor]("ghosts.yaml")
package snapshot
