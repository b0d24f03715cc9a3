// Package reconcile keeps a collection of live objects in line with a collection
// of lightweight descriptors describing desired state.
//
// A Reconciler holds a mapping from keys to live objects. Each call to Update
// takes a full snapshot of descriptors and drives a Factory so that the mapping
// converges to the snapshot while preserving object identity: objects whose key
// is still described are mutated in place, never recreated.
//
// # Algorithm
//
// Update compares the current key set with the snapshot key set using
// setdiff.Diff and then:
//
//  1. removes the object of every key that is no longer described (Factory.Remove),
//  2. constructs an object for every new key (Factory.Add),
//  3. updates every described object exactly once (Factory.Update), including
//     the ones constructed in step 2.
//
// All removals run before any addition so resources are released before new
// ones are acquired.
//
// # Duplicate keys
//
// Two descriptors with the same key in one snapshot are resolved with a
// DuplicatePolicy: LastWins (default), FirstWins or RejectDuplicates.
//
// # Failures
//
// Update is not transactional. When a callback fails, Update stops and returns a
// *CallbackError naming the operation and key; everything applied before the
// failure stays applied. Callers should inspect the mapping (Keys, Get) before
// retrying.
//
// # Concurrency
//
// A Reconciler is synchronous and does no locking. Callers that share one across
// goroutines must serialize access.
//
// # Usage Example
//
//	r := reconcile.New[uuid.UUID, GhostDescriptor, *Ghost](reconcile.FactoryFuncs[uuid.UUID, GhostDescriptor, *Ghost]{
//	    OnAdd:    func(d GhostDescriptor) (*Ghost, error) { return &Ghost{}, nil },
//	    OnRemove: func(g *Ghost) error { return g.Close() },
//	    OnUpdate: func(d GhostDescriptor, g *Ghost) error { g.Name = d.Name; return nil },
//	})
//
//	report, err := r.Update(descriptors)
package reconcile
