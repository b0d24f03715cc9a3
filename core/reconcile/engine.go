package reconcile

import (
	"fmt"
	"reflect"

	"descriptor-sync/core/setdiff"
)

// Reconciler keeps a mapping from keys to live objects in line with the latest
// collection of descriptors passed to Update.
//
// A Reconciler is not safe for concurrent use. Callers sharing one across
// goroutines must serialize calls to Update.
type Reconciler[K comparable, D Descriptor[K], O any] struct {
	factory Factory[K, D, O]
	policy  DuplicatePolicy

	objects map[K]O
	// order holds the keys of objects in the order they were last described.
	order []K
}

// New creates a Reconciler with an empty mapping.
func New[K comparable, D Descriptor[K], O any](factory Factory[K, D, O], opts ...Option) *Reconciler[K, D, O] {
	if factory == nil {
		panic("reconcile: nil factory")
	}

	o := options{policy: LastWins}
	for _, opt := range opts {
		opt(&o)
	}

	return &Reconciler[K, D, O]{
		factory: factory,
		policy:  o.policy,
		objects: make(map[K]O),
	}
}

// Update reconciles the live objects with descriptors.
//
// Objects whose key is missing from descriptors are removed first. Then an
// object is added for every new key. Finally every described object, new or
// kept, is updated exactly once. Kept objects are mutated in place, never
// recreated.
//
// If a callback fails, Update stops and returns a *CallbackError. Steps that
// already ran are not rolled back; the returned Report lists them.
func (r *Reconciler[K, D, O]) Update(descriptors []D) (Report[K], error) {
	var report Report[K]

	index, order, err := r.index(descriptors)
	if err != nil {
		return report, err
	}

	delta := setdiff.Diff(setdiff.New(r.order...), setdiff.New(order...))

	previous := r.order
	defer func() {
		r.order = r.liveOrder(order, previous)
	}()

	// Release before acquiring so capacity freed by removals is available to adds
	for _, key := range previous {
		if !delta.Removed.Contains(key) {
			continue
		}
		object, ok := r.objects[key]
		if !ok {
			panic(fmt.Sprintf("reconcile: removed key %v has no object", key))
		}
		delete(r.objects, key)
		if err := r.factory.Remove(object); err != nil {
			return report, &CallbackError{Op: OpRemove, Key: key, Err: err}
		}
		report.Removed = append(report.Removed, key)
	}

	for _, key := range order {
		if !delta.Added.Contains(key) {
			continue
		}
		object, err := r.factory.Add(mustLookup(index, key))
		if err == nil && isNil(object) {
			err = ErrNilObject
		}
		if err != nil {
			return report, &CallbackError{Op: OpAdd, Key: key, Err: err}
		}
		r.objects[key] = object
		report.Added = append(report.Added, key)
	}

	for _, key := range order {
		object := mustLookup(r.objects, key)
		if err := r.factory.Update(mustLookup(index, key), object); err != nil {
			return report, &CallbackError{Op: OpUpdate, Key: key, Err: err}
		}
		report.Updated = append(report.Updated, key)
	}

	return report, nil
}

// Adopt places an existing object under key without calling the Factory.
// It lets a caller take over objects that outlived a previous Reconciler, for
// example rows persisted before a restart. The next Update treats adopted
// objects like any other: kept if described, removed otherwise.
func (r *Reconciler[K, D, O]) Adopt(key K, object O) error {
	if _, ok := r.objects[key]; ok {
		return fmt.Errorf("%w: %v", ErrAlreadyMapped, key)
	}
	if isNil(object) {
		return ErrNilObject
	}
	r.objects[key] = object
	r.order = append(r.order, key)
	return nil
}

// Clear removes every live object. It is equivalent to Update(nil).
func (r *Reconciler[K, D, O]) Clear() (Report[K], error) {
	return r.Update(nil)
}

// Get returns the live object for key.
func (r *Reconciler[K, D, O]) Get(key K) (O, bool) {
	object, ok := r.objects[key]
	return object, ok
}

// Keys returns the keys of all live objects in the order they were last described.
func (r *Reconciler[K, D, O]) Keys() []K {
	keys := make([]K, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of live objects.
func (r *Reconciler[K, D, O]) Len() int {
	return len(r.objects)
}

// index builds the key→descriptor lookup and the first-occurrence key order,
// resolving duplicate keys with the configured policy.
func (r *Reconciler[K, D, O]) index(descriptors []D) (map[K]D, []K, error) {
	index := make(map[K]D, len(descriptors))
	order := make([]K, 0, len(descriptors))

	for _, descriptor := range descriptors {
		key := descriptor.Key()
		if _, seen := index[key]; !seen {
			index[key] = descriptor
			order = append(order, key)
			continue
		}

		switch r.policy {
		case RejectDuplicates:
			return nil, nil, fmt.Errorf("%w: %v", ErrDuplicateKey, key)
		case FirstWins:
		default:
			index[key] = descriptor
		}
	}

	return index, order, nil
}

// liveOrder returns the keys that still have an object: described keys first,
// then leftovers from the previous order. Leftovers only exist after a failed Update.
func (r *Reconciler[K, D, O]) liveOrder(described, previous []K) []K {
	order := make([]K, 0, len(r.objects))
	seen := make(setdiff.Set[K], len(r.objects))

	for _, keys := range [][]K{described, previous} {
		for _, key := range keys {
			if _, ok := r.objects[key]; ok && !seen.Contains(key) {
				seen.Add(key)
				order = append(order, key)
			}
		}
	}

	return order
}

// mustLookup panics when key is absent. Both id sets come from the same
// snapshot, so a miss means the diff and the mapping disagree.
func mustLookup[K comparable, V any](m map[K]V, key K) V {
	v, ok := m[key]
	if !ok {
		panic(fmt.Sprintf("reconcile: no entry for key %v", key))
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
