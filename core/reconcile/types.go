package reconcile

// Descriptor is an immutable description of the desired state of one entity.
type Descriptor[K comparable] interface {
	// Key returns the identifier of the entity.
	// It must stay stable for the lifetime of the entity it names.
	Key() K
}

// Factory owns the lifecycle of live objects.
// The Reconciler is the only caller; it never constructs or destroys objects itself.
type Factory[K comparable, D Descriptor[K], O any] interface {
	// Add constructs a new live object for a descriptor that has no current entry.
	// It must return a non-nil object.
	Add(descriptor D) (O, error)

	// Remove releases an object whose key is no longer described.
	// Ownership of the object passes to Remove.
	Remove(object O) error

	// Update mutates object in place so it reflects descriptor.
	// It runs once per described key on every Update call, for new and kept objects alike.
	Update(descriptor D, object O) error
}

// FactoryFuncs adapts plain functions to the Factory interface.
// A nil OnRemove or OnUpdate is a no-op. A nil OnAdd makes every Add fail.
type FactoryFuncs[K comparable, D Descriptor[K], O any] struct {
	OnAdd    func(descriptor D) (O, error)
	OnRemove func(object O) error
	OnUpdate func(descriptor D, object O) error
}

// Add calls OnAdd.
func (f FactoryFuncs[K, D, O]) Add(descriptor D) (O, error) {
	if f.OnAdd == nil {
		var zero O
		return zero, errNoAddFunc
	}
	return f.OnAdd(descriptor)
}

// Remove calls OnRemove if set.
func (f FactoryFuncs[K, D, O]) Remove(object O) error {
	if f.OnRemove == nil {
		return nil
	}
	return f.OnRemove(object)
}

// Update calls OnUpdate if set.
func (f FactoryFuncs[K, D, O]) Update(descriptor D, object O) error {
	if f.OnUpdate == nil {
		return nil
	}
	return f.OnUpdate(descriptor, object)
}

// Report lists the keys touched by one Update call, in the order the callbacks ran.
// After a failed Update it only lists the callbacks that completed.
type Report[K comparable] struct {
	// Added contains keys whose object was constructed.
	Added []K `json:"added"`

	// Removed contains keys whose object was released.
	Removed []K `json:"removed"`

	// Updated contains keys whose object was brought up to date.
	Updated []K `json:"updated"`
}

// Changed reports whether any object was constructed or released.
func (r Report[K]) Changed() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0
}
