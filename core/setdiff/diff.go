package setdiff

// Modification classifies one element of a set difference.
type Modification uint8

const (
	// Add marks an element present in the target set only.
	Add Modification = iota + 1
	// Remove marks an element present in the source set only.
	Remove
	// Keep marks an element present in both sets.
	Keep
)

// String returns the lowercase name of the modification.
func (m Modification) String() string {
	switch m {
	case Add:
		return "add"
	case Remove:
		return "remove"
	case Keep:
		return "keep"
	default:
		return "unknown"
	}
}

// Element pairs a value with its classification.
type Element[T comparable] struct {
	Modification Modification
	Value        T
}

// Result holds the classified delta between two sets.
// Added, Removed and Kept are pairwise disjoint and their union is from ∪ to.
type Result[T comparable] struct {
	// Added contains elements of to that are not in from.
	Added Set[T]
	// Removed contains elements of from that are not in to.
	Removed Set[T]
	// Kept contains elements found in both sets.
	Kept Set[T]
}

// Diff returns which elements have to be added and removed to transform from into to.
// It runs in O(|from| + |to|) and does not modify its inputs.
func Diff[T comparable](from, to Set[T]) Result[T] {
	result := Result[T]{
		Added:   make(Set[T]),
		Removed: make(Set[T]),
		Kept:    make(Set[T]),
	}

	for elem := range to {
		if from.Contains(elem) {
			result.Kept.Add(elem)
		} else {
			result.Added.Add(elem)
		}
	}

	for elem := range from {
		if !to.Contains(elem) {
			result.Removed.Add(elem)
		}
	}

	return result
}

// Elements flattens the result into tagged elements.
// Every element of from ∪ to appears exactly once. The order is not guaranteed.
func (r Result[T]) Elements() []Element[T] {
	elements := make([]Element[T], 0, r.Len())
	for elem := range r.Added {
		elements = append(elements, Element[T]{Modification: Add, Value: elem})
	}
	for elem := range r.Removed {
		elements = append(elements, Element[T]{Modification: Remove, Value: elem})
	}
	for elem := range r.Kept {
		elements = append(elements, Element[T]{Modification: Keep, Value: elem})
	}
	return elements
}

// Len returns the total number of classified elements.
func (r Result[T]) Len() int {
	return len(r.Added) + len(r.Removed) + len(r.Kept)
}

// IsNoop reports whether nothing has to be added or removed.
func (r Result[T]) IsNoop() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0
}
