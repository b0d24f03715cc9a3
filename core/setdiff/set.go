package setdiff

// Set is a finite set of comparable elements backed by a map.
// The zero value is a nil map: it can be read but not added to; use New.
type Set[T comparable] map[T]struct{}

// New constructs a set with the provided elements. Duplicate elements are collapsed.
func New[T comparable](elems ...T) Set[T] {
	s := make(Set[T], len(elems))
	for _, elem := range elems {
		s[elem] = struct{}{}
	}
	return s
}

// Add adds elem to the set.
func (s Set[T]) Add(elem T) {
	s[elem] = struct{}{}
}

// Remove deletes elem from the set if present.
func (s Set[T]) Remove(elem T) {
	delete(s, elem)
}

// Contains returns true if and only if elem is in the set.
func (s Set[T]) Contains(elem T) bool {
	_, ok := s[elem]
	return ok
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return len(s)
}

// Slice returns all elements as a slice.
// The order is not guaranteed.
func (s Set[T]) Slice() []T {
	result := make([]T, 0, len(s))
	for elem := range s {
		result = append(result, elem)
	}
	return result
}

// Equal returns true if both sets contain exactly the same elements.
func (s Set[T]) Equal(other Set[T]) bool {
	if len(s) != len(other) {
		return false
	}
	for elem := range s {
		if !other.Contains(elem) {
			return false
		}
	}
	return true
}

// Union returns the elements of a and the elements of b.
func Union[T comparable](a, b Set[T]) Set[T] {
	result := make(Set[T], len(a)+len(b))
	for elem := range a {
		result[elem] = struct{}{}
	}
	for elem := range b {
		result[elem] = struct{}{}
	}
	return result
}

// Intersect returns the elements of a which are also in b.
func Intersect[T comparable](a, b Set[T]) Set[T] {
	// Iterate the smaller side
	if len(b) < len(a) {
		a, b = b, a
	}
	result := make(Set[T], len(a))
	for elem := range a {
		if b.Contains(elem) {
			result[elem] = struct{}{}
		}
	}
	return result
}

// Subtract returns the elements of a which cannot be found in b.
func Subtract[T comparable](a, b Set[T]) Set[T] {
	result := make(Set[T])
	for elem := range a {
		if !b.Contains(elem) {
			result[elem] = struct{}{}
		}
	}
	return result
}
