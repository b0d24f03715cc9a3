package setdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("NewCollapsesDuplicates", func(t *testing.T) {
		s := New(1, 1, 2)
		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Contains(1))
		assert.True(t, s.Contains(2))
	})

	t.Run("AddRemove", func(t *testing.T) {
		s := New[string]()
		s.Add("a")
		assert.True(t, s.Contains("a"))
		s.Remove("a")
		assert.False(t, s.Contains("a"))
		s.Remove("missing")
		assert.Equal(t, 0, s.Len())
	})

	t.Run("NilSetReads", func(t *testing.T) {
		var s Set[int]
		assert.False(t, s.Contains(1))
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Slice())
	})

	t.Run("Slice", func(t *testing.T) {
		assert.ElementsMatch(t, []int{1, 2, 3}, New(3, 2, 1).Slice())
	})

	t.Run("Equal", func(t *testing.T) {
		assert.True(t, New(1, 2).Equal(New(2, 1)))
		assert.False(t, New(1, 2).Equal(New(1)))
		assert.False(t, New(1, 2).Equal(New(1, 3)))
		assert.True(t, New[int]().Equal(nil))
	})
}

func TestSetOperations(t *testing.T) {
	a := New(1, 2, 3)
	b := New(3, 4)

	assert.True(t, New(1, 2, 3, 4).Equal(Union(a, b)))
	assert.True(t, New(3).Equal(Intersect(a, b)))
	assert.True(t, New(3).Equal(Intersect(b, a)))
	assert.True(t, New(1, 2).Equal(Subtract(a, b)))
	assert.True(t, New(4).Equal(Subtract(b, a)))
}
