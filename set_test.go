package indexset

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockCounter is implemented by both backends; used to check the
// sparse-storage bound.
type blockCounter interface {
	blockCount() int
}

type backend struct {
	name string
	make func() Set
}

func backends() []backend {
	return []backend{
		{name: "TreeSet", make: func() Set { return NewTreeSet[uint64]() }},
		{name: "SliceSet", make: func() Set { return NewSliceSet[uint64]() }},
	}
}

func TestSet_Insert_DeduplicatesAndIteratesAscending(t *testing.T) {
	t.Parallel()

	indices := []uint{1, 4, 6, 3, 1, 100, 123, 12, 3}

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			set := b.make()
			for _, i := range indices {
				set.Insert(i)
			}

			want := slices.Clone(indices)
			slices.Sort(want)
			want = slices.Compact(want)

			assert.Equal(t, want, ToSlice(set))
			assert.Equal(t, len(want), set.Len())

			// far fewer blocks than one per value
			last := want[len(want)-1]
			bc := set.(blockCounter).blockCount()
			assert.LessOrEqual(t, bc, int(last/64)+1)
		})
	}
}

func TestSet_Remove_LeavesSetDifference(t *testing.T) {
	t.Parallel()

	indices := []uint{1, 4, 6, 3, 1, 100, 123, 12, 3}
	remove := []uint{100, 6, 100, 12, 123, 3}

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			set := b.make()
			for _, i := range indices {
				set.Insert(i)
			}
			for _, i := range remove {
				set.Remove(i)
			}

			want := map[uint]bool{}
			for _, i := range indices {
				want[i] = true
			}
			for _, i := range remove {
				delete(want, i)
			}

			got := map[uint]bool{}
			for v := range set.All() {
				got[v] = true
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestSet_Remove_DropsEmptiedBlocks(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			set := b.make()
			set.Insert(7)
			set.Insert(700)
			require.Equal(t, 2, set.(blockCounter).blockCount())

			set.Remove(700)
			assert.Equal(t, 1, set.(blockCounter).blockCount())

			set.Remove(7)
			assert.Equal(t, 0, set.(blockCounter).blockCount())
			assert.True(t, set.Empty())
		})
	}
}

func TestSet_EmptyBehavior(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			set := b.make()
			assert.True(t, set.Empty())
			assert.Zero(t, set.Len())
			assert.False(t, set.Contains(0))
			assert.Empty(t, ToSlice(set))

			// removing from an empty set is a no-op
			set.Remove(42)
			assert.True(t, set.Empty())
		})
	}
}

func TestSet_ZeroValueIsUsable(t *testing.T) {
	t.Parallel()

	var ts TreeSet[uint64]
	assert.False(t, ts.Contains(3))
	ts.Insert(3)
	assert.True(t, ts.Contains(3))

	var ss SliceSet[uint64]
	assert.False(t, ss.Contains(3))
	ss.Insert(3)
	assert.True(t, ss.Contains(3))
}

func TestSet_All_StopsOnEarlyBreak(t *testing.T) {
	t.Parallel()

	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			t.Parallel()

			set := b.make()
			for v := uint(0); v < 300; v += 3 {
				set.Insert(v)
			}

			var seen []uint
			for v := range set.All() {
				seen = append(seen, v)
				if len(seen) == 5 {
					break
				}
			}
			assert.Equal(t, []uint{0, 3, 6, 9, 12}, seen)
		})
	}
}

func TestSet_BackendsAgreeUnderRandomOps(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	ts := NewTreeSet[uint64]()
	ss := NewSliceSet[uint64]()

	for i := 0; i < 5000; i++ {
		v := uint(rng.Intn(4096))
		if rng.Intn(3) == 0 {
			ts.Remove(v)
			ss.Remove(v)
		} else {
			ts.Insert(v)
			ss.Insert(v)
		}
	}

	assert.Equal(t, ToSlice(ts), ToSlice(ss))
	assert.Equal(t, ts.Len(), ss.Len())
}

func TestTreeSet_Union(t *testing.T) {
	t.Parallel()

	a := Of(1, 2, 64, 300)
	b := Of(2, 3, 65, 9000)

	a.Union(b)

	assert.Equal(t, []uint{1, 2, 3, 64, 65, 300, 9000}, ToSlice(a))
	// b untouched
	assert.Equal(t, []uint{2, 3, 65, 9000}, ToSlice(b))

	// union with nil and empty are no-ops
	a.Union(nil)
	a.Union(NewTreeSet[uint64]())
	assert.Equal(t, []uint{1, 2, 3, 64, 65, 300, 9000}, ToSlice(a))
}

func TestSliceSet_Union(t *testing.T) {
	t.Parallel()

	a := NewSliceSet[uint64]()
	InsertAll(a, slices.Values([]uint{1, 2, 64, 300}))
	b := NewSliceSet[uint64]()
	InsertAll(b, slices.Values([]uint{2, 3, 65, 9000}))

	a.Union(b)

	assert.Equal(t, []uint{1, 2, 3, 64, 65, 300, 9000}, ToSlice(a))
	assert.Equal(t, []uint{2, 3, 65, 9000}, ToSlice(b))
}

func TestSet_Clone_IsIndependent(t *testing.T) {
	t.Parallel()

	t.Run("TreeSet", func(t *testing.T) {
		t.Parallel()

		orig := Of(1, 2, 3)
		cp := orig.Clone()
		cp.Insert(4)
		cp.Remove(1)

		assert.Equal(t, []uint{1, 2, 3}, ToSlice(orig))
		assert.Equal(t, []uint{2, 3, 4}, ToSlice(cp))
	})

	t.Run("SliceSet", func(t *testing.T) {
		t.Parallel()

		orig := NewSliceSet[uint32]()
		orig.Insert(1)
		orig.Insert(2)
		cp := orig.Clone()
		cp.Remove(1)

		assert.Equal(t, []uint{1, 2}, ToSlice(orig))
		assert.Equal(t, []uint{2}, ToSlice(cp))
	})
}

func TestSet_NarrowBlocks(t *testing.T) {
	t.Parallel()

	set := NewTreeSet[uint8]()
	for v := uint(0); v < 24; v++ {
		set.Insert(v)
	}
	assert.Equal(t, 24, set.Len())
	assert.Equal(t, 3, set.blockCount())

	set.Remove(8)
	assert.False(t, set.Contains(8))
	assert.Equal(t, 3, set.blockCount())
}
