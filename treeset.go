package indexset

import (
	"iter"

	"github.com/google/btree"
)

// btreeDegree is the branching factor for the block tree. 16 keeps
// nodes within a cache line or two for the small entry type used here.
const btreeDegree = 16

// blockEntry pairs a block key with its bitmap.
type blockEntry[B Block] struct {
	key  uint
	bits B
}

func lessEntry[B Block](a, b blockEntry[B]) bool { return a.key < b.key }

// TreeSet is a set of unsigned integers backed by a B-tree of bitmap
// blocks. If bit b is set in the block stored under key k, then the
// value k*W + b is in the set, where W is the bit width of B.
//
// The zero value is an empty set ready for use. TreeSet is not safe
// for concurrent mutation.
type TreeSet[B Block] struct {
	blocks *btree.BTreeG[blockEntry[B]]
}

// NewTreeSet returns an empty TreeSet.
func NewTreeSet[B Block]() *TreeSet[B] {
	return &TreeSet[B]{blocks: btree.NewG(btreeDegree, lessEntry[B])}
}

func (s *TreeSet[B]) tree() *btree.BTreeG[blockEntry[B]] {
	if s.blocks == nil {
		s.blocks = btree.NewG(btreeDegree, lessEntry[B])
	}
	return s.blocks
}

// Len reports the number of values in the set.
func (s *TreeSet[B]) Len() int {
	if s.blocks == nil {
		return 0
	}
	n := 0
	s.blocks.Ascend(func(e blockEntry[B]) bool {
		n += popcount(e.bits)
		return true
	})
	return n
}

// Empty reports whether the set holds no values.
func (s *TreeSet[B]) Empty() bool {
	return s.blocks == nil || s.blocks.Len() == 0
}

// Insert adds v to the set.
func (s *TreeSet[B]) Insert(v uint) {
	key, bit := split[B](v)
	t := s.tree()
	e, ok := t.Get(blockEntry[B]{key: key})
	if !ok {
		e = blockEntry[B]{key: key}
	}
	e.bits |= 1 << bit
	t.ReplaceOrInsert(e)
}

// Remove deletes v from the set, if present. A block whose last bit is
// cleared is dropped from the tree.
func (s *TreeSet[B]) Remove(v uint) {
	if s.blocks == nil {
		return
	}
	key, bit := split[B](v)
	e, ok := s.blocks.Get(blockEntry[B]{key: key})
	if !ok {
		return
	}
	e.bits &^= 1 << bit
	if e.bits == 0 {
		s.blocks.Delete(e)
		return
	}
	s.blocks.ReplaceOrInsert(e)
}

// Contains reports whether v is in the set.
func (s *TreeSet[B]) Contains(v uint) bool {
	if s.blocks == nil {
		return false
	}
	key, bit := split[B](v)
	e, ok := s.blocks.Get(blockEntry[B]{key: key})
	return ok && e.bits&(1<<bit) != 0
}

// All iterates over the values in ascending order.
func (s *TreeSet[B]) All() iter.Seq[uint] {
	return func(yield func(uint) bool) {
		if s.blocks == nil {
			return
		}
		w := width[B]()
		s.blocks.Ascend(func(e blockEntry[B]) bool {
			for bit := uint(0); bit < w; bit++ {
				if e.bits&(1<<bit) == 0 {
					continue
				}
				if !yield(e.key*w + bit) {
					return false
				}
			}
			return true
		})
	}
}

// Union merges other into s, block by block.
func (s *TreeSet[B]) Union(other *TreeSet[B]) {
	if other == nil || other.blocks == nil {
		return
	}
	t := s.tree()
	other.blocks.Ascend(func(e blockEntry[B]) bool {
		cur, ok := t.Get(blockEntry[B]{key: e.key})
		if !ok {
			cur = blockEntry[B]{key: e.key}
		}
		cur.bits |= e.bits
		t.ReplaceOrInsert(cur)
		return true
	})
}

// Clone returns a copy of s. The copy shares no mutable state with
// the original.
func (s *TreeSet[B]) Clone() *TreeSet[B] {
	if s.blocks == nil {
		return NewTreeSet[B]()
	}
	return &TreeSet[B]{blocks: s.blocks.Clone()}
}

// blockCount reports the number of stored blocks.
func (s *TreeSet[B]) blockCount() int {
	if s.blocks == nil {
		return 0
	}
	return s.blocks.Len()
}

// ascendBlocks visits the stored blocks in ascending key order.
func (s *TreeSet[B]) ascendBlocks(visit func(key uint, bits B) bool) {
	if s.blocks == nil {
		return
	}
	s.blocks.Ascend(func(e blockEntry[B]) bool {
		return visit(e.key, e.bits)
	})
}

// setBlock stores a block directly. Callers must supply strictly
// increasing keys and non-zero bits.
func (s *TreeSet[B]) setBlock(key uint, bits B) {
	s.tree().ReplaceOrInsert(blockEntry[B]{key: key, bits: bits})
}
