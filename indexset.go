// Package indexset provides set data structures optimized to store
// small unsigned integer values.
//
// Values are grouped into fixed-width bitmap blocks: the value v lives
// in bit v%W of the block with key v/W, where W is the bit width of
// the chosen Block type. Only non-empty blocks are stored, so memory
// use tracks the number of occupied blocks rather than the magnitude
// of the largest value.
//
// Two backends share the same semantics: TreeSet keeps blocks in a
// B-tree and SliceSet keeps them in a sorted slice. IndexSet is the
// default choice.
package indexset

import "iter"

// Set is the interface shared by the bitmap-backed set backends.
type Set interface {
	// Len reports the number of values in the set.
	Len() int
	// Empty reports whether the set holds no values.
	Empty() bool
	// Insert adds v to the set.
	Insert(v uint)
	// Remove deletes v from the set, if present.
	Remove(v uint)
	// Contains reports whether v is in the set.
	Contains(v uint) bool
	// All iterates over the values in ascending order.
	All() iter.Seq[uint]
}

// IndexSet is the default set implementation: a TreeSet over 64-bit
// blocks.
type IndexSet = TreeSet[uint64]

// Of returns an IndexSet holding the given values.
func Of(values ...uint) *IndexSet {
	s := NewTreeSet[uint64]()
	for _, v := range values {
		s.Insert(v)
	}
	return s
}

// InsertAll inserts every value produced by seq into s.
func InsertAll(s Set, seq iter.Seq[uint]) {
	for v := range seq {
		s.Insert(v)
	}
}

// ToSlice returns the elements of s in ascending order.
func ToSlice(s Set) []uint {
	out := make([]uint, 0, s.Len())
	for v := range s.All() {
		out = append(out, v)
	}
	return out
}
