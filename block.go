package indexset

import "math/bits"

// Block is the storage unit for the bitmap chunks of a set. Any
// fixed-width unsigned integer type will do; wider blocks mean fewer
// entries for dense data, narrower blocks waste less space on very
// sparse data.
type Block interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// width returns the number of bits in a block of type B.
// Constant-folds per instantiation.
func width[B Block]() uint {
	return uint(bits.OnesCount64(uint64(^B(0))))
}

// split maps a set element to the key of the block holding it and the
// bit offset inside that block.
func split[B Block](v uint) (key, bit uint) {
	w := width[B]()
	return v / w, v % w
}

// popcount counts the bits set in a single block.
func popcount[B Block](b B) int {
	return bits.OnesCount64(uint64(b))
}
