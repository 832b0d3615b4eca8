package indexset

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
)

// Wire formats for the bitmap sets. Both backends serialize to the
// same representation, so a TreeSet can be decoded into a SliceSet and
// vice versa.
//
// JSON: {"blocks": [[key, bits], ...]} with keys in ascending order.
// Binary: uvarint block count, then per block a uvarint key delta
// (first key absolute) followed by the uvarint bitmap.

var (
	// ErrBlockOrder is returned when decoded blocks are not in strictly
	// ascending key order.
	ErrBlockOrder = errors.New("indexset: blocks out of order")
	// ErrZeroBlock is returned when a decoded block carries no bits.
	ErrZeroBlock = errors.New("indexset: empty block")
	// ErrBlockRange is returned when a decoded bitmap does not fit the
	// destination block type.
	ErrBlockRange = errors.New("indexset: bitmap exceeds block width")
)

type blockPair struct {
	key  uint64
	bits uint64
}

// blockSink is the decoding half shared by the backends.
type blockSink[B Block] interface {
	setBlock(key uint, bits B)
}

func collectPairs[B Block](ascend func(func(key uint, bits B) bool)) []blockPair {
	var pairs []blockPair
	ascend(func(key uint, bits B) bool {
		pairs = append(pairs, blockPair{key: uint64(key), bits: uint64(bits)})
		return true
	})
	return pairs
}

func validatePairs[B Block](pairs []blockPair) error {
	max := uint64(^B(0))
	prev := uint64(0)
	for i, p := range pairs {
		if i > 0 && p.key <= prev {
			return ErrBlockOrder
		}
		if p.bits == 0 {
			return ErrZeroBlock
		}
		if p.bits > max {
			return fmt.Errorf("%w: block %d", ErrBlockRange, p.key)
		}
		prev = p.key
	}
	return nil
}

// applyPairs stores validated pairs; callers must have run
// validatePairs first.
func applyPairs[B Block](dst blockSink[B], pairs []blockPair) {
	for _, p := range pairs {
		dst.setBlock(uint(p.key), B(p.bits))
	}
}

func marshalPairsJSON(pairs []blockPair) ([]byte, error) {
	raw := make([][2]uint64, len(pairs))
	for i, p := range pairs {
		raw[i] = [2]uint64{p.key, p.bits}
	}
	return json.Marshal(struct {
		Blocks [][2]uint64 `json:"blocks"`
	}{Blocks: raw})
}

func unmarshalPairsJSON(data []byte) ([]blockPair, error) {
	var raw struct {
		Blocks [][]uint64 `json:"blocks"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	pairs := make([]blockPair, len(raw.Blocks))
	for i, b := range raw.Blocks {
		if len(b) != 2 {
			return nil, fmt.Errorf("indexset: block %d: want [key, bits], got %d elements", i, len(b))
		}
		pairs[i] = blockPair{key: b[0], bits: b[1]}
	}
	return pairs, nil
}

func marshalPairsBinary(pairs []blockPair) []byte {
	buf := binary.AppendUvarint(nil, uint64(len(pairs)))
	prev := uint64(0)
	for i, p := range pairs {
		delta := p.key
		if i > 0 {
			delta = p.key - prev
		}
		buf = binary.AppendUvarint(buf, delta)
		buf = binary.AppendUvarint(buf, p.bits)
		prev = p.key
	}
	return buf
}

func unmarshalPairsBinary(data []byte) ([]blockPair, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, errors.New("indexset: truncated block count")
	}
	data = data[n:]
	// The declared count is untrusted input; each pair takes at least
	// two bytes, so bound the allocation by what the payload can hold.
	pairs := make([]blockPair, 0, min(count, uint64(len(data))/2))
	key := uint64(0)
	for i := uint64(0); i < count; i++ {
		delta, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, errors.New("indexset: truncated block key")
		}
		data = data[n:]
		bits, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, errors.New("indexset: truncated block bitmap")
		}
		data = data[n:]
		if i == 0 {
			key = delta
		} else {
			if delta == 0 {
				return nil, ErrBlockOrder
			}
			key += delta
		}
		pairs = append(pairs, blockPair{key: key, bits: bits})
	}
	if len(data) != 0 {
		return nil, errors.New("indexset: trailing bytes after blocks")
	}
	return pairs, nil
}

// MarshalJSON implements json.Marshaler.
func (s *TreeSet[B]) MarshalJSON() ([]byte, error) {
	return marshalPairsJSON(collectPairs[B](s.ascendBlocks))
}

// UnmarshalJSON implements json.Unmarshaler, replacing the contents
// of s. On error s is left unchanged.
func (s *TreeSet[B]) UnmarshalJSON(data []byte) error {
	pairs, err := unmarshalPairsJSON(data)
	if err != nil {
		return err
	}
	if err := validatePairs[B](pairs); err != nil {
		return err
	}
	*s = *NewTreeSet[B]()
	applyPairs[B](s, pairs)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *TreeSet[B]) MarshalBinary() ([]byte, error) {
	return marshalPairsBinary(collectPairs[B](s.ascendBlocks)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing the
// contents of s. On error s is left unchanged.
func (s *TreeSet[B]) UnmarshalBinary(data []byte) error {
	pairs, err := unmarshalPairsBinary(data)
	if err != nil {
		return err
	}
	if err := validatePairs[B](pairs); err != nil {
		return err
	}
	*s = *NewTreeSet[B]()
	applyPairs[B](s, pairs)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s *SliceSet[B]) MarshalJSON() ([]byte, error) {
	return marshalPairsJSON(collectPairs[B](s.ascendBlocks))
}

// UnmarshalJSON implements json.Unmarshaler, replacing the contents
// of s. On error s is left unchanged.
func (s *SliceSet[B]) UnmarshalJSON(data []byte) error {
	pairs, err := unmarshalPairsJSON(data)
	if err != nil {
		return err
	}
	if err := validatePairs[B](pairs); err != nil {
		return err
	}
	s.blocks = s.blocks[:0]
	applyPairs[B](s, pairs)
	return nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *SliceSet[B]) MarshalBinary() ([]byte, error) {
	return marshalPairsBinary(collectPairs[B](s.ascendBlocks)), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, replacing the
// contents of s. On error s is left unchanged.
func (s *SliceSet[B]) UnmarshalBinary(data []byte) error {
	pairs, err := unmarshalPairsBinary(data)
	if err != nil {
		return err
	}
	if err := validatePairs[B](pairs); err != nil {
		return err
	}
	s.blocks = s.blocks[:0]
	applyPairs[B](s, pairs)
	return nil
}
