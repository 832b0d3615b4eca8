package indexset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth_MatchesBlockType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(8), width[uint8]())
	assert.Equal(t, uint(16), width[uint16]())
	assert.Equal(t, uint(32), width[uint32]())
	assert.Equal(t, uint(64), width[uint64]())
}

func TestSplit_RoundTrips(t *testing.T) {
	t.Parallel()

	for _, v := range []uint{0, 1, 63, 64, 65, 1000, 123456} {
		key, bit := split[uint64](v)
		assert.Equal(t, v, key*64+bit, "value %d", v)
		assert.Less(t, bit, uint(64))
	}

	key, bit := split[uint8](17)
	assert.Equal(t, uint(2), key)
	assert.Equal(t, uint(1), bit)
}

func TestPopcount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, popcount[uint64](0))
	assert.Equal(t, 1, popcount[uint64](1<<63))
	assert.Equal(t, 8, popcount[uint8](0xff))
	assert.Equal(t, 3, popcount[uint32](0b10101))
}
