package arith

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulU64Saturates(t *testing.T) {
	got := Max().MulU64(2)
	assert.Equal(t, 0, got.Cmp(Max()))
}

func TestAddSaturates(t *testing.T) {
	got := Max().Add(FromUint64(1))
	assert.Equal(t, 0, got.Cmp(Max()))
}

func TestSubFloorsAtZero(t *testing.T) {
	got := FromUint64(1).Sub(FromUint64(2))
	assert.Equal(t, 0, got.Cmp(Zero()))
}

func TestDivU64PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() {
		FromUint64(10).DivU64(0)
	})
}

func TestClamp(t *testing.T) {
	lo, hi := FromUint64(10), FromUint64(100)
	assert.Equal(t, 0, Clamp(FromUint64(5), lo, hi).Cmp(lo))
	assert.Equal(t, 0, Clamp(FromUint64(500), lo, hi).Cmp(hi))
	assert.Equal(t, 0, Clamp(FromUint64(50), lo, hi).Cmp(FromUint64(50)))
}

func TestLshRshRoundTrip(t *testing.T) {
	v := FromUint64(0xabcd)
	require.Equal(t, 0, v.Lsh(16).Rsh(16).Cmp(v))
}

func TestFromHashLEOrdering(t *testing.T) {
	var hash [32]byte
	hash[0] = 0x01 // least-significant byte on the wire
	got := FromHashLE(hash)
	assert.Equal(t, 0, got.Cmp(FromUint64(1)))
}

func TestBitLenOfZeroIsZero(t *testing.T) {
	assert.Equal(t, 0, Zero().BitLen())
}
