package chain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskHeaderViewRoundTripsThroughSnappyAndCache(t *testing.T) {
	dir := t.TempDir()
	v, err := OpenDiskHeaderView(dir)
	require.NoError(t, err)
	defer v.Close()

	for h := uint32(0); h <= 10; h++ {
		require.NoError(t, v.PutHeader(h, 1231006505+int64(h)*600, 0x1d00ffff))
	}

	tip, err := v.Tip()
	require.NoError(t, err)
	require.Equal(t, uint32(10), tip.Height())

	cur := tip
	for i := 0; i < 10; i++ {
		p, ok := cur.Prev()
		require.True(t, ok)
		require.Equal(t, cur.Height()-1, p.Height())
		cur = p
	}
	_, ok := cur.Prev()
	require.False(t, ok)

	// Re-reading the same height twice must hit the lookaside cache and
	// still return identical data.
	again, err := v.Tip()
	require.NoError(t, err)
	require.Equal(t, tip.Bits(), again.Bits())
	require.Equal(t, tip.Time(), again.Time())
}
