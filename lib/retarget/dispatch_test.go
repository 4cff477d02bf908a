package retarget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

func mainnetParams() chain.Params {
	return chain.Params{
		PowLimit:          arith.Max().Rsh(32),
		PowTargetTimespan: 14 * 24 * 60 * 60,
		PowTargetSpacing:  10 * 60,
	}
}

// buildChain constructs a MemHeader chain of n+1 blocks (genesis..n), each
// spacing seconds apart, all at the same bits.
func buildChain(n int, spacing int64, bits uint32) *chain.MemHeader {
	tip := chain.NewGenesis(1231006505, bits)
	for i := 1; i <= n; i++ {
		tip = tip.Next(tip.Time()+spacing, bits)
	}
	return tip
}

func TestNextWorkRequiredRejectsInvalidSelector(t *testing.T) {
	e := NewEngine(nil)
	tip := buildChain(200, 600, 0x1d00ffff)
	_, err := e.NextWorkRequired(tip, chain.Header{Time: tip.Time() + 600}, mainnetParams(), Selector(0))
	require.ErrorIs(t, err, ErrInvalidSelector)

	_, err = e.NextWorkRequired(tip, chain.Header{Time: tip.Time() + 600}, mainnetParams(), Selector(7))
	require.ErrorIs(t, err, ErrInvalidSelector)
}

func TestNextWorkRequiredInvalidSelectorDuringWarmupReturnsPowLimit(t *testing.T) {
	params := mainnetParams()
	e := NewEngine(nil)
	tip := buildChain(50, 600, 0x1e00ffff) // heightNext 51 < 100

	got, err := e.NextWorkRequired(tip, chain.Header{Time: tip.Time() + 600}, params, Selector(0))
	require.NoError(t, err)
	assert.Equal(t, params.PowLimitCompact(), got)

	got, err = e.NextWorkRequired(tip, chain.Header{Time: tip.Time() + 600}, params, Selector(7))
	require.NoError(t, err)
	assert.Equal(t, params.PowLimitCompact(), got)
}

func TestNextWorkRequiredWarmupWindow(t *testing.T) {
	params := mainnetParams()
	limitCompact := params.PowLimitCompact()

	tip := buildChain(98, 600, 0x1e00ffff) // height 98, heightNext 99 < 100
	for sel := Classic; sel <= OrbitcoinSuperShield; sel++ {
		e := NewEngine(nil)
		got, err := e.NextWorkRequired(tip, chain.Header{Time: tip.Time() + 600}, params, sel)
		require.NoError(t, err)
		assert.Equalf(t, limitCompact, got, "selector %d should stay in warm-up", sel)
	}
}

func TestNextWorkRequiredResultNeverExceedsPowLimit(t *testing.T) {
	params := mainnetParams()
	tip := buildChain(5000, 600, 0x1d00ffff)

	for sel := Classic; sel <= OrbitcoinSuperShield; sel++ {
		e := NewEngine(nil)
		bits, err := e.NextWorkRequired(tip, chain.Header{Time: tip.Time() + 600, Bits: tip.Bits()}, params, sel)
		require.NoError(t, err)

		target, negative, overflow := arith.FromCompact(bits)
		require.False(t, negative)
		require.False(t, overflow)
		assert.LessOrEqualf(t, target.Cmp(params.PowLimit), 0, "selector %d exceeded pow_limit", sel)
	}
}
