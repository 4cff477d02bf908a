package retarget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

func TestDualKGW3BelowWindowReturnsPowLimit(t *testing.T) {
	params := mainnetParams()
	tip := buildChain(2, 600, 0x1e00ffff) // height 2 < pastBlocksMin (2160/600 = 3)

	got := dualKGW3(tip, chain.Header{Time: tip.Time() + 600}, params)
	assert.Equal(t, params.PowLimitCompact(), got)
}

func TestDualKGW3EmergencyResetAfterTwelveHourGap(t *testing.T) {
	params := mainnetParams()
	tip := buildChain(500, int64(params.PowTargetSpacing), 0x1e00ffff)

	cand := chain.Header{Time: tip.Time() + 12*60*60 + 1}
	got := dualKGW3(tip, cand, params)
	assert.Equal(t, params.PowLimitCompact(), got)
}

func TestDualKGW3RapidBlockAppliesFifteenPercentCut(t *testing.T) {
	params := mainnetParams()
	// Build a stable chain, then a final block solved far under 1/6 of the
	// target spacing to trigger the raw-delta kicker.
	tip := buildChain(500, int64(params.PowTargetSpacing), 0x1e00ffff)
	rapid := tip.Next(tip.Time()+1, 0x1e00ffff)

	got := dualKGW3(rapid, chain.Header{Time: rapid.Time() + params.PowTargetSpacing}, params)

	gotTarget, _, _ := arith.FromCompact(got)
	oldTarget, _, _ := arith.FromCompact(rapid.Bits())
	assert.LessOrEqual(t, gotTarget.Cmp(oldTarget), 0)
}

func TestDualKGW3NeverExceedsPowLimit(t *testing.T) {
	params := mainnetParams()
	tip := buildChain(500, 10000, 0x1e00ffff) // far slower than target spacing

	got := dualKGW3(tip, chain.Header{Time: tip.Time() + 10000}, params)
	gotTarget, _, _ := arith.FromCompact(got)
	assert.LessOrEqual(t, gotTarget.Cmp(params.PowLimit), 0)
}
