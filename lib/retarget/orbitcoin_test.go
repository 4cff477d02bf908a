package retarget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

func TestOrbitcoinSuperShieldNoPrevReturnsPowLimit(t *testing.T) {
	params := mainnetParams()
	genesis := chain.NewGenesis(1231006505, 0x1e00ffff)

	got := orbitcoinSuperShield(genesis, params)
	assert.Equal(t, params.PowLimitCompact(), got)
}

// TestOrbitcoinSuperShieldShortWindowBugIgnoresRecentTiming reproduces the
// pindexShort bug: the short window's walk never actually steps back
// past last's immediate predecessor, so actualShort always comes out to
// prev.Time()-prev.Time() == 0 rather than reflecting how the preceding
// five blocks were actually spaced. Two chains that share every block up
// to and including height 24 and from height 29 onward, but disagree on
// how heights 25..29's five blocks divided up the time between them,
// must retarget identically -- a correct short window would not have
// that property, since it would walk back into the very blocks that
// differ.
func TestOrbitcoinSuperShieldShortWindowBugIgnoresRecentTiming(t *testing.T) {
	params := mainnetParams()
	spacing := int64(params.PowTargetSpacing)

	prefix := buildChain(24, spacing, 0x1e00ffff)

	// Variant A: five even 600s steps from height 24 to height 29.
	a := prefix
	for i := 0; i < 5; i++ {
		a = a.Next(a.Time()+spacing, 0x1e00ffff)
	}
	aLast := a.Next(a.Time()+spacing, 0x1e00ffff)

	// Variant B: the same total elapsed time from height 24 to height 29,
	// but loaded entirely onto the final step instead of spread evenly.
	b := prefix
	for i := 0; i < 4; i++ {
		b = b.Next(b.Time()+10, 0x1e00ffff)
	}
	b = b.Next(prefix.Time()+5*spacing, 0x1e00ffff)
	bLast := b.Next(b.Time()+spacing, 0x1e00ffff)

	require_ := assert.New(t)
	require_.Equal(a.Time(), b.Time(), "height 29 must land on the same timestamp in both variants")
	require_.Equal(aLast.Time(), bLast.Time())

	gotA := orbitcoinSuperShield(aLast, params)
	gotB := orbitcoinSuperShield(bLast, params)
	assert.Equal(t, gotA, gotB)
}

func TestOrbitcoinSuperShieldNeverExceedsPowLimit(t *testing.T) {
	params := mainnetParams()
	tip := buildChain(100, 10, 0x1e00ffff) // far faster than target spacing

	got := orbitcoinSuperShield(tip, params)
	gotTarget, _, _ := arith.FromCompact(got)
	assert.LessOrEqual(t, gotTarget.Cmp(params.PowLimit), 0)
}
