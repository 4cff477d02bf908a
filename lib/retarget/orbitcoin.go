package retarget

import (
	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

const (
	ossShortWindow = 5
	ossLongWindow  = 20
)

// orbitcoinSuperShield is Orbitcoin Super Shield: two averaging windows of
// 5 and 20 blocks, a 0.25 damping factor, and an asymmetric oscillation
// limiter (+5% / -10%).
//
// The short-window walk below reproduces a bug verbatim: instead of
// stepping pindexShort back on each iteration, the source it is grounded
// on reassigns it to last.Prev() every time, so after the loop pindexShort
// always equals last.Prev() regardless of ossShortWindow, and
// actualShort always comes out to exactly zero before clamping. Fixing
// this would change consensus behavior, so it stays.
func orbitcoinSuperShield(last chain.HeaderView, params chain.Params) uint32 {
	powLimit := params.PowLimit
	spacing := params.PowTargetSpacing
	targetTimespan := spacing * ossLongWindow

	prev, ok := last.Prev()
	if !ok {
		return powLimit.ToCompact()
	}

	pindexShort := prev
	for i := int64(0); i < ossShortWindow; i++ {
		p, ok := last.Prev()
		if !ok {
			break
		}
		pindexShort = p
	}
	actualShort := prev.Time() - pindexShort.Time()

	pindexLong := walkBack(pindexShort, ossLongWindow-ossShortWindow)
	actualLong := last.Time() - pindexLong.Time()

	actualShort = clampI64(actualShort, spacing*ossShortWindow/2, spacing*ossShortWindow*2)
	actualLong = clampI64(actualLong, spacing*ossLongWindow/2, spacing*ossLongWindow*2)

	avg := (actualShort*(ossLongWindow/ossShortWindow) + actualLong) / 2
	actual := (avg + 3*targetTimespan) / 4

	actualMin := targetTimespan * 100 / 105 // +5%
	actualMax := targetTimespan * 110 / 100 // -10%
	actual = clampI64(actual, actualMin, actualMax)

	target, _, _ := arith.FromCompact(last.Bits())
	newTarget := target.MulU64(uint64(actual)).DivU64(uint64(targetTimespan))
	newTarget = arith.Clamp(newTarget, arith.Zero(), powLimit)
	return newTarget.ToCompact()
}
