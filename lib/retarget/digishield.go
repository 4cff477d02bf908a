package retarget

import (
	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

// digiShield is DigiByte's original per-interval retarget. The source this
// is grounded on hardcodes fTestNet to false, which makes the min-difficulty
// branch below dead code; it is kept rather than pruned so the algorithm
// still matches the source line for line.
func digiShield(last chain.HeaderView, cand chain.Header, params chain.Params) uint32 {
	const fTestNet = false

	powLimit := params.PowLimit
	if last == nil {
		return powLimit.ToCompact()
	}

	interval := params.PowTargetTimespan / params.PowTargetSpacing

	if (int64(last.Height())+1)%interval != 0 {
		if fTestNet {
			if cand.Time > last.Time()+params.PowTargetSpacing*2 {
				return powLimit.ToCompact()
			}
			return lastNonMinDifficultyBits(last, interval, powLimit.ToCompact())
		}
		return last.Bits()
	}

	blocksToGoBack := interval
	if int64(last.Height())+1 == interval {
		blocksToGoBack = interval - 1
	}
	first := walkBack(last, blocksToGoBack)

	actual := last.Time() - first.Time()
	lower := params.PowTargetTimespan - params.PowTargetTimespan/4  // 75%
	upper := params.PowTargetTimespan + params.PowTargetTimespan/2  // 150%
	actual = clampI64(actual, lower, upper)

	target, _, _ := arith.FromCompact(last.Bits())
	newTarget := target.MulU64(uint64(actual)).DivU64(uint64(params.PowTargetTimespan))
	newTarget = arith.Clamp(newTarget, arith.Zero(), powLimit)
	return newTarget.ToCompact()
}
