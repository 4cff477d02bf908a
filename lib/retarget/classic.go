package retarget

import (
	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

// classicRetarget is the original Bitcoin/Litecoin interval retarget,
// generalized from gocoin's GetNextWorkRequired (which hardcodes this as
// the only algorithm) to take an injected Params instead of fixed
// constants, and to support the allow_min_difficulty_blocks escape hatch
// gocoin's mainnet path never exercises.
func classicRetarget(last chain.HeaderView, cand chain.Header, params chain.Params) uint32 {
	interval := params.DifficultyAdjustmentInterval()
	powLimit := params.PowLimit

	if (int64(last.Height())+1)%interval != 0 {
		if params.AllowMinDifficultyBlocks {
			if cand.Time > last.Time()+2*params.PowTargetSpacing {
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

	if params.NoRetargeting {
		return last.Bits()
	}

	actual := clampI64(last.Time()-first.Time(), params.PowTargetTimespan/4, params.PowTargetTimespan*4)

	oldTarget, _, _ := arith.FromCompact(last.Bits())
	// Litecoin's fix: the intermediate target can overflow by one bit when
	// it is already within one bit of pow_limit, so shift it down, multiply
	// and divide, then shift back up.
	shift := oldTarget.BitLen() > powLimit.BitLen()-1

	newTarget := oldTarget
	if shift {
		newTarget = newTarget.Rsh(1)
	}
	newTarget = newTarget.MulU64(uint64(actual)).DivU64(uint64(params.PowTargetTimespan))
	if shift {
		newTarget = newTarget.Lsh(1)
	}
	newTarget = arith.Clamp(newTarget, arith.Zero(), powLimit)
	return newTarget.ToCompact()
}

// lastNonMinDifficultyBits walks back from last while each block is still
// mid-interval and was itself mined at the min-difficulty escape hatch,
// returning the bits of the first block that breaks either condition.
func lastNonMinDifficultyBits(last chain.HeaderView, interval int64, limitCompact uint32) uint32 {
	pindex := last
	for {
		p, ok := pindex.Prev()
		if !ok {
			break
		}
		if int64(pindex.Height())%interval == 0 {
			break
		}
		if pindex.Bits() != limitCompact {
			break
		}
		pindex = p
	}
	return pindex.Bits()
}
