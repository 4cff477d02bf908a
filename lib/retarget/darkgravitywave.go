package retarget

import (
	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

// dgwPastBlocks is Dash's window length for DarkGravity Wave v3.
const dgwPastBlocks = 24

// darkGravityWaveV3 is Dash's DarkGravity Wave v3, written by Evan
// Duffield. Its running average (see the loop below) is explicitly not a
// true mean; the source comment acknowledging this is preserved on the
// accumulation step rather than "fixed".
func darkGravityWaveV3(last chain.HeaderView, cand chain.Header, params chain.Params) uint32 {
	powLimit := params.PowLimit

	if last == nil || last.Height() < dgwPastBlocks {
		return powLimit.ToCompact()
	}

	if params.AllowMinDifficultyBlocks {
		if cand.Time > last.Time()+7200 {
			return powLimit.ToCompact()
		}
		if cand.Time > last.Time()+4*params.PowTargetSpacing {
			t, _, _ := arith.FromCompact(last.Bits())
			t = arith.Clamp(t.MulU64(10), arith.Zero(), powLimit)
			return t.ToCompact()
		}
	}

	pindex := last
	var avg arith.U256
	for count := int64(1); count <= dgwPastBlocks; count++ {
		target, _, _ := arith.FromCompact(pindex.Bits())
		if count == 1 {
			avg = target
		} else {
			// NOTE: that's not an average really, see the source this is
			// grounded on -- it weights the running value by count instead
			// of by count-1, reproduced verbatim.
			avg = avg.MulU64(uint64(count)).Add(target).DivU64(uint64(count + 1))
		}

		if count == dgwPastBlocks {
			break
		}
		p, ok := pindex.Prev()
		if !ok {
			break
		}
		pindex = p
	}

	targetTimespan := dgwPastBlocks * params.PowTargetSpacing
	actual := clampI64(last.Time()-pindex.Time(), targetTimespan/3, targetTimespan*3)

	newTarget := avg.MulU64(uint64(actual)).DivU64(uint64(targetTimespan))
	newTarget = arith.Clamp(newTarget, arith.Zero(), powLimit)
	return newTarget.ToCompact()
}
