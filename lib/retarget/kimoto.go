package retarget

import (
	"math"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

// kimotoGravityWell is the Megacoin-style KimotoGravityWell retarget. Its
// window walk terminates early once the observed block rate leaves the
// "event horizon" band around the target rate, rather than always walking
// a fixed number of blocks like the classical algorithm.
func kimotoGravityWell(last chain.HeaderView, params chain.Params) uint32 {
	powLimit := params.PowLimit

	pastSecondsMin := float64(params.PowTargetTimespan) * 0.025
	pastSecondsMax := float64(params.PowTargetTimespan) * 7
	pastBlocksMin := int64(pastSecondsMin) / params.PowTargetSpacing
	pastBlocksMax := int64(pastSecondsMax) / params.PowTargetSpacing

	if last == nil || last.Height() == 0 || int64(last.Height()) < pastBlocksMin {
		return powLimit.ToCompact()
	}

	blockLastSolved := last
	reading := last
	var avg, avgPrev arith.U256
	var actualSecs, targetSecs, mass int64

	for i := int64(1); reading != nil && reading.Height() > 0; i++ {
		if pastBlocksMax > 0 && i > pastBlocksMax {
			break
		}
		mass++

		target, _, _ := arith.FromCompact(reading.Bits())
		if i == 1 {
			avg = target
		} else if avgPrev.Cmp(target) <= 0 {
			avg = target.Sub(avgPrev).DivU64(uint64(i)).Add(avgPrev)
		} else {
			avg = avgPrev.Sub(avgPrev.Sub(target).DivU64(uint64(i)))
		}
		avgPrev = avg

		actualSecs = blockLastSolved.Time() - reading.Time()
		if actualSecs < 0 {
			actualSecs = 0
		}
		targetSecs = params.PowTargetSpacing * mass

		ratio := 1.0
		if actualSecs != 0 && targetSecs != 0 {
			ratio = float64(targetSecs) / float64(actualSecs)
		}

		eventHorizon := 1 + 0.7084*math.Pow(float64(mass)/28.2, -1.228)
		eventHorizonSlow := 1 / eventHorizon

		if mass >= pastBlocksMin && (ratio <= eventHorizonSlow || ratio >= eventHorizon) {
			break
		}

		p, ok := reading.Prev()
		if !ok {
			break
		}
		reading = p
	}

	newTarget := avg
	if actualSecs != 0 && targetSecs != 0 {
		newTarget = newTarget.MulU64(uint64(actualSecs)).DivU64(uint64(targetSecs))
	}
	newTarget = arith.Clamp(newTarget, arith.Zero(), powLimit)
	return newTarget.ToCompact()
}
