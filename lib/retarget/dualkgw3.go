package retarget

import (
	"math"

	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

const dualKGW3DaySeconds = 60 * 60 * 24

// dualKGW3 is the Limx Dev DUAL_KGW3 algorithm: a KimotoGravityWell-style
// average fused with a single-block classical retarget, damped further by
// a rapid-difficulty-increase kicker and a 12-hour emergency reset to
// pow_limit.
func dualKGW3(last chain.HeaderView, cand chain.Header, params chain.Params) uint32 {
	powLimit := params.PowLimit
	blocktime := params.PowTargetSpacing

	pastBlocksMin := int64(float64(dualKGW3DaySeconds)*0.025) / blocktime
	pastBlocksMax := int64(float64(dualKGW3DaySeconds)*7) / blocktime

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
		targetSecs = blocktime * mass

		ratio := 1.0
		if actualSecs != 0 && targetSecs != 0 {
			ratio = float64(targetSecs) / float64(actualSecs)
		}

		// 72 replaces KimotoGravityWell's 28.2: DUAL_KGW3 widens the event
		// horizon band to match its longer intended window.
		eventHorizon := 1 + 0.7084*math.Pow(float64(mass)/72, -1.228)
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

	kgw1 := avg
	if actualSecs != 0 && targetSecs != 0 {
		kgw1 = kgw1.MulU64(uint64(actualSecs)).DivU64(uint64(targetSecs))
	}

	kgw2, _, _ := arith.FromCompact(last.Bits())
	prev, hasPrev := last.Prev()

	var dtRaw int64
	dt := blocktime
	if hasPrev {
		dtRaw = last.Time() - prev.Time()
		dt = dtRaw
		if dt < 0 {
			dt = blocktime
		}
	}
	dt = clampI64(dt, blocktime/3, blocktime*3)
	kgw2 = kgw2.MulU64(uint64(dt)).DivU64(uint64(blocktime))

	newTarget := kgw1.Add(kgw2).Rsh(1)

	// Rapid difficulty increase: if the last block came in under a sixth of
	// the intended spacing, shrink the target by 15% on top of the fusion
	// above, using the raw (possibly negative) delta rather than the
	// clamped dt used just above.
	if hasPrev && dtRaw < blocktime/6 {
		newTarget = newTarget.MulU64(85).DivU64(100)
	}

	// Emergency reset: if the candidate is more than 12 hours past the last
	// block, drop straight to minimum difficulty.
	if cand.Time-last.Time() > 12*60*60 {
		newTarget = powLimit
	}

	newTarget = arith.Clamp(newTarget, arith.Zero(), powLimit)
	return newTarget.ToCompact()
}
