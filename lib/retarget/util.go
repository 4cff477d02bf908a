package retarget

import "github.com/gravitywell/powcore/lib/chain"

// walkBack steps n predecessors back from h, stopping early at genesis.
// Every classical-style retargeter uses this to find the first block of
// its averaging window, the same walk gocoin's GetNextWorkRequired does by
// hand with a plain for loop over Parent.
func walkBack(h chain.HeaderView, n int64) chain.HeaderView {
	cur := h
	for i := int64(0); i < n; i++ {
		p, ok := cur.Prev()
		if !ok {
			return cur
		}
		cur = p
	}
	return cur
}

// clampI64 clamps v to [lo, hi].
func clampI64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
