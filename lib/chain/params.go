package chain

import (
	"errors"

	"github.com/gravitywell/powcore/lib/arith"
)

// Params holds the immutable consensus parameters the retargeting core
// needs. It is the equivalent of the handful of fields gocoin keeps on
// Chain.Consensus (MaxPOWBits, MaxPOWValue, ...), but owned by the caller:
// the core never constructs or mutates a Params, it only reads one.
type Params struct {
	// PowLimit is the maximum allowed target, i.e. the minimum allowed
	// difficulty. Every retargeter clamps its result to this value.
	PowLimit arith.U256

	// PowTargetTimespan is the interval, in seconds, over which a classical
	// retarget averages block times.
	PowTargetTimespan int64
	// PowTargetSpacing is the intended time, in seconds, between blocks.
	PowTargetSpacing int64

	// AllowMinDifficultyBlocks enables the testnet-style escape hatch that
	// lets a block be mined at PowLimit after a long gap since the last one.
	AllowMinDifficultyBlocks bool
	// NoRetargeting freezes difficulty at last.Bits() at every boundary.
	NoRetargeting bool

	// SubsidyHalvingInterval is passed through untouched; the core has no
	// use for it, but callers that share one Params record across the
	// whole node (genesis construction, block reward calculation, ...)
	// need somewhere to carry it.
	SubsidyHalvingInterval uint32
}

var (
	// ErrInvalidTimespan is returned by Validate when the timespan/spacing
	// invariant in the data model (timespan >= spacing > 0) doesn't hold.
	ErrInvalidTimespan = errors.New("chain: pow_target_timespan must be >= pow_target_spacing > 0")
	// ErrInvalidPowLimit is returned by Validate when pow_limit is zero, or
	// round-trips through the compact codec as negative or overflowing.
	ErrInvalidPowLimit = errors.New("chain: pow_limit must be positive and decode without overflow or negative sign")
)

// Validate checks the invariants the data model places on Params. Callers
// are expected to call this once, at configuration load time; the core
// itself never re-validates Params on every retarget call.
func (p Params) Validate() error {
	if p.PowTargetSpacing <= 0 || p.PowTargetTimespan < p.PowTargetSpacing {
		return ErrInvalidTimespan
	}
	if p.PowLimit.Cmp(arith.Zero()) <= 0 {
		return ErrInvalidPowLimit
	}
	_, negative, overflow := arith.FromCompact(p.PowLimit.ToCompact())
	if negative || overflow {
		return ErrInvalidPowLimit
	}
	return nil
}

// PowLimitCompact returns pow_limit encoded as nBits, the value every
// retargeter returns during the warm-up window and clamps its output to.
func (p Params) PowLimitCompact() uint32 {
	return p.PowLimit.ToCompact()
}

// DifficultyAdjustmentInterval returns the number of blocks between
// classical retargets.
func (p Params) DifficultyAdjustmentInterval() int64 {
	return p.PowTargetTimespan / p.PowTargetSpacing
}
