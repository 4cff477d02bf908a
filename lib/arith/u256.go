// Package arith implements the 256-bit unsigned integer arithmetic and the
// compact ("nBits") codec that every difficulty retargeting algorithm in
// lib/retarget is built on. It plays the same role here that lib/btc's
// Uint256/SetCompact/GetCompact pair play in the teacher codebase, but keeps
// the 256-bit value in a fixed-width type instead of math/big.Int so that
// truncation and saturation are explicit rather than incidental.
package arith

import "github.com/holiman/uint256"

// U256 is a 256-bit unsigned integer used to hold a decoded proof-of-work
// target. The zero value is zero.
type U256 struct {
	n uint256.Int
}

// Zero returns the additive identity.
func Zero() U256 { return U256{} }

// Max returns 2^256 - 1, the saturation ceiling for every operation below.
func Max() U256 {
	var z uint256.Int
	z.SetAllOne()
	return U256{n: z}
}

// FromUint64 widens a machine integer into a U256.
func FromUint64(x uint64) U256 {
	var z uint256.Int
	z.SetUint64(x)
	return U256{n: z}
}

// FromUint256 wraps an already-parsed uint256.Int, for callers (such as
// cmd/powdemo's config loader) that decode pow_limit from hex themselves.
func FromUint256(n uint256.Int) U256 { return U256{n: n} }

// FromHashLE decodes a block hash given in the chain's usual little-endian
// byte order into the big-endian-valued integer used to compare it against
// a target, matching the convention of lib/btc's Uint256.BigInt().
func FromHashLE(hash [32]byte) U256 {
	var be [32]byte
	for i := range hash {
		be[i] = hash[31-i]
	}
	var z uint256.Int
	z.SetBytes(be[:])
	return U256{n: z}
}

// Cmp returns -1, 0 or 1 as t is less than, equal to, or greater than o.
func (t U256) Cmp(o U256) int { return t.n.Cmp(&o.n) }

// BitLen returns the number of bits required to represent t, 0 for zero.
func (t U256) BitLen() int { return t.n.BitLen() }

// Lsh returns t << n, with bits shifted out of the top discarded.
func (t U256) Lsh(n uint) U256 {
	var z uint256.Int
	z.Lsh(&t.n, n)
	return U256{n: z}
}

// Rsh returns t >> n.
func (t U256) Rsh(n uint) U256 {
	var z uint256.Int
	z.Rsh(&t.n, n)
	return U256{n: z}
}

// Add returns t + o, saturating at Max() on overflow rather than wrapping.
func (t U256) Add(o U256) U256 {
	var z uint256.Int
	_, overflow := z.AddOverflow(&t.n, &o.n)
	if overflow {
		return Max()
	}
	return U256{n: z}
}

// Sub returns t - o, floored at Zero() rather than wrapping. Every caller in
// lib/retarget first establishes t >= o, so this floor only guards against
// the arithmetic identities not holding exactly under truncation.
func (t U256) Sub(o U256) U256 {
	var z uint256.Int
	_, underflow := z.SubOverflow(&t.n, &o.n)
	if underflow {
		return Zero()
	}
	return U256{n: z}
}

// MulU64 returns t * factor, saturating at Max() on overflow. Every
// retargeter multiplies a target by a small positive timespan ratio, never
// by another 256-bit value, so this scalar form is all the core needs.
func (t U256) MulU64(factor uint64) U256 {
	var f uint256.Int
	f.SetUint64(factor)
	var z uint256.Int
	_, overflow := z.MulOverflow(&t.n, &f)
	if overflow {
		return Max()
	}
	return U256{n: z}
}

// DivU64 returns t / divisor. divisor must be non-zero: every divisor that
// reaches this function is a product of positive consensus parameters
// (pow_target_timespan, pow_target_spacing, window lengths), so a zero here
// means the caller passed malformed Params and the bug belongs to them.
func (t U256) DivU64(divisor uint64) U256 {
	if divisor == 0 {
		panic("arith: division by zero")
	}
	var d uint256.Int
	d.SetUint64(divisor)
	var z uint256.Int
	z.Div(&t.n, &d)
	return U256{n: z}
}

// Clamp returns v clamped to [lo, hi].
func Clamp(v, lo, hi U256) U256 {
	if v.Cmp(lo) < 0 {
		return lo
	}
	if v.Cmp(hi) > 0 {
		return hi
	}
	return v
}

// String renders t as a hex big-endian integer, for logging and tests.
func (t U256) String() string { return t.n.Hex() }
