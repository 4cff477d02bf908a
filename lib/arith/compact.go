package arith

import "github.com/holiman/uint256"

// FromCompact decodes a 32-bit "nBits" value into the 256-bit target it
// represents, together with the sign and overflow flags packed into the
// same word. It is the direct analogue of lib/btc's SetCompact, except that
// it reports negative/overflow instead of silently ignoring them, matching
// the validator's needs in lib/validate.
func FromCompact(bits uint32) (t U256, negative bool, overflow bool) {
	size := bits >> 24
	word := bits & 0x007fffff

	negative = word != 0 && (bits&0x00800000) != 0
	overflow = word != 0 && (size > 34 ||
		(size > 33 && word > 0xff) ||
		(size > 32 && word > 0xffff))

	var n uint256.Int
	n.SetUint64(uint64(word))
	if size <= 3 {
		n.Rsh(&n, uint(8*(3-size)))
	} else {
		n.Lsh(&n, uint(8*(size-3)))
	}
	return U256{n: n}, negative, overflow
}

// ToCompact encodes t into its 32-bit "nBits" representation. Targets are
// always non-negative, so the sign bit in the result is always clear. It is
// the direct analogue of lib/btc's GetCompact.
func (t U256) ToCompact() uint32 {
	size := uint32((t.BitLen() + 7) / 8)

	var shifted uint256.Int
	if size <= 3 {
		shifted.Lsh(&t.n, uint(8*(3-size)))
	} else {
		shifted.Rsh(&t.n, uint(8*(size-3)))
	}
	word := uint32(shifted.Uint64())

	// The 0x00800000 bit is the sign bit. If truncating to three bytes set
	// it, shift the mantissa down a byte and grow the exponent to compensate.
	if word&0x00800000 != 0 {
		word >>= 8
		size++
	}
	return size<<24 | (word & 0x007fffff)
}

// Difficulty converts a compact nBits value into the conventional
// human-readable difficulty double, where 1.0 corresponds to pow_limit on
// Bitcoin mainnet. It mirrors lib/btc's GetDifficulty exactly and is purely
// informational: lib/retarget only logs it, and no retarget or validation
// decision depends on it.
func Difficulty(bits uint32) float64 {
	shift := int(bits>>24) & 0xff
	diff := float64(0x0000ffff) / float64(bits&0x00ffffff)
	for shift < 29 {
		diff *= 256.0
		shift++
	}
	for shift > 29 {
		diff /= 256.0
		shift--
	}
	return diff
}
