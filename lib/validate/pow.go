// Package validate ties a block hash, its claimed bits, and the chain's
// consensus parameters together into the single question a node asks of
// every block it receives: does this actually satisfy its claimed target?
// It is the equivalent of lib/btc's CheckProofOfWork, generalized to also
// reject an out-of-range target the way gocoin's caller never needed to.
package validate

import (
	"github.com/gravitywell/powcore/lib/arith"
	"github.com/gravitywell/powcore/lib/chain"
)

// CheckProofOfWork reports whether hash -- the 32-byte block hash in the
// chain's usual little-endian byte order -- satisfies the target encoded
// by bits. It returns false for any bits that decodes as negative,
// overflowing, zero, or above params.PowLimit, in addition to the
// straightforward case of the hash simply exceeding the target.
func CheckProofOfWork(hash [32]byte, bits uint32, params chain.Params) bool {
	target, negative, overflow := arith.FromCompact(bits)
	if negative || overflow {
		return false
	}
	if target.Cmp(arith.Zero()) == 0 {
		return false
	}
	if target.Cmp(params.PowLimit) > 0 {
		return false
	}
	return arith.FromHashLE(hash).Cmp(target) <= 0
}
