// Package chain defines the read-only header view the retargeting core
// walks, and the consensus parameters it is given. It plays the role
// lib/chain's BlockTreeNode and Chain.Consensus play in the teacher
// codebase, stripped down to the handful of fields next_work_required
// actually needs: height, time, bits and the link to a predecessor.
package chain

// HeaderView is a lazy, finite, reverse-traversable view over a chain's
// header index, starting at some tip and walking Prev() toward genesis.
// Implementations may back this with memory (MemHeader), disk
// (DiskHeaderView), or a test mock; every step must be O(1), and the core
// never assumes random access by height, only sequential walks from a tip.
type HeaderView interface {
	// Height returns the header's height; genesis is 0.
	Height() uint32
	// Time returns the header's timestamp, Unix seconds.
	Time() int64
	// Bits returns the header's compact-encoded target.
	Bits() uint32
	// Prev returns the predecessor header, or ok=false at genesis.
	Prev() (HeaderView, bool)
}

// Header carries the handful of fields a retargeting algorithm needs from
// the candidate block it is computing a target for, as opposed to an
// already-indexed HeaderView node.
type Header struct {
	Time int64
	Bits uint32
}
