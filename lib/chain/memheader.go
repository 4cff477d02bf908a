package chain

// MemHeader is an in-memory HeaderView node linked to its predecessor,
// playing the same role here that BlockTreeNode plays for gocoin's Chain:
// the simplest possible backing store, used by tests and by cmd/powdemo to
// build a throwaway chain without touching disk.
type MemHeader struct {
	height uint32
	time   int64
	bits   uint32
	prev   *MemHeader
}

// NewGenesis creates the height-0 header of a new in-memory chain.
func NewGenesis(t int64, bits uint32) *MemHeader {
	return &MemHeader{height: 0, time: t, bits: bits}
}

// Next appends a new tip on top of h.
func (h *MemHeader) Next(t int64, bits uint32) *MemHeader {
	return &MemHeader{height: h.height + 1, time: t, bits: bits, prev: h}
}

func (h *MemHeader) Height() uint32 { return h.height }
func (h *MemHeader) Time() int64    { return h.time }
func (h *MemHeader) Bits() uint32   { return h.bits }

func (h *MemHeader) Prev() (HeaderView, bool) {
	if h.prev == nil {
		return nil, false
	}
	return h.prev, true
}
