package chain

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/dchest/siphash"
	"github.com/golang/snappy"
	"github.com/syndtr/goleveldb/leveldb"
)

// diskCacheLimit bounds the lookaside cache below, the same tradeoff gocoin
// documents on Uint256IdxLen: bigger trades memory for fewer collisions.
const diskCacheLimit = 4096

// DiskHeaderView is a leveldb-backed HeaderView, for a node that keeps its
// header index on disk rather than holding the whole chain in memory.
// Records are snappy-compressed before being written, the same way
// lib/chain's BlockDB compresses block bodies, and are looked up through a
// small siphash-keyed cache instead of hashing the leveldb key on every
// Prev() call, the same tradeoff BIdx makes for gocoin's in-memory
// BlockIndex map.
type DiskHeaderView struct {
	db     *leveldb.DB
	k0, k1 uint64
	tip    uint32

	mu    sync.Mutex
	cache map[uint64]*headerRecord
}

type headerRecord struct {
	height uint32
	time   int64
	bits   uint32
}

// OpenDiskHeaderView opens (or creates) a header index rooted at dir.
func OpenDiskHeaderView(dir string) (*DiskHeaderView, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("chain: open header index at %s: %w", dir, err)
	}
	return &DiskHeaderView{
		db:    db,
		k0:    0x0ddc0ffee0ddc0fe,
		k1:    0xbadc0ffeebadc0de,
		cache: make(map[uint64]*headerRecord),
	}, nil
}

// Close releases the underlying leveldb handle.
func (v *DiskHeaderView) Close() error {
	return v.db.Close()
}

func headerKey(height uint32) []byte {
	var k [4]byte
	binary.BigEndian.PutUint32(k[:], height)
	return k[:]
}

// PutHeader stores the header at height, extending the view's tip if this
// is the highest height written so far.
func (v *DiskHeaderView) PutHeader(height uint32, t int64, bits uint32) error {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], height)
	binary.LittleEndian.PutUint64(buf[4:12], uint64(t))
	binary.LittleEndian.PutUint32(buf[12:16], bits)

	enc := snappy.Encode(nil, buf[:])
	if err := v.db.Put(headerKey(height), enc, nil); err != nil {
		return fmt.Errorf("chain: put header %d: %w", height, err)
	}
	if height >= v.tip {
		v.tip = height
	}
	return nil
}

// Tip returns a HeaderView positioned at the highest height written so far.
func (v *DiskHeaderView) Tip() (HeaderView, error) {
	return v.at(v.tip)
}

func (v *DiskHeaderView) cacheKey(height uint32) uint64 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], height)
	return siphash.Hash(v.k0, v.k1, b[:])
}

func (v *DiskHeaderView) at(height uint32) (*diskHeaderNode, error) {
	ck := v.cacheKey(height)

	v.mu.Lock()
	rec, cached := v.cache[ck]
	v.mu.Unlock()

	if !cached {
		raw, err := v.db.Get(headerKey(height), nil)
		if err != nil {
			return nil, fmt.Errorf("chain: get header %d: %w", height, err)
		}
		dec, err := snappy.Decode(nil, raw)
		if err != nil {
			return nil, fmt.Errorf("chain: decode header %d: %w", height, err)
		}
		rec = &headerRecord{
			height: binary.LittleEndian.Uint32(dec[0:4]),
			time:   int64(binary.LittleEndian.Uint64(dec[4:12])),
			bits:   binary.LittleEndian.Uint32(dec[12:16]),
		}

		v.mu.Lock()
		if len(v.cache) > diskCacheLimit {
			v.cache = make(map[uint64]*headerRecord)
		}
		v.cache[ck] = rec
		v.mu.Unlock()
	}
	return &diskHeaderNode{view: v, rec: rec}, nil
}

type diskHeaderNode struct {
	view *DiskHeaderView
	rec  *headerRecord
}

func (n *diskHeaderNode) Height() uint32 { return n.rec.height }
func (n *diskHeaderNode) Time() int64    { return n.rec.time }
func (n *diskHeaderNode) Bits() uint32   { return n.rec.bits }

func (n *diskHeaderNode) Prev() (HeaderView, bool) {
	if n.rec.height == 0 {
		return nil, false
	}
	prev, err := n.view.at(n.rec.height - 1)
	if err != nil {
		return nil, false
	}
	return prev, true
}
