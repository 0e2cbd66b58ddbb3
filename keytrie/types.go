package keytrie

import "errors"

// DefaultHuffmanCodingLimit is the largest subtree size coded with a tuned
// prefix code before falling back to exp-Golomb, matching the ratio at which
// table cost stops paying for itself for uniformly distributed keys.
const DefaultHuffmanCodingLimit = 16

var (
	ErrHuffmanLimit    = errors.New("keytrie: huffman coding limit must be at least 2")
	ErrBadParams       = errors.New("keytrie: invalid key or range parameters")
	ErrDuplicateKey    = errors.New("keytrie: duplicate keys within the key bit length")
	ErrCorrupt         = errors.New("keytrie: corrupt or mis-configured index stream")
	ErrWeakRebuild     = errors.New("keytrie: weak ordering tables are fixed and cannot be rebuilt")
	ErrBadDistribution = errors.New("keytrie: distribution weights have the wrong arity")
)

// Config fixes the wire-format choices of a Codec. Encoder and decoder MUST
// be configured identically; the stream carries no record of either value.
type Config struct {
	// WeakOrdering collapses the two no-split outcomes of every subtree into
	// one symbol. Ranks inside a collapsed subtree identify the group only.
	WeakOrdering bool

	// HuffmanCodingLimit is the largest subtree size with a dedicated prefix
	// code table. Must be at least 2.
	HuffmanCodingLimit int
}

// Params locates a key range and its destination block geometry. It is
// deliberately explicit: every field is part of the implicit wire contract
// between the encode and locate sides.
type Params struct {
	// KeyLen is the fixed key length in bytes. Keys are compared MSB-first
	// from byte 0; recursion is bounded by KeyLen*8 bits.
	KeyLen uint64

	// Off and N select the window [Off, Off+N) of the key array.
	Off uint64
	N   uint64

	// DestBase offsets logical positions before block mapping, so that a
	// window of a larger array maps to the blocks of the whole.
	DestBase uint64

	// DestKeysPerBlock is the block granularity for the k-perfect hashing
	// truncation. Zero is treated as 1 (no truncation).
	DestKeysPerBlock uint64
}

func (p Params) keysPerBlock() uint64 {
	if p.DestKeysPerBlock == 0 {
		return 1
	}
	return p.DestKeysPerBlock
}
