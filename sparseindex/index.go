package sparseindex

import (
	"github.com/cespare/xxhash/v2"
	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/forestrie/go-sparseindex/keytrie"
)

// Index is an opened, checksum-verified index region. It holds references
// into the region it was opened over; the caller must keep that buffer alive
// and unmodified for the Index's lifetime.
//
// Rank, BlockOf and MaybeContains are safe for concurrent use: each call
// reads through its own cursor and the underlying codec tables are immutable
// once opened.
type Index struct {
	hdr     HeaderV1
	codec   *keytrie.Codec
	payload []byte

	filterMBits uint32
	filterK     uint8
	filterBits  []byte
}

// Open parses and verifies an index region, reconstructing the codec from
// the configuration recorded in the header. Indexes built over rebuilt
// Huffman distributions cannot be opened this way; use OpenWithCodec.
func Open(data []byte) (*Index, error) {
	hdr, err := DecodeHeaderV1(data)
	if err != nil {
		return nil, err
	}
	codec, err := keytrie.New(keytrie.Config{
		WeakOrdering:       hdr.Flags&FlagWeakOrdering != 0,
		HuffmanCodingLimit: int(hdr.HuffmanLimit),
	})
	if err != nil {
		return nil, err
	}
	return open(data, hdr, codec)
}

// OpenWithCodec opens an index region with a caller-supplied codec, which
// must carry the identical configuration the header records. This is the
// only safe path for indexes encoded after RecreateFromDistribution: the
// table contents are not recoverable from the region.
func OpenWithCodec(data []byte, codec *keytrie.Codec) (*Index, error) {
	hdr, err := DecodeHeaderV1(data)
	if err != nil {
		return nil, err
	}
	cfg := codec.Config()
	if cfg.WeakOrdering != (hdr.Flags&FlagWeakOrdering != 0) ||
		cfg.HuffmanCodingLimit != int(hdr.HuffmanLimit) {
		return nil, ErrConfigMismatch
	}
	return open(data, hdr, codec)
}

func open(data []byte, hdr HeaderV1, codec *keytrie.Codec) (*Index, error) {
	payloadBytes := payloadBytesV1(hdr.PayloadBits)
	need := HeaderBytesV1 + payloadBytes
	if uint64(len(data)) < need {
		return nil, ErrTruncated
	}

	ix := &Index{
		hdr:     hdr,
		codec:   codec,
		payload: data[HeaderBytesV1:need],
	}

	if hdr.Flags&FlagHasFilter != 0 {
		mBits, k, bitset, err := parseFilterV1(data[need:])
		if err != nil {
			return nil, err
		}
		ix.filterMBits = mBits
		ix.filterK = k
		ix.filterBits = bitset
		need += filterRegionBytesV1(mBits)
	}

	// The checksum covers the payload and filter exactly; trailing storage
	// padding beyond `need` is outside the region and ignored.
	if xxhash.Sum64(data[HeaderBytesV1:need]) != hdr.Checksum {
		return nil, ErrChecksum
	}
	return ix, nil
}

// Count returns the number of indexed keys.
func (ix *Index) Count() uint64 {
	return ix.hdr.Count
}

// KeyLen returns the fixed key length in bytes.
func (ix *Index) KeyLen() int {
	return int(ix.hdr.KeyLen)
}

// KeysPerBlock returns the destination block granularity.
func (ix *Index) KeysPerBlock() uint64 {
	return ix.hdr.KeysPerBlock
}

// HasFilter reports whether the region carries a per-block filter.
func (ix *Index) HasFilter() bool {
	return ix.filterBits != nil
}

// Rank returns key's rank among the indexed set, exact to the destination
// block granularity the index was built with (and exact absolutely when
// KeysPerBlock is 1 and the index is strongly ordered).
func (ix *Index) Rank(key []byte) (uint64, error) {
	if len(key) != int(ix.hdr.KeyLen) {
		return 0, ErrBadKeyQuery
	}
	r := bitbuf.NewReaderBits(ix.payload, 0, ix.hdr.PayloadBits)
	return ix.codec.Locate(r, key, keytrie.Params{
		KeyLen:           uint64(ix.hdr.KeyLen),
		N:                ix.hdr.Count,
		DestKeysPerBlock: ix.hdr.KeysPerBlock,
	})
}

// BlockOf returns the destination block that may contain key.
func (ix *Index) BlockOf(key []byte) (uint64, error) {
	rank, err := ix.Rank(key)
	if err != nil {
		return 0, err
	}
	return rank / ix.hdr.KeysPerBlock, nil
}

// MaybeContains consults the filter region for (block, key). Without a
// filter region every query answers true (maybe). A false answer is
// definitive: the key was not indexed into that block.
func (ix *Index) MaybeContains(block uint64, key []byte) (bool, error) {
	if len(key) != int(ix.hdr.KeyLen) {
		return false, ErrBadKeyQuery
	}
	if ix.filterBits == nil {
		return true, nil
	}
	h1, h2 := filterHashPairV1(block, key)
	return filterTestV1(ix.filterBits, uint64(ix.filterMBits), ix.filterK, h1, h2), nil
}

// Seek is the storage-engine convenience: the block to read for key, plus
// the filter's verdict on whether reading it can be skipped.
func (ix *Index) Seek(key []byte) (block uint64, maybe bool, err error) {
	block, err = ix.BlockOf(key)
	if err != nil {
		return 0, false, err
	}
	maybe, err = ix.MaybeContains(block, key)
	if err != nil {
		return 0, false, err
	}
	return block, maybe, nil
}
