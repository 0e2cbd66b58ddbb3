package sparseindex

import (
	"bytes"

	"github.com/cespare/xxhash/v2"
	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/forestrie/go-sparseindex/keytrie"
)

// BuildOptions selects the index geometry. The zero value builds a strongly
// ordered index with the default Huffman limit, one key per block and no
// filter region.
type BuildOptions struct {
	// WeakOrdering and HuffmanCodingLimit configure the codec Build
	// constructs. BuildWithCodec ignores them and uses the supplied codec's
	// configuration.
	WeakOrdering       bool
	HuffmanCodingLimit int

	// KeysPerBlock is the destination block granularity. Zero means 1.
	KeysPerBlock uint64

	// FilterBitsPerKey sizes the optional per-block filter region. Zero
	// omits the region entirely.
	FilterBitsPerKey int
}

// Build serializes a sparse index over keys, which must be non-empty,
// share one fixed length, and be sorted strictly ascending.
func Build(keys [][]byte, opts BuildOptions) ([]byte, error) {
	limit := opts.HuffmanCodingLimit
	if limit == 0 {
		limit = keytrie.DefaultHuffmanCodingLimit
	}
	codec, err := keytrie.New(keytrie.Config{
		WeakOrdering:       opts.WeakOrdering,
		HuffmanCodingLimit: limit,
	})
	if err != nil {
		return nil, err
	}
	return BuildWithCodec(codec, keys, opts)
}

// BuildWithCodec is Build with a caller-owned codec, for indexes encoded
// with rebuilt Huffman distributions. The codec's configuration is recorded
// in the header; its table contents are the caller's to persist out of band,
// and such an index must be opened with OpenWithCodec over the same codec.
func BuildWithCodec(codec *keytrie.Codec, keys [][]byte, opts BuildOptions) ([]byte, error) {
	if len(keys) == 0 {
		return nil, ErrNoKeys
	}
	keyLen := len(keys[0])
	if keyLen == 0 {
		return nil, ErrKeyLenMismatch
	}
	if keyLen > 255 {
		return nil, ErrKeyTooLong
	}
	for i := 1; i < len(keys); i++ {
		if len(keys[i]) != keyLen {
			return nil, ErrKeyLenMismatch
		}
		switch bytes.Compare(keys[i-1], keys[i]) {
		case 0:
			return nil, ErrDuplicateKey
		case 1:
			return nil, ErrOutOfOrderKey
		}
	}

	keysPerBlock := opts.KeysPerBlock
	if keysPerBlock == 0 {
		keysPerBlock = 1
	}
	cfg := codec.Config()
	if cfg.HuffmanCodingLimit > 255 {
		return nil, ErrBadHeader
	}

	w := bitbuf.NewWriter()
	err := codec.Encode(w, keys, keytrie.Params{
		KeyLen:           uint64(keyLen),
		N:                uint64(len(keys)),
		DestKeysPerBlock: keysPerBlock,
	})
	if err != nil {
		return nil, err
	}

	flags := uint8(0)
	if cfg.WeakOrdering {
		flags |= FlagWeakOrdering
	}

	var filter []byte
	if opts.FilterBitsPerKey > 0 {
		filter, err = buildFilterV1(keys, keysPerBlock, opts.FilterBitsPerKey)
		if err != nil {
			return nil, err
		}
		flags |= FlagHasFilter
	}

	payload := w.Bytes()
	region := make([]byte, HeaderBytesV1+uint64(len(payload))+uint64(len(filter)))
	copy(region[HeaderBytesV1:], payload)
	copy(region[HeaderBytesV1+uint64(len(payload)):], filter)

	err = EncodeHeaderV1(region, HeaderV1{
		Flags:        flags,
		HuffmanLimit: uint8(cfg.HuffmanCodingLimit),
		KeyLen:       uint8(keyLen),
		Count:        uint64(len(keys)),
		KeysPerBlock: keysPerBlock,
		PayloadBits:  w.Len(),
		Checksum:     xxhash.Sum64(region[HeaderBytesV1:]),
	})
	if err != nil {
		return nil, err
	}
	return region, nil
}
