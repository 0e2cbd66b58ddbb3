package sparseindex

import (
	"bytes"
	"encoding/binary"
)

const (
	MagicV1   = "SIX1"
	VersionV1 = uint8(1)

	// FlagWeakOrdering marks an index whose trie payload was encoded with
	// the collapsed no-split symbol.
	FlagWeakOrdering = uint8(1 << 0)
	// FlagHasFilter marks the presence of a per-block filter region after
	// the trie payload.
	FlagHasFilter = uint8(1 << 1)

	flagsKnown = FlagWeakOrdering | FlagHasFilter
)

// HeaderBytesV1 is the fixed header length.
//
//	.     | magic | ver | flags | hufflimit | keylen | count | keys/block | payload bits | checksum |
//	.     | 0 - 3 |  4  |   5   |     6     |    7   | 8 - 15|  16 - 23   |   24 - 31    | 32 - 39  |
//	bytes |   4   |  1  |   1   |     1     |    1   |   8   |     8      |      8       |    8     |
//
// All integers are big endian. The checksum is xxhash64 over everything that
// follows the header (trie payload plus filter region, if any).
const HeaderBytesV1 = 40

// HeaderV1 is the decoded form of the index region header. The codec
// configuration fields exist so that Open can reconstruct (or refuse) the
// exact decoder the payload was written with.
type HeaderV1 struct {
	Flags        uint8
	HuffmanLimit uint8
	KeyLen       uint8
	Count        uint64
	KeysPerBlock uint64
	PayloadBits  uint64
	Checksum     uint64
}

// EncodeHeaderV1 writes h into region.
func EncodeHeaderV1(region []byte, h HeaderV1) error {
	if len(region) < HeaderBytesV1 {
		return ErrBadRegionSize
	}
	if h.Flags&^flagsKnown != 0 || h.HuffmanLimit < 2 || h.KeyLen == 0 || h.KeysPerBlock == 0 {
		return ErrBadHeader
	}
	copy(region[0:4], []byte(MagicV1))
	region[4] = VersionV1
	region[5] = h.Flags
	region[6] = h.HuffmanLimit
	region[7] = h.KeyLen
	binary.BigEndian.PutUint64(region[8:16], h.Count)
	binary.BigEndian.PutUint64(region[16:24], h.KeysPerBlock)
	binary.BigEndian.PutUint64(region[24:32], h.PayloadBits)
	binary.BigEndian.PutUint64(region[32:40], h.Checksum)
	return nil
}

// DecodeHeaderV1 decodes and validates a V1 header from region.
func DecodeHeaderV1(region []byte) (HeaderV1, error) {
	if len(region) < HeaderBytesV1 {
		return HeaderV1{}, ErrBadRegionSize
	}
	if !bytes.Equal(region[0:4], []byte(MagicV1)) {
		return HeaderV1{}, ErrBadMagic
	}
	if region[4] != VersionV1 {
		return HeaderV1{}, ErrBadVersion
	}

	h := HeaderV1{
		Flags:        region[5],
		HuffmanLimit: region[6],
		KeyLen:       region[7],
		Count:        binary.BigEndian.Uint64(region[8:16]),
		KeysPerBlock: binary.BigEndian.Uint64(region[16:24]),
		PayloadBits:  binary.BigEndian.Uint64(region[24:32]),
		Checksum:     binary.BigEndian.Uint64(region[32:40]),
	}
	if h.Flags&^flagsKnown != 0 || h.HuffmanLimit < 2 || h.KeyLen == 0 || h.KeysPerBlock == 0 {
		return HeaderV1{}, ErrBadHeader
	}
	return h, nil
}

// payloadBytesV1 returns ceil(payloadBits/8).
func payloadBytesV1(payloadBits uint64) uint64 {
	return (payloadBits + 7) / 8
}
