package sparseindex

import (
	"crypto/sha256"
	"encoding/binary"
)

// The filter region lets a reader reject "key cannot be in block b" without
// fetching the block. It complements the trie payload: the trie names the
// only block a key can occupy, the filter vetoes most absent keys. The codec
// itself offers no existence queries; this is a storage-layer add-on.
//
// Region layout, following the trie payload:
//
//	.     | mBits | k | reserved | bitset          |
//	.     | 0 - 3 | 4 |  5 - 7   | 8 ...           |
//	bytes |   4   | 1 |    3     | ceil(mBits/8)   |
//
// Bits are addressed LSB-first within each byte. Keys are hashed with a
// domain-separated sha256 over (block, key), so one bitset serves every
// block: a key is set only under its own block's salt.

const (
	filterDomainV1      = 0x51
	filterHeaderBytesV1 = 8
)

// filterRegionBytesV1 returns the byte length of a filter region for mBits.
func filterRegionBytesV1(mBits uint32) uint64 {
	return filterHeaderBytesV1 + uint64((mBits+7)/8)
}

// filterParamsV1 derives the bitset size and probe count from a bits-per-key
// budget. k is the integer nearest to the optimal ln2*bitsPerKey.
func filterParamsV1(count uint64, bitsPerKey int) (mBits uint32, k uint8, err error) {
	if bitsPerKey <= 0 || count == 0 {
		return 0, 0, ErrBadFilterParams
	}
	m := uint64(bitsPerKey) * count
	if m == 0 || m > uint64(^uint32(0)) {
		return 0, 0, ErrBadFilterParams
	}
	probes := (uint64(bitsPerKey)*69 + 50) / 100
	if probes == 0 {
		probes = 1
	}
	if probes > 30 {
		probes = 30
	}
	return uint32(m), uint8(probes), nil
}

func filterHashPairV1(block uint64, key []byte) (h1 uint64, h2 uint64) {
	// sha256( 0x51 || block_be8 || key )
	buf := make([]byte, 1+8, 1+8+len(key))
	buf[0] = filterDomainV1
	binary.BigEndian.PutUint64(buf[1:9], block)
	buf = append(buf, key...)
	sum := sha256.Sum256(buf)
	h1 = binary.BigEndian.Uint64(sum[0:8])
	h2 = binary.BigEndian.Uint64(sum[8:16])
	if h2 == 0 {
		h2 = 1
	}
	return h1, h2
}

func filterSetV1(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		bitset[j>>3] |= 1 << (j & 7)
	}
}

func filterTestV1(bitset []byte, mBits uint64, k uint8, h1, h2 uint64) bool {
	for i := uint64(0); i < uint64(k); i++ {
		j := (h1 + i*h2) % mBits
		if bitset[j>>3]&(1<<(j&7)) == 0 {
			return false
		}
	}
	return true
}

// buildFilterV1 returns the serialized filter region for keys, registering
// each key under the block its position maps to.
func buildFilterV1(keys [][]byte, keysPerBlock uint64, bitsPerKey int) ([]byte, error) {
	mBits, k, err := filterParamsV1(uint64(len(keys)), bitsPerKey)
	if err != nil {
		return nil, err
	}

	region := make([]byte, filterRegionBytesV1(mBits))
	binary.BigEndian.PutUint32(region[0:4], mBits)
	region[4] = k

	bitset := region[filterHeaderBytesV1:]
	for i, key := range keys {
		h1, h2 := filterHashPairV1(uint64(i)/keysPerBlock, key)
		filterSetV1(bitset, uint64(mBits), k, h1, h2)
	}
	return region, nil
}

// parseFilterV1 validates a filter region and returns its parameters and
// bitset, which aliases region.
func parseFilterV1(region []byte) (mBits uint32, k uint8, bitset []byte, err error) {
	if len(region) < filterHeaderBytesV1 {
		return 0, 0, nil, ErrTruncated
	}
	mBits = binary.BigEndian.Uint32(region[0:4])
	k = region[4]
	if mBits == 0 || k == 0 {
		return 0, 0, nil, ErrBadFilterParams
	}
	if uint64(len(region)) < filterRegionBytesV1(mBits) {
		return 0, 0, nil, ErrTruncated
	}
	return mBits, k, region[filterHeaderBytesV1 : filterRegionBytesV1(mBits)], nil
}
