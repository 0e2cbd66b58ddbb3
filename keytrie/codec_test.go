package keytrie

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/stretchr/testify/require"
)

// genKeys returns n distinct random keys of keyLen bytes, sorted ascending.
// Lexicographic byte order is the MSB-first bit order the codec traverses.
func genKeys(t *testing.T, rng *rand.Rand, n int, keyLen int) [][]byte {
	t.Helper()
	seen := make(map[string]bool, n)
	keys := make([][]byte, 0, n)
	for len(keys) < n {
		k := make([]byte, keyLen)
		_, err := rng.Read(k)
		require.NoError(t, err)
		if seen[string(k)] {
			continue
		}
		seen[string(k)] = true
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	return keys
}

func encodeAll(t *testing.T, c *Codec, keys [][]byte, p Params) *bitbuf.Writer {
	t.Helper()
	w := bitbuf.NewWriter()
	require.NoError(t, c.Encode(w, keys, p))
	return w
}

func TestNewRejectsBadLimit(t *testing.T) {
	_, err := New(Config{HuffmanCodingLimit: 1})
	require.ErrorIs(t, err, ErrHuffmanLimit)
	_, err = New(Config{HuffmanCodingLimit: 0})
	require.ErrorIs(t, err, ErrHuffmanLimit)
}

func TestRoundTripExactRanks(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	for _, tc := range []struct{ n, keyLen int }{
		{0, 4}, {1, 4}, {2, 1}, {3, 1}, {7, 2}, {16, 2}, {17, 2}, {100, 4}, {257, 8},
	} {
		t.Run(fmt.Sprintf("n=%d keyLen=%d", tc.n, tc.keyLen), func(t *testing.T) {
			keys := genKeys(t, rng, tc.n, tc.keyLen)
			p := Params{KeyLen: uint64(tc.keyLen), N: uint64(tc.n)}
			w := encodeAll(t, c, keys, p)

			for i, key := range keys {
				r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
				rank, err := c.Locate(r, key, p)
				require.NoError(t, err)
				require.Equal(t, uint64(i), rank, "key %x", key)
			}
		})
	}
}

func TestRoundTripWindowedRange(t *testing.T) {
	// Encoding a window [off, off+n) of a larger array, with DestBase
	// positioning the window within the block map of the whole.
	rng := rand.New(rand.NewSource(2))
	c, err := New(Config{HuffmanCodingLimit: 8})
	require.NoError(t, err)

	keys := genKeys(t, rng, 64, 3)
	p := Params{KeyLen: 3, Off: 10, N: 40, DestBase: 6}
	w := encodeAll(t, c, keys, p)

	for i := 10; i < 50; i++ {
		r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
		rank, err := c.Locate(r, keys[i], p)
		require.NoError(t, err)
		require.Equal(t, uint64(i-10), rank)
	}
}

func TestEndToEndExample(t *testing.T) {
	// 4 one-byte keys; locate(0x80) is 2 and locate(0x10) is 1.
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	keys := [][]byte{{0x00}, {0x10}, {0x80}, {0x90}}
	p := Params{KeyLen: 1, N: 4}
	w := encodeAll(t, c, keys, p)

	r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
	rank, err := c.Locate(r, []byte{0x80}, p)
	require.NoError(t, err)
	require.Equal(t, uint64(2), rank)

	r = bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
	rank, err = c.Locate(r, []byte{0x10}, p)
	require.NoError(t, err)
	require.Equal(t, uint64(1), rank)
}

func TestBlockUniformTruncation(t *testing.T) {
	// A range that maps entirely into one destination block encodes to zero
	// bits, and locate answers without consuming any.
	rng := rand.New(rand.NewSource(3))
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	keys := genKeys(t, rng, 8, 2)
	p := Params{KeyLen: 2, N: 8, DestKeysPerBlock: 8}
	w := encodeAll(t, c, keys, p)
	require.Equal(t, uint64(0), w.Len())

	for _, key := range keys {
		r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
		rank, err := c.Locate(r, key, p)
		require.NoError(t, err)
		require.Equal(t, uint64(0), rank)
		require.Equal(t, uint64(0), r.Pos())
	}
}

func TestBlockGranularityRanks(t *testing.T) {
	// With keysPerBlock > 1 the recursion stops at block granularity: ranks
	// are exact only up to the block, which is all the block map needs.
	rng := rand.New(rand.NewSource(4))
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	const kpb = 4
	keys := genKeys(t, rng, 64, 3)
	p := Params{KeyLen: 3, N: 64, DestKeysPerBlock: kpb}
	w := encodeAll(t, c, keys, p)

	full := encodeAll(t, c, keys, Params{KeyLen: 3, N: 64})
	require.Less(t, w.Len(), full.Len(), "k-perfect truncation must save bits")

	for i, key := range keys {
		r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
		rank, err := c.Locate(r, key, p)
		require.NoError(t, err)
		require.Equal(t, uint64(i/kpb), rank/kpb, "key %x", key)
	}
}

func TestWeakOrderingGroupConsistency(t *testing.T) {
	// All keys share their top four bits, so the upper levels collapse under
	// weak ordering. Ranks inside a collapsed subtree are only guaranteed at
	// group granularity; with the groups aligned to blocks, the block of
	// every key must still be exact.
	c, err := New(Config{WeakOrdering: true, HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	var keys [][]byte
	for i := 0; i < 16; i++ {
		keys = append(keys, []byte{0x00 | byte(i)}) // 0x00..0x0F, top nibble shared
	}
	const kpb = 4
	p := Params{KeyLen: 1, N: 16, DestKeysPerBlock: kpb}
	w := encodeAll(t, c, keys, p)

	for i, key := range keys {
		r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
		rank, err := c.Locate(r, key, p)
		require.NoError(t, err)
		require.Less(t, rank, uint64(16))
		require.Equal(t, uint64(i/kpb), rank/kpb, "key %x", key)
	}
}

func TestWeakOrderingRoundTripSplitRanges(t *testing.T) {
	// Ranges that genuinely split are unaffected by weak ordering.
	rng := rand.New(rand.NewSource(5))
	c, err := New(Config{WeakOrdering: true, HuffmanCodingLimit: 8})
	require.NoError(t, err)

	keys := genKeys(t, rng, 50, 2)
	p := Params{KeyLen: 2, N: 50}
	w := encodeAll(t, c, keys, p)

	for i, key := range keys {
		r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
		rank, err := c.Locate(r, key, p)
		require.NoError(t, err)
		require.Equal(t, uint64(i), rank)
	}
}

func TestWeakOrderingSavesSpaceOnSharedPrefixes(t *testing.T) {
	var keys [][]byte
	for i := 0; i < 8; i++ {
		keys = append(keys, []byte{byte(i)}) // top five bits shared by all
	}
	p := Params{KeyLen: 1, N: 8}

	strong, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)
	weak, err := New(Config{WeakOrdering: true, HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	ws := encodeAll(t, strong, keys, p)
	ww := encodeAll(t, weak, keys, p)
	require.LessOrEqual(t, ww.Len(), ws.Len())
}

func TestDuplicateKeysRejected(t *testing.T) {
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	keys := [][]byte{{0x42}, {0x42}}
	w := bitbuf.NewWriter()
	err = c.Encode(w, keys, Params{KeyLen: 1, N: 2})
	require.ErrorIs(t, err, ErrDuplicateKey)

	// Duplicates only within the coded prefix count too: the keys below
	// differ in byte 2, but KeyLen 2 makes them identical to the codec.
	keys = [][]byte{{0x01, 0x02, 0x03}, {0x01, 0x02, 0x04}}
	w = bitbuf.NewWriter()
	err = c.Encode(w, keys, Params{KeyLen: 2, N: 2})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestGolombFallbackAboveLimit(t *testing.T) {
	// A tiny Huffman limit forces the exp-Golomb path for every split of a
	// large range; ranks must still round trip exactly.
	rng := rand.New(rand.NewSource(6))
	c, err := New(Config{HuffmanCodingLimit: 2})
	require.NoError(t, err)

	keys := genKeys(t, rng, 128, 4)
	p := Params{KeyLen: 4, N: 128}
	w := encodeAll(t, c, keys, p)

	for i, key := range keys {
		r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
		rank, err := c.Locate(r, key, p)
		require.NoError(t, err)
		require.Equal(t, uint64(i), rank)
	}
}

func TestLocateEmptyStreamIsCorrupt(t *testing.T) {
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	r := bitbuf.NewReaderBits(nil, 0, 0)
	_, err = c.Locate(r, []byte{0x00}, Params{KeyLen: 1, N: 4})
	require.ErrorIs(t, err, bitbuf.ErrShortBuffer)
}

func TestBadParams(t *testing.T) {
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	w := bitbuf.NewWriter()
	require.ErrorIs(t, c.Encode(w, [][]byte{{1}}, Params{KeyLen: 1, N: 2}), ErrBadParams)
	require.ErrorIs(t, c.Encode(w, [][]byte{{1}}, Params{KeyLen: 0, N: 1}), ErrBadParams)

	r := bitbuf.NewReaderBits(nil, 0, 0)
	_, err = c.Locate(r, []byte{1}, Params{KeyLen: 2, N: 1})
	require.ErrorIs(t, err, ErrBadParams)
}
