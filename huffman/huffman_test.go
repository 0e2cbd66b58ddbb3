package huffman

import (
	"fmt"
	"testing"

	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/stretchr/testify/require"
)

// binomialWeights mirrors the trie codec's theoretical split distribution,
// which is the main workload for this package.
func binomialWeights(n int) []uint64 {
	w := make([]uint64, n+1)
	v := uint64(1)
	w[0] = v
	for k := 1; k <= n; k++ {
		v = v * uint64(n-k+1) / uint64(k)
		w[k] = v
	}
	return w
}

func TestNewCoderTooFewSymbols(t *testing.T) {
	_, err := NewCoder(nil)
	require.ErrorIs(t, err, ErrTooFewSymbols)
	_, err = NewCoder([]uint64{7})
	require.ErrorIs(t, err, ErrTooFewSymbols)
}

func TestRoundTripAllSymbols(t *testing.T) {
	for n := 2; n <= 16; n++ {
		t.Run(fmt.Sprintf("binomial-%d", n), func(t *testing.T) {
			c, err := NewCoder(binomialWeights(n))
			require.NoError(t, err)

			w := bitbuf.NewWriter()
			for sym := 0; sym < c.Len(); sym++ {
				require.NoError(t, c.Encode(w, sym))
			}
			r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
			for sym := 0; sym < c.Len(); sym++ {
				got, err := c.Decode(r)
				require.NoError(t, err)
				require.Equal(t, sym, got)
			}
			require.Equal(t, w.Len(), r.Pos())
		})
	}
}

func TestPrefixFreeness(t *testing.T) {
	for _, weights := range [][]uint64{
		binomialWeights(8),
		binomialWeights(16),
		{1, 1, 1, 1},
		{100, 1, 1, 1, 1, 50},
		{0, 0, 5, 0, 9}, // zero weights still earn valid codes
	} {
		c, err := NewCoder(weights)
		require.NoError(t, err)

		words := make([]string, c.Len())
		for sym := range words {
			w := bitbuf.NewWriter()
			require.NoError(t, c.Encode(w, sym))
			r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
			var s []byte
			for r.Remaining() > 0 {
				b, err := r.ReadBit()
				require.NoError(t, err)
				s = append(s, '0'+b)
			}
			words[sym] = string(s)
		}
		for i, wi := range words {
			for j, wj := range words {
				if i == j {
					continue
				}
				require.False(t, len(wi) <= len(wj) && wj[:len(wi)] == wi,
					"code %q for %d is a prefix of %q for %d", wi, i, wj, j)
			}
		}
	}
}

func TestSkewFavoursFrequentSymbol(t *testing.T) {
	c, err := NewCoder([]uint64{1000, 1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)
	hot, err := c.CodeLen(0)
	require.NoError(t, err)
	for sym := 1; sym < c.Len(); sym++ {
		cold, err := c.CodeLen(sym)
		require.NoError(t, err)
		require.Less(t, hot, cold)
	}
}

func TestDeterministicTables(t *testing.T) {
	weights := []uint64{3, 3, 3, 3, 2, 2, 2, 2} // heavy ties
	a, err := NewCoder(weights)
	require.NoError(t, err)
	b, err := NewCoder(weights)
	require.NoError(t, err)

	wa := bitbuf.NewWriter()
	wb := bitbuf.NewWriter()
	for sym := 0; sym < a.Len(); sym++ {
		require.NoError(t, a.Encode(wa, sym))
		require.NoError(t, b.Encode(wb, sym))
	}
	require.Equal(t, wa.Bytes(), wb.Bytes())
	require.Equal(t, wa.Len(), wb.Len())
}

func TestEncodeBadSymbol(t *testing.T) {
	c, err := NewCoder([]uint64{1, 2, 3})
	require.NoError(t, err)
	w := bitbuf.NewWriter()
	require.ErrorIs(t, c.Encode(w, -1), ErrBadSymbol)
	require.ErrorIs(t, c.Encode(w, 3), ErrBadSymbol)
}

func TestDecodeTruncated(t *testing.T) {
	c, err := NewCoder(binomialWeights(6))
	require.NoError(t, err)
	w := bitbuf.NewWriter()
	require.NoError(t, c.Encode(w, 6)) // a long codeword
	r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len()-1)
	_, err = c.Decode(r)
	require.ErrorIs(t, err, bitbuf.ErrShortBuffer)
}
