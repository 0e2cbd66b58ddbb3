package keytrie

import (
	"math/rand"
	"testing"

	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/stretchr/testify/require"
)

// skewedDist is a measured-looking distribution that weights splits towards
// the right-heavy outcomes, a shape no binomial produces. Every alphabet it
// yields assigns codeword lengths differing from the construction defaults.
type skewedDist struct{}

func (skewedDist) Weights(n int) []uint64 {
	w := make([]uint64, n+1)
	for k := 0; k <= n; k++ {
		w[k] = uint64(k*k + 1)
	}
	return w
}

// badArityDist returns one weight too few for every n.
type badArityDist struct{}

func (badArityDist) Weights(n int) []uint64 {
	return make([]uint64, n)
}

func TestRecreateFromDistributionRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	keys := genKeys(t, rng, 200, 4)
	p := Params{KeyLen: 4, N: 200}
	before := encodeAll(t, c, keys, p)

	require.NoError(t, c.RecreateFromDistribution(skewedDist{}))

	after := encodeAll(t, c, keys, p)
	// The rebuilt tables produce a different stream for the same keys.
	require.NotEqual(t, before.Bytes(), after.Bytes())

	for i, key := range keys {
		r := bitbuf.NewReaderBits(after.Bytes(), 0, after.Len())
		rank, err := c.Locate(r, key, p)
		require.NoError(t, err)
		require.Equal(t, uint64(i), rank)
	}
}

func TestRecreateRejectedInWeakMode(t *testing.T) {
	c, err := New(Config{WeakOrdering: true, HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)
	require.ErrorIs(t, c.RecreateFromDistribution(skewedDist{}), ErrWeakRebuild)
}

func TestRecreateBadDistributionLeavesTables(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	c, err := New(Config{HuffmanCodingLimit: DefaultHuffmanCodingLimit})
	require.NoError(t, err)

	keys := genKeys(t, rng, 40, 2)
	p := Params{KeyLen: 2, N: 40}
	before := encodeAll(t, c, keys, p)

	require.ErrorIs(t, c.RecreateFromDistribution(badArityDist{}), ErrBadDistribution)

	// A failed rebuild must leave the previous tables in service.
	after := encodeAll(t, c, keys, p)
	require.Equal(t, before.Bytes(), after.Bytes())
}
