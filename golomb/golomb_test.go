package golomb

import (
	"testing"

	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/stretchr/testify/require"
)

func TestZigzagBijection(t *testing.T) {
	for v := int64(-5000); v <= 5000; v++ {
		require.Equal(t, v, Unzigzag(Zigzag(v)))
	}
	for _, v := range []int64{1<<62 - 1, -(1 << 62), 1 << 40, -(1 << 40)} {
		require.Equal(t, v, Unzigzag(Zigzag(v)))
	}
}

func TestZigzagOrdering(t *testing.T) {
	// small magnitudes map to small codes
	require.Equal(t, uint64(0), Zigzag(0))
	require.Equal(t, uint64(1), Zigzag(-1))
	require.Equal(t, uint64(2), Zigzag(1))
	require.Equal(t, uint64(3), Zigzag(-2))
	require.Equal(t, uint64(4), Zigzag(2))
}

func TestGolombRoundTrip(t *testing.T) {
	w := bitbuf.NewWriter()
	var values []uint64
	for v := uint64(0); v < 4096; v++ {
		values = append(values, v)
	}
	values = append(values, 1<<20, 1<<33-1, 1<<47)
	for _, v := range values {
		Put(w, v)
	}

	r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len())
	for _, want := range values {
		got, err := Read(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Equal(t, w.Len(), r.Pos())
}

func TestGolombZeroIsOneBit(t *testing.T) {
	w := bitbuf.NewWriter()
	Put(w, 0)
	require.Equal(t, uint64(1), w.Len())
	require.Equal(t, []byte{0x80}, w.Bytes())
}

func TestGolombTruncated(t *testing.T) {
	w := bitbuf.NewWriter()
	Put(w, 300)

	// clip the final bit of the suffix
	r := bitbuf.NewReaderBits(w.Bytes(), 0, w.Len()-1)
	_, err := Read(r)
	require.ErrorIs(t, err, bitbuf.ErrShortBuffer)

	// an all-zero prefix with no delimiter must also fail cleanly
	r = bitbuf.NewReaderBits([]byte{0, 0}, 0, 16)
	_, err = Read(r)
	require.ErrorIs(t, err, bitbuf.ErrShortBuffer)
}
