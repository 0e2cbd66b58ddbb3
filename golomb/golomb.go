package golomb

import (
	"math/bits"

	"github.com/forestrie/go-sparseindex/bitbuf"
)

// Put appends the order-0 exp-Golomb code for v to w.
//
// The code is self delimiting: floor(log2(v+1)) zero bits, then v+1 in
// binary. v == 0 encodes as the single bit 1.
//
// The caller must guarantee v < 1<<63 - 1 so that v+1 does not wrap; trie
// subtree sizes are nowhere near this bound.
func Put(w *bitbuf.Writer, v uint64) {
	n := v + 1
	nb := uint(bits.Len64(n))
	w.AppendBits(0, nb-1)
	w.AppendBits(n, nb)
}

// Read decodes one exp-Golomb code from r, consuming exactly the bits Put
// wrote. A truncated code surfaces as bitbuf.ErrShortBuffer.
func Read(r *bitbuf.Reader) (uint64, error) {
	var zeros uint
	for {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if b != 0 {
			break
		}
		zeros++
	}
	n := uint64(1)
	for i := uint(0); i < zeros; i++ {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		n = n<<1 | uint64(b)
	}
	return n - 1, nil
}
