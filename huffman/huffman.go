package huffman

import (
	"container/heap"
	"errors"

	"github.com/forestrie/go-sparseindex/bitbuf"
)

var (
	ErrTooFewSymbols = errors.New("huffman: an alphabet needs at least two symbols")
	ErrBadSymbol     = errors.New("huffman: symbol outside the coded alphabet")
)

const leaf = int32(-1)

type node struct {
	weight uint64
	child  [2]int32
	sym    int32
}

type code struct {
	bits  uint64
	nbits uint8
}

// Coder is an immutable prefix code over symbols 0..len(weights)-1.
type Coder struct {
	nodes []node
	root  int32
	codes []code
}

// NewCoder builds the prefix code for the given weights. Symbol i has weight
// weights[i]; zero weights are permitted and simply earn the longest codes.
func NewCoder(weights []uint64) (*Coder, error) {
	k := len(weights)
	if k < 2 {
		return nil, ErrTooFewSymbols
	}

	c := &Coder{
		nodes: make([]node, 0, 2*k-1),
		codes: make([]code, k),
	}
	for i, w := range weights {
		c.nodes = append(c.nodes, node{weight: w, child: [2]int32{leaf, leaf}, sym: int32(i)})
	}

	q := &nodeQueue{coder: c}
	for i := 0; i < k; i++ {
		q.refs = append(q.refs, int32(i))
	}
	heap.Init(q)

	for len(q.refs) > 1 {
		lo := heap.Pop(q).(int32)
		hi := heap.Pop(q).(int32)
		c.nodes = append(c.nodes, node{
			weight: c.nodes[lo].weight + c.nodes[hi].weight,
			child:  [2]int32{lo, hi},
			sym:    leaf,
		})
		heap.Push(q, int32(len(c.nodes)-1))
	}
	c.root = q.refs[0]

	c.assign(c.root, 0, 0)
	return c, nil
}

// assign walks the tree accumulating codewords, left child first with a 0
// bit. Depth is bounded by the alphabet size, which is tiny here.
func (c *Coder) assign(ref int32, bits uint64, nbits uint8) {
	n := c.nodes[ref]
	if n.child[0] == leaf {
		c.codes[n.sym] = code{bits: bits, nbits: nbits}
		return
	}
	c.assign(n.child[0], bits<<1, nbits+1)
	c.assign(n.child[1], bits<<1|1, nbits+1)
}

// Len returns the alphabet size.
func (c *Coder) Len() int {
	return len(c.codes)
}

// CodeLen returns the bit length of the codeword for sym.
func (c *Coder) CodeLen(sym int) (int, error) {
	if sym < 0 || sym >= len(c.codes) {
		return 0, ErrBadSymbol
	}
	return int(c.codes[sym].nbits), nil
}

// Encode appends the codeword for sym to w.
func (c *Coder) Encode(w *bitbuf.Writer, sym int) error {
	if sym < 0 || sym >= len(c.codes) {
		return ErrBadSymbol
	}
	cw := c.codes[sym]
	w.AppendBits(cw.bits, uint(cw.nbits))
	return nil
}

// Decode reads one codeword from r and returns its symbol, consuming exactly
// the bits Encode wrote for it.
func (c *Coder) Decode(r *bitbuf.Reader) (int, error) {
	ref := c.root
	for c.nodes[ref].child[0] != leaf {
		b, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		ref = c.nodes[ref].child[b]
	}
	return int(c.nodes[ref].sym), nil
}

// nodeQueue orders subtree refs by weight, breaking ties by ref so that the
// merge order, and therefore the codeword table, is deterministic.
type nodeQueue struct {
	coder *Coder
	refs  []int32
}

func (q *nodeQueue) Len() int { return len(q.refs) }

func (q *nodeQueue) Less(i, j int) bool {
	wi := q.coder.nodes[q.refs[i]].weight
	wj := q.coder.nodes[q.refs[j]].weight
	if wi != wj {
		return wi < wj
	}
	return q.refs[i] < q.refs[j]
}

func (q *nodeQueue) Swap(i, j int) { q.refs[i], q.refs[j] = q.refs[j], q.refs[i] }

func (q *nodeQueue) Push(x any) { q.refs = append(q.refs, x.(int32)) }

func (q *nodeQueue) Pop() any {
	x := q.refs[len(q.refs)-1]
	q.refs = q.refs[:len(q.refs)-1]
	return x
}
