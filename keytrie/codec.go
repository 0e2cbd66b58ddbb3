package keytrie

import (
	"github.com/forestrie/go-sparseindex/bitbuf"
	"github.com/forestrie/go-sparseindex/golomb"
	"github.com/forestrie/go-sparseindex/huffman"
)

// Codec encodes sorted key arrays and locates query-key ranks. Immutable
// after construction except for RecreateFromDistribution, which requires
// exclusive access (see the package doc).
type Codec struct {
	cfg Config

	// coders[n-2] is the table for subtree size n, sizes 2..HuffmanCodingLimit.
	coders []*huffman.Coder
}

// New builds a Codec with tables derived from the theoretical binomial split
// distribution for every subtree size up to cfg.HuffmanCodingLimit.
func New(cfg Config) (*Codec, error) {
	if cfg.HuffmanCodingLimit < 2 {
		return nil, ErrHuffmanLimit
	}
	coders := make([]*huffman.Coder, cfg.HuffmanCodingLimit-1)
	for n := 2; n <= cfg.HuffmanCodingLimit; n++ {
		coder, err := huffman.NewCoder(binomialWeights(n, cfg.WeakOrdering))
		if err != nil {
			return nil, err
		}
		coders[n-2] = coder
	}
	return &Codec{cfg: cfg, coders: coders}, nil
}

// Config returns the wire-format configuration the Codec was built with.
func (c *Codec) Config() Config {
	return c.cfg
}

// Encode appends the trie encoding of keys[p.Off : p.Off+p.N] to w.
//
// The window must be sorted strictly ascending in MSB-first bit order over
// the first p.KeyLen bytes of each key; sortedness is a caller invariant, but
// duplicates are detected (they exhaust the bit depth) and reported as
// ErrDuplicateKey. On error the writer may hold a partial encoding and its
// contents must be discarded.
func (c *Codec) Encode(w *bitbuf.Writer, keys [][]byte, p Params) error {
	if p.KeyLen == 0 || p.Off+p.N < p.Off || p.Off+p.N > uint64(len(keys)) {
		return ErrBadParams
	}
	return c.encodeRec(w, keys, p.KeyLen, p.Off, p.N, p.DestBase, p.keysPerBlock(), 0)
}

// Locate decodes from r the rank of key within the window described by p,
// relative to p.Off. The Params and the Codec configuration must be identical
// to those used at encode time.
//
// Under weak ordering, a rank inside a collapsed subtree identifies the group
// the key belongs to, not its exact position within that group.
func (c *Codec) Locate(r *bitbuf.Reader, key []byte, p Params) (uint64, error) {
	if p.KeyLen == 0 || uint64(len(key)) < p.KeyLen {
		return 0, ErrBadParams
	}
	return c.locateRec(r, key, p.KeyLen, p.Off, p.N, p.DestBase, p.keysPerBlock(), 0)
}

// blockUniform reports whether [off, off+n) maps entirely into one
// destination block, the k-perfect hashing stop condition. Valid only for
// n >= 1.
func blockUniform(off, n, destBase, keysPerBlock uint64) bool {
	if n > keysPerBlock {
		return false
	}
	return (destBase+off)/keysPerBlock == (destBase+off+n-1)/keysPerBlock
}

func (c *Codec) encodeRec(w *bitbuf.Writer, keys [][]byte, keyLen, off, n, destBase, keysPerBlock, depth uint64) error {
	// 0- and 1-sized trees carry no information.
	if n <= 1 {
		return nil
	}
	if blockUniform(off, n, destBase, keysPerBlock) {
		return nil
	}
	if depth >= keyLen*8 {
		return ErrDuplicateKey
	}

	// The range is sorted, so the bit-0 keys are a contiguous prefix.
	left := uint64(0)
	for ; left < n; left++ {
		if bitbuf.KeyBit(keys[off+left], depth) != 0 {
			break
		}
	}

	// Weak ordering merges the (n, 0) split into the (0, n) symbol.
	if c.cfg.WeakOrdering && left == n {
		left = 0
	}

	if n <= uint64(c.cfg.HuffmanCodingLimit) {
		if err := c.coders[n-2].Encode(w, int(left)); err != nil {
			return err
		}
	} else {
		golomb.Put(w, golomb.Zigzag(int64(left)-int64(n/2)))
	}

	if err := c.encodeRec(w, keys, keyLen, off, left, destBase, keysPerBlock, depth+1); err != nil {
		return err
	}
	return c.encodeRec(w, keys, keyLen, off+left, n-left, destBase, keysPerBlock, depth+1)
}

// readLeft decodes the left-subtree size for a range of n keys, using the
// identical table/codec branch encodeRec chose for that n.
func (c *Codec) readLeft(r *bitbuf.Reader, n uint64) (uint64, error) {
	if n <= uint64(c.cfg.HuffmanCodingLimit) {
		sym, err := c.coders[n-2].Decode(r)
		if err != nil {
			return 0, err
		}
		return uint64(sym), nil
	}
	u, err := golomb.Read(r)
	if err != nil {
		return 0, err
	}
	d := golomb.Unzigzag(u) + int64(n/2)
	if d < 0 {
		return 0, ErrCorrupt
	}
	return uint64(d), nil
}

func (c *Codec) locateRec(r *bitbuf.Reader, key []byte, keyLen, off, n, destBase, keysPerBlock, depth uint64) (uint64, error) {
	if n <= 1 {
		return 0, nil
	}
	if blockUniform(off, n, destBase, keysPerBlock) {
		return 0, nil
	}
	if depth >= keyLen*8 {
		return 0, ErrCorrupt
	}

	left, err := c.readLeft(r, n)
	if err != nil {
		return 0, err
	}
	if left > n || (c.cfg.WeakOrdering && left == n) {
		return 0, ErrCorrupt
	}

	// Under weak ordering a decoded left of 0 is ambiguous between a genuine
	// empty left subtree and a collapsed no-split range; in both cases every
	// key belongs to the right branch, so left==0 always goes right.
	if bitbuf.KeyBit(key, depth) == 0 && (!c.cfg.WeakOrdering || left != 0) {
		return c.locateRec(r, key, keyLen, off, left, destBase, keysPerBlock, depth+1)
	}

	// The left subtree's bits precede the right's in the stream; consume
	// them without interpretation before descending right.
	if err := c.skipRec(r, keyLen, off, left, destBase, keysPerBlock, depth+1); err != nil {
		return 0, err
	}
	rank, err := c.locateRec(r, key, keyLen, off+left, n-left, destBase, keysPerBlock, depth+1)
	if err != nil {
		return 0, err
	}
	return left + rank, nil
}

// skipRec advances the cursor past the entire encoding of [off, off+n),
// descending both children unconditionally.
func (c *Codec) skipRec(r *bitbuf.Reader, keyLen, off, n, destBase, keysPerBlock, depth uint64) error {
	if n <= 1 {
		return nil
	}
	if blockUniform(off, n, destBase, keysPerBlock) {
		return nil
	}
	if depth >= keyLen*8 {
		return ErrCorrupt
	}

	left, err := c.readLeft(r, n)
	if err != nil {
		return err
	}
	if left > n || (c.cfg.WeakOrdering && left == n) {
		return ErrCorrupt
	}

	if err := c.skipRec(r, keyLen, off, left, destBase, keysPerBlock, depth+1); err != nil {
		return err
	}
	return c.skipRec(r, keyLen, off+left, n-left, destBase, keysPerBlock, depth+1)
}
