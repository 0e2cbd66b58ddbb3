package keytrie

import "github.com/forestrie/go-sparseindex/huffman"

// RecreateFromDistribution replaces every Huffman table with codes derived
// from externally measured split weights, for workloads whose keys are far
// from uniform. Indexes encoded before the rebuild can only be decoded by a
// codec carrying the same distribution: the tables are part of the wire
// contract.
//
// Only valid without weak ordering; the weak-mode distribution is a fixed
// function of n and is not replaceable.
//
// The replacement is not atomic with respect to concurrent Encode/Locate
// calls. Callers must serialize it against all other use of the Codec, e.g.
// by rebuilding during initialization before readers start. No table is
// swapped in until the whole set has built, so a failed rebuild leaves the
// codec on its previous tables.
func (c *Codec) RecreateFromDistribution(dist Distribution) error {
	if c.cfg.WeakOrdering {
		return ErrWeakRebuild
	}

	coders := make([]*huffman.Coder, c.cfg.HuffmanCodingLimit-1)
	for n := 2; n <= c.cfg.HuffmanCodingLimit; n++ {
		weights := dist.Weights(n)
		if len(weights) != n+1 {
			return ErrBadDistribution
		}
		coder, err := huffman.NewCoder(weights)
		if err != nil {
			return err
		}
		coders[n-2] = coder
	}

	c.coders = coders
	return nil
}
