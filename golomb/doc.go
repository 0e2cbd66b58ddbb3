// Package golomb implements the order-0 exponential-Golomb code and the
// zigzag sign interleaving used to feed signed deviations into it.
//
// Exp-Golomb is the table-free fallback of the trie codec: where the subtree
// alphabet is small a tuned Huffman table wins, but the alphabet of a large
// subtree is unbounded and a universal code is the only option. The code for
// v is the binary form of v+1 preceded by a zero for each bit after its
// leading one, so the length grows as 2*floor(log2(v+1))+1.
package golomb
