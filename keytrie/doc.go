package keytrie

/*

# Entropy-coded key trie codec

This package encodes a sorted array of fixed-length binary keys as a compact
bitstream from which the rank of any query key can later be recovered, without
storing the keys. It is the sparse-index building block: rank divided by the
keys-per-block ratio names the storage block a key can live in.

It follows the same "functional primitives" style as the rest of this repo:

- small, composable pieces (bitbuf, golomb, huffman underneath)
- index/range arithmetic instead of materialized structures
- a burden of knowledge on the caller for hot paths

## Shape of the encoding

A range [off, off+n) of the sorted array is split at bit `depth`: because the
keys are sorted MSB-first, all keys whose bit is 0 form a contiguous prefix of
the range. Only the size of that prefix, `left`, is emitted; both halves then
recurse at depth+1. No node objects exist, a "node" is just (off, n, depth).

For n within the Huffman coding limit, `left` is emitted with a prefix code
tuned to the binomial distribution of splits. Above the limit the deviation
of `left` from n/2 is zigzag interleaved and exp-Golomb coded.

Two truncations keep the stream near the information-theoretic minimum:

 1. k-perfect hashing: a range that already maps entirely into one
    destination block is never split further.
 2. weak ordering (optional): the "all keys on the left" and "all keys on the
    right" outcomes share one symbol, shrinking every Huffman alphabet by
    one. Rank recovery inside such a collapsed range identifies the group,
    not the element's position within it.

## Core invariants

 1. the key array is sorted strictly ascending in MSB-first bit order; the
    codec does not check this (violations beyond the duplicate-depth bound
    are reported, anything subtler is undefined)
 2. Encode and Locate visit the identical sequence of (off, n, depth)
    decisions; every configuration knob (weak ordering, the Huffman limit,
    destination block geometry, rebuilt tables) is part of the wire contract
    and must match on both sides; a mismatch mis-parses silently
 3. recursion depth never exceeds KeyLen*8

The codec is stateless across calls apart from the Huffman tables fixed at
construction. Concurrent Encode/Locate calls on one Codec are safe provided
no RecreateFromDistribution call is in flight; rebuilds require exclusive
access, arranged by the caller.

*/
