// Package sparseindex serializes a keytrie encoding of a sorted key set into
// a self-describing index region: a fixed header carrying the codec
// configuration, the trie payload, and an optional per-block key filter.
//
// The codec configuration (weak ordering, Huffman coding limit, destination
// block geometry, key length) is part of the trie's wire contract but is
// never stored in the trie stream itself; decoding with a mismatched
// configuration mis-parses silently. Persisting it in the header makes the
// configuration part of the format version, so Open can refuse rather than
// misread. Rebuilt Huffman distributions remain out of band: an index built
// with RecreateFromDistribution tables must be opened with OpenWithCodec.
//
// The payload checksum (xxhash64) is verified before any trie decoding, so a
// torn or tampered blob fails loudly instead of yielding wrong ranks.
package sparseindex
