// Package huffman builds canonical minimum-redundancy prefix codes from an
// explicit weight distribution and encodes/decodes one symbol at a time over
// a bitbuf stream.
//
// The construction is the standard one: repeatedly merge the two lowest
// weight subtrees. Ties are broken by creation order, which makes the table a
// pure function of the weights. That determinism is load bearing: the trie
// codec's wire format never records its tables, so an encoder and decoder
// built from the same weights must derive bit-identical codes.
//
// Alphabets here are small (a trie subtree of size n has at most n+1
// outcomes), so the decoder walks an explicit node slice bit by bit rather
// than using a lookup table.
package huffman
