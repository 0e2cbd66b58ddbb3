package bitbuf

// KeyBit returns the bit of key at index i, where i=0 is the MSB of key[0].
//
// The caller must guarantee i < len(key)*8.
func KeyBit(key []byte, i uint64) uint8 {
	return (key[i>>3] >> (7 - (i & 7))) & 1
}
