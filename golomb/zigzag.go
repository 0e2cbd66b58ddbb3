package golomb

// Zigzag maps signed integers onto unsigned ones with small magnitudes
// staying small: 0,-1,1,-2,2... -> 0,1,2,3,4...
//
// The trie codec stores left-subtree sizes as deviations from n/2, which
// cluster around zero for balanced splits; interleaving keeps the common
// values at the short end of the exp-Golomb code.
func Zigzag(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// Unzigzag inverts Zigzag: Unzigzag(Zigzag(v)) == v for all v.
func Unzigzag(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}
