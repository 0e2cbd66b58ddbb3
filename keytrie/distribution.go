package keytrie

// Distribution supplies empirical per-symbol weights for rebuilding the
// Huffman tables: Weights(n) returns the n+1 weights for the split outcomes
// 0..n of a subtree of size n. Distributions are produced by whatever
// calibration pass the storage layer runs over real key populations; this
// package only consumes them.
type Distribution interface {
	Weights(n int) []uint64
}

// binomialWeights returns the theoretical split weights for a subtree of
// size n under uniformly distributed keys: weight C(n, k) for "k keys on the
// left". Computed incrementally as v = v*(n-k+1)/k, which is exact (each
// intermediate v is itself a binomial coefficient) and avoids factorial
// overflow.
//
// In weak mode the alphabet shrinks to n symbols: the all-right outcome is
// eliminated and its weight is folded into symbol 0 by doubling it.
func binomialWeights(n int, weak bool) []uint64 {
	v := uint64(1)
	if !weak {
		w := make([]uint64, n+1)
		w[0] = v
		for k := 1; k <= n; k++ {
			v = v * uint64(n-k+1) / uint64(k)
			w[k] = v
		}
		return w
	}

	w := make([]uint64, n)
	w[0] = v * 2
	for k := 1; k <= n-1; k++ {
		v = v * uint64(n-k+1) / uint64(k)
		w[k] = v
	}
	return w
}
