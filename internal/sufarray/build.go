// Package sufarray builds the suffix array of a byte corpus, per
// spec.md §4.2. The corpus is expected to already carry its sentinel byte
// (strictly smaller than every other byte) as its final element.
package sufarray

import (
	"sort"

	"github.com/gosari/sari/internal/bitpack"
)

// Build returns the suffix array of t, packed to ⌈log₂(len(t)+1)⌉ bits
// per entry (WidthFor(len(t)), enough for every value in [0, len(t)]).
//
// spec.md §4.2 names DC3/SA-IS as the target asymptotic class but accepts
// "any construction satisfying the SA invariant". This builds the suffix
// array by prefix-doubling rank sort (Manber–Myers): at each of
// ceil(log2 n) rounds the current rank pairs (rank[i], rank[i+k]) refine
// into the next rank, until ranks are a permutation of [0, n). This is
// O(n log^2 n) with a comparison sort rather than DC3's linear time, but
// its correctness is far easier to verify by construction, which matters
// more here than the asymptotic constant for any workable corpus size.
func Build(t []byte) *bitpack.Array {
	n := len(t)
	sa := rankDoublingSA(t)

	width := bitpack.WidthFor(uint64(n))
	out := bitpack.New(uint64(n), width)
	for i, v := range sa {
		out.Set(uint64(i), uint64(v))
	}
	return out
}

func rankDoublingSA(t []byte) []int {
	n := len(t)
	if n == 0 {
		return nil
	}

	sa := make([]int, n)
	rank := make([]int, n)
	tmp := make([]int, n)
	for i := 0; i < n; i++ {
		sa[i] = i
		rank[i] = int(t[i])
	}

	rankAt := func(i, k int) int {
		if i+k < n {
			return rank[i+k]
		}
		return -1
	}
	less := func(a, b, k int) bool {
		if rank[a] != rank[b] {
			return rank[a] < rank[b]
		}
		return rankAt(a, k) < rankAt(b, k)
	}

	for k := 1; ; k *= 2 {
		sort.Slice(sa, func(i, j int) bool { return less(sa[i], sa[j], k) })

		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			tmp[sa[i]] = tmp[sa[i-1]]
			if less(sa[i-1], sa[i], k) {
				tmp[sa[i]]++
			}
		}
		copy(rank, tmp)

		if rank[sa[n-1]] == n-1 {
			break
		}
	}

	return sa
}

// Unpack materializes the suffix array as a plain []int, for callers
// (LCP construction, tree building) that walk it sequentially rather
// than via bit-packed random access.
func Unpack(sa *bitpack.Array) []int {
	n := sa.Len()
	out := make([]int, n)
	for i := uint64(0); i < n; i++ {
		out[i] = int(sa.Get(i))
	}
	return out
}
