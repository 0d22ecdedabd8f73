// Package lcp builds the LCP array from a corpus and its suffix array
// using Kasai's linear-time algorithm, per spec.md §4.3.
package lcp

import (
	"github.com/gosari/sari/internal/bitpack"
)

// Build returns LCP[0..n) where LCP[i] is the length of the longest
// common prefix of T[sa[i-1]..] and T[sa[i]..], with LCP[0] = 0.
//
// Kasai's algorithm walks positions in text order (not SA order) carrying
// a monotone counter h: h only ever decreases by one per step, then
// extends by direct byte comparison, giving O(n) total work across all
// positions. isa is the inverse suffix array: isa[sa[i]] = i.
func Build(t []byte, sa []int) []int {
	n := len(t)
	out := make([]int, n)
	if n == 0 {
		return out
	}

	isa := make([]int, n)
	for i, p := range sa {
		isa[p] = i
	}

	h := 0
	for i := 0; i < n; i++ {
		rank := isa[i]
		if rank == 0 {
			h = 0
			continue
		}
		j := sa[rank-1]
		if h > 0 {
			h--
		}
		for i+h < n && j+h < n && t[i+h] == t[j+h] {
			h++
		}
		out[rank] = h
	}
	return out
}

// Pack packs an LCP array into a bitpack.Array at the minimal width able
// to hold its maximum value, per spec.md §3 ("Bit-packed to
// ⌈log₂(max_lcp+1)⌉").
func Pack(values []int) *bitpack.Array {
	maxV := 0
	for _, v := range values {
		if v > maxV {
			maxV = v
		}
	}
	out := bitpack.New(uint64(len(values)), bitpack.WidthFor(uint64(maxV)))
	for i, v := range values {
		out.Set(uint64(i), uint64(v))
	}
	return out
}
