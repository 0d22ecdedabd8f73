package sufidx

import (
	"io"
	"sort"

	"github.com/gosari/sari/errs"
	"github.com/gosari/sari/internal/bitpack"
)

// Augmented wraps a plain suffix-array index with precomputed LCP-L/
// LCP-R side tables (spec.md §4.8): for every interior midpoint the
// binary search in getFirstOccurrence visits, LCP-L/LCP-R store the
// minimum LCP over the left/right sub-range, letting the search reuse
// already-known common-prefix length instead of recomparing bytes at
// every step (the Manber-Myers skip).
type Augmented struct {
	*Plain
	lcpL []int
	lcpR []int
}

// NewAugmented builds an Augmented index over t, sa, and the Kasai LCP
// array lcpArr already computed for (t, sa). lcpArr[i] is the common
// prefix length between the suffixes at SA ranks i-1 and i (lcpArr[0] ==
// 0).
func NewAugmented(t []byte, sa []int, lcpArr []int) *Augmented {
	n := len(sa)
	lcpL := make([]int, max(n-1, 0))
	lcpR := make([]int, max(n-1, 0))
	if n > 1 {
		// rankLCP[k] is the common prefix length between the suffixes at
		// ranks k and k+1, the shape precomputeLCP's recursion expects;
		// lcpArr stores the same value one rank later. rankLCP is sized n,
		// not n-1: the recursion's deepest leaf on the right edge reads
		// rankLCP[n-1], a slot with no rank pair behind it, so it's left at
		// its zero value as a conservative (never-skip) filler.
		rankLCP := make([]int, n)
		for k := 0; k < n-1; k++ {
			rankLCP[k] = lcpArr[k+1]
		}
		precomputeLCP(rankLCP, lcpL, lcpR, 0, n)
	}
	return &Augmented{
		Plain: NewPlain(t, sa),
		lcpL:  lcpL,
		lcpR:  lcpR,
	}
}

// precomputeLCP bisects the half-open SA-rank range [l, r), the same
// bisection getFirstOccurrence's binary search performs, storing at
// index mid-1 the minimum rank-to-rank LCP over each half. Returning the
// minimum at every level lets the parent call fill its own entry without
// rescanning rankLCP.
func precomputeLCP(rankLCP, lcpL, lcpR []int, l, r int) int {
	if l == r-1 {
		return rankLCP[l]
	}
	mid := (l + r) / 2
	lcpL[mid-1] = precomputeLCP(rankLCP, lcpL, lcpR, l, mid)
	lcpR[mid-1] = precomputeLCP(rankLCP, lcpL, lcpR, mid, r)
	return min(lcpL[mid-1], lcpR[mid-1])
}

// lcpCommon returns the length of the common prefix between query and
// the corpus bytes starting at pos, never reading past len(t): running
// out of corpus bytes before running out of query bytes ends the prefix
// there, which is always correct since the sentinel byte is smaller than
// every query byte a suffix could still be compared against.
func (a *Augmented) lcpCommon(query []byte, pos int) int {
	n := len(a.t)
	l := 0
	for l < len(query) && pos+l < n && a.t[pos+l] == query[l] {
		l++
	}
	return l
}

// byteAtOrBelow returns the corpus byte at pos, or -1 if pos is past the
// end of the corpus (a suffix shorter than the query it's being compared
// against, which must compare as smaller than any real query byte).
func (a *Augmented) byteAtOrBelow(pos int) int {
	if pos >= len(a.t) {
		return -1
	}
	return int(a.t[pos])
}

// getFirstOccurrence returns the smallest SA rank whose suffix is
// lexicographically >= query, using the LCP-L/LCP-R tables to skip
// comparisons already implied by a previous step (original_source
// suffix_array_index.cc's AugmentedSuffixArrayIndex::getFirstOccurrence).
func (a *Augmented) getFirstOccurrence(query []byte) int {
	n := len(a.sa)
	lp, rp := 0, n
	l := a.lcpCommon(query, a.sa[lp])
	r := 0
	if rp < n {
		r = a.lcpCommon(query, a.sa[rp])
	}

	// Rank 0 is itself the answer when its suffix already sorts at or
	// after query (a query starting with the sentinel byte).
	if l == len(query) || int(query[l]) < a.byteAtOrBelow(a.sa[lp]+l) {
		return lp
	}

	for rp-lp > 1 {
		mp := (lp + rp) / 2
		var m int
		if l >= r {
			if a.lcpL[mp-1] >= l {
				m = l + a.lcpCommon(query[l:], a.sa[mp]+l)
			} else {
				m = a.lcpL[mp-1]
			}
		} else {
			if a.lcpR[mp-1] >= r {
				m = r + a.lcpCommon(query[r:], a.sa[mp]+r)
			} else {
				m = a.lcpR[mp-1]
			}
		}

		if m == len(query) || int(query[m]) <= a.byteAtOrBelow(a.sa[mp]+m) {
			rp, r = mp, m
		} else {
			lp, l = mp, m
		}
	}

	return rp
}

// incrementBytes returns the lexicographically smallest byte string
// strictly greater than every string that has q as a prefix, by
// incrementing the rightmost non-0xFF byte and truncating after it. ok
// is false when q is all 0xFF bytes, meaning no such finite string
// exists (every suffix starting with q is itself the upper bound).
func incrementBytes(q []byte) (out []byte, ok bool) {
	out = append([]byte(nil), q...)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i] != 0xFF {
			out[i]++
			return out[:i+1], true
		}
	}
	return nil, false
}

// bounds returns [lo, hi) into a.sa of every suffix starting with query.
func (a *Augmented) bounds(query []byte) (int, int) {
	if len(query) == 0 {
		return 0, len(a.sa)
	}
	lo := a.getFirstOccurrence(query)
	incQuery, ok := incrementBytes(query)
	if !ok {
		return lo, len(a.sa)
	}
	return lo, a.getFirstOccurrence(incQuery)
}

// Search returns every offset o such that T[o:o+len(q)] == q, ascending,
// via the LCP-skip binary search rather than Plain's plain byte-compare
// one.
func (a *Augmented) Search(q []byte) []int {
	lo, hi := a.bounds(q)
	if hi <= lo {
		return nil
	}
	out := make([]int, hi-lo)
	for i := lo; i < hi; i++ {
		out[i-lo] = a.sa[i]
	}
	sort.Ints(out)
	return out
}

// Count returns the number of matches of q, without materializing them.
func (a *Augmented) Count(q []byte) int {
	lo, hi := a.bounds(q)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Contains reports whether q occurs at least once in the corpus.
func (a *Augmented) Contains(q []byte) bool {
	return a.Count(q) > 0
}

// LCPLeft and LCPRight expose the side tables for testing/inspection and
// for serialization.
func (a *Augmented) LCPLeft() []int  { return a.lcpL }
func (a *Augmented) LCPRight() []int { return a.lcpR }

// Serialize writes the Plain layout followed by two BitPackedArrays
// (LCP-L, LCP-R), per spec.md §6 (AugmentedSuffixArrayIndex).
func (a *Augmented) Serialize(w io.Writer) error {
	if err := a.Plain.Serialize(w); err != nil {
		return err
	}
	for _, table := range [][]int{a.lcpL, a.lcpR} {
		maxV := 0
		for _, v := range table {
			if v > maxV {
				maxV = v
			}
		}
		packed := bitpack.New(uint64(len(table)), bitpack.WidthFor(uint64(maxV)+1))
		for i, v := range table {
			packed.Set(uint64(i), uint64(v))
		}
		if err := packed.Serialize(w); err != nil {
			return errs.NewIO("sufidx.Augmented.Serialize", err)
		}
	}
	return nil
}

// DeserializeAugmented reads an Augmented index previously written by
// Serialize.
func DeserializeAugmented(r io.Reader) (*Augmented, error) {
	t, sa, err := readTAndSA(r)
	if err != nil {
		return nil, err
	}
	lcpLPacked, err := bitpack.Deserialize(r)
	if err != nil {
		return nil, errs.NewIO("sufidx.Augmented.Deserialize", err)
	}
	lcpRPacked, err := bitpack.Deserialize(r)
	if err != nil {
		return nil, errs.NewIO("sufidx.Augmented.Deserialize", err)
	}

	toInts := func(p *bitpack.Array) []int {
		out := make([]int, p.Len())
		for i := range out {
			out[i] = int(p.Get(uint64(i)))
		}
		return out
	}

	return &Augmented{
		Plain: NewPlain(t, sa),
		lcpL:  toInts(lcpLPacked),
		lcpR:  toInts(lcpRPacked),
	}, nil
}
