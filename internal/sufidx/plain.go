// Package sufidx implements substring range search directly over a
// suffix array: a plain binary-search variant (spec.md §4.7) and an
// augmented variant that additionally carries LCP-L/LCP-R side tables
// (spec.md §4.8).
package sufidx

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/gosari/sari/errs"
	"github.com/gosari/sari/internal/bitpack"
)

// Plain is a suffix-array-backed substring index: search(q) binary
// searches SA twice (once for the lower bound, once for the upper bound
// of the range of suffixes starting with q) and returns the offsets in
// that range, sorted ascending.
type Plain struct {
	t  []byte
	sa []int
}

// NewPlain builds a Plain index over t using its precomputed suffix
// array sa (as a plain []int; callers typically obtain this via
// sufarray.Unpack).
func NewPlain(t []byte, sa []int) *Plain {
	return &Plain{t: t, sa: sa}
}

// compare reports the 3-way comparison of the suffix starting at p
// against q: -1 if the suffix is lexicographically less than q, +1 if
// greater, or 0 if the suffix has q as a prefix (i.e. the suffix "starts
// with" q, regardless of what follows). Comparisons never read past
// len(t); a suffix shorter than q is treated as less than q, which is
// always correct here because the corpus's sentinel byte guarantees no
// suffix is ever exactly a non-sentinel-terminated prefix of another by
// accident — running out of suffix bytes before running out of query
// bytes only happens when the query spans past the sentinel, which
// correctly yields no match (spec.md §8 "queries that span the sentinel
// boundary yield no matches").
func compare(t []byte, p int, q []byte) int {
	n := len(t)
	for k := 0; k < len(q); k++ {
		if p+k >= n {
			return -1
		}
		if d := int(t[p+k]) - int(q[k]); d != 0 {
			if d < 0 {
				return -1
			}
			return 1
		}
	}
	return 0
}

// bounds returns [lo, hi) into p.sa such that sa[lo:hi] are exactly the
// suffix-array indices whose suffix starts with q. Both searches are
// plain sort.Search over the monotonic 3-way compare.
func (p *Plain) bounds(q []byte) (int, int) {
	n := len(p.sa)
	lo := sort.Search(n, func(i int) bool { return compare(p.t, p.sa[i], q) >= 0 })
	hi := sort.Search(n, func(i int) bool { return compare(p.t, p.sa[i], q) > 0 })
	return lo, hi
}

// Search returns every offset o such that T[o:o+len(q)] == q, ascending.
func (p *Plain) Search(q []byte) []int {
	lo, hi := p.bounds(q)
	if hi <= lo {
		return nil
	}
	out := make([]int, hi-lo)
	for i := lo; i < hi; i++ {
		out[i-lo] = p.sa[i]
	}
	sort.Ints(out)
	return out
}

// Count returns the number of matches of q, without materializing them.
func (p *Plain) Count(q []byte) int {
	lo, hi := p.bounds(q)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// Contains reports whether q occurs at least once in the corpus.
func (p *Plain) Contains(q []byte) bool {
	return p.Count(q) > 0
}

// CharAt returns T[i]; out-of-range i panics (programming error).
func (p *Plain) CharAt(i int) byte { return p.t[i] }

// CorpusLen returns len(T), including the sentinel.
func (p *Plain) CorpusLen() int { return len(p.t) }

// Serialize writes (n, T[n], BitPackedArray SA) per spec.md §6
// (SuffixArrayIndex layout).
func (p *Plain) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(p.t))); err != nil {
		return errs.NewIO("sufidx.Plain.Serialize", err)
	}
	if _, err := w.Write(p.t); err != nil {
		return errs.NewIO("sufidx.Plain.Serialize", err)
	}

	width := bitpack.WidthFor(uint64(len(p.t)))
	sa := bitpack.New(uint64(len(p.sa)), width)
	for i, v := range p.sa {
		sa.Set(uint64(i), uint64(v))
	}
	if err := sa.Serialize(w); err != nil {
		return errs.NewIO("sufidx.Plain.Serialize", err)
	}
	return nil
}

// DeserializePlain reads a Plain index previously written by Serialize.
func DeserializePlain(r io.Reader) (*Plain, error) {
	t, sa, err := readTAndSA(r)
	if err != nil {
		return nil, err
	}
	return &Plain{t: t, sa: sa}, nil
}

func readTAndSA(r io.Reader) ([]byte, []int, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, nil, errs.NewIO("sufidx.Deserialize", err)
	}
	t := make([]byte, n)
	if _, err := io.ReadFull(r, t); err != nil {
		return nil, nil, errs.NewIO("sufidx.Deserialize", err)
	}
	packed, err := bitpack.Deserialize(r)
	if err != nil {
		return nil, nil, errs.NewIO("sufidx.Deserialize", err)
	}
	sa := make([]int, packed.Len())
	for i := range sa {
		sa[i] = int(packed.Get(uint64(i)))
	}
	return t, sa, nil
}
