// Package ngram implements a fixed-width n-gram index: every n-byte
// window of the corpus maps to its sorted list of start offsets, keyed
// in lexicographic order, per spec.md §4.6.
package ngram

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/gosari/sari/errs"
	"github.com/gosari/sari/internal/bitpack"
)

// Index is an n-gram → offsets map over a fixed gram size n.
type Index struct {
	t       []byte
	n       int
	keys    [][]byte // sorted ascending, one per distinct n-byte window
	offsets [][]int  // parallel to keys; each sorted ascending
}

// Build enumerates every n-byte window of t and groups their start
// offsets by window bytes.
func Build(t []byte, n int) *Index {
	if n <= 0 {
		panic("ngram: n must be positive")
	}

	grouped := make(map[string][]int)
	for i := 0; i+n <= len(t); i++ {
		key := string(t[i : i+n])
		grouped[key] = append(grouped[key], i)
	}

	keys := make([]string, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	idx := &Index{t: t, n: n}
	for _, k := range keys {
		idx.keys = append(idx.keys, []byte(k))
		idx.offsets = append(idx.offsets, grouped[k])
	}
	return idx
}

// N returns the fixed gram width.
func (idx *Index) N() int { return idx.n }

// CharAt returns T[i]; out-of-range i panics.
func (idx *Index) CharAt(i int) byte { return idx.t[i] }

// CorpusLen returns len(T), including the sentinel.
func (idx *Index) CorpusLen() int { return len(idx.t) }

// Search returns every offset o with T[o:o+len(q)] == q, ascending.
// Queries of length exactly n are a direct lookup; shorter queries scan
// the ordered keys while they begin with q; longer queries look up the
// length-n prefix and filter candidates by direct comparison of the
// remaining tail.
func (idx *Index) Search(q []byte) []int {
	switch {
	case len(q) == idx.n:
		if i, ok := idx.find(q); ok {
			return append([]int(nil), idx.offsets[i]...)
		}
		return nil

	case len(q) < idx.n:
		lo := sort.Search(len(idx.keys), func(i int) bool {
			return bytes.Compare(idx.keys[i], q) >= 0
		})
		var out []int
		for i := lo; i < len(idx.keys) && bytes.HasPrefix(idx.keys[i], q); i++ {
			out = append(out, idx.offsets[i]...)
		}
		// Gram keys only cover start offsets with a full n-byte window
		// (i+n <= len(t)); a query shorter than n can still occur starting
		// in the final n-1 positions, where no such window exists. Scan
		// those directly rather than missing them.
		for i := max(0, len(idx.t)-idx.n+1); i+len(q) <= len(idx.t); i++ {
			if bytes.Equal(idx.t[i:i+len(q)], q) {
				out = append(out, i)
			}
		}
		sort.Ints(out)
		return out

	default: // len(q) > idx.n
		i, ok := idx.find(q[:idx.n])
		if !ok {
			return nil
		}
		tail := q[idx.n:]
		var out []int
		for _, off := range idx.offsets[i] {
			end := off + len(q)
			if end > len(idx.t) {
				continue
			}
			if bytes.Equal(idx.t[off+idx.n:end], tail) {
				out = append(out, off)
			}
		}
		return out
	}
}

// Count returns the number of matches of q.
func (idx *Index) Count(q []byte) int { return len(idx.Search(q)) }

// Contains reports whether q occurs at least once.
func (idx *Index) Contains(q []byte) bool { return idx.Count(q) > 0 }

func (idx *Index) find(key []byte) (int, bool) {
	i := sort.Search(len(idx.keys), func(i int) bool {
		return bytes.Compare(idx.keys[i], key) >= 0
	})
	if i < len(idx.keys) && bytes.Equal(idx.keys[i], key) {
		return i, true
	}
	return 0, false
}

// Serialize writes (n, T[n], ngram_size, map_size,
// (bytes[ngram_size], BitPackedArray offsets)[map_size]) per spec.md §6.
func (idx *Index) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(idx.t))); err != nil {
		return errs.NewIO("ngram.Serialize", err)
	}
	if _, err := w.Write(idx.t); err != nil {
		return errs.NewIO("ngram.Serialize", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(idx.n)); err != nil {
		return errs.NewIO("ngram.Serialize", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(idx.keys))); err != nil {
		return errs.NewIO("ngram.Serialize", err)
	}

	width := bitpack.WidthFor(uint64(len(idx.t)))
	for i, key := range idx.keys {
		if _, err := w.Write(key); err != nil {
			return errs.NewIO("ngram.Serialize", err)
		}
		offs := idx.offsets[i]
		packed := bitpack.New(uint64(len(offs)), width)
		for j, o := range offs {
			packed.Set(uint64(j), uint64(o))
		}
		if err := packed.Serialize(w); err != nil {
			return errs.NewIO("ngram.Serialize", err)
		}
	}
	return nil
}

// Deserialize reads an Index previously written by Serialize.
func Deserialize(r io.Reader) (*Index, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errs.NewIO("ngram.Deserialize", err)
	}
	t := make([]byte, n)
	if _, err := io.ReadFull(r, t); err != nil {
		return nil, errs.NewIO("ngram.Deserialize", err)
	}

	var gramSize uint32
	if err := binary.Read(r, binary.LittleEndian, &gramSize); err != nil {
		return nil, errs.NewIO("ngram.Deserialize", err)
	}
	var mapSize uint64
	if err := binary.Read(r, binary.LittleEndian, &mapSize); err != nil {
		return nil, errs.NewIO("ngram.Deserialize", err)
	}

	idx := &Index{t: t, n: int(gramSize)}
	for i := uint64(0); i < mapSize; i++ {
		key := make([]byte, gramSize)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, errs.NewIO("ngram.Deserialize", err)
		}
		packed, err := bitpack.Deserialize(r)
		if err != nil {
			return nil, errs.NewIO("ngram.Deserialize", err)
		}
		offs := make([]int, packed.Len())
		for j := range offs {
			offs[j] = int(packed.Get(uint64(j)))
		}
		idx.keys = append(idx.keys, key)
		idx.offsets = append(idx.offsets, offs)
	}
	return idx, nil
}
