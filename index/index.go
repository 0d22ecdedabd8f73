// Package index provides the uniform TextIndex façade of spec.md §4.9:
// a single capability polymorphic over five backend kinds (suffix tree,
// compressed suffix tree, suffix array, augmented suffix array, n-gram),
// each built kind reachable through the same Search/Count/Contains/CharAt/
// Serialize contract. CompressedSuffixTree is a declared Kind only: Build
// and Deserialize return a build error for it. Per spec.md §9's "Heterogeneous index backends" design note,
// this is modeled as one small closed interface with tagged dispatch
// rather than an inheritance hierarchy.
package index

import (
	"io"
	"sort"

	"github.com/gosari/sari/errs"
)

// Kind names one of the five backend implementations a TextIndex can be
// built or loaded as.
type Kind uint8

const (
	SuffixTree Kind = iota
	CompressedSuffixTree
	SuffixArray
	AugmentedSuffixArray
	NGram
)

func (k Kind) String() string {
	switch k {
	case SuffixTree:
		return "suffix-tree"
	case CompressedSuffixTree:
		return "compressed-suffix-tree"
	case SuffixArray:
		return "suffix-array"
	case AugmentedSuffixArray:
		return "augmented-suffix-array"
	case NGram:
		return "n-gram"
	default:
		return "unknown"
	}
}

// FileSuffix returns the persisted-file-name convention for this kind,
// per spec.md §6: ".st", ".sa", ".asa", or ".ngm". It returns the empty
// string for CompressedSuffixTree and for unknown kinds.
func (k Kind) FileSuffix() string {
	switch k {
	case SuffixTree:
		return ".st"
	case SuffixArray:
		return ".sa"
	case AugmentedSuffixArray:
		return ".asa"
	case NGram:
		return ".ngm"
	default:
		return ""
	}
}

// Backend is the capability every index implementation satisfies.
// search must return offsets ascending, per spec.md §4.9 and §5.
type Backend interface {
	Search(query []byte) []int
	Count(query []byte) int
	Contains(query []byte) bool
	CharAt(i int) byte
	CorpusLen() int
	Serialize(w io.Writer) error
}

// Index is the façade: a Kind tag plus the concrete Backend it dispatches
// to. All query methods are pure and safe for concurrent readers once
// built (spec.md §5).
type Index struct {
	kind    Kind
	backend Backend
}

// Kind returns which backend this Index wraps.
func (ix *Index) Kind() Kind { return ix.kind }

// Search returns every offset where query occurs in the corpus,
// ascending, with no duplicates.
func (ix *Index) Search(query []byte) []int {
	out := ix.backend.Search(query)
	if !sort.IntsAreSorted(out) {
		sort.Ints(out)
	}
	return out
}

// Count returns len(Search(query)) without necessarily materializing it.
func (ix *Index) Count(query []byte) int { return ix.backend.Count(query) }

// Contains reports whether query occurs at least once.
func (ix *Index) Contains(query []byte) bool { return ix.backend.Contains(query) }

// CharAt returns T[i]. Out-of-range i is a programming error; backends
// panic rather than return an error, per spec.md §4.1's convention for
// this class of misuse.
func (ix *Index) CharAt(i int) byte { return ix.backend.CharAt(i) }

// CorpusLen returns len(T), including the appended sentinel.
func (ix *Index) CorpusLen() int { return ix.backend.CorpusLen() }

// Serialize writes this Index's persisted form, per spec.md §6. Kind is
// not itself written — callers select the file-name convention (Kind.
// FileSuffix) and must remember which Kind to pass back to Deserialize.
func (ix *Index) Serialize(w io.Writer) error {
	return ix.backend.Serialize(w)
}

// Deserialize loads a persisted Index of the given kind from r.
func Deserialize(kind Kind, r io.Reader) (*Index, error) {
	backend, err := deserializeBackend(kind, r)
	if err != nil {
		return nil, err
	}
	return &Index{kind: kind, backend: backend}, nil
}

// AppendSentinel returns corpus with sentinel appended, validating that
// sentinel is strictly smaller than every byte already present (spec.md
// §3: "an appended sentinel byte strictly smaller than any other byte").
func AppendSentinel(corpus []byte, sentinel byte) ([]byte, error) {
	for _, b := range corpus {
		if b <= sentinel {
			return nil, errs.NewBuild("corpus byte <= chosen sentinel; sentinel must be strictly smallest")
		}
	}
	out := make([]byte, len(corpus)+1)
	copy(out, corpus)
	out[len(corpus)] = sentinel
	return out, nil
}

// DefaultSentinel is the conventional sentinel byte (NUL), smaller than
// every printable or control byte used by the regex surface of spec.md
// §6.
const DefaultSentinel byte = 0x00
