package index

import (
	"github.com/gosari/sari/internal/lcp"
	"github.com/gosari/sari/internal/ngram"
	"github.com/gosari/sari/internal/sufarray"
	"github.com/gosari/sari/internal/sufidx"
	"github.com/gosari/sari/internal/suftree"
)

// Options configures Build. The zero value is the default: n=4 for
// n-gram backends, ignored otherwise.
type Options struct {
	// NGramSize is the fixed window width for Kind == NGram. Zero selects
	// DefaultNGramSize.
	NGramSize int
}

// DefaultNGramSize is the n-gram window width used when Options.NGramSize
// is left at its zero value, per spec.md §4.6's worked examples.
const DefaultNGramSize = 4

// Build constructs an Index of the given kind over corpus, which must
// already carry its sentinel byte as its final element (see
// AppendSentinel). This mirrors spec.md §4.9: the façade dispatches
// construction to one of the five backends, sharing suffix-array/LCP
// construction between the backends that need it.
func Build(kind Kind, corpus []byte, opts Options) (*Index, error) {
	backend, err := buildBackend(kind, corpus, opts)
	if err != nil {
		return nil, err
	}
	return &Index{kind: kind, backend: backend}, nil
}

func buildBackend(kind Kind, corpus []byte, opts Options) (Backend, error) {
	switch kind {
	case SuffixTree:
		sa := sufarray.Unpack(sufarray.Build(corpus))
		l := lcp.Build(corpus, sa)
		built := suftree.Build(corpus, sa, l)
		return &suffixTreeBackend{c: suftree.Compact(built)}, nil

	case CompressedSuffixTree:
		return nil, errCompressedNotLinked()

	case SuffixArray:
		sa := sufarray.Unpack(sufarray.Build(corpus))
		return sufidx.NewPlain(corpus, sa), nil

	case AugmentedSuffixArray:
		sa := sufarray.Unpack(sufarray.Build(corpus))
		l := lcp.Build(corpus, sa)
		return sufidx.NewAugmented(corpus, sa, l), nil

	case NGram:
		n := opts.NGramSize
		if n <= 0 {
			n = DefaultNGramSize
		}
		return ngram.Build(corpus, n), nil

	default:
		return nil, errUnknownKind(kind)
	}
}
