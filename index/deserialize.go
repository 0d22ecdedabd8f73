package index

import (
	"io"

	"github.com/gosari/sari/internal/ngram"
	"github.com/gosari/sari/internal/sufidx"
	"github.com/gosari/sari/internal/suftree"
)

func deserializeBackend(kind Kind, r io.Reader) (Backend, error) {
	switch kind {
	case SuffixTree:
		c, err := suftree.Deserialize(r)
		if err != nil {
			return nil, err
		}
		return &suffixTreeBackend{c: c}, nil

	case CompressedSuffixTree:
		return nil, errCompressedNotLinked()

	case SuffixArray:
		return sufidx.DeserializePlain(r)

	case AugmentedSuffixArray:
		return sufidx.DeserializeAugmented(r)

	case NGram:
		return ngram.Deserialize(r)

	default:
		return nil, errUnknownKind(kind)
	}
}
