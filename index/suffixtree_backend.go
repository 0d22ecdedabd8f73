package index

import (
	"io"
	"sort"

	"github.com/gosari/sari/internal/suftree"
)

// suffixTreeBackend adapts internal/suftree.Compact (which exposes
// Walk/CollectOffsets/CountLeaves over an arena node index) to the flat
// Search/Count/Contains/CharAt/CorpusLen/Serialize contract of Backend.
type suffixTreeBackend struct {
	c *suftree.Compact
}

func (b *suffixTreeBackend) Search(query []byte) []int {
	node, ok := b.c.Walk(query)
	if !ok {
		return nil
	}
	out := b.c.CollectOffsets(node, nil)
	sort.Ints(out)
	return out
}

func (b *suffixTreeBackend) Count(query []byte) int {
	node, ok := b.c.Walk(query)
	if !ok {
		return 0
	}
	return b.c.CountLeaves(node)
}

func (b *suffixTreeBackend) Contains(query []byte) bool {
	_, ok := b.c.Walk(query)
	return ok
}

func (b *suffixTreeBackend) CharAt(i int) byte { return b.c.CharAt(i) }

func (b *suffixTreeBackend) CorpusLen() int { return b.c.CorpusLen() }

func (b *suffixTreeBackend) Serialize(w io.Writer) error { return b.c.Serialize(w) }
