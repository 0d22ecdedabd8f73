package suftree

import (
	"bytes"
	"sort"
)

// compactNode is an arena entry in the restructured, immutable tree: a
// leaf carries only its corpus offset; an internal node carries parallel
// edge/child arrays sorted ascending by first edge byte, per spec.md
// §4.5's invariant, enabling binary-search descent.
type compactNode struct {
	isLeaf bool
	offset int32

	starts   []int32
	ends     []int32
	children []int32
}

// Compact is the arena-backed, immutable, branch-sorted suffix tree used
// for query-time descent. It borrows t (the corpus) by reference and
// never mutates it or itself after Compact() returns.
type Compact struct {
	t     []byte
	nodes []compactNode
	root  int32
}

// Root is the arena index of the tree's root node, the argument every
// top-level CollectOffsets/CountLeaves call should start from.
func (c *Compact) Root() int32 { return c.root }

// CorpusLen returns len(T), including the sentinel byte.
func (c *Compact) CorpusLen() int { return len(c.t) }

// CharAt returns T[i]. Out-of-range i is a programming error and panics,
// matching spec.md §4.1's treatment of misuse elsewhere in the index
// layer.
func (c *Compact) CharAt(i int) byte {
	return c.t[i]
}

// Compact transforms b into the compact, sorted-children arena form and
// discards b's build-time (unsorted) representation. Each internal node's
// children are sorted ascending by the byte the child's edge starts with.
func Compact(b *Built) *Compact {
	c := &Compact{t: b.t}
	c.root = c.convert(b, b.root)
	return c
}

func (c *Compact) convert(b *Built, idx int) int32 {
	n := &b.arena[idx]
	if n.isLeaf {
		c.nodes = append(c.nodes, compactNode{isLeaf: true, offset: int32(n.offset)})
		return int32(len(c.nodes) - 1)
	}

	order := make([]int, len(n.children))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return b.t[n.starts[order[i]]] < b.t[n.starts[order[j]]]
	})

	starts := make([]int32, len(order))
	ends := make([]int32, len(order))
	children := make([]int32, len(order))
	for pos, src := range order {
		starts[pos] = int32(n.starts[src])
		ends[pos] = int32(n.ends[src])
		children[pos] = c.convert(b, n.children[src])
	}

	c.nodes = append(c.nodes, compactNode{
		isLeaf:   false,
		starts:   starts,
		ends:     ends,
		children: children,
	})
	return int32(len(c.nodes) - 1)
}

// Walk descends from the root matching query byte-by-byte, binary
// searching the first edge byte at every internal node and verifying the
// matched portion of the winning edge against the query, per spec.md
// §4.5. It returns the arena index of the subtree whose path-label has
// query as a prefix, and true; or (0, false) if no such subtree exists.
func (c *Compact) Walk(query []byte) (int32, bool) {
	node := c.root
	pos := 0

	for {
		if pos == len(query) {
			return node, true
		}

		n := &c.nodes[node]
		if n.isLeaf {
			return 0, false
		}

		b := query[pos]
		i := sort.Search(len(n.children), func(k int) bool {
			return c.t[n.starts[k]] >= b
		})
		if i == len(n.children) || c.t[n.starts[i]] != b {
			return 0, false
		}

		start, end := n.starts[i], n.ends[i]
		edgeLen := int(end-start) + 1
		avail := len(query) - pos
		cmp := edgeLen
		if avail < cmp {
			cmp = avail
		}
		if !bytes.Equal(c.t[start:int(start)+cmp], query[pos:pos+cmp]) {
			return 0, false
		}
		pos += cmp

		if cmp < edgeLen {
			// Query was fully consumed inside this edge: every leaf under
			// n.children[i] has query as a prefix of its path-label.
			return n.children[i], true
		}
		node = n.children[i]
	}
}

// CollectOffsets appends, in left-to-right (depth-first, pre-order)
// order, every leaf offset under the subtree rooted at node.
func (c *Compact) CollectOffsets(node int32, out []int) []int {
	n := &c.nodes[node]
	if n.isLeaf {
		return append(out, int(n.offset))
	}
	for _, child := range n.children {
		out = c.CollectOffsets(child, out)
	}
	return out
}

// CountLeaves returns the number of leaves under the subtree rooted at
// node, without materializing their offsets.
func (c *Compact) CountLeaves(node int32) int {
	n := &c.nodes[node]
	if n.isLeaf {
		return 1
	}
	total := 0
	for _, child := range n.children {
		total += c.CountLeaves(child)
	}
	return total
}
