package exec

import (
	"bytes"
	"sort"
)

// dedupBytes sorts and deduplicates a slice of byte-string tokens, some
// of which may be nil (the empty token used for Blank).
func dedupBytes(toks [][]byte) [][]byte {
	sort.Slice(toks, func(i, j int) bool { return bytes.Compare(toks[i], toks[j]) < 0 })
	out := toks[:0]
	for i, t := range toks {
		if i == 0 || !bytes.Equal(t, out[len(out)-1]) {
			out = append(out, t)
		}
	}
	return out
}

// joinBytes returns a freshly allocated concatenation of a and b, safe
// to hand out as a long-lived token even though a (the growth prefix)
// may still be reused by a sibling branch.
func joinBytes(a, b []byte) []byte {
	out := make([]byte, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// tokensToResults dispatches every token to idx.Search and unions the
// resulting OffsetLength sets, per spec.md §4.13's second phase.
func tokensToResults(idx Index, tokens [][]byte) []OffsetLength {
	var out []OffsetLength
	for _, tok := range tokens {
		offsets := idx.Search(tok)
		for _, o := range offsets {
			out = append(out, OffsetLength{Offset: o, Length: len(tok)})
		}
	}
	return sortDedup(out)
}
