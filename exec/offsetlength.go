// Package exec implements the two evaluation strategies of spec.md
// §4.12–§4.13 over a regex.Node and a backing index.Index, plus the
// driver of §4.11 that splits on `.*` and composes sub-results via
// wildcard-join.
package exec

import "sort"

// OffsetLength is a single match: the corpus offset it starts at and its
// byte length.
type OffsetLength struct {
	Offset int
	Length int
}

// less orders OffsetLength pairs by (offset, length) ascending, per
// spec.md §4.12's "result sets are ordered by (offset, length) ascending".
func less(a, b OffsetLength) bool {
	if a.Offset != b.Offset {
		return a.Offset < b.Offset
	}
	return a.Length < b.Length
}

func sortDedup(s []OffsetLength) []OffsetLength {
	sort.Slice(s, func(i, j int) bool { return less(s[i], s[j]) })
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// union returns the sorted set-union of a and b, per spec.md §4.12's
// Union rule.
func union(a, b []OffsetLength) []OffsetLength {
	out := make([]OffsetLength, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case less(a[i], b[j]):
			out = append(out, a[i])
			i++
		case less(b[j], a[i]):
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

// concat composes left and right per spec.md §4.12's Concat rule:
// {(o_a, l_a+l_b) : (o_a,l_a) ∈ left, (o_a+l_a, l_b) ∈ right}.
//
// spec.md §9's open question on this predicate notes the source used an
// inconsistent (and, for repeats with several distinct lengths landing at
// the same offset, lossy) single forward pointer into right. This builds
// an offset-keyed index of right once and probes it per left entry
// instead: same O(|left|+|right|)-ish cost, but correct when right has
// more than one length at a given offset (which Repeat sub-results
// routinely do).
func concat(left, right []OffsetLength) []OffsetLength {
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	byOffset := make(map[int][]int, len(right))
	for _, r := range right {
		byOffset[r.Offset] = append(byOffset[r.Offset], r.Length)
	}

	var out []OffsetLength
	for _, l := range left {
		target := l.Offset + l.Length
		for _, rl := range byOffset[target] {
			out = append(out, OffsetLength{Offset: l.Offset, Length: l.Length + rl})
		}
	}
	return sortDedup(out)
}
