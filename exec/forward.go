package exec

import (
	"github.com/gosari/sari/regex"
)

// Forward is the pull-based forward executor of spec.md §4.13: it
// enumerates the finite set of concrete tokens an AST can match, growing
// left-to-right, and dispatches each token to the index.
type Forward struct {
	idx Index
}

// NewForward returns a forward pull-based executor backed by idx.
func NewForward(idx Index) *Forward { return &Forward{idx: idx} }

// Tokens returns the token set computed for n per spec.md §4.13's
// forward rules.
func (f *Forward) Tokens(n regex.Node) [][]byte {
	return dedupBytes(f.compute(n))
}

// Execute dispatches every token of n to the index and returns the
// union of their OffsetLength matches.
func (f *Forward) Execute(n regex.Node) []OffsetLength {
	return tokensToResults(f.idx, f.Tokens(n))
}

// compute mirrors spec.md §4.13's bullet list directly: bare Mgram
// primitives are never pruned (a literal is a literal); Dot/Range and
// every byte grown inside a Concat's right operand or a Repeat are
// pruned via index.Contains, since those are the combinatorial-growth
// sites where pruning is what keeps enumeration finite.
func (f *Forward) compute(n regex.Node) [][]byte {
	switch v := n.(type) {
	case *regex.Blank:
		return [][]byte{nil}

	case *regex.Primitive:
		switch v.Kind {
		case regex.Mgram:
			return [][]byte{v.Bytes}
		case regex.Dot:
			return f.filterSingleBytes(regex.NewDotSet())
		case regex.Range:
			return f.filterSingleBytes(v.Set)
		default:
			return nil
		}

	case *regex.Union:
		return dedupBytes(append(f.compute(v.First), f.compute(v.Second)...))

	case *regex.Concat:
		var out [][]byte
		for _, t := range f.compute(v.Left) {
			out = append(out, f.extend(v.Right, t)...)
		}
		return dedupBytes(out)

	case *regex.Repeat:
		return f.extendRepeat(v, nil)

	default:
		return nil
	}
}

func (f *Forward) filterSingleBytes(set interface{ Test(uint) bool }) [][]byte {
	var out [][]byte
	for c := 0; c < 256; c++ {
		if !set.Test(uint(c)) {
			continue
		}
		cand := []byte{byte(c)}
		if f.idx.Contains(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// extend grows prefix by a string consistent with node n, pruning every
// candidate by index.Contains as spec.md §4.13 requires.
func (f *Forward) extend(n regex.Node, prefix []byte) [][]byte {
	switch v := n.(type) {
	case *regex.Blank:
		return [][]byte{prefix}

	case *regex.Primitive:
		switch v.Kind {
		case regex.Mgram:
			cand := joinBytes(prefix, v.Bytes)
			if f.idx.Contains(cand) {
				return [][]byte{cand}
			}
			return nil
		case regex.Dot:
			return f.extendSingleByte(prefix, regex.NewDotSet())
		case regex.Range:
			return f.extendSingleByte(prefix, v.Set)
		default:
			return nil
		}

	case *regex.Union:
		return dedupBytes(append(f.extend(v.First, prefix), f.extend(v.Second, prefix)...))

	case *regex.Concat:
		var out [][]byte
		for _, mid := range f.extend(v.Left, prefix) {
			out = append(out, f.extend(v.Right, mid)...)
		}
		return dedupBytes(out)

	case *regex.Repeat:
		return f.extendRepeat(v, prefix)

	default:
		return nil
	}
}

func (f *Forward) extendSingleByte(prefix []byte, set interface{ Test(uint) bool }) [][]byte {
	var out [][]byte
	for c := 0; c < 256; c++ {
		if !set.Test(uint(c)) {
			continue
		}
		cand := joinBytes(prefix, []byte{byte(c)})
		if f.idx.Contains(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// maxTokenLen returns the longest token in toks, or -1 for an empty set.
func maxTokenLen(toks [][]byte) int {
	m := -1
	for _, t := range toks {
		if len(t) > m {
			m = len(t)
		}
	}
	return m
}

// extendRepeat implements spec.md §4.13's Repeat rule: iterate extend
// over the accumulated frontier until no new extension survives
// index.Contains pruning, which bounds the loop to at most the corpus's
// longest matching repetition. A nullable Inner (e.g. the `()*` or
// `(a|)*` shape) can produce a round whose tokens are no longer than the
// ones it grew from; since repeating that round would just regenerate
// the same strings forever, such a round is kept (it's still a valid
// repetition count) but is the last one taken.
func (f *Forward) extendRepeat(v *regex.Repeat, prefix []byte) [][]byte {
	switch v.Kind {
	case regex.ZeroOrMore, regex.OneOrMore:
		cur := [][]byte{prefix}
		var result [][]byte
		for {
			var next [][]byte
			for _, c := range cur {
				next = append(next, f.extend(v.Inner, c)...)
			}
			next = dedupBytes(next)
			if len(next) == 0 {
				break
			}
			result = append(result, next...)
			if maxTokenLen(next) <= maxTokenLen(cur) {
				break
			}
			cur = next
		}
		return result

	case regex.MinToMax:
		effMin := v.Min
		if effMin <= 0 {
			effMin = 1
		}
		cur := [][]byte{prefix}
		reps := 0
		for reps < effMin {
			var next [][]byte
			for _, c := range cur {
				next = append(next, f.extend(v.Inner, c)...)
			}
			next = dedupBytes(next)
			if len(next) == 0 {
				return nil
			}
			noGrowth := maxTokenLen(next) <= maxTokenLen(cur)
			cur = next
			reps++
			if noGrowth {
				break
			}
		}

		result := append([][]byte(nil), cur...)
		for reps < v.Max {
			var next [][]byte
			for _, c := range cur {
				next = append(next, f.extend(v.Inner, c)...)
			}
			next = dedupBytes(next)
			if len(next) == 0 {
				break
			}
			result = append(result, next...)
			if maxTokenLen(next) <= maxTokenLen(cur) {
				break
			}
			cur = next
			reps++
		}
		return result

	default:
		return nil
	}
}
