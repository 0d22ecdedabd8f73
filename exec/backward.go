package exec

import (
	"github.com/gosari/sari/regex"
)

// Backward is the pull-based backward executor of spec.md §4.13: it
// mirrors Forward, but concatenation recurses right-first and every
// growth step prepends rather than appends.
type Backward struct {
	idx Index
}

// NewBackward returns a backward pull-based executor backed by idx.
func NewBackward(idx Index) *Backward { return &Backward{idx: idx} }

// Tokens returns the token set computed for n per spec.md §4.13's
// backward rules.
func (b *Backward) Tokens(n regex.Node) [][]byte {
	return dedupBytes(b.compute(n))
}

// Execute dispatches every token of n to the index and returns the
// union of their OffsetLength matches.
func (b *Backward) Execute(n regex.Node) []OffsetLength {
	return tokensToResults(b.idx, b.Tokens(n))
}

func (b *Backward) compute(n regex.Node) [][]byte {
	switch v := n.(type) {
	case *regex.Blank:
		return [][]byte{nil}

	case *regex.Primitive:
		switch v.Kind {
		case regex.Mgram:
			return [][]byte{v.Bytes}
		case regex.Dot:
			return b.filterSingleBytes(regex.NewDotSet())
		case regex.Range:
			return b.filterSingleBytes(v.Set)
		default:
			return nil
		}

	case *regex.Union:
		return dedupBytes(append(b.compute(v.First), b.compute(v.Second)...))

	case *regex.Concat:
		var out [][]byte
		for _, t := range b.compute(v.Right) {
			out = append(out, b.extend(v.Left, t)...)
		}
		return dedupBytes(out)

	case *regex.Repeat:
		return b.extendRepeat(v, nil)

	default:
		return nil
	}
}

func (b *Backward) filterSingleBytes(set interface{ Test(uint) bool }) [][]byte {
	var out [][]byte
	for c := 0; c < 256; c++ {
		if !set.Test(uint(c)) {
			continue
		}
		cand := []byte{byte(c)}
		if b.idx.Contains(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// extend grows suffix leftward by a string consistent with node n,
// pruning every candidate by index.Contains.
func (b *Backward) extend(n regex.Node, suffix []byte) [][]byte {
	switch v := n.(type) {
	case *regex.Blank:
		return [][]byte{suffix}

	case *regex.Primitive:
		switch v.Kind {
		case regex.Mgram:
			cand := joinBytes(v.Bytes, suffix)
			if b.idx.Contains(cand) {
				return [][]byte{cand}
			}
			return nil
		case regex.Dot:
			return b.extendSingleByte(suffix, regex.NewDotSet())
		case regex.Range:
			return b.extendSingleByte(suffix, v.Set)
		default:
			return nil
		}

	case *regex.Union:
		return dedupBytes(append(b.extend(v.First, suffix), b.extend(v.Second, suffix)...))

	case *regex.Concat:
		var out [][]byte
		for _, mid := range b.extend(v.Right, suffix) {
			out = append(out, b.extend(v.Left, mid)...)
		}
		return dedupBytes(out)

	case *regex.Repeat:
		return b.extendRepeat(v, suffix)

	default:
		return nil
	}
}

func (b *Backward) extendSingleByte(suffix []byte, set interface{ Test(uint) bool }) [][]byte {
	var out [][]byte
	for c := 0; c < 256; c++ {
		if !set.Test(uint(c)) {
			continue
		}
		cand := joinBytes([]byte{byte(c)}, suffix)
		if b.idx.Contains(cand) {
			out = append(out, cand)
		}
	}
	return out
}

// extendRepeat mirrors Forward.extendRepeat, prepending instead of
// appending at each step. A nullable Inner (e.g. the `()*` or `(a|)*`
// shape) can produce a round whose tokens are no longer than the ones
// it grew from; since repeating that round would just regenerate the
// same strings forever, such a round is kept (it's still a valid
// repetition count) but is the last one taken.
func (b *Backward) extendRepeat(v *regex.Repeat, suffix []byte) [][]byte {
	switch v.Kind {
	case regex.ZeroOrMore, regex.OneOrMore:
		cur := [][]byte{suffix}
		var result [][]byte
		for {
			var next [][]byte
			for _, c := range cur {
				next = append(next, b.extend(v.Inner, c)...)
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
		cur := [][]byte{suffix}
		reps := 0
		for reps < effMin {
			var next [][]byte
			for _, c := range cur {
				next = append(next, b.extend(v.Inner, c)...)
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
				next = append(next, b.extend(v.Inner, c)...)
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
