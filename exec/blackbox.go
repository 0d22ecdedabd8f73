package exec

import (
	"github.com/gosari/sari/regex"
)

// Index is the capability black-box and pull-based executors need from
// the full-text index layer. index.Index satisfies this directly.
type Index interface {
	Search(query []byte) []int
	Count(query []byte) int
	Contains(query []byte) bool
	CharAt(i int) byte
	CorpusLen() int
}

// BlackBox evaluates a regex.Node by bottom-up composition of
// OffsetLength sets, per spec.md §4.12.
type BlackBox struct {
	idx Index
}

// NewBlackBox returns a black-box executor backed by idx.
func NewBlackBox(idx Index) *BlackBox { return &BlackBox{idx: idx} }

// Execute computes the full OffsetLength set matched by n.
func (e *BlackBox) Execute(n regex.Node) []OffsetLength {
	return e.compute(n)
}

func (e *BlackBox) compute(n regex.Node) []OffsetLength {
	switch v := n.(type) {
	case *regex.Blank:
		return nil

	case *regex.Primitive:
		switch v.Kind {
		case regex.Mgram:
			return e.searchMgram(v.Bytes)
		case regex.Dot:
			return e.searchByteSet(regex.NewDotSet())
		case regex.Range:
			return e.searchByteSet(v.Set)
		default:
			return nil
		}

	case *regex.Union:
		return union(e.compute(v.First), e.compute(v.Second))

	case *regex.Concat:
		return concat(e.compute(v.Left), e.compute(v.Right))

	case *regex.Repeat:
		internal := e.compute(v.Inner)
		return computeRepeat(internal, v.Kind, v.Min, v.Max)

	default:
		return nil
	}
}

func (e *BlackBox) searchMgram(s []byte) []OffsetLength {
	offsets := e.idx.Search(s)
	out := make([]OffsetLength, len(offsets))
	for i, o := range offsets {
		out[i] = OffsetLength{Offset: o, Length: len(s)}
	}
	return out
}

func (e *BlackBox) searchByteSet(set interface{ Test(uint) bool }) []OffsetLength {
	var out []OffsetLength
	for c := 0; c < 256; c++ {
		if !set.Test(uint(c)) {
			continue
		}
		out = union(out, e.searchMgram([]byte{byte(c)}))
	}
	return out
}

// computeRepeat implements spec.md §4.12's Repeat rule: a fixpoint union
// of successive concatenations of inner with itself. ZeroOrMore is
// implemented as OneOrMore, per spec.md §4.12 ("the engine does not emit
// zero-length matches"). MinToMax with Min==0 is likewise treated as
// Min==1 for the same reason.
func computeRepeat(internal []OffsetLength, kind regex.RepeatKind, min, max int) []OffsetLength {
	if len(internal) == 0 {
		return nil
	}

	switch kind {
	case regex.ZeroOrMore, regex.OneOrMore:
		result := internal
		cur := internal
		for {
			next := concat(cur, internal)
			if len(next) == 0 {
				break
			}
			result = union(result, next)
			cur = next
		}
		return result

	case regex.MinToMax:
		effMin := min
		if effMin <= 0 {
			effMin = 1
		}
		cur := internal
		reps := 1
		for reps < effMin {
			cur = concat(cur, internal)
			if len(cur) == 0 {
				return nil
			}
			reps++
		}

		result := cur
		for reps < max {
			next := concat(cur, internal)
			if len(next) == 0 {
				break
			}
			cur = next
			result = union(result, cur)
			reps++
		}
		return result

	default:
		return nil
	}
}
