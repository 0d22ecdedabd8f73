// Package regex implements the small regular-expression grammar of
// spec.md §4.10: literals, character classes, `.`, union, concatenation,
// and repetition. Parse produces a tagged-variant AST; Blank, Primitive,
// Concat, Union, and Repeat are never cyclic, so the tree uses plain heap
// boxing rather than an arena (spec.md §9 "Regex AST ownership").
package regex

import "github.com/bits-and-blooms/bitset"

// Node is the closed set of AST variants. Implementations are *Blank,
// *Primitive, *Concat, *Union, *Repeat.
type Node interface {
	node()
}

// Blank matches the empty string. It appears only as a parser sentinel
// (an empty alternative in a `|` chain, or an empty group).
type Blank struct{}

func (*Blank) node() {}

// PrimitiveKind tags which of the three leaf primitives a Primitive is.
type PrimitiveKind uint8

const (
	Mgram PrimitiveKind = iota
	Dot
	Range
)

// Primitive is an AST leaf.
//
// Mgram carries a literal byte run in Bytes. Dot carries nothing (it
// matches any printable non-newline byte). Range carries the expanded
// admitted-byte membership set in Set, built from the parsed `[...]`
// class.
type Primitive struct {
	Kind  PrimitiveKind
	Bytes []byte
	Set   *bitset.BitSet
}

func (*Primitive) node() {}

// Concat matches Left immediately followed by Right.
type Concat struct {
	Left, Right Node
}

func (*Concat) node() {}

// Union matches First or Second.
type Union struct {
	First, Second Node
}

func (*Union) node() {}

// RepeatKind tags which repetition form a Repeat node encodes.
type RepeatKind uint8

const (
	ZeroOrMore RepeatKind = iota
	OneOrMore
	MinToMax
)

// Repeat matches Inner repeated according to Kind. Min/Max are only
// meaningful when Kind == MinToMax.
type Repeat struct {
	Inner   Node
	Kind    RepeatKind
	Min     int
	Max     int
}

func (*Repeat) node() {}

// IsPrintableNonNewline reports whether b is a byte Dot (`.`) matches,
// per spec.md §4.15: any printable byte except newline.
func IsPrintableNonNewline(b byte) bool {
	return b != '\n' && b >= 0x20 && b < 0x7f
}

// NewDotSet returns the admitted-byte set for Dot, expanded once so Dot
// and Range primitives share the same enumeration shape in the black-box
// and pull-based executors.
func NewDotSet() *bitset.BitSet {
	bs := bitset.New(256)
	for c := 0; c < 256; c++ {
		if IsPrintableNonNewline(byte(c)) {
			bs.Set(uint(c))
		}
	}
	return bs
}
