// Package bitpack implements a fixed-width integer vector packed into a
// contiguous []uint64, with no inter-element padding. It backs the
// persisted arrays of sari's index formats: suffix arrays, the LCP-L/LCP-R
// side tables of the augmented suffix-array index, and the n-gram offset
// lists.
package bitpack

import (
	"encoding/binary"
	"io"

	"github.com/gosari/sari/errs"
)

// Array is a vector of n fixed-width unsigned integers, each "width" bits
// wide, packed MSB-first across 64-bit words. Width is fixed at
// construction. An out-of-range index is a programming error: Get and Set
// panic rather than return an error, matching the contract of spec.md
// §4.1 ("out-of-range i is a programming error, not a recoverable
// failure").
type Array struct {
	n     uint64
	width uint8
	words []uint64
}

// New allocates an Array holding n elements of the given bit width. Width
// must be in [1, 64].
func New(n uint64, width uint8) *Array {
	if width == 0 || width > 64 {
		panic("bitpack: width must be in [1, 64]")
	}
	bits := n * uint64(width)
	return &Array{
		n:     n,
		width: width,
		words: make([]uint64, (bits+63)/64),
	}
}

// Len returns the number of packed elements.
func (a *Array) Len() uint64 { return a.n }

// Width returns the fixed bit width of each element.
func (a *Array) Width() uint8 { return a.width }

// Set stores value at index i, replacing whatever was stored there.
// Bits of value above Width() are silently truncated.
func (a *Array) Set(i uint64, value uint64) {
	if i >= a.n {
		panic("bitpack: index out of range")
	}
	width := uint64(a.width)
	mask := ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}
	value &= mask
	s := i * width
	e := s + width - 1
	sw, ew := s/64, e/64
	if sw == ew {
		shift := 63 - e%64
		a.words[sw] = a.words[sw]&^(mask<<shift) | value<<shift
	} else {
		a.words[sw] = a.words[sw]&^(mask>>(e%64+1)) | value>>(e%64+1)
		a.words[ew] = a.words[ew]&^(mask<<(63-e%64)) | value<<(63-e%64)
	}
}

// Get returns the value stored at index i.
func (a *Array) Get(i uint64) uint64 {
	if i >= a.n {
		panic("bitpack: index out of range")
	}
	width := uint64(a.width)
	s := i * width
	e := s + width - 1
	sw, ew := s/64, e/64
	if sw == ew {
		v := a.words[sw] << (s % 64)
		return v >> (63 - e%64 + s%64)
	}
	v1 := a.words[sw] << (s % 64)
	v2 := a.words[ew] >> (63 - e%64)
	v1 = v1 >> (s%64 - (e%64 + 1))
	return v1 | v2
}

// Serialize writes (n_elements, width, bitmap_bits, words...) to out in
// little-endian, per spec.md §6.
func (a *Array) Serialize(w io.Writer) error {
	bitmapBits := a.n * uint64(a.width)
	for _, v := range []any{a.n, a.width, bitmapBits} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return errs.NewIO("bitpack.Serialize", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, a.words); err != nil {
		return errs.NewIO("bitpack.Serialize", err)
	}
	return nil
}

// Deserialize reads an Array previously written by Serialize.
func Deserialize(r io.Reader) (*Array, error) {
	var n uint64
	var width uint8
	var bitmapBits uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errs.NewIO("bitpack.Deserialize", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &width); err != nil {
		return nil, errs.NewIO("bitpack.Deserialize", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &bitmapBits); err != nil {
		return nil, errs.NewIO("bitpack.Deserialize", err)
	}
	words := make([]uint64, (bitmapBits+63)/64)
	if len(words) > 0 {
		if err := binary.Read(r, binary.LittleEndian, words); err != nil {
			return nil, errs.NewIO("bitpack.Deserialize", err)
		}
	}
	return &Array{n: n, width: width, words: words}, nil
}

// WidthFor returns the minimal bit width able to hold values in [0, maxVal].
func WidthFor(maxVal uint64) uint8 {
	if maxVal == 0 {
		return 1
	}
	w := uint8(0)
	for v := maxVal; v > 0; v >>= 1 {
		w++
	}
	return w
}
