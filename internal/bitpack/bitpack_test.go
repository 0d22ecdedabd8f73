package bitpack

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetGetRoundTrip(t *testing.T) {
	widths := []uint8{1, 3, 8, 17, 32, 64}
	for _, width := range widths {
		width := width
		t.Run("", func(t *testing.T) {
			n := uint64(200)
			a := New(n, width)
			var mask uint64 = ^uint64(0)
			if width < 64 {
				mask = (uint64(1) << width) - 1
			}
			rng := rand.New(rand.NewSource(int64(width) + 1))
			want := make([]uint64, n)
			for i := range want {
				want[i] = rng.Uint64() & mask
				a.Set(uint64(i), want[i])
			}
			for i, w := range want {
				require.Equal(t, w, a.Get(uint64(i)), "width=%d idx=%d", width, i)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	a := New(50, 13)
	for i := uint64(0); i < 50; i++ {
		a.Set(i, i*7%(1<<13))
	}

	var buf bytes.Buffer
	require.NoError(t, a.Serialize(&buf))

	got, err := Deserialize(&buf)
	require.NoError(t, err)
	require.Equal(t, a.Len(), got.Len())
	require.Equal(t, a.Width(), got.Width())
	for i := uint64(0); i < 50; i++ {
		require.Equal(t, a.Get(i), got.Get(i))
	}
}

func TestOutOfRangePanics(t *testing.T) {
	a := New(4, 8)
	require.Panics(t, func() { a.Get(4) })
	require.Panics(t, func() { a.Set(10, 1) })
}

func TestWidthFor(t *testing.T) {
	cases := map[uint64]uint8{0: 1, 1: 1, 2: 2, 3: 2, 4: 3, 255: 8, 256: 9}
	for v, want := range cases {
		require.Equal(t, want, WidthFor(v), "v=%d", v)
	}
}
