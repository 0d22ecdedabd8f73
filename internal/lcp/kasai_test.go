package lcp

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosari/sari/internal/sufarray"
	"github.com/gosari/sari/internal/xtest"
)

func TestBuildMatchesBruteForce(t *testing.T) {
	t.Parallel()
	text := append([]byte("abracadabra"), 0x00)
	sa := sufarray.Unpack(sufarray.Build(text))

	got := Build(text, sa)
	require.Equal(t, len(text), len(got))
	require.Zero(t, got[0])

	for i := 1; i < len(sa); i++ {
		want := commonPrefixLen(text, sa[i-1], sa[i])
		require.Equal(t, want, got[i], "i=%d sa[i-1]=%d sa[i]=%d", i, sa[i-1], sa[i])
	}
}

func TestPackRoundTrip(t *testing.T) {
	t.Parallel()
	values := []int{0, 1, 4, 0, 9, 2}
	packed := Pack(values)
	for i, v := range values {
		require.EqualValues(t, v, packed.Get(uint64(i)))
	}
}

func TestBuildMatchesBruteForceOnRandomCorpora(t *testing.T) {
	t.Parallel()
	prng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 30; trial++ {
		text := xtest.RandomCorpus(prng, 1+prng.IntN(40), 0x00)
		sa := sufarray.Unpack(sufarray.Build(text))
		got := Build(text, sa)
		require.Equal(t, len(text), len(got))
		require.Zero(t, got[0])
		for i := 1; i < len(sa); i++ {
			want := commonPrefixLen(text, sa[i-1], sa[i])
			require.Equal(t, want, got[i], "trial %d: i=%d sa[i-1]=%d sa[i]=%d", trial, i, sa[i-1], sa[i])
		}
	}
}

func commonPrefixLen(t []byte, a, b int) int {
	n := 0
	for a+n < len(t) && b+n < len(t) && t[a+n] == t[b+n] {
		n++
	}
	return n
}
