package sufidx

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosari/sari/internal/lcp"
	"github.com/gosari/sari/internal/sufarray"
)

func bruteForce(text, q []byte) []int {
	var out []int
	for i := 0; i+len(q) <= len(text); i++ {
		if bytes.Equal(text[i:i+len(q)], q) {
			out = append(out, i)
		}
	}
	return out
}

func buildAll(text []byte) (*Plain, *Augmented) {
	sa := sufarray.Unpack(sufarray.Build(text))
	l := lcp.Build(text, sa)
	return NewPlain(text, sa), NewAugmented(text, sa, l)
}

func TestPlainAndAugmentedAgreeWithBruteForce(t *testing.T) {
	text := append([]byte("abracadabra"), 0x00)
	plain, aug := buildAll(text)

	queries := []string{"a", "abra", "bra", "ra", "cad", "z", "abracadabra", "a\x00"}
	for _, q := range queries {
		query := []byte(q)
		want := bruteForce(text, query)
		sort.Ints(want)

		gotPlain := plain.Search(query)
		gotAug := aug.Search(query)

		require.Equal(t, want, gotPlain, "plain query=%q", q)
		require.Equal(t, want, gotAug, "augmented query=%q", q)
		require.Equal(t, len(want), plain.Count(query))
		require.Equal(t, len(want) > 0, plain.Contains(query))
		require.Equal(t, len(want), aug.Count(query))
		require.Equal(t, len(want) > 0, aug.Contains(query))
	}
}

func TestSerializeRoundTripPlain(t *testing.T) {
	text := append([]byte("banana"), 0x00)
	plain, _ := buildAll(text)

	var buf bytes.Buffer
	require.NoError(t, plain.Serialize(&buf))
	got, err := DeserializePlain(&buf)
	require.NoError(t, err)
	require.Equal(t, plain.Search([]byte("ana")), got.Search([]byte("ana")))
}

func TestSerializeRoundTripAugmented(t *testing.T) {
	text := append([]byte("mississippi"), 0x00)
	_, aug := buildAll(text)

	var buf bytes.Buffer
	require.NoError(t, aug.Serialize(&buf))
	got, err := DeserializeAugmented(&buf)
	require.NoError(t, err)
	require.Equal(t, aug.Search([]byte("issi")), got.Search([]byte("issi")))
	require.Equal(t, aug.LCPLeft(), got.LCPLeft())
	require.Equal(t, aug.LCPRight(), got.LCPRight())
}

func TestCorpusOfSentinelOnlyReturnsEmpty(t *testing.T) {
	text := []byte{0x00}
	plain, aug := buildAll(text)
	require.Empty(t, plain.Search([]byte("x")))
	require.Empty(t, aug.Search([]byte("x")))
	require.False(t, plain.Contains([]byte("x")))
}
