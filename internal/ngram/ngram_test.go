package ngram

import (
	"bytes"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
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

func TestSearchAllLengthClasses(t *testing.T) {
	text := []byte("abracadabra")
	idx := Build(text, 3)

	for _, q := range []string{"abr", "a", "ab", "abra", "abrac", "xyz", "bra"} {
		query := []byte(q)
		want := bruteForce(text, query)
		sort.Ints(want)
		got := idx.Search(query)
		sort.Ints(got)
		require.Equal(t, want, got, "query=%q", q)
		require.Equal(t, len(want), idx.Count(query))
		require.Equal(t, len(want) > 0, idx.Contains(query))
	}
}

func TestSearchFindsShortQueryInTrailingPositions(t *testing.T) {
	text := append([]byte("xyzw"), 0x00)
	idx := Build(text, 4)

	require.Equal(t, []int{3}, idx.Search([]byte("w")))
	require.Equal(t, []int{4}, idx.Search([]byte{0x00}))
	require.Equal(t, []int{2}, idx.Search([]byte("zw")))
}

func TestSerializeRoundTrip(t *testing.T) {
	text := []byte("mississippi")
	idx := Build(text, 3)

	var buf bytes.Buffer
	require.NoError(t, idx.Serialize(&buf))
	got, err := Deserialize(&buf)
	require.NoError(t, err)

	for _, q := range []string{"iss", "ippi", "p"} {
		a := idx.Search([]byte(q))
		b := got.Search([]byte(q))
		sort.Ints(a)
		sort.Ints(b)
		require.Equal(t, a, b)
	}
}
