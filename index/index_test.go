package index

import (
	"bytes"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosari/sari/internal/xtest"
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

func allKinds() []Kind {
	return []Kind{SuffixTree, SuffixArray, AugmentedSuffixArray, NGram}
}

func TestBuildSearchAgreesAcrossBackends(t *testing.T) {
	corpus, err := AppendSentinel([]byte("abracadabra"), DefaultSentinel)
	require.NoError(t, err)

	for _, kind := range allKinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			ix, err := Build(kind, corpus, Options{})
			require.NoError(t, err)
			require.Equal(t, kind, ix.Kind())
			require.Equal(t, len(corpus), ix.CorpusLen())

			for _, q := range []string{"a", "abra", "bra", "cad", "z", "ab"} {
				query := []byte(q)
				want := bruteForce(corpus, query)
				sort.Ints(want)
				got := ix.Search(query)
				require.Equal(t, want, got, "kind=%s query=%q", kind, q)
				require.Equal(t, len(want), ix.Count(query))
				require.Equal(t, len(want) > 0, ix.Contains(query))
			}
		})
	}
}

func TestBuildSearchAgreesAcrossBackendsOnRandomCorpora(t *testing.T) {
	prng := rand.New(rand.NewPCG(5, 6))
	for trial := 0; trial < 10; trial++ {
		corpus := xtest.RandomCorpus(prng, 5+prng.IntN(30), DefaultSentinel)
		queries := make([][]byte, 5)
		for i := range queries {
			queries[i] = xtest.RandomQuery(prng, corpus, 6)
		}

		var reference [][]int
		for _, q := range queries {
			reference = append(reference, bruteForce(corpus, q))
		}

		for _, kind := range allKinds() {
			ix, err := Build(kind, corpus, Options{})
			require.NoError(t, err, "trial %d kind=%s", trial, kind)
			for qi, q := range queries {
				want := append([]int(nil), reference[qi]...)
				sort.Ints(want)
				got := ix.Search(q)
				require.Equal(t, want, got, "trial %d kind=%s query=%q", trial, kind, q)
			}
		}
	}
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	corpus, err := AppendSentinel([]byte("mississippi"), DefaultSentinel)
	require.NoError(t, err)

	for _, kind := range allKinds() {
		kind := kind
		t.Run(kind.String(), func(t *testing.T) {
			ix, err := Build(kind, corpus, Options{})
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, ix.Serialize(&buf))

			got, err := Deserialize(kind, &buf)
			require.NoError(t, err)
			require.Equal(t, kind, got.Kind())

			for _, q := range []string{"iss", "ippi", "p", "zzz"} {
				query := []byte(q)
				require.Equal(t, ix.Search(query), got.Search(query), "kind=%s query=%q", kind, q)
			}
		})
	}
}

func TestCompressedSuffixTreeIsNotLinked(t *testing.T) {
	corpus, err := AppendSentinel([]byte("abc"), DefaultSentinel)
	require.NoError(t, err)

	_, err = Build(CompressedSuffixTree, corpus, Options{})
	require.Error(t, err)

	_, err = Deserialize(CompressedSuffixTree, bytes.NewReader(nil))
	require.Error(t, err)
}

func TestAppendSentinelRejectsSmallerByte(t *testing.T) {
	_, err := AppendSentinel([]byte{0x00, 0x01}, 0x00)
	require.Error(t, err)
}

func TestKindFileSuffix(t *testing.T) {
	require.Equal(t, ".st", SuffixTree.FileSuffix())
	require.Equal(t, ".sa", SuffixArray.FileSuffix())
	require.Equal(t, ".asa", AugmentedSuffixArray.FileSuffix())
	require.Equal(t, ".ngm", NGram.FileSuffix())
}
