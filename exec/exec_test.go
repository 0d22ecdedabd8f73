package exec

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosari/sari/index"
	"github.com/gosari/sari/internal/xtest"
	"github.com/gosari/sari/regex"
)

func buildIndex(t *testing.T) *index.Index {
	t.Helper()
	corpus := xtest.AbracadabraCorpus(index.DefaultSentinel)
	ix, err := index.Build(index.SuffixArray, corpus, index.Options{})
	require.NoError(t, err)
	return ix
}

func sortResults(r []OffsetLength) []OffsetLength {
	out := append([]OffsetLength(nil), r...)
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func ol(pairs ...int) []OffsetLength {
	var out []OffsetLength
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, OffsetLength{Offset: pairs[i], Length: pairs[i+1]})
	}
	return out
}

func TestBlackBoxScenarios(t *testing.T) {
	ix := buildIndex(t)
	bb := NewBlackBox(ix)

	cases := []struct {
		pattern string
		want    []OffsetLength
	}{
		{"a.r", ol(0, 3, 7, 3)},
		{"ab|ra", ol(0, 2, 2, 2, 7, 2, 9, 2)},
		{"a(b|d)", ol(0, 2, 5, 2, 7, 2)},
	}

	for _, c := range cases {
		n, err := regex.Parse(c.pattern)
		require.NoError(t, err, c.pattern)
		got := sortResults(bb.Execute(n))
		require.Equal(t, c.want, got, "pattern=%q", c.pattern)
	}
}

func TestSearchScenarios(t *testing.T) {
	ix := buildIndex(t)
	require.Equal(t, []int{0, 7}, ix.Search([]byte("abra")))
	require.Equal(t, []int{0, 3, 5, 7, 10}, ix.Search([]byte("a")))
}

func TestDriverWildcardJoinScenario(t *testing.T) {
	ix := buildIndex(t)
	d := NewDriver(ix, WithStrategy(BlackBoxStrategy))

	got, err := d.Execute("a.*bra")
	require.NoError(t, err)
	want := ol(0, 4, 0, 11, 3, 8, 5, 6, 7, 4)
	require.Equal(t, want, sortResults(got))
}

func TestDriverBlackBoxAndPullAgreeWithoutWildcard(t *testing.T) {
	ix := buildIndex(t)
	bbDriver := NewDriver(ix, WithStrategy(BlackBoxStrategy))
	pullDriver := NewDriver(ix, WithStrategy(PullStrategy))

	for _, pattern := range []string{"a.r", "ab|ra", "a(b|d)", "abra", "ab."} {
		bbRes, err := bbDriver.Execute(pattern)
		require.NoError(t, err, pattern)
		pullRes, err := pullDriver.Execute(pattern)
		require.NoError(t, err, pattern)
		require.Equal(t, sortResults(bbRes), sortResults(pullRes), "pattern=%q", pattern)
	}
}

func TestDriverPullRefusesUnanchoredExpression(t *testing.T) {
	ix := buildIndex(t)
	d := NewDriver(ix, WithStrategy(PullStrategy))
	_, err := d.Execute(".+")
	require.Error(t, err)
}

func TestSplitTopLevelWildcardRespectsParens(t *testing.T) {
	require.Equal(t, []string{"a", "bra"}, splitTopLevelWildcard("a.*bra"))
	require.Equal(t, []string{"(a.*b)c"}, splitTopLevelWildcard(`(a.*b)c`))
	require.Equal(t, []string{"a", ""}, splitTopLevelWildcard("a.*"))
}

func TestPlannerDirection(t *testing.T) {
	prefixed, err := regex.Parse("abc")
	require.NoError(t, err)
	require.True(t, isPrefixed(prefixed))
	require.True(t, isSuffixed(prefixed))

	dotStart, err := regex.Parse(".bc")
	require.NoError(t, err)
	require.False(t, isPrefixed(dotStart))
	require.True(t, isSuffixed(dotStart))
}

func TestWildcardJoinGapBound(t *testing.T) {
	left := ol(0, 1)
	right := ol(5, 1, 100, 1)
	got := wildcardJoin(left, right, 10)
	require.Equal(t, ol(0, 6), got)

	gotUnbounded := wildcardJoin(left, right, -1)
	require.Equal(t, ol(0, 6, 0, 101), gotUnbounded)
}
