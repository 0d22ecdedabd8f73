package exec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gosari/sari/regex"
)

func TestForwardTokensPruneByContains(t *testing.T) {
	ix := buildIndex(t)
	f := NewForward(ix)

	n, err := regex.Parse("ab.")
	require.NoError(t, err)
	toks := f.Tokens(n)
	require.Equal(t, [][]byte{[]byte("abr")}, toks)
}

func TestForwardRepeatTerminates(t *testing.T) {
	ix := buildIndex(t)
	f := NewForward(ix)

	n, err := regex.Parse("a+")
	require.NoError(t, err)
	toks := f.Tokens(n)
	require.NotEmpty(t, toks)
	for _, tok := range toks {
		require.True(t, ix.Contains(tok))
		for _, b := range tok {
			require.Equal(t, byte('a'), b)
		}
	}
}

func TestForwardRepeatWithNullableInnerTerminates(t *testing.T) {
	ix := buildIndex(t)
	f := NewForward(ix)

	// "(a|)*": Inner is nullable (its Blank branch contributes a
	// zero-growth token alongside "a"), so naive fixpoint growth never
	// shrinks the frontier and must rely on the no-progress break to
	// terminate.
	n, err := regex.Parse("(a|)*")
	require.NoError(t, err)
	toks := f.Tokens(n)
	for _, tok := range toks {
		require.True(t, ix.Contains(tok))
		for _, b := range tok {
			require.Equal(t, byte('a'), b)
		}
	}

	n2, err := regex.Parse("()*")
	require.NoError(t, err)
	toks2 := f.Tokens(n2)
	require.Equal(t, [][]byte{nil}, toks2)
}

func TestBackwardRepeatWithNullableInnerTerminates(t *testing.T) {
	ix := buildIndex(t)
	b := NewBackward(ix)

	n, err := regex.Parse("(a|)*")
	require.NoError(t, err)
	toks := b.Tokens(n)
	for _, tok := range toks {
		require.True(t, ix.Contains(tok))
		for _, c := range tok {
			require.Equal(t, byte('a'), c)
		}
	}
}

func TestBackwardTokensPruneByContains(t *testing.T) {
	ix := buildIndex(t)
	b := NewBackward(ix)

	n, err := regex.Parse(".ra")
	require.NoError(t, err)
	toks := b.Tokens(n)
	require.NotEmpty(t, toks)
	for _, tok := range toks {
		require.True(t, ix.Contains(tok))
	}
}
