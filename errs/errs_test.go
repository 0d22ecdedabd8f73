package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKindsFormatAndUnwrap(t *testing.T) {
	t.Parallel()

	parseErr := NewParse(3, "unbalanced parentheses")
	require.Contains(t, parseErr.Error(), "position 3")
	var p *Parse
	require.True(t, errors.As(parseErr, &p))
	require.Equal(t, 3, p.Position)

	queryErr := NewQuery("pattern has no literal sub-expression to anchor on")
	var q *Query
	require.True(t, errors.As(queryErr, &q))

	wrapped := errors.New("disk full")
	ioErr := NewIO("serialize", wrapped)
	var ie *IO
	require.True(t, errors.As(ioErr, &ie))
	require.Equal(t, wrapped, errors.Unwrap(ioErr))

	buildErr := NewBuild("sentinel byte is not strictly smallest")
	var b *Build
	require.True(t, errors.As(buildErr, &b))
}
