package md5ctx

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSumHexMatchesUpdate(t *testing.T) {
	ctx := New()
	ctx.Update("hello")
	ctx.Update(" world")
	require.Equal(t, SumHex("hello world"), ctx.Sum())
}

func TestCloneIsIndependent(t *testing.T) {
	ctx := New()
	ctx.Update("abc")

	snapshot := ctx.Clone()
	ctx.Update("def")

	require.Equal(t, SumHex("abc"), snapshot.Sum())
	require.Equal(t, SumHex("abcdef"), ctx.Sum())
}

func TestSumDoesNotMutate(t *testing.T) {
	ctx := New()
	ctx.Update("x")
	first := ctx.Sum()
	ctx.Update("y")
	second := ctx.Sum()

	require.Equal(t, SumHex("x"), first)
	require.Equal(t, SumHex("xy"), second)
}
